package review

import (
	"context"

	"memberreg/internal/domain"
	"memberreg/internal/notification"
)

type RegistrationStore interface {
	ListPending(ctx context.Context) ([]domain.PendingRegistrationRow, error)
	GetByID(ctx context.Context, id string) (*domain.Registration, error)
	UpdateStatus(ctx context.Context, id string, status domain.ApprovalStatus, reason string) error
}

type MemberConverter interface {
	ConvertFromRegistration(ctx context.Context, registrationID string) (string, error)
}

type FileStore interface {
	GetIDByRegistration(ctx context.Context, registrationID string) (string, error)
}

type Notifier interface {
	Notify(title, message string, severity notification.Severity)
}

// RefreshBroadcaster pushes the refreshed snapshot to live board subscribers.
type RefreshBroadcaster interface {
	BroadcastRefresh(data interface{})
}
