package registration

import (
	"context"

	"memberreg/internal/domain"
	"memberreg/internal/notification"
)

type RegistrationStore interface {
	CreateWithFile(ctx context.Context, reg *domain.Registration, file *domain.IDProofFile) error
	EmailExists(ctx context.Context, email string) (bool, error)
	MobileExists(ctx context.Context, mobile string) (bool, error)
}

type Notifier interface {
	Notify(title, message string, severity notification.Severity)
}
