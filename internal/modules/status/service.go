package status

import (
	"context"
	"strings"

	"memberreg/internal/domain"
	"memberreg/internal/pkg/validator"

	"go.uber.org/zap"
)

// User-facing messages, word for word what the lookup card shows.
const (
	msgPromptEmail  = "Please enter an email address."
	msgInvalidEmail = "Please enter a valid email."
	msgEmptyInput   = "Please enter an email."
	msgNotFound     = "No member found with this email."
	msgLookupFailed = "Error checking status. Please try again later."
	msgStatusPrefix = "Member status: "
)

// Service answers "what happened to my application?" for a single email.
type Service struct {
	store StatusStore
	log   *zap.Logger
}

func NewService(store StatusStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, log: log}
}

// Normalize strips all whitespace and lowercases, matching what the input
// field does on every change.
func Normalize(email string) string {
	email = strings.Join(strings.Fields(email), "")
	return strings.ToLower(strings.TrimSpace(email))
}

// Lookup validates the email locally, queries the store only when it passes,
// and maps every outcome to one user-facing message. The remote call happens
// for well-formed input only.
func (s *Service) Lookup(ctx context.Context, email string) string {
	email = Normalize(email)

	if email == "" {
		return msgPromptEmail
	}
	if !validator.IsEmailShape(email) {
		return msgInvalidEmail
	}

	result, err := s.store.StatusByEmail(ctx, email)
	if err != nil {
		s.log.Error("status lookup failed", zap.String("email", email), zap.Error(err))
		return msgLookupFailed
	}

	switch result {
	case domain.StatusSentinelEmpty:
		return msgEmptyInput
	case domain.StatusSentinelNotFound:
		return msgNotFound
	default:
		return msgStatusPrefix + result
	}
}
