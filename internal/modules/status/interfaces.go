package status

import "context"

type StatusStore interface {
	StatusByEmail(ctx context.Context, email string) (string, error)
}
