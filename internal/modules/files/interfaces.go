package files

import (
	"context"

	"memberreg/internal/domain"
)

type FileStore interface {
	GetByID(ctx context.Context, id string) (*domain.IDProofFile, error)
}
