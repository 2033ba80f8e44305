package picklist

import (
	"context"

	"memberreg/internal/domain"
)

type OptionsSource interface {
	GetOptions(ctx context.Context, field domain.PicklistField) ([]domain.PicklistOption, error)
}
