package repository

import (
	"context"

	"memberreg/internal/domain"

	"gorm.io/gorm"
)

type PicklistRepository struct {
	db *gorm.DB
}

func NewPicklistRepository(db *gorm.DB) *PicklistRepository {
	return &PicklistRepository{db: db}
}

type picklistOptionModel struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Field    string `gorm:"column:field;index"`
	Value    string `gorm:"column:value"`
	Label    string `gorm:"column:label"`
	Position int    `gorm:"column:position"`
}

func (picklistOptionModel) TableName() string { return "picklist_options" }

func (r *PicklistRepository) GetOptions(ctx context.Context, field domain.PicklistField) ([]domain.PicklistOption, error) {
	var models []picklistOptionModel
	if err := r.db.WithContext(ctx).
		Where("field = ?", string(field)).
		Order("position ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	options := make([]domain.PicklistOption, 0, len(models))
	for _, m := range models {
		options = append(options, domain.PicklistOption{Value: m.Value, Label: m.Label})
	}
	return options, nil
}

// ReplaceOptions rewrites the option set for one field. Used by the seeder.
func (r *PicklistRepository) ReplaceOptions(ctx context.Context, field domain.PicklistField, options []domain.PicklistOption) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("field = ?", string(field)).
			Delete(&picklistOptionModel{}).Error; err != nil {
			return err
		}
		for i, opt := range options {
			m := picklistOptionModel{
				Field:    string(field),
				Value:    opt.Value,
				Label:    opt.Label,
				Position: i,
			}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
