package repository

import (
	"context"
	"errors"
	"time"

	"memberreg/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

type memberModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	RegistrationID string    `gorm:"column:registration_id;uniqueIndex"`
	Salutation     string    `gorm:"column:salutation"`
	FirstName      string    `gorm:"column:first_name"`
	LastName       string    `gorm:"column:last_name"`
	Email          string    `gorm:"column:email;index"`
	MobileNumber   string    `gorm:"column:mobile_number"`
	Status         string    `gorm:"column:status"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (memberModel) TableName() string { return "members" }

func toDomainMember(m memberModel) *domain.Member {
	return &domain.Member{
		ID:             m.ID,
		RegistrationID: m.RegistrationID,
		Salutation:     m.Salutation,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Email:          m.Email,
		MobileNumber:   m.MobileNumber,
		Status:         m.Status,
		CreatedAt:      m.CreatedAt,
	}
}

// ConvertFromRegistration creates the permanent member record for an approved
// registration and returns the new member id. A registration converts at most
// once; the unique index on registration_id backs that up.
func (r *MemberRepository) ConvertFromRegistration(ctx context.Context, registrationID string) (string, error) {
	memberID := uuid.NewString()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reg registrationModel
		if err := tx.First(&reg, "id = ?", registrationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&memberModel{}).
			Where("registration_id = ?", registrationID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyConverted
		}

		m := memberModel{
			ID:             memberID,
			RegistrationID: reg.ID,
			Salutation:     reg.Salutation,
			FirstName:      reg.FirstName,
			LastName:       reg.LastName,
			Email:          reg.Email,
			MobileNumber:   reg.MobileNumber,
			Status:         "Active",
			CreatedAt:      time.Now(),
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return "", err
	}
	return memberID, nil
}

func (r *MemberRepository) GetByRegistrationID(ctx context.Context, registrationID string) (*domain.Member, error) {
	var m memberModel
	err := r.db.WithContext(ctx).First(&m, "registration_id = ?", registrationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return toDomainMember(m), nil
}
