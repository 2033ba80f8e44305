package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"memberreg/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegistrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

type registrationModel struct {
	ID              string     `gorm:"column:id;primaryKey"`
	Salutation      string     `gorm:"column:salutation"`
	FirstName       string     `gorm:"column:first_name"`
	LastName        string     `gorm:"column:last_name"`
	Gender          string     `gorm:"column:gender"`
	Email           string     `gorm:"column:email;index"`
	ConfirmEmail    string     `gorm:"column:confirm_email"`
	MobileNumber    string     `gorm:"column:mobile_number;index"`
	AddressLine1    string     `gorm:"column:address_line1"`
	AddressLine2    *string    `gorm:"column:address_line2"`
	City            string     `gorm:"column:city"`
	State           string     `gorm:"column:state"`
	Country         string     `gorm:"column:country"`
	Zipcode         string     `gorm:"column:zipcode"`
	Occupation      string     `gorm:"column:occupation"`
	AnnualIncome    *string    `gorm:"column:annual_income"`
	ProofOfIdentity string     `gorm:"column:proof_of_identity"`
	ApprovalStatus  string     `gorm:"column:approval_status;index"`
	ReviewReason    *string    `gorm:"column:review_reason"`
	ReviewedAt      *time.Time `gorm:"column:reviewed_at"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (registrationModel) TableName() string { return "registrations" }

func toDomainRegistration(m registrationModel) *domain.Registration {
	var addr2, income, reason string
	if m.AddressLine2 != nil {
		addr2 = *m.AddressLine2
	}
	if m.AnnualIncome != nil {
		income = *m.AnnualIncome
	}
	if m.ReviewReason != nil {
		reason = *m.ReviewReason
	}

	return &domain.Registration{
		ID:              m.ID,
		Salutation:      m.Salutation,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Gender:          m.Gender,
		Email:           m.Email,
		ConfirmEmail:    m.ConfirmEmail,
		MobileNumber:    m.MobileNumber,
		AddressLine1:    m.AddressLine1,
		AddressLine2:    addr2,
		City:            m.City,
		State:           m.State,
		Country:         m.Country,
		Zipcode:         m.Zipcode,
		Occupation:      m.Occupation,
		AnnualIncome:    income,
		ProofOfIdentity: m.ProofOfIdentity,
		ApprovalStatus:  domain.ApprovalStatus(m.ApprovalStatus),
		ReviewReason:    reason,
		ReviewedAt:      m.ReviewedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toRegistrationModel(reg *domain.Registration) registrationModel {
	email := strings.TrimSpace(strings.ToLower(reg.Email))

	var addr2, income, reason *string
	if reg.AddressLine2 != "" {
		v := reg.AddressLine2
		addr2 = &v
	}
	if reg.AnnualIncome != "" {
		v := reg.AnnualIncome
		income = &v
	}
	if reg.ReviewReason != "" {
		v := reg.ReviewReason
		reason = &v
	}

	return registrationModel{
		ID:              reg.ID,
		Salutation:      reg.Salutation,
		FirstName:       reg.FirstName,
		LastName:        reg.LastName,
		Gender:          reg.Gender,
		Email:           email,
		ConfirmEmail:    reg.ConfirmEmail,
		MobileNumber:    reg.MobileNumber,
		AddressLine1:    reg.AddressLine1,
		AddressLine2:    addr2,
		City:            reg.City,
		State:           reg.State,
		Country:         reg.Country,
		Zipcode:         reg.Zipcode,
		Occupation:      reg.Occupation,
		AnnualIncome:    income,
		ProofOfIdentity: reg.ProofOfIdentity,
		ApprovalStatus:  string(reg.ApprovalStatus),
		ReviewReason:    reason,
		ReviewedAt:      reg.ReviewedAt,
		CreatedAt:       reg.CreatedAt,
		UpdatedAt:       reg.UpdatedAt,
	}
}

// CreateWithFile persists the registration and its identity document in one
// transaction, so a half-written application never becomes visible to the board.
func (r *RegistrationRepository) CreateWithFile(ctx context.Context, reg *domain.Registration, file *domain.IDProofFile) error {
	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	now := time.Now()
	reg.CreatedAt = now
	reg.UpdatedAt = now

	m := toRegistrationModel(reg)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		if file == nil {
			return nil
		}
		if file.ID == "" {
			file.ID = uuid.NewString()
		}
		file.RegistrationID = reg.ID
		file.CreatedAt = now

		fm := toIDProofFileModel(file)
		return tx.Create(&fm).Error
	})
}

// ListPending returns the board snapshot, newest first.
func (r *RegistrationRepository) ListPending(ctx context.Context) ([]domain.PendingRegistrationRow, error) {
	var models []registrationModel
	if err := r.db.WithContext(ctx).
		Where("approval_status = ?", string(domain.StatusPending)).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	rows := make([]domain.PendingRegistrationRow, 0, len(models))
	for _, m := range models {
		rows = append(rows, domain.PendingRegistrationRow{
			ID:             m.ID,
			FirstName:      m.FirstName,
			ApprovalStatus: m.ApprovalStatus,
			Email:          m.Email,
			MobileNumber:   m.MobileNumber,
			CreatedAt:      m.CreatedAt,
		})
	}
	return rows, nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	var m registrationModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return toDomainRegistration(m), nil
}

func (r *RegistrationRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&registrationModel{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RegistrationRepository) MobileExists(ctx context.Context, mobile string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&registrationModel{}).
		Where("mobile_number = ?", strings.TrimSpace(mobile)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateStatus records the review decision and its reason.
func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id string, status domain.ApprovalStatus, reason string) error {
	now := time.Now()
	tx := r.db.WithContext(ctx).
		Model(&registrationModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"approval_status": string(status),
			"review_reason":   reason,
			"reviewed_at":     now,
			"updated_at":      now,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrRegistrationNotFound
	}
	return nil
}

// StatusByEmail resolves an applicant's approval status, using sentinel strings
// for the empty-input and no-match cases.
func (r *RegistrationRepository) StatusByEmail(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return domain.StatusSentinelEmpty, nil
	}

	var m registrationModel
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.StatusSentinelNotFound, nil
	}
	if err != nil {
		return "", err
	}
	return m.ApprovalStatus, nil
}
