package repository

import (
	"context"
	"errors"
	"time"

	"memberreg/internal/domain"

	"gorm.io/gorm"
)

type FileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

type idProofFileModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	RegistrationID string    `gorm:"column:registration_id;index"`
	FileName       string    `gorm:"column:file_name"`
	ContentType    string    `gorm:"column:content_type"`
	Data           []byte    `gorm:"column:data"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (idProofFileModel) TableName() string { return "id_proof_files" }

func toIDProofFileModel(f *domain.IDProofFile) idProofFileModel {
	return idProofFileModel{
		ID:             f.ID,
		RegistrationID: f.RegistrationID,
		FileName:       f.FileName,
		ContentType:    f.ContentType,
		Data:           f.Data,
		CreatedAt:      f.CreatedAt,
	}
}

func toDomainIDProofFile(m idProofFileModel) *domain.IDProofFile {
	return &domain.IDProofFile{
		ID:             m.ID,
		RegistrationID: m.RegistrationID,
		FileName:       m.FileName,
		ContentType:    m.ContentType,
		Data:           m.Data,
		CreatedAt:      m.CreatedAt,
	}
}

// GetIDByRegistration returns the file identifier for a registration's
// identity document, without loading the blob.
func (r *FileRepository) GetIDByRegistration(ctx context.Context, registrationID string) (string, error) {
	var m idProofFileModel
	err := r.db.WithContext(ctx).
		Select("id").
		Where("registration_id = ?", registrationID).
		Order("created_at DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrFileNotFound
	}
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

func (r *FileRepository) GetByID(ctx context.Context, id string) (*domain.IDProofFile, error) {
	var m idProofFileModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	return toDomainIDProofFile(m), nil
}
