package repository

import "gorm.io/gorm"

// AutoMigrate creates the service's small table set.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&registrationModel{},
		&idProofFileModel{},
		&memberModel{},
		&picklistOptionModel{},
	)
}
