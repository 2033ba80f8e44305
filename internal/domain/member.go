package domain

import "time"

// Member is the permanent record a registration converts into on approval.
type Member struct {
	ID             string    `json:"id"`
	RegistrationID string    `json:"registration_id"`
	Salutation     string    `json:"salutation"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email" validate:"required,email"`
	MobileNumber   string    `json:"mobile_number"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
