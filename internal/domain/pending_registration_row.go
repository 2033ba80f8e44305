package domain

import "time"

// PendingRegistrationRow is the row DTO the review board lists. Kept separate from
// Registration so board queries stay narrow (no file payload, no address block).
type PendingRegistrationRow struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	ApprovalStatus string    `json:"approval_status"`
	Email          string    `json:"email"`
	MobileNumber   string    `json:"mobile_number"`
	CreatedAt      time.Time `json:"created_at"`
}
