package domain

import "time"

type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "Pending"
	StatusApproved ApprovalStatus = "Approved"
	StatusRejected ApprovalStatus = "Rejected"
)

// Sentinels returned by the status-by-email query instead of a real status.
const (
	StatusSentinelEmpty    = "Empty"
	StatusSentinelNotFound = "Not_Found"
)

// Registration is a submitted membership application awaiting review.
type Registration struct {
	ID              string         `json:"id"`
	Salutation      string         `json:"salutation"`
	FirstName       string         `json:"first_name"`
	LastName        string         `json:"last_name"`
	Gender          string         `json:"gender"`
	Email           string         `json:"email" validate:"required,email"`
	ConfirmEmail    string         `json:"confirm_email"`
	MobileNumber    string         `json:"mobile_number"`
	AddressLine1    string         `json:"address_line1"`
	AddressLine2    string         `json:"address_line2,omitempty"`
	City            string         `json:"city"`
	State           string         `json:"state"`
	Country         string         `json:"country"`
	Zipcode         string         `json:"zipcode"`
	Occupation      string         `json:"occupation"`
	AnnualIncome    string         `json:"annual_income,omitempty"`
	ProofOfIdentity string         `json:"proof_of_identity"`
	ApprovalStatus  ApprovalStatus `json:"approval_status"`
	ReviewReason    string         `json:"review_reason,omitempty"`
	ReviewedAt      *time.Time     `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
