package domain

import "time"

// IDProofFile is the identity document attached to a registration, stored as a
// blob row so the DB stays the single source of truth for pending applications.
type IDProofFile struct {
	ID             string    `json:"id"`
	RegistrationID string    `json:"registration_id"`
	FileName       string    `json:"file_name"`
	ContentType    string    `json:"content_type"`
	Data           []byte    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
