package registration

type SetFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// SessionState is what the form client renders from.
type SessionState struct {
	SessionID      string            `json:"session_id"`
	Draft          Draft             `json:"draft"`
	Errors         map[string]string `json:"errors"`
	EmailValidity  FieldValidity     `json:"email_validity"`
	MobileValidity FieldValidity     `json:"mobile_validity"`
	FileName       string            `json:"file_name,omitempty"`
	FileLoading    bool              `json:"file_loading"`
	DisableSubmit  bool              `json:"disable_submit"`
}

type SubmitResponse struct {
	RegistrationID string `json:"registration_id"`
}
