package status

type LookupRequest struct {
	Email string `json:"email"`
}

type LookupResponse struct {
	Email         string `json:"email"`
	StatusMessage string `json:"status_message"`
}
