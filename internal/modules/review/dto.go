package review

import "memberreg/internal/domain"

type RowActionRequest struct {
	Action string `json:"action" binding:"required"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

// BoardState is what the admin console renders from.
type BoardState struct {
	Records       []domain.PendingRegistrationRow `json:"records"`
	Loading       bool                            `json:"loading"`
	Error         string                          `json:"error,omitempty"`
	PreviewOpen   bool                            `json:"preview_open"`
	DetailsOpen   bool                            `json:"details_open"`
	ApproveOpen   bool                            `json:"approve_open"`
	RejectOpen    bool                            `json:"reject_open"`
	FileURL       string                          `json:"file_url,omitempty"`
	SelectedID    string                          `json:"selected_id,omitempty"`
	ApproveReason string                          `json:"approve_reason,omitempty"`
	RejectReason  string                          `json:"reject_reason,omitempty"`
}

type ApproveResponse struct {
	MemberID string `json:"member_id"`
}
