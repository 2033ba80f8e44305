package review

import (
	"fmt"

	"memberreg/internal/domain"
)

// RowAction is the closed set of per-row actions on the board. Dispatch is by
// switch so a new action cannot be added without handling it.
type RowAction string

const (
	ActionPreviewID   RowAction = "PreviewID"
	ActionViewDetails RowAction = "ViewDetails"
	ActionApprove     RowAction = "approved"
	ActionReject      RowAction = "rejected"
)

func ParseRowAction(s string) (RowAction, error) {
	switch RowAction(s) {
	case ActionPreviewID, ActionViewDetails, ActionApprove, ActionReject:
		return RowAction(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Modal identifies one of the four board dialogs.
type Modal string

const (
	ModalPreview Modal = "preview"
	ModalDetails Modal = "details"
	ModalApprove Modal = "approve"
	ModalReject  Modal = "reject"
)

func ParseModal(s string) (Modal, error) {
	switch Modal(s) {
	case ModalPreview, ModalDetails, ModalApprove, ModalReject:
		return Modal(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownModal, s)
}

// board is the in-memory review state: the cached snapshot of pending rows
// plus the transient selection and modal flags. The service's mutex guards it.
type board struct {
	snapshot []domain.PendingRegistrationRow
	loading  bool
	loadErr  string

	previewOpen bool
	detailsOpen bool
	approveOpen bool
	rejectOpen  bool

	previewFileID string
	selectedID    string
	approveReason string
	rejectReason  string
}

// removeRow drops the row with the given id from the snapshot. Row ids are
// unique within a snapshot, so at most one row goes.
func (b *board) removeRow(id string) {
	rows := b.snapshot[:0]
	for _, r := range b.snapshot {
		if r.ID != id {
			rows = append(rows, r)
		}
	}
	b.snapshot = rows
}

func (b *board) closeApproveModal() {
	b.approveOpen = false
	b.approveReason = ""
	b.selectedID = ""
}

func (b *board) closeRejectModal() {
	b.rejectOpen = false
	b.rejectReason = ""
	b.selectedID = ""
}
