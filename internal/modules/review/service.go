package review

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"memberreg/internal/domain"
	"memberreg/internal/notification"

	"go.uber.org/zap"
)

// fileURLTemplate is the fixed download endpoint the preview modal points at,
// parameterized by the stored file id.
const fileURLTemplate = "/api/v1/files/renditionDownload?rendition=ORIGINAL_Jpg&versionId=%s"

// Service drives the admin review board: the pending-list snapshot, the four
// modal dialogs and the approve/reject transitions. One board per process.
type Service struct {
	store    RegistrationStore
	members  MemberConverter
	files    FileStore
	notifier Notifier
	hub      RefreshBroadcaster
	log      *zap.Logger

	mu    sync.Mutex
	board board
}

func NewService(
	store RegistrationStore,
	members MemberConverter,
	files FileStore,
	notifier Notifier,
	hub RefreshBroadcaster,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:    store,
		members:  members,
		files:    files,
		notifier: notifier,
		hub:      hub,
		log:      log,
		board:    board{loading: true},
	}
}

// Refresh re-fetches the pending list. The fetched rows replace the snapshot
// wholesale, which makes any stale optimistic removal self-correcting.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.board.loading = true
	s.mu.Unlock()

	rows, err := s.store.ListPending(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.board.loading = false
	if err != nil {
		s.board.loadErr = err.Error()
		return fmt.Errorf("list pending registrations: %w", err)
	}

	s.board.snapshot = rows
	s.board.loadErr = ""

	if s.hub != nil {
		s.hub.BroadcastRefresh(rows)
	}
	return nil
}

// HandleRowAction dispatches one of the four per-row actions.
func (s *Service) HandleRowAction(ctx context.Context, action RowAction, registrationID string) error {
	switch action {
	case ActionPreviewID:
		return s.openPreview(ctx, registrationID)

	case ActionViewDetails:
		s.mu.Lock()
		s.board.selectedID = registrationID
		s.board.detailsOpen = true
		s.mu.Unlock()
		return nil

	case ActionApprove:
		s.mu.Lock()
		s.board.selectedID = registrationID
		s.board.approveOpen = true
		s.mu.Unlock()
		return nil

	case ActionReject:
		s.mu.Lock()
		s.board.selectedID = registrationID
		s.board.rejectOpen = true
		s.mu.Unlock()
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, action)
}

// openPreview resolves the row's file id and opens the preview modal. On
// lookup failure the modal stays closed and the admin gets a toast.
func (s *Service) openPreview(ctx context.Context, registrationID string) error {
	fileID, err := s.files.GetIDByRegistration(ctx, registrationID)
	if err != nil {
		s.notifier.Notify("Error", "Unable to load ID proof", notification.SeverityError)
		return fmt.Errorf("load ID proof for %s: %w", registrationID, err)
	}

	s.mu.Lock()
	s.board.previewFileID = fileID
	s.board.previewOpen = true
	s.mu.Unlock()
	return nil
}

// Details loads the full registration for the details modal.
func (s *Service) Details(ctx context.Context, registrationID string) (*domain.Registration, error) {
	return s.store.GetByID(ctx, registrationID)
}

// SetApproveReason captures the approve modal's free text. The approve and
// reject reasons are independent fields: typing in one never changes the other.
func (s *Service) SetApproveReason(text string) {
	s.mu.Lock()
	s.board.approveReason = text
	s.mu.Unlock()
}

func (s *Service) SetRejectReason(text string) {
	s.mu.Lock()
	s.board.rejectReason = text
	s.mu.Unlock()
}

// ConfirmApprove converts the selected registration into a member, then
// records the Approved status. Only when both remote calls succeed does the
// row leave the local snapshot; a failure leaves the board untouched so the
// admin can retry. The approve reason is carried through but not required.
func (s *Service) ConfirmApprove(ctx context.Context) (string, error) {
	s.mu.Lock()
	registrationID := s.board.selectedID
	reason := s.board.approveReason
	s.mu.Unlock()

	if registrationID == "" {
		return "", ErrNoSelection
	}

	memberID, err := s.members.ConvertFromRegistration(ctx, registrationID)
	if err != nil {
		s.notifier.Notify("Error", err.Error(), notification.SeverityError)
		return "", fmt.Errorf("convert registration %s: %w", registrationID, err)
	}
	s.log.Info("registration converted",
		zap.String("registration_id", registrationID),
		zap.String("member_id", memberID),
	)

	if err := s.store.UpdateStatus(ctx, registrationID, domain.StatusApproved, reason); err != nil {
		s.notifier.Notify("Error", err.Error(), notification.SeverityError)
		return "", fmt.Errorf("update status for %s: %w", registrationID, err)
	}

	s.notifier.Notify("Success", "Record Approved & Member Created", notification.SeveritySuccess)

	s.mu.Lock()
	s.board.removeRow(registrationID)
	s.mu.Unlock()

	if err := s.Refresh(ctx); err != nil {
		s.log.Warn("post-approve refresh failed", zap.Error(err))
	}

	s.mu.Lock()
	s.board.closeApproveModal()
	s.mu.Unlock()

	return memberID, nil
}

// ConfirmReject records the Rejected status with a mandatory reason. An empty
// reason aborts before any remote call and keeps the modal open.
func (s *Service) ConfirmReject(ctx context.Context) error {
	s.mu.Lock()
	registrationID := s.board.selectedID
	reason := s.board.rejectReason
	s.mu.Unlock()

	if strings.TrimSpace(reason) == "" {
		s.notifier.Notify("Error", "Rejection reason is required", notification.SeverityError)
		return ErrReasonRequired
	}
	if registrationID == "" {
		return ErrNoSelection
	}

	if err := s.store.UpdateStatus(ctx, registrationID, domain.StatusRejected, reason); err != nil {
		s.notifier.Notify("Error", err.Error(), notification.SeverityError)
		return fmt.Errorf("update status for %s: %w", registrationID, err)
	}

	s.notifier.Notify("Success", "Community Member Rejected", notification.SeveritySuccess)

	s.mu.Lock()
	s.board.removeRow(registrationID)
	s.mu.Unlock()

	if err := s.Refresh(ctx); err != nil {
		s.log.Warn("post-reject refresh failed", zap.Error(err))
	}

	s.mu.Lock()
	s.board.closeRejectModal()
	s.mu.Unlock()

	return nil
}

// CloseModal clears the modal's open flag. Closing approve or reject also
// clears the captured reason and the current selection.
func (s *Service) CloseModal(modal Modal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch modal {
	case ModalPreview:
		// Only the open flag; the resolved file id survives a reopen.
		s.board.previewOpen = false
	case ModalDetails:
		s.board.detailsOpen = false
	case ModalApprove:
		s.board.closeApproveModal()
	case ModalReject:
		s.board.closeRejectModal()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownModal, modal)
	}
	return nil
}

// State snapshots the board for the handler layer.
func (s *Service) State() *BoardState {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]domain.PendingRegistrationRow, len(s.board.snapshot))
	copy(rows, s.board.snapshot)

	state := &BoardState{
		Records:       rows,
		Loading:       s.board.loading,
		Error:         s.board.loadErr,
		PreviewOpen:   s.board.previewOpen,
		DetailsOpen:   s.board.detailsOpen,
		ApproveOpen:   s.board.approveOpen,
		RejectOpen:    s.board.rejectOpen,
		SelectedID:    s.board.selectedID,
		ApproveReason: s.board.approveReason,
		RejectReason:  s.board.rejectReason,
	}
	if s.board.previewFileID != "" {
		state.FileURL = fmt.Sprintf(fileURLTemplate, s.board.previewFileID)
	}
	return state
}
