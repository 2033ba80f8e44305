package registration

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	"memberreg/internal/domain"
	"memberreg/internal/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxFileSize = 5 * 1024 * 1024

var (
	emailRegex  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobileRegex = regexp.MustCompile(`^[0-9]{10}$`)
	nonDigit    = regexp.MustCompile(`\D`)
)

// allowedEmailDomains is the fixed allow-list for applicant emails.
var allowedEmailDomains = []string{"gmail.com", "yahoo.com", "outlook.com", "hotmail.com"}

// Service owns the registration-form sessions and all validation and
// submission logic for them.
type Service struct {
	store    RegistrationStore
	notifier Notifier
	log      *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewService(store RegistrationStore, notifier Notifier, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:    store,
		notifier: notifier,
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// StartSession creates an empty draft and returns its id.
func (s *Service) StartSession() string {
	sess := newSession(uuid.NewString())

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess.ID
}

func (s *Service) session(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// EndSession drops the session entirely. Called when the applicant leaves.
func (s *Service) EndSession(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// SetField stores a normalized field value and clears any active error for
// the field. Email and mobile edits also invalidate in-flight uniqueness
// checks by bumping the field's generation.
func (s *Service) SetField(sessionID, field, value string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	target := sess.draft.field(field)
	if target == nil {
		return ErrUnknownField
	}

	value = strings.TrimSpace(value)
	switch field {
	case FieldEmail:
		value = normalizeEmail(value)
	case FieldConfirmEmail:
		// The confirm field is only lowercased; it must reproduce the email
		// verbatim, internal whitespace included.
		value = strings.ToLower(value)
	}
	*target = value
	sess.errors.Clear(field)

	switch field {
	case FieldEmail:
		sess.emailValidity = ValidityValid
		sess.emailGen++
	case FieldMobileNumber:
		sess.mobileValidity = ValidityValid
		sess.mobileGen++
	case FieldZipcode:
		s.validateZipcode(sess, value)
	}

	return nil
}

func normalizeEmail(value string) string {
	value = strings.Join(strings.Fields(value), "")
	return strings.ToLower(strings.TrimSpace(value))
}

// validateZipcode runs synchronously on every zipcode change. The length
// check runs after the digits check and wins when both fail. Caller holds
// the session lock.
func (s *Service) validateZipcode(sess *Session, zip string) {
	if nonDigit.MatchString(zip) {
		sess.errors.Set(FieldZipcode, msgZipcodeDigitsOnly)
	}
	if len(zip) > 6 {
		sess.errors.Set(FieldZipcode, msgZipcodeTooLong)
		return
	}
}

// ValidateEmail runs when the applicant leaves the email field: shape check,
// domain allow-list, then the uniqueness query. The query result is applied
// only if no newer edit superseded it.
func (s *Service) ValidateEmail(ctx context.Context, sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	email := sess.draft.Email

	if !emailRegex.MatchString(email) {
		sess.errors.Set(FieldEmail, msgEmailInvalidFormat)
		sess.emailValidity = ValidityFormatInvalid
		sess.mu.Unlock()
		return nil
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 || !isAllowedDomain(parts[1]) {
		sess.errors.Set(FieldEmail, msgEmailDomainBlocked)
		sess.emailValidity = ValidityDomainInvalid
		sess.mu.Unlock()
		return nil
	}

	sess.emailValidity = ValidityPendingCheck
	gen := sess.emailGen
	sess.mu.Unlock()

	exists, checkErr := s.store.EmailExists(ctx, email)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if gen != sess.emailGen {
		// A newer edit superseded this check; discard the result.
		return nil
	}
	if checkErr != nil {
		// Fail open: log and leave the field as edited (documented limitation).
		s.log.Error("email uniqueness check failed", zap.Error(checkErr))
		sess.emailValidity = ValidityValid
		return nil
	}
	if exists {
		sess.errors.Set(FieldEmail, msgEmailDuplicate)
		sess.emailValidity = ValidityDuplicate
	} else {
		sess.errors.Clear(FieldEmail)
		sess.emailValidity = ValidityValid
	}
	return nil
}

func isAllowedDomain(domainPart string) bool {
	domainPart = strings.ToLower(domainPart)
	for _, d := range allowedEmailDomains {
		if d == domainPart {
			return true
		}
	}
	return false
}

// ValidateConfirmEmail requires an exact match with the normalized email.
func (s *Service) ValidateConfirmEmail(sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.draft.ConfirmEmail != sess.draft.Email {
		sess.errors.Set(FieldConfirmEmail, msgConfirmMismatch)
	} else {
		sess.errors.Clear(FieldConfirmEmail)
	}
	return nil
}

// ValidateMobile checks the 10-digit format and then uniqueness, with the
// same generation guard as the email check.
func (s *Service) ValidateMobile(ctx context.Context, sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	mobile := sess.draft.MobileNumber

	if !mobileRegex.MatchString(mobile) {
		sess.errors.Set(FieldMobileNumber, msgMobileInvalid)
		sess.mobileValidity = ValidityFormatInvalid
		sess.mu.Unlock()
		return nil
	}

	sess.mobileValidity = ValidityPendingCheck
	gen := sess.mobileGen
	sess.mu.Unlock()

	exists, checkErr := s.store.MobileExists(ctx, mobile)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if gen != sess.mobileGen {
		return nil
	}
	if checkErr != nil {
		s.log.Error("mobile uniqueness check failed", zap.Error(checkErr))
		sess.mobileValidity = ValidityValid
		return nil
	}
	if exists {
		sess.errors.Set(FieldMobileNumber, msgMobileDuplicate)
		sess.mobileValidity = ValidityDuplicate
	} else {
		sess.errors.Clear(FieldMobileNumber)
		sess.mobileValidity = ValidityValid
	}
	return nil
}

// AttachFile accepts the single identity document. Files over 5 MiB are
// refused up front with a toast and no state change. The read and base64
// encode happen in the background; the submit gate blocks while they run.
func (s *Service) AttachFile(sessionID, fileName, contentType string, size int64, r io.Reader) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}

	if size > maxFileSize {
		s.notifier.Notify("Error", "File cannot exceed 5MB", notification.SeverityError)
		return ErrFileTooLarge
	}

	sess.mu.Lock()
	sess.fileGen++
	gen := sess.fileGen
	sess.attachment = nil
	sess.fileLoading = true
	sess.mu.Unlock()

	go s.readFile(sess, gen, fileName, contentType, r)

	return nil
}

func (s *Service) readFile(sess *Session, gen uint64, fileName, contentType string, r io.Reader) {
	data, err := io.ReadAll(io.LimitReader(r, maxFileSize+1))

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if gen != sess.fileGen {
		// Superseded by a newer attach or a remove; drop the result.
		return
	}
	sess.fileLoading = false

	if err != nil {
		s.log.Error("file read failed", zap.String("file", fileName), zap.Error(err))
		s.notifier.Notify("Error", "Could not read the uploaded file", notification.SeverityError)
		return
	}
	if int64(len(data)) > maxFileSize {
		s.notifier.Notify("Error", "File cannot exceed 5MB", notification.SeverityError)
		return
	}

	sess.attachment = &Attachment{
		FileName:    fileName,
		Base64Data:  base64.StdEncoding.EncodeToString(data),
		ContentType: contentType,
	}
}

// RemoveFile clears the attachment and invalidates any read still in flight.
func (s *Service) RemoveFile(sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.attachment = nil
	sess.fileLoading = false
	sess.fileGen++
	return nil
}

// Submittable reports whether the submit gate currently allows submission.
func (s *Service) Submittable(sessionID string) (bool, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return false, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return !sess.disableSubmit(), nil
}

// Submit runs the gate, persists the registration with status Pending, and
// resets the session on success. On failure the draft stays intact so the
// applicant can retry.
func (s *Service) Submit(ctx context.Context, sessionID string) (string, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return "", err
	}

	sess.mu.Lock()
	if sess.disableSubmit() {
		sess.mu.Unlock()
		s.notifier.Notify("Error", "Fill all fields correctly and upload ID Proof", notification.SeverityError)
		return "", ErrNotSubmittable
	}
	draft := sess.draft
	attachment := *sess.attachment
	sess.mu.Unlock()

	data, err := base64.StdEncoding.DecodeString(attachment.Base64Data)
	if err != nil {
		s.notifier.Notify("Error", "Error saving registration", notification.SeverityError)
		return "", fmt.Errorf("decode attachment: %w", err)
	}

	reg := &domain.Registration{
		Salutation:      draft.Salutation,
		FirstName:       draft.FirstName,
		LastName:        draft.LastName,
		Gender:          draft.Gender,
		Email:           draft.Email,
		ConfirmEmail:    draft.ConfirmEmail,
		MobileNumber:    draft.MobileNumber,
		AddressLine1:    draft.AddressLine1,
		AddressLine2:    draft.AddressLine2,
		City:            draft.City,
		State:           draft.State,
		Country:         draft.Country,
		Zipcode:         draft.Zipcode,
		Occupation:      draft.Occupation,
		AnnualIncome:    draft.AnnualIncome,
		ProofOfIdentity: draft.ProofOfIdentity,
		ApprovalStatus:  domain.StatusPending,
	}
	file := &domain.IDProofFile{
		FileName:    attachment.FileName,
		ContentType: attachment.ContentType,
		Data:        data,
	}

	if err := s.store.CreateWithFile(ctx, reg, file); err != nil {
		s.notifier.Notify("Error", "Error saving registration", notification.SeverityError)
		return "", fmt.Errorf("create registration: %w", err)
	}

	s.notifier.Notify("Success", "Registration Successful", notification.SeveritySuccess)

	sess.mu.Lock()
	sess.reset()
	sess.mu.Unlock()

	return reg.ID, nil
}

// Reset returns the draft, errors, validity and attachment to their initial
// empty state. Resetting twice yields the same state both times.
func (s *Service) Reset(sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.reset()
	return nil
}

// State snapshots the session for the handler layer.
func (s *Service) State(sessionID string) (*SessionState, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	errs := make(map[string]string, len(sess.errors))
	for k, v := range sess.errors {
		errs[k] = v
	}

	state := &SessionState{
		SessionID:      sess.ID,
		Draft:          sess.draft,
		Errors:         errs,
		EmailValidity:  sess.emailValidity,
		MobileValidity: sess.mobileValidity,
		FileLoading:    sess.fileLoading,
		DisableSubmit:  sess.disableSubmit(),
	}
	if sess.attachment != nil {
		state.FileName = sess.attachment.FileName
	}
	return state, nil
}
