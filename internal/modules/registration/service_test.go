package registration

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"memberreg/internal/domain"
	"memberreg/internal/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu sync.Mutex

	emailExists bool
	emailErr    error
	emailCalls  int
	emailBlock  chan struct{} // when set, EmailExists waits for a signal

	mobileExists bool
	mobileErr    error
	mobileCalls  int

	createErr   error
	createdReg  *domain.Registration
	createdFile *domain.IDProofFile
}

func (f *fakeStore) EmailExists(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	f.emailCalls++
	block := f.emailBlock
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return f.emailExists, f.emailErr
}

func (f *fakeStore) MobileExists(ctx context.Context, mobile string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mobileCalls++
	return f.mobileExists, f.mobileErr
}

func (f *fakeStore) CreateWithFile(ctx context.Context, reg *domain.Registration, file *domain.IDProofFile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	reg.ID = "R1"
	f.createdReg = reg
	f.createdFile = file
	return nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	toasts []notification.Toast
}

func (f *fakeNotifier) Notify(title, message string, severity notification.Severity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toasts = append(f.toasts, notification.Toast{Title: title, Message: message, Severity: severity})
}

func (f *fakeNotifier) last() *notification.Toast {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.toasts) == 0 {
		return nil
	}
	t := f.toasts[len(f.toasts)-1]
	return &t
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.toasts)
}

func newTestService(store *fakeStore) (*Service, *fakeNotifier, string) {
	notifier := &fakeNotifier{}
	svc := NewService(store, notifier, nil)
	return svc, notifier, svc.StartSession()
}

func mustState(t *testing.T, svc *Service, id string) *SessionState {
	t.Helper()
	state, err := svc.State(id)
	require.NoError(t, err)
	return state
}

// --- field change handling ---

func TestSetField_NormalizesAndClearsError(t *testing.T) {
	svc, _, id := newTestService(&fakeStore{})

	require.NoError(t, svc.SetField(id, FieldFirstName, "  Ravi  "))
	assert.Equal(t, "Ravi", mustState(t, svc, id).Draft.FirstName)

	require.NoError(t, svc.SetField(id, FieldEmail, " Ravi @ Gmail.COM "))
	assert.Equal(t, "ravi@gmail.com", mustState(t, svc, id).Draft.Email)
}

func TestSetField_ConfirmEmailKeepsInternalWhitespace(t *testing.T) {
	svc, _, id := newTestService(&fakeStore{})

	require.NoError(t, svc.SetField(id, FieldEmail, "Ravi Kumar@Gmail.com"))
	require.NoError(t, svc.SetField(id, FieldConfirmEmail, " Ravi Kumar@Gmail.com "))

	state := mustState(t, svc, id)
	assert.Equal(t, "ravikumar@gmail.com", state.Draft.Email)
	assert.Equal(t, "ravi kumar@gmail.com", state.Draft.ConfirmEmail)

	// The un-stripped confirm value therefore fails the exact-match check.
	require.NoError(t, svc.ValidateConfirmEmail(id))
	assert.Equal(t, "Confirm Email does not match", mustState(t, svc, id).Errors[FieldConfirmEmail])
}

func TestSetField_UnknownField(t *testing.T) {
	svc, _, id := newTestService(&fakeStore{})
	assert.ErrorIs(t, svc.SetField(id, "nope", "x"), ErrUnknownField)
}

func TestSetField_SessionNotFound(t *testing.T) {
	svc, _, _ := newTestService(&fakeStore{})
	assert.ErrorIs(t, svc.SetField("missing", FieldCity, "x"), ErrSessionNotFound)
}

// --- zipcode ---

func TestZipcode_Validation(t *testing.T) {
	cases := []struct {
		name    string
		zip     string
		wantErr string
	}{
		{"letters mixed in", "123abc", "Zipcode must be numbers only"},
		{"seven digits", "1234567", "Zipcode cannot exceed 6 digits"},
		{"six digits", "123456", ""},
		{"empty", "", ""},
		{"short", "12", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, id := newTestService(&fakeStore{})
			require.NoError(t, svc.SetField(id, FieldZipcode, tc.zip))
			assert.Equal(t, tc.wantErr, mustState(t, svc, id).Errors[FieldZipcode])
		})
	}
}

func TestZipcode_LengthErrorWinsOverDigits(t *testing.T) {
	svc, _, id := newTestService(&fakeStore{})
	require.NoError(t, svc.SetField(id, FieldZipcode, "12345abcd"))
	assert.Equal(t, "Zipcode cannot exceed 6 digits", mustState(t, svc, id).Errors[FieldZipcode])
}

func TestZipcode_ErrorClearedOnNextEdit(t *testing.T) {
	svc, _, id := newTestService(&fakeStore{})
	require.NoError(t, svc.SetField(id, FieldZipcode, "123abc"))
	require.NoError(t, svc.SetField(id, FieldZipcode, "123456"))
	assert.Empty(t, mustState(t, svc, id).Errors[FieldZipcode])
}

// --- email ---

func TestValidateEmail_FormatError(t *testing.T) {
	store := &fakeStore{}
	svc, _, id := newTestService(store)

	require.NoError(t, svc.SetField(id, FieldEmail, "a@b"))
	require.NoError(t, svc.ValidateEmail(context.Background(), id))

	state := mustState(t, svc, id)
	assert.Equal(t, "Invalid email format", state.Errors[FieldEmail])
	assert.Equal(t, ValidityFormatInvalid, state.EmailValidity)
	assert.Zero(t, store.emailCalls, "format failure must not reach the store")
}

func TestValidateEmail_DomainNotAllowed(t *testing.T) {
	store := &fakeStore{}
	svc, _, id := newTestService(store)

	require.NoError(t, svc.SetField(id, FieldEmail, "user@unknownhost.com"))
	require.NoError(t, svc.ValidateEmail(context.Background(), id))

	state := mustState(t, svc, id)
	assert.Equal(t, "Email domain not allowed", state.Errors[FieldEmail])
	assert.Equal(t, ValidityDomainInvalid, state.EmailValidity)
	assert.Zero(t, store.emailCalls)
}

func TestValidateEmail_Duplicate(t *testing.T) {
	store := &fakeStore{emailExists: true}
	svc, _, id := newTestService(store)

	require.NoError(t, svc.SetField(id, FieldEmail, "user@gmail.com"))
	require.NoError(t, svc.ValidateEmail(context.Background(), id))

	state := mustState(t, svc, id)
	assert.Equal(t, "Email already registered", state.Errors[FieldEmail])
	assert.Equal(t, ValidityDuplicate, state.EmailValidity)
}

func TestValidateEmail_UniqueClears(t *testing.T) {
	store := &fakeStore{emailExists: false}
	svc, _, id := newTestService(store)

	require.NoError(t, svc.SetField(id, FieldEmail, "user@gmail.com"))
	require.NoError(t, svc.ValidateEmail(context.Background(), id))

	state := mustState(t, svc, id)
	assert.Empty(t, state.Errors[FieldEmail])
	assert.Equal(t, ValidityValid, state.EmailValidity)
}

func TestValidateEmail_StoreErrorFailsOpen(t *testing.T) {
	store := &fakeStore{emailErr: errors.New("store down")}
	svc, _, id := newTestService(store)

	require.NoError(t, svc.SetField(id, FieldEmail, "user@gmail.com"))
	require.NoError(t, svc.ValidateEmail(context.Background(), id))

	state := mustState(t, svc, id)
	assert.Empty(t, state.Errors[FieldEmail])
	assert.Equal(t, ValidityValid, state.EmailValidity)
}

func TestValidateEmail_StaleResultDiscarded(t *testing.T) {
	block := make(chan struct{})
	store := &fakeStore{emailExists: true, emailBlock: block}
	svc, _, id := newTestService(store)

	require.NoError(t, svc.SetField(id, FieldEmail, "user@gmail.com"))

	done := make(chan struct{})
	go func() {
		_ = svc.ValidateEmail(context.Background(), id)
		close(done)
	}()

	// Wait for the check to be in flight, then supersede it with a new edit.
	require.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return store.emailCalls == 1
	}, time.Second, time.Millisecond)

	require.NoError(t, svc.SetField(id, FieldEmail, "other@gmail.com"))
	close(block)
	<-done

	state := mustState(t, svc, id)
	assert.Empty(t, state.Errors[FieldEmail], "stale duplicate result must not land on the new value")
	assert.Equal(t, ValidityValid, state.EmailValidity)
}

func TestEmailEdit_ResetsValidity(t *testing.T) {
	store := &fakeStore{emailExists: true}
	svc, _, id := newTestService(store)

	require.NoError(t, svc.SetField(id, FieldEmail, "user@gmail.com"))
	require.NoError(t, svc.ValidateEmail(context.Background(), id))
	require.Equal(t, ValidityDuplicate, mustState(t, svc, id).EmailValidity)

	require.NoError(t, svc.SetField(id, FieldEmail, "fresh@gmail.com"))

	state := mustState(t, svc, id)
	assert.Equal(t, ValidityValid, state.EmailValidity)
	assert.Empty(t, state.Errors[FieldEmail])
}

// --- confirm email ---

func TestValidateConfirmEmail(t *testing.T) {
	svc, _, id := newTestService(&fakeStore{})

	require.NoError(t, svc.SetField(id, FieldEmail, "y@gmail.com"))
	require.NoError(t, svc.SetField(id, FieldConfirmEmail, "x@gmail.com"))
	require.NoError(t, svc.ValidateConfirmEmail(id))
	assert.Equal(t, "Confirm Email does not match", mustState(t, svc, id).Errors[FieldConfirmEmail])

	require.NoError(t, svc.SetField(id, FieldConfirmEmail, "y@gmail.com"))
	require.NoError(t, svc.ValidateConfirmEmail(id))
	assert.Empty(t, mustState(t, svc, id).Errors[FieldConfirmEmail])
}

// --- mobile ---

func TestValidateMobile_Format(t *testing.T) {
	store := &fakeStore{}
	svc, _, id := newTestService(store)

	require.NoError(t, svc.SetField(id, FieldMobileNumber, "12345"))
	require.NoError(t, svc.ValidateMobile(context.Background(), id))

	state := mustState(t, svc, id)
	assert.Equal(t, "Mobile must be 10 digits", state.Errors[FieldMobileNumber])
	assert.Equal(t, ValidityFormatInvalid, state.MobileValidity)
	assert.Zero(t, store.mobileCalls, "format failure must short-circuit the uniqueness query")
}

func TestValidateMobile_Duplicate(t *testing.T) {
	store := &fakeStore{mobileExists: true}
	svc, _, id := newTestService(store)

	require.NoError(t, svc.SetField(id, FieldMobileNumber, "1234567890"))
	require.NoError(t, svc.ValidateMobile(context.Background(), id))

	state := mustState(t, svc, id)
	assert.Equal(t, "Mobile already registered", state.Errors[FieldMobileNumber])
	assert.Equal(t, ValidityDuplicate, state.MobileValidity)
}

func TestValidateMobile_UniqueClears(t *testing.T) {
	store := &fakeStore{mobileExists: false}
	svc, _, id := newTestService(store)

	require.NoError(t, svc.SetField(id, FieldMobileNumber, "1234567890"))
	require.NoError(t, svc.ValidateMobile(context.Background(), id))

	state := mustState(t, svc, id)
	assert.Empty(t, state.Errors[FieldMobileNumber])
	assert.Equal(t, ValidityValid, state.MobileValidity)
}

// --- file attachment ---

func attachSmallFile(t *testing.T, svc *Service, id string) {
	t.Helper()
	content := strings.NewReader("fake image bytes")
	require.NoError(t, svc.AttachFile(id, "id.jpg", "image/jpeg", 16, content))
	require.Eventually(t, func() bool {
		return !mustState(t, svc, id).FileLoading
	}, time.Second, time.Millisecond)
}

func TestAttachFile_TooLargeRejectedUpFront(t *testing.T) {
	svc, notifier, id := newTestService(&fakeStore{})

	err := svc.AttachFile(id, "big.jpg", "image/jpeg", maxFileSize+1, strings.NewReader(""))
	assert.ErrorIs(t, err, ErrFileTooLarge)

	state := mustState(t, svc, id)
	assert.Empty(t, state.FileName)
	assert.False(t, state.FileLoading)

	toast := notifier.last()
	require.NotNil(t, toast)
	assert.Equal(t, "File cannot exceed 5MB", toast.Message)
	assert.Equal(t, notification.SeverityError, toast.Severity)
}

func TestAttachFile_StoresBase64Payload(t *testing.T) {
	svc, _, id := newTestService(&fakeStore{})
	attachSmallFile(t, svc, id)

	state := mustState(t, svc, id)
	assert.Equal(t, "id.jpg", state.FileName)
	assert.False(t, state.FileLoading)
}

func TestRemoveFile_ClearsEverything(t *testing.T) {
	svc, _, id := newTestService(&fakeStore{})
	attachSmallFile(t, svc, id)

	require.NoError(t, svc.RemoveFile(id))

	state := mustState(t, svc, id)
	assert.Empty(t, state.FileName)
	assert.False(t, state.FileLoading)
	assert.True(t, state.DisableSubmit)
}

// --- submit ---

func fillSession(t *testing.T, svc *Service, id string) {
	t.Helper()
	fields := map[string]string{
		FieldSalutation:      "Mr.",
		FieldFirstName:       "Ravi",
		FieldLastName:        "Kumar",
		FieldGender:          "Male",
		FieldEmail:           "ravi@gmail.com",
		FieldConfirmEmail:    "ravi@gmail.com",
		FieldMobileNumber:    "9876543210",
		FieldAddressLine1:    "12 MG Road",
		FieldCity:            "Bengaluru",
		FieldState:           "Karnataka",
		FieldCountry:         "India",
		FieldZipcode:         "560001",
		FieldOccupation:      "Salaried",
		FieldProofOfIdentity: "Passport",
	}
	for field, value := range fields {
		require.NoError(t, svc.SetField(id, field, value))
	}
	attachSmallFile(t, svc, id)
}

func TestSubmit_Success(t *testing.T) {
	store := &fakeStore{}
	svc, notifier, id := newTestService(store)
	fillSession(t, svc, id)

	registrationID, err := svc.Submit(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "R1", registrationID)

	require.NotNil(t, store.createdReg)
	assert.Equal(t, domain.StatusPending, store.createdReg.ApprovalStatus)
	assert.Equal(t, "ravi@gmail.com", store.createdReg.Email)
	require.NotNil(t, store.createdFile)
	assert.Equal(t, "id.jpg", store.createdFile.FileName)
	assert.Equal(t, []byte("fake image bytes"), store.createdFile.Data)

	toast := notifier.last()
	require.NotNil(t, toast)
	assert.Equal(t, "Registration Successful", toast.Message)
	assert.Equal(t, notification.SeveritySuccess, toast.Severity)

	// Success resets the whole session.
	state := mustState(t, svc, id)
	assert.Equal(t, Draft{}, state.Draft)
	assert.Empty(t, state.Errors)
	assert.Empty(t, state.FileName)
	assert.True(t, state.DisableSubmit)
}

func TestSubmit_GateBlocks(t *testing.T) {
	store := &fakeStore{}
	svc, notifier, id := newTestService(store)
	// Required fields missing.

	_, err := svc.Submit(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotSubmittable)
	assert.Nil(t, store.createdReg, "no remote call when the gate blocks")

	toast := notifier.last()
	require.NotNil(t, toast)
	assert.Equal(t, "Fill all fields correctly and upload ID Proof", toast.Message)
}

func TestSubmit_StoreFailureKeepsDraft(t *testing.T) {
	store := &fakeStore{createErr: errors.New("storage error")}
	svc, notifier, id := newTestService(store)
	fillSession(t, svc, id)

	_, err := svc.Submit(context.Background(), id)
	require.Error(t, err)

	toast := notifier.last()
	require.NotNil(t, toast)
	assert.Equal(t, "Error saving registration", toast.Message)

	// Draft intact for retry.
	state := mustState(t, svc, id)
	assert.Equal(t, "Ravi", state.Draft.FirstName)
	assert.Equal(t, "id.jpg", state.FileName)
	assert.False(t, state.DisableSubmit)
}

func TestSubmit_ExactlyOneToastPerFailure(t *testing.T) {
	store := &fakeStore{createErr: errors.New("storage error")}
	svc, notifier, id := newTestService(store)
	fillSession(t, svc, id)

	before := notifier.count()
	_, _ = svc.Submit(context.Background(), id)
	assert.Equal(t, before+1, notifier.count())
}

func TestReset_ClearsSessionState(t *testing.T) {
	svc, _, id := newTestService(&fakeStore{})
	fillSession(t, svc, id)

	require.NoError(t, svc.Reset(id))
	first := mustState(t, svc, id)

	require.NoError(t, svc.Reset(id))
	second := mustState(t, svc, id)

	assert.Equal(t, Draft{}, first.Draft)
	assert.Equal(t, first.Draft, second.Draft)
	assert.Equal(t, first.Errors, second.Errors)
	assert.True(t, second.DisableSubmit)
}
