package registration

import (
	"sync"
	"time"
)

// Session is one applicant's in-progress submission. All access goes through
// the service, which holds the session lock around every read-modify-write;
// generation counters let completions of superseded async checks be discarded
// instead of cancelled.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu sync.Mutex

	draft  Draft
	errors FieldErrorSet

	emailValidity  FieldValidity
	mobileValidity FieldValidity
	emailGen       uint64
	mobileGen      uint64

	attachment  *Attachment
	fileLoading bool
	fileGen     uint64
}

func newSession(id string) *Session {
	return &Session{
		ID:             id,
		CreatedAt:      time.Now(),
		errors:         make(FieldErrorSet),
		emailValidity:  ValidityValid,
		mobileValidity: ValidityValid,
	}
}

// disableSubmit is the single derived gate the submit path consults. It is
// recomputed from current state on every call, never cached. Caller holds mu.
func (s *Session) disableSubmit() bool {
	if s.fileLoading {
		return true
	}
	for _, field := range requiredFields {
		if *s.draft.field(field) == "" {
			return true
		}
	}
	if s.errors.HasAny() {
		return true
	}
	if s.emailValidity != ValidityValid || s.mobileValidity != ValidityValid {
		return true
	}
	return s.attachment == nil
}

// reset returns the session to its initial empty state. Safe to call twice;
// the result is identical. Caller holds mu.
func (s *Session) reset() {
	s.draft = Draft{}
	s.errors = make(FieldErrorSet)
	s.emailValidity = ValidityValid
	s.mobileValidity = ValidityValid
	s.emailGen++
	s.mobileGen++
	s.attachment = nil
	s.fileLoading = false
	s.fileGen++
}
