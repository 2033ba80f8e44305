package registration

import "errors"

var (
	ErrSessionNotFound = errors.New("registration session not found")
	ErrUnknownField    = errors.New("unknown form field")
	ErrFileTooLarge    = errors.New("file exceeds the 5MB limit")
	ErrNotSubmittable  = errors.New("form is not ready to submit")
)

// Field-level error messages, word for word what the form shows inline.
const (
	msgZipcodeDigitsOnly  = "Zipcode must be numbers only"
	msgZipcodeTooLong     = "Zipcode cannot exceed 6 digits"
	msgEmailInvalidFormat = "Invalid email format"
	msgEmailDomainBlocked = "Email domain not allowed"
	msgEmailDuplicate     = "Email already registered"
	msgConfirmMismatch    = "Confirm Email does not match"
	msgMobileInvalid      = "Mobile must be 10 digits"
	msgMobileDuplicate    = "Mobile already registered"
)
