package repository

import "errors"

var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyConverted     = errors.New("registration already converted to member")
	ErrMemberNotFound       = errors.New("member not found")
	ErrFileNotFound         = errors.New("file not found")
)
