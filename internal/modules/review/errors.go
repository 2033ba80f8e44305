package review

import "errors"

var (
	ErrUnknownAction  = errors.New("unknown row action")
	ErrUnknownModal   = errors.New("unknown modal")
	ErrNoSelection    = errors.New("no registration selected")
	ErrReasonRequired = errors.New("rejection reason is required")
)
