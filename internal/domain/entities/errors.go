package entities

import "errors"

var (
	ErrValidation             = errors.New("validation failed")
	ErrNotFound               = errors.New("not found")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrAuthorization          = errors.New("not authorized")
	ErrInvalidState           = errors.New("operation not allowed in current state")
	ErrInvalidTransition      = errors.New("invalid transition")
	ErrSignatureMismatch      = errors.New("signature mismatch")
	ErrDuplicateAttempt       = errors.New("duplicate payment attempt")
	ErrInvalidPrice           = errors.New("invalid price")
	ErrPriceNotSet            = errors.New("price not set")
	ErrNothingOwed            = errors.New("nothing owed")
)
