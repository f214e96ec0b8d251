package errors

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrEmptyCart           = errors.New("empty cart")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrClaimUnavailable    = errors.New("daily bonus unavailable")
	ErrClaimInFlight       = errors.New("claim already in flight")
	ErrEligibilityUnknown  = errors.New("eligibility unknown")
)
