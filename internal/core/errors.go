package core

import "errors"

// Validation errors. Operations that return one of these leave all state
// untouched; adapters map them to 400-class responses.
var (
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrAmountExceeds   = errors.New("amount exceeds outstanding balance")
	ErrMissingField    = errors.New("required field is empty")
	ErrNotFound        = errors.New("record not found")
	ErrTooManyConfigs  = errors.New("too many UPI configurations")
	ErrIncompleteSetup = errors.New("UPI configuration is incomplete")
)
