package errors

import (
	"errors"
	"fmt"
)

// Error categories. Domain errors wrap exactly one of them so callers can
// branch on the category with errors.Is.
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrInvalidOrExpired = errors.New("invalid or expired")
	ErrDelivery         = errors.New("delivery error")
	ErrPersistence      = errors.New("persistence error")
)

func NewPersistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

func NewDeliveryError(err error) error {
	return fmt.Errorf("%w: %w", ErrDelivery, err)
}

type InvalidStateError struct {
	msg string
}

func NewInvalidStateError(msg string) *InvalidStateError {
	return &InvalidStateError{msg: msg}
}

func (e *InvalidStateError) Error() string {
	return e.msg
}

type NilArgumentError struct {
	argument string
}

func NewNilArgumentError(argument string) *NilArgumentError {
	return &NilArgumentError{argument: argument}
}

func (e *NilArgumentError) Error() string {
	return fmt.Sprintf("argument '%s' must not be nil", e.argument)
}
