package errors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPersistenceErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewPersistenceError("get user by email", cause)

	require.ErrorIs(t, err, ErrPersistence)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "get user by email")
}

func TestPersistenceErrorKeepsContextCancellation(t *testing.T) {
	err := NewPersistenceError("create user", context.Canceled)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDeliveryErrorKeepsCause(t *testing.T) {
	cause := errors.New("smtp: 535 authentication failed")
	err := NewDeliveryError(cause)

	require.ErrorIs(t, err, ErrDelivery)
	require.ErrorIs(t, err, cause)
	require.False(t, errors.Is(err, ErrPersistence))
}

func TestNilArgumentErrorMessage(t *testing.T) {
	require.Equal(t, "argument 'log' must not be nil", NewNilArgumentError("log").Error())
}
