package user

import (
	"context"
	c "passreset/internal/core/domain/common"
	"time"
)

type CreateUserInput struct {
	ID           ID
	Username     Username
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

// UserRepository is the credential store. Create must reject duplicate
// usernames and emails atomically with ErrUsernameAlreadyExists and
// ErrEmailAlreadyExists.
type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByUsername(ctx context.Context, username Username) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	// GetByPasswordResetToken returns the user whose token equals token and
	// whose reset expires after now, ErrInvalidPasswordResetToken otherwise.
	GetByPasswordResetToken(ctx context.Context, token PasswordResetToken, now time.Time) (User, error)
	SetPassword(ctx context.Context, id ID, hash PasswordHash) error
	SetPasswordReset(ctx context.Context, id ID, reset PasswordReset) error
	ClearPasswordReset(ctx context.Context, id ID) error
	// ConsumePasswordReset sets the new hash and clears the reset in one
	// conditional write, under the same matching rule as GetByPasswordResetToken.
	ConsumePasswordReset(ctx context.Context, token PasswordResetToken, hash PasswordHash, now time.Time) (User, error)
}
