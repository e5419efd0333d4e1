package user

import (
	"context"
	"crypto/subtle"
	"time"
)

type PasswordResetToken string

func (t PasswordResetToken) String() string {
	return "***"
}

// PasswordReset is a pending reset of the user password. Token and expiry are
// always set together.
type PasswordReset struct {
	Token     PasswordResetToken
	ExpiresAt time.Time
}

func NewPasswordReset(token PasswordResetToken, issuedAt time.Time, validDuration time.Duration) PasswordReset {
	return PasswordReset{Token: token, ExpiresAt: issuedAt.Add(validDuration)}
}

// IsValidAt is true while the expiry is strictly after now.
func (r PasswordReset) IsValidAt(now time.Time) bool {
	return r.ExpiresAt.After(now)
}

func (r PasswordReset) Matches(token PasswordResetToken, now time.Time) bool {
	if token == "" || !r.IsValidAt(now) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(r.Token), []byte(token)) == 1
}

type ResetState int

const (
	NoPendingReset ResetState = iota
	PendingReset
)

func (s ResetState) String() string {
	switch s {
	case NoPendingReset:
		return "no_pending_reset"
	case PendingReset:
		return "pending_reset"
	}
	return "unknown"
}

type PasswordResetTokenGenerator interface {
	GeneratePasswordResetToken() (PasswordResetToken, error)
}

// PasswordResetIssuer creates a new pending reset for the user and persists
// it, replacing any previous one.
type PasswordResetIssuer interface {
	Issue(ctx context.Context, u User) (PasswordReset, error)
}

type PasswordResetTokenSender interface {
	SendPasswordResetToken(ctx context.Context, u User, token PasswordResetToken) error
}
