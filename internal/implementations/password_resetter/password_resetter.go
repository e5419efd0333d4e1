package passwordresetter

import (
	"context"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/user"
	"time"
)

const DefaultValidDuration = time.Hour

// Issuer creates random reset tokens and stores them with their expiry on the
// user record. Issuing again overwrites the previous token.
type Issuer struct {
	userRepository user.UserRepository
	tokenGenerator user.PasswordResetTokenGenerator
	validDuration  time.Duration
	now            func() time.Time
}

func NewIssuer(
	userRepository user.UserRepository,
	tokenGenerator user.PasswordResetTokenGenerator,
	validDuration time.Duration,
	now func() time.Time,
) *Issuer {
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Issuer{
		userRepository: userRepository,
		tokenGenerator: tokenGenerator,
		validDuration:  validDuration,
		now:            now,
	}
}

func (i *Issuer) Issue(ctx context.Context, u user.User) (reset user.PasswordReset, err error) {
	token, err := i.tokenGenerator.GeneratePasswordResetToken()
	if err != nil {
		return reset, err
	}
	reset = user.NewPasswordReset(token, i.now(), i.validDuration)
	if err := i.userRepository.SetPasswordReset(ctx, u.ID, reset); err != nil {
		return user.PasswordReset{}, err
	}
	return reset, nil
}
