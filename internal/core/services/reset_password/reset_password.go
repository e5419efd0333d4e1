package resetpassword

import (
	"context"
	"errors"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/logging"
	"passreset/internal/core/domain/user"
	"passreset/internal/core/services"
	"time"
)

type Input struct {
	Token           user.PasswordResetToken
	NewPassword     user.RawPassword
	ConfirmPassword user.RawPassword
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	passwordHasher user.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		passwordHasher: passwordHasher,
		now:            now,
	}
}

// Run checks the confirmation before touching the token, so a mismatch
// leaves the pending reset usable. The token is matched and consumed by a
// single conditional write in the repository.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Token == "" {
		return result, user.ErrInvalidPasswordResetToken
	}
	if input.NewPassword != input.ConfirmPassword {
		return result, user.ErrPasswordsDoNotMatch
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Err(err))
		return result, err
	}

	u, err := s.userRepository.ConsumePasswordReset(ctx, input.Token, newPasswordHash, s.now())
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrInvalidPasswordResetToken) {
		s.log.Info(ctx, "Password reset token is invalid or has expired.")
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not update user password.", logging.Err(err))
		return result, err
	}

	s.log.Info(ctx, "New password has been successfully set.", logging.Entry("userId", u.ID))
	return Result{User: u}, nil
}
