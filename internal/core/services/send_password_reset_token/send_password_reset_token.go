package sendpasswordresettoken

import (
	"context"
	"errors"
	c "passreset/internal/core/domain/common"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/logging"
	"passreset/internal/core/domain/user"
	"passreset/internal/core/services"
)

type Input struct {
	Email c.Email
}

type Result struct {
	User  user.User
	Token user.PasswordResetToken
}

type service struct {
	log                 logging.Logger
	userRepository      user.UserRepository
	passwordResetIssuer user.PasswordResetIssuer
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordResetIssuer user.PasswordResetIssuer,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordResetIssuer == nil {
		panic(e.NewNilArgumentError("passwordResetIssuer"))
	}
	return &service{
		log:                 log,
		userRepository:      userRepository,
		passwordResetIssuer: passwordResetIssuer,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Password reset requested for unknown email.", logging.Entry("email", input.Email))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user by email.",
			logging.Entry("email", input.Email),
			logging.Err(err),
		)
		return result, err
	}

	reset, err := s.passwordResetIssuer.Issue(ctx, u)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not issue password reset token.",
			logging.Entry("userId", u.ID),
			logging.Err(err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Password reset token has been issued.",
		logging.Entry("userId", u.ID),
		logging.Entry("expiresAt", reset.ExpiresAt),
	)
	return Result{User: u, Token: reset.Token}, nil
}
