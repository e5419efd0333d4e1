package sendpasswordresettoken

import (
	"context"
	"errors"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/logging"
	"passreset/internal/core/domain/user"
	"passreset/internal/core/services"
)

type serviceWithTokenSending struct {
	log    logging.Logger
	sender user.PasswordResetTokenSender
	inner  services.Service[Input, Result]
}

// NewWithTokenSending mails the issued token to the user. A failed delivery
// leaves the issued token valid.
func NewWithTokenSending(
	log logging.Logger,
	sender user.PasswordResetTokenSender,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithTokenSending{
		log:    log,
		sender: sender,
		inner:  inner,
	}
}

func (s *serviceWithTokenSending) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Info(ctx, "Skip sending password reset token.", logging.Err(err))
		return result, err
	}

	err = s.sender.SendPasswordResetToken(ctx, result.User, result.Token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset token.",
			logging.Entry("userId", result.User.ID),
			logging.Err(err),
		)
		return result, e.NewDeliveryError(err)
	}

	s.log.Info(
		ctx,
		"Password reset token has been sent to the user.",
		logging.Entry("userId", result.User.ID),
	)
	return result, nil
}
