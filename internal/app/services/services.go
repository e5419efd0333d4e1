package services

import (
	"passreset/internal/app/deps"
	"passreset/internal/core/domain/metrics"
	"passreset/internal/core/services"
	"passreset/internal/core/services/instrumenting"
	loginwithemail "passreset/internal/core/services/log_in_with_email"
	resetpassword "passreset/internal/core/services/reset_password"
	sendpasswordresettoken "passreset/internal/core/services/send_password_reset_token"
	signupwithemail "passreset/internal/core/services/sign_up_with_email"
	validatepasswordresettoken "passreset/internal/core/services/validate_password_reset_token"
)

type Services struct {
	SignUpWithEmail            services.Service[signupwithemail.Input, signupwithemail.Result]
	LogInWithEmail             services.Service[loginwithemail.Input, loginwithemail.Result]
	SendPasswordResetToken     services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ValidatePasswordResetToken services.Service[validatepasswordresettoken.Input, validatepasswordresettoken.Result]
	ResetPassword              services.Service[resetpassword.Input, resetpassword.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUpWithEmail = instrumenting.WithMetrics(
		deps.MetricsRecorder,
		metrics.StepSignUp,
		signupwithemail.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
			deps.UserIDGenerator,
			deps.Now,
		),
	)
	s.LogInWithEmail = instrumenting.WithMetrics(
		deps.MetricsRecorder,
		metrics.StepLogIn,
		loginwithemail.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
		),
	)
	s.SendPasswordResetToken = instrumenting.WithMetrics(
		deps.MetricsRecorder,
		metrics.StepRequestReset,
		sendpasswordresettoken.NewWithTokenSending(
			deps.Logger,
			deps.PasswordResetTokenSender,
			sendpasswordresettoken.New(
				deps.Logger,
				deps.UserRepository,
				deps.PasswordResetIssuer,
			),
		),
	)
	s.ValidatePasswordResetToken = instrumenting.WithMetrics(
		deps.MetricsRecorder,
		metrics.StepValidateToken,
		validatepasswordresettoken.New(
			deps.Logger,
			deps.UserRepository,
			deps.Now,
		),
	)
	s.ResetPassword = instrumenting.WithMetrics(
		deps.MetricsRecorder,
		metrics.StepResetPassword,
		resetpassword.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
			deps.Now,
		),
	)

	return s
}
