package user

import (
	"fmt"
	e "passreset/internal/core/domain/errors"
)

var (
	ErrPasswordsDoNotMatch       = fmt.Errorf("%w: passwords do not match", e.ErrValidation)
	ErrUsernameAlreadyExists     = fmt.Errorf("%w: username already exists", e.ErrValidation)
	ErrEmailAlreadyExists        = fmt.Errorf("%w: email already exists", e.ErrValidation)
	ErrUserDoesNotExist          = fmt.Errorf("%w: user does not exist", e.ErrNotFound)
	ErrInvalidCredentials        = fmt.Errorf("%w: invalid credentials", e.ErrValidation)
	ErrInvalidPasswordResetToken = fmt.Errorf("%w: invalid password reset token", e.ErrInvalidOrExpired)
)
