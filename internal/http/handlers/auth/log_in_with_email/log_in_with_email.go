package loginwithemail

import (
	"errors"
	"net/http"
	c "passreset/internal/core/domain/common"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/user"
	"passreset/internal/core/services"
	loginwithemail "passreset/internal/core/services/log_in_with_email"
	"passreset/internal/http/handlers/request"
	"passreset/internal/http/handlers/response"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	HomePath = "/home"

	msgWrongPassword = "password doesn't match."
	msgUnknownEmail  = "No user account is associated with that email. Kindly consider signing up"
)

type Handler struct {
	service services.Service[loginwithemail.Input, loginwithemail.Result]
}

func New(service services.Service[loginwithemail.Input, loginwithemail.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Email    string
	Password string
}

func (i *Input) FromRequest(rw http.ResponseWriter, r *http.Request) error {
	values, err := request.Values(rw, r)
	if err != nil {
		return err
	}
	i.Email = strings.TrimSpace(values.Get("email"))
	i.Password = values.Get("password")
	return nil
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(1, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromRequest(rw, r); err != nil {
		response.RenderMessage(rw, err.Error(), http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderValidationError(rw, err)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		loginwithemail.Input{Email: c.NewEmail(input.Email), Password: user.RawPassword(input.Password)},
	)
	switch {
	case err == nil:
		http.Redirect(rw, r, HomePath, http.StatusSeeOther)
	case errors.Is(err, user.ErrInvalidCredentials):
		response.RenderText(rw, msgWrongPassword, http.StatusOK)
	case errors.Is(err, user.ErrUserDoesNotExist):
		response.RenderText(rw, msgUnknownEmail, http.StatusOK)
	default:
		response.RenderInternalError(rw)
	}
}
