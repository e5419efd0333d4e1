package signupwithemail

import (
	"errors"
	"net/http"
	c "passreset/internal/core/domain/common"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/user"
	"passreset/internal/core/services"
	signupwithemail "passreset/internal/core/services/sign_up_with_email"
	"passreset/internal/http/handlers/request"
	"passreset/internal/http/handlers/response"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[signupwithemail.Input, signupwithemail.Result]
}

func New(
	service services.Service[signupwithemail.Input, signupwithemail.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

func (i *Input) FromRequest(rw http.ResponseWriter, r *http.Request) error {
	values, err := request.Values(rw, r)
	if err != nil {
		return err
	}
	i.Username = values.Get("username")
	i.Email = strings.TrimSpace(values.Get("email"))
	i.Password = values.Get("password")
	i.ConfirmPassword = values.Get("confirmPassword")
	return nil
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Username, validation.Required, validation.Length(1, 128)),
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(1, 256)),
		validation.Field(&i.ConfirmPassword, validation.Required, validation.Length(1, 256)),
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
		signupwithemail.Input{
			Username:        user.Username(input.Username),
			Email:           c.NewEmail(input.Email),
			Password:        user.RawPassword(input.Password),
			ConfirmPassword: user.RawPassword(input.ConfirmPassword),
		},
	)
	switch {
	case err == nil:
		response.Render(rw, "login.html", nil, http.StatusOK)
	case errors.Is(err, user.ErrPasswordsDoNotMatch):
		response.RenderMessageWithLink(
			rw,
			"Password did not match!",
			response.Link{Href: "/register", Label: "Try again"},
			http.StatusBadRequest,
		)
	case errors.Is(err, user.ErrUsernameAlreadyExists):
		response.RenderMessage(rw, "username already exists", http.StatusUnprocessableEntity)
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.RenderMessage(rw, "email already exists", http.StatusUnprocessableEntity)
	default:
		response.RenderInternalError(rw)
	}
}
