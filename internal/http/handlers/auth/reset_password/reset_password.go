package resetpassword

import (
	"errors"
	"net/http"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/user"
	"passreset/internal/core/services"
	resetpassword "passreset/internal/core/services/reset_password"
	validatetoken "passreset/internal/core/services/validate_password_reset_token"
	"passreset/internal/http/handlers/request"
	"passreset/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	TokenParam = "token"

	msgInvalidToken    = "Password reset token is invalid or has expired."
	msgPasswordsDiffer = "Passwords do not match. Try again."
	msgPasswordReset   = "Password has been reset."
)

type form struct {
	Token string
	Error string
}

// FormHandler renders the new password form for a pending reset.
type FormHandler struct {
	service services.Service[validatetoken.Input, validatetoken.Result]
}

func NewForm(service services.Service[validatetoken.Input, validatetoken.Result]) *FormHandler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &FormHandler{service: service}
}

func (h *FormHandler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, TokenParam)

	_, err := h.service.Run(r.Context(), validatetoken.Input{Token: user.PasswordResetToken(token)})
	if errors.Is(err, user.ErrInvalidPasswordResetToken) {
		response.RenderMessage(rw, msgInvalidToken, http.StatusBadRequest)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, "reset_form.html", form{Token: token}, http.StatusOK)
}

type Handler struct {
	service services.Service[resetpassword.Input, resetpassword.Result]
}

func New(service services.Service[resetpassword.Input, resetpassword.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Token           string
	Password        string
	ConfirmPassword string
}

func (i *Input) FromRequest(rw http.ResponseWriter, r *http.Request) error {
	values, err := request.Values(rw, r)
	if err != nil {
		return err
	}
	i.Token = chi.URLParam(r, TokenParam)
	i.Password = values.Get("password")
	i.ConfirmPassword = values.Get("confirmPassword")
	return nil
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, validation.Required, validation.Length(0, 1024)),
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
		resetpassword.Input{
			Token:           user.PasswordResetToken(input.Token),
			NewPassword:     user.RawPassword(input.Password),
			ConfirmPassword: user.RawPassword(input.ConfirmPassword),
		},
	)
	switch {
	case err == nil:
		response.RenderMessageWithLink(
			rw,
			msgPasswordReset,
			response.Link{Href: "/login", Label: "Login"},
			http.StatusOK,
		)
	case errors.Is(err, user.ErrPasswordsDoNotMatch):
		response.Render(
			rw,
			"reset_form.html",
			form{Token: input.Token, Error: msgPasswordsDiffer},
			http.StatusBadRequest,
		)
	case errors.Is(err, user.ErrInvalidPasswordResetToken):
		response.RenderMessage(rw, msgInvalidToken, http.StatusBadRequest)
	default:
		response.RenderInternalError(rw)
	}
}
