package sendpasswordresettoken

import (
	"errors"
	"net/http"
	c "passreset/internal/core/domain/common"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/user"
	"passreset/internal/core/services"
	service "passreset/internal/core/services/send_password_reset_token"
	"passreset/internal/http/handlers/request"
	"passreset/internal/http/handlers/response"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const TestTokenHeader = "x-test-password-reset-token"

type Handler struct {
	service    services.Service[service.Input, service.Result]
	isTestMode bool
}

func New(
	service services.Service[service.Input, service.Result],
	isTestMode bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, isTestMode: isTestMode}
}

type Input struct {
	Email string
}

func (i *Input) FromRequest(rw http.ResponseWriter, r *http.Request) error {
	values, err := request.Values(rw, r)
	if err != nil {
		return err
	}
	i.Email = strings.TrimSpace(values.Get("email"))
	return nil
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
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

	result, err := h.service.Run(
		r.Context(),
		service.Input{Email: c.NewEmail(input.Email)},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderMessage(rw, "User not found", http.StatusBadRequest)
		case errors.Is(err, e.ErrDelivery):
			response.RenderMessage(rw, "Error sending email", http.StatusInternalServerError)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	if h.isTestMode {
		rw.Header().Set(TestTokenHeader, string(result.Token))
	}
	response.RenderMessageWithLink(rw, "Email sent", response.Link{Href: "/login", Label: "Ok"}, http.StatusOK)
}
