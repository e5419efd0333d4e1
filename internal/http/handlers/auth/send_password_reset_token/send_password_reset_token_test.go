package sendpasswordresettoken

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	c "passreset/internal/core/domain/common"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/user"
	service "passreset/internal/core/services/send_password_reset_token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	return service.Result{User: user.User{ID: "1", Email: input.Email}, Token: "abc123"}, nil
}

func post(h http.Handler, email string) *httptest.ResponseRecorder {
	body := url.Values{"email": {email}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/forgot-password", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSendPasswordResetTokenHandler(t *testing.T) {
	cases := []struct {
		name           string
		email          string
		serviceErr     error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "email sent",
			email:          "A@x.com",
			expectedStatus: http.StatusOK,
			expectedBody:   "Email sent",
		},
		{
			name:           "unknown email",
			email:          "nobody@x.com",
			serviceErr:     user.ErrUserDoesNotExist,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "User not found",
		},
		{
			name:           "delivery failure",
			email:          "a@x.com",
			serviceErr:     e.NewDeliveryError(errors.New("smtp: 535")),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Error sending email",
		},
		{
			name:           "storage failure",
			email:          "a@x.com",
			serviceErr:     e.NewPersistenceError("get user by email", errors.New("timeout")),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "internal error",
		},
		{
			name:           "invalid email",
			email:          "nope",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.name, func(t *testing.T) {
			rec := post(New(&stubService{err: testcase.serviceErr}, false), testcase.email)

			assert.Equal(t, testcase.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), testcase.expectedBody)
			assert.Empty(t, rec.Header().Get(TestTokenHeader))
		})
	}
}

func TestSendPasswordResetTokenHandlerNormalizesEmail(t *testing.T) {
	stub := &stubService{}
	post(New(stub, false), "A@X.com")
	assert.Equal(t, c.Email("a@x.com"), stub.input.Email)
}

func TestSendPasswordResetTokenHandlerTestMode(t *testing.T) {
	rec := post(New(&stubService{}, true), "a@x.com")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc123", rec.Header().Get(TestTokenHeader))
}

func TestSendPasswordResetTokenHandlerTrimsEmail(t *testing.T) {
	stub := &stubService{}
	rec := post(New(stub, false), "A@X.com ")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, c.Email("a@x.com"), stub.input.Email)
}
