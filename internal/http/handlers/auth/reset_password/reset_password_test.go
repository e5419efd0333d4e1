package resetpassword

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"passreset/internal/core/domain/user"
	resetpassword "passreset/internal/core/services/reset_password"
	validatetoken "passreset/internal/core/services/validate_password_reset_token"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidateService struct {
	err   error
	input *validatetoken.Input
}

func (s *stubValidateService) Run(
	ctx context.Context,
	input validatetoken.Input,
) (result validatetoken.Result, err error) {
	s.input = &input
	return result, s.err
}

type stubResetService struct {
	err   error
	input *resetpassword.Input
}

func (s *stubResetService) Run(
	ctx context.Context,
	input resetpassword.Input,
) (result resetpassword.Result, err error) {
	s.input = &input
	return result, s.err
}

func newRouter(validate *stubValidateService, reset *stubResetService) http.Handler {
	router := chi.NewRouter()
	router.Get("/reset/{token}", NewForm(validate).ServeHTTP)
	router.Post("/reset/{token}", New(reset).ServeHTTP)
	return router
}

func TestResetFormHandler(t *testing.T) {
	cases := []struct {
		name           string
		serviceErr     error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "pending reset",
			expectedStatus: http.StatusOK,
			expectedBody:   `action="/reset/abc123"`,
		},
		{
			name:           "invalid or expired",
			serviceErr:     user.ErrInvalidPasswordResetToken,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   msgInvalidToken,
		},
		{
			name:           "storage failure",
			serviceErr:     errors.New("timeout"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.name, func(t *testing.T) {
			validate := &stubValidateService{err: testcase.serviceErr}
			rec := httptest.NewRecorder()

			newRouter(validate, &stubResetService{}).ServeHTTP(
				rec,
				httptest.NewRequest(http.MethodGet, "/reset/abc123", nil),
			)

			assert.Equal(t, testcase.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), testcase.expectedBody)
			require.NotNil(t, validate.input)
			assert.Equal(t, user.PasswordResetToken("abc123"), validate.input.Token)
		})
	}
}

func TestResetPasswordHandler(t *testing.T) {
	cases := []struct {
		name           string
		password       string
		confirm        string
		serviceErr     error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success",
			password:       "N3w!",
			confirm:        "N3w!",
			expectedStatus: http.StatusOK,
			expectedBody:   msgPasswordReset,
		},
		{
			name:           "mismatch re-renders the form",
			password:       "N3w!",
			confirm:        "N3w?",
			serviceErr:     user.ErrPasswordsDoNotMatch,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `action="/reset/abc123"`,
		},
		{
			name:           "invalid or expired",
			password:       "N3w!",
			confirm:        "N3w!",
			serviceErr:     user.ErrInvalidPasswordResetToken,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   msgInvalidToken,
		},
		{
			name:           "missing confirmation",
			password:       "N3w!",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "storage failure",
			password:       "N3w!",
			confirm:        "N3w!",
			serviceErr:     errors.New("timeout"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.name, func(t *testing.T) {
			reset := &stubResetService{err: testcase.serviceErr}
			body := url.Values{"password": {testcase.password}, "confirmPassword": {testcase.confirm}}.Encode()
			req := httptest.NewRequest(http.MethodPost, "/reset/abc123", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()

			newRouter(&stubValidateService{}, reset).ServeHTTP(rec, req)

			assert.Equal(t, testcase.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), testcase.expectedBody)
		})
	}
}

func TestResetPasswordHandlerPassesTokenFromPath(t *testing.T) {
	reset := &stubResetService{}
	body := url.Values{"password": {"N3w!"}, "confirmPassword": {"N3w!"}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/reset/abc123", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	newRouter(&stubValidateService{}, reset).ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, reset.input)
	assert.Equal(t, resetpassword.Input{
		Token:           "abc123",
		NewPassword:     "N3w!",
		ConfirmPassword: "N3w!",
	}, *reset.input)
}
