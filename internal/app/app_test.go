package app

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"passreset/internal/app/services"
	"passreset/internal/core/domain/logging"
	"passreset/internal/core/domain/metrics"
	"passreset/internal/core/domain/user"
	"passreset/internal/core/services/instrumenting"
	loginwithemail "passreset/internal/core/services/log_in_with_email"
	resetpassword "passreset/internal/core/services/reset_password"
	sendpasswordresettoken "passreset/internal/core/services/send_password_reset_token"
	signupwithemail "passreset/internal/core/services/sign_up_with_email"
	validatepasswordresettoken "passreset/internal/core/services/validate_password_reset_token"
	handler "passreset/internal/http/handlers/auth/send_password_reset_token"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const TOKEN = "0123456789abcdef"

var NOW = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type testRouterSuite struct {
	suite.Suite
	Repository *user.FakeUserRepository
	Sender     *user.FakePasswordResetTokenSender
	Recorder   *metrics.FakeRecorder
	Now        time.Time
	Router     http.Handler
}

func (suite *testRouterSuite) SetupTest() {
	log := logging.NewFakeLogger()
	hasher := user.NewFakePasswordHasher()
	clock := func() time.Time { return suite.Now }

	suite.Now = NOW
	suite.Repository = user.NewFakeUserRepository()
	suite.Sender = user.NewFakePasswordResetTokenSender()
	suite.Recorder = metrics.NewFakeRecorder()

	issuer := user.NewFakePasswordResetIssuer(suite.Repository, TOKEN, time.Hour, clock)
	s := &services.Services{
		SignUpWithEmail: instrumenting.WithMetrics(
			suite.Recorder,
			metrics.StepSignUp,
			signupwithemail.New(log, suite.Repository, hasher, user.NewFakeIDGenerator(), clock),
		),
		LogInWithEmail: loginwithemail.New(log, suite.Repository, hasher),
		SendPasswordResetToken: sendpasswordresettoken.NewWithTokenSending(
			log,
			suite.Sender,
			sendpasswordresettoken.New(log, suite.Repository, issuer),
		),
		ValidatePasswordResetToken: validatepasswordresettoken.New(log, suite.Repository, clock),
		ResetPassword: instrumenting.WithMetrics(
			suite.Recorder,
			metrics.StepResetPassword,
			resetpassword.New(log, suite.Repository, hasher, clock),
		),
	}
	metricsHandler := http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.Write([]byte("passreset_password_reset_total 1"))
	})
	suite.Router = NewRouter(s, RouterOptions{
		AllowedOrigins: []string{"*"},
		IsTestMode:     true,
		Metrics:        metricsHandler,
	})
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(testRouterSuite))
}

func (suite *testRouterSuite) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	suite.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (suite *testRouterSuite) post(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	suite.Router.ServeHTTP(rec, req)
	return rec
}

func (suite *testRouterSuite) register(username, email string) *httptest.ResponseRecorder {
	return suite.post("/register", url.Values{
		"username":        {username},
		"email":           {email},
		"password":        {"P@ss1"},
		"confirmPassword": {"P@ss1"},
	})
}

func (suite *testRouterSuite) login(email, password string) *httptest.ResponseRecorder {
	return suite.post("/login", url.Values{"email": {email}, "password": {password}})
}

func (suite *testRouterSuite) TestPages() {
	assert := suite.Require()
	for _, path := range []string{"/", "/register", "/login", "/home", "/resetPassword"} {
		rec := suite.get(path)
		assert.Equal(http.StatusOK, rec.Code, path)
		assert.Contains(rec.Body.String(), "<html", path)
	}
	assert.Equal(http.StatusNotFound, suite.get("/missing").Code)
}

func (suite *testRouterSuite) TestMetrics() {
	rec := suite.get("/metrics")

	assert := suite.Require()
	assert.Equal(http.StatusOK, rec.Code)
	assert.Contains(rec.Body.String(), "passreset_password_reset_total")
}

func (suite *testRouterSuite) TestRegisterAndLogIn() {
	assert := suite.Require()

	rec := suite.register("alice", "Alice@X.com")
	assert.Equal(http.StatusOK, rec.Code)
	assert.Contains(rec.Body.String(), `action="/login"`)

	rec = suite.register("alice", "other@x.com")
	assert.Equal(http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(rec.Body.String(), "username already exists")

	rec = suite.register("bob", "alice@x.com")
	assert.Equal(http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(rec.Body.String(), "email already exists")

	rec = suite.login("alice@x.com", "P@ss1")
	assert.Equal(http.StatusSeeOther, rec.Code)
	assert.Equal("/home", rec.Header().Get("Location"))

	rec = suite.login("Alice@X.com ", "P@ss1")
	assert.Equal(http.StatusSeeOther, rec.Code)

	rec = suite.login("alice@x.com", "wrong")
	assert.Equal(http.StatusOK, rec.Code)
	assert.Equal("password doesn't match.", rec.Body.String())

	rec = suite.login("nobody@x.com", "P@ss1")
	assert.Equal(http.StatusOK, rec.Code)
	assert.Contains(rec.Body.String(), "No user account is associated with that email")

	assert.Equal(1, suite.Recorder.Count(metrics.StepSignUp, metrics.Success))
	assert.Equal(2, suite.Recorder.Count(metrics.StepSignUp, metrics.Rejected))
}

func (suite *testRouterSuite) TestRegisterPasswordMismatch() {
	rec := suite.post("/register", url.Values{
		"username":        {"alice"},
		"email":           {"a@x.com"},
		"password":        {"P@ss1"},
		"confirmPassword": {"P@ss2"},
	})

	assert := suite.Require()
	assert.Equal(http.StatusBadRequest, rec.Code)
	assert.Contains(rec.Body.String(), "Password did not match!")
	assert.Empty(suite.Repository.Users)
}

func (suite *testRouterSuite) TestPasswordResetFlow() {
	assert := suite.Require()
	assert.Equal(http.StatusOK, suite.register("alice", "a@x.com").Code)

	rec := suite.post("/forgot-password", url.Values{"email": {"nobody@x.com"}})
	assert.Equal(http.StatusBadRequest, rec.Code)
	assert.Contains(rec.Body.String(), "User not found")

	rec = suite.post("/forgot-password", url.Values{"email": {"a@x.com"}})
	assert.Equal(http.StatusOK, rec.Code)
	assert.Contains(rec.Body.String(), "Email sent")
	assert.Equal(TOKEN, rec.Header().Get(handler.TestTokenHeader))
	assert.Equal(1, suite.Sender.SentCount())

	suite.Now = NOW.Add(30 * time.Minute)

	rec = suite.get("/reset/" + TOKEN)
	assert.Equal(http.StatusOK, rec.Code)
	assert.Contains(rec.Body.String(), `action="/reset/`+TOKEN+`"`)

	assert.Equal(http.StatusBadRequest, suite.get("/reset/unknown").Code)

	rec = suite.post("/reset/"+TOKEN, url.Values{"password": {"N3w!"}, "confirmPassword": {"N3w?"}})
	assert.Equal(http.StatusBadRequest, rec.Code)
	assert.Contains(rec.Body.String(), "Passwords do not match. Try again.")

	rec = suite.post("/reset/"+TOKEN, url.Values{"password": {"N3w!"}, "confirmPassword": {"N3w!"}})
	assert.Equal(http.StatusOK, rec.Code)
	assert.Contains(rec.Body.String(), "Password has been reset.")

	rec = suite.post("/reset/"+TOKEN, url.Values{"password": {"N3w!"}, "confirmPassword": {"N3w!"}})
	assert.Equal(http.StatusBadRequest, rec.Code)
	assert.Contains(rec.Body.String(), "Password reset token is invalid or has expired.")

	assert.Equal(http.StatusOK, suite.login("a@x.com", "P@ss1").Code)
	assert.Equal(http.StatusSeeOther, suite.login("a@x.com", "N3w!").Code)

	assert.Equal(1, suite.Recorder.Count(metrics.StepResetPassword, metrics.Success))
	assert.Equal(2, suite.Recorder.Count(metrics.StepResetPassword, metrics.Rejected))
}

func (suite *testRouterSuite) TestExpiredToken() {
	assert := suite.Require()
	assert.Equal(http.StatusOK, suite.register("alice", "a@x.com").Code)
	assert.Equal(http.StatusOK, suite.post("/forgot-password", url.Values{"email": {"a@x.com"}}).Code)

	suite.Now = NOW.Add(3700 * time.Second)

	assert.Equal(http.StatusBadRequest, suite.get("/reset/"+TOKEN).Code)
	rec := suite.post("/reset/"+TOKEN, url.Values{"password": {"N3w!"}, "confirmPassword": {"N3w!"}})
	assert.Equal(http.StatusBadRequest, rec.Code)
	assert.Equal(http.StatusSeeOther, suite.login("a@x.com", "P@ss1").Code)
}

func (suite *testRouterSuite) TestDeliveryFailure() {
	assert := suite.Require()
	assert.Equal(http.StatusOK, suite.register("alice", "a@x.com").Code)
	suite.Sender.ReturnError = true

	rec := suite.post("/forgot-password", url.Values{"email": {"a@x.com"}})
	assert.Equal(http.StatusInternalServerError, rec.Code)
	assert.Contains(rec.Body.String(), "Error sending email")

	assert.Equal(http.StatusOK, suite.get("/reset/"+TOKEN).Code)
}

func (suite *testRouterSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/login", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	suite.Router.ServeHTTP(rec, req)

	assert := suite.Require()
	assert.Equal("*", rec.Header().Get("Access-Control-Allow-Origin"))
}
