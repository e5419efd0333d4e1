package app

import (
	"fmt"
	"net/http"
	"passreset/internal/app/deps"
	"passreset/internal/app/services"
	loginwithemail "passreset/internal/http/handlers/auth/log_in_with_email"
	resetpassword "passreset/internal/http/handlers/auth/reset_password"
	sendpasswordresettoken "passreset/internal/http/handlers/auth/send_password_reset_token"
	signupwithemail "passreset/internal/http/handlers/auth/sign_up_with_email"
	"passreset/internal/http/handlers/pages"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterOptions struct {
	AllowedOrigins []string
	IsTestMode     bool
	Metrics        http.Handler
}

func NewRouter(s *services.Services, opts RouterOptions) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	router.Method(http.MethodGet, "/", pages.New(pages.Landing))
	router.Method(http.MethodGet, "/home", pages.New(pages.Home))

	router.Method(http.MethodGet, "/register", pages.New(pages.Register))
	router.Method(http.MethodPost, "/register", signupwithemail.New(s.SignUpWithEmail))

	router.Method(http.MethodGet, "/login", pages.New(pages.Login))
	router.Method(http.MethodPost, "/login", loginwithemail.New(s.LogInWithEmail))

	router.Method(http.MethodGet, "/resetPassword", pages.New(pages.ResetRequest))
	router.Method(
		http.MethodPost,
		"/forgot-password",
		sendpasswordresettoken.New(s.SendPasswordResetToken, opts.IsTestMode),
	)
	router.Method(
		http.MethodGet,
		fmt.Sprintf("/reset/{%s}", resetpassword.TokenParam),
		resetpassword.NewForm(s.ValidatePasswordResetToken),
	)
	router.Method(
		http.MethodPost,
		fmt.Sprintf("/reset/{%s}", resetpassword.TokenParam),
		resetpassword.New(s.ResetPassword),
	)

	if opts.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	return router
}

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	router := NewRouter(s, RouterOptions{
		AllowedOrigins: deps.Config.AllowedOrigins,
		IsTestMode:     deps.Config.IsTestMode,
		Metrics:        deps.Metrics.Handler(),
	})

	return &http.Server{
		Handler: router,
		Addr:    fmt.Sprintf("0.0.0.0:%d", deps.Config.Port),
	}
}
