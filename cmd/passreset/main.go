package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"passreset/internal/app"
	"passreset/internal/app/deps"
	"passreset/internal/app/services"
	"syscall"
	"time"

	dl "passreset/internal/core/domain/logging"
)

const shutdownTimeout = 20 * time.Second

func main() {
	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := app.InitHttpServer(deps, services)
	serveErr := make(chan error, 1)
	go func() { serveErr <- serve(httpServer, deps) }()

	select {
	case <-ctx.Done():
		deps.Logger.Info(context.Background(), "Stop signal received.")
	case err := <-serveErr:
		deps.Logger.Error(context.Background(), "HTTP server has failed.", dl.Err(err))
	}
	shutdown(httpServer, deps, shutdownDeps)
}

func serve(server *http.Server, deps *deps.Deps) error {
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("baseURL", deps.Config.BaseURL.String()),
		dl.Entry("schemaVersion", deps.SchemaVersion),
		dl.Entry("emailTransport", deps.Config.EmailTransport),
		dl.Entry("resetTokenValidFor", deps.Config.PasswordResetValidDuration.String()),
		dl.Entry("isTestMode", deps.Config.IsTestMode),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// shutdown drains in-flight requests before the pool and the logger close.
func shutdown(server *http.Server, deps *deps.Deps, shutdownDeps func()) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		deps.Logger.Error(ctx, "HTTP server did not shut down in time.", dl.Err(err))
	} else {
		deps.Logger.Info(ctx, "HTTP server has shut down.")
	}
	shutdownDeps()
}
