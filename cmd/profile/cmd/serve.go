package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/go-profile/internal/config"
	"github.com/deppfellow/go-profile/internal/database"
	"github.com/deppfellow/go-profile/internal/handler"
	"github.com/deppfellow/go-profile/internal/logger"
	"github.com/deppfellow/go-profile/internal/repository"
	"github.com/deppfellow/go-profile/internal/router"
	"github.com/deppfellow/go-profile/internal/server"
	"github.com/deppfellow/go-profile/internal/service"
	"github.com/deppfellow/go-profile/internal/validation"
	"github.com/spf13/cobra"
)

// DefaultContextTimeout bounds graceful shutdown.
const DefaultContextTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server and the background job worker.

Outside the local environment pending migrations are applied first.
The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

// runServe wires the application and blocks until a shutdown signal or a
// server failure. Once server.New succeeds, every return path goes through
// srv.Shutdown.
func runServe(parent context.Context) (err error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	if cfg.Primary.Env != "local" {
		if err := database.Migrate(parent, &log, cfg); err != nil {
			loggerService.Shutdown()
			return fmt.Errorf("migrating database: %w", err)
		}
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		loggerService.Shutdown()
		return fmt.Errorf("initializing server: %w", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout)
		defer cancel()

		if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
			err = errors.Join(err, fmt.Errorf("server forced to shutdown: %w", shutdownErr))
			return
		}
		log.Info().Msg("server exited properly")
	}()

	repos := repository.NewRepositories(srv)
	validator := validation.NewValidator(repos.Uniqueness)
	services := service.NewService(srv, repos)

	handlers := handler.NewHandlers(srv, services, validator)
	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			return fmt.Errorf("serving http: %w", err)
		}
	}

	return nil
}
