package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/prismtrack/console/internal/backend"
	"github.com/prismtrack/console/internal/config"
	httpapp "github.com/prismtrack/console/internal/http"
	"github.com/prismtrack/console/internal/http/session"
	"github.com/prismtrack/console/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:         "serve",
	Short:       "Run the console HTTP server.",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationStructuredLog: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
	} else {
		slog.Warn("DATABASE_URL not set, sessions are in-memory and will not survive restarts")
	}

	sessions := session.NewManager(pool, cfg.AuthCookieSecure)

	api, err := backend.New(cfg.APIBaseURL, backend.Options{
		Timeout:         cfg.BackendTimeout,
		DownloadTimeout: cfg.DownloadTimeout,
		Logger:          slog.Default(),
	})
	if err != nil {
		return err
	}

	srv, err := httpapp.NewEchoServer(cfg, api, sessions)
	if err != nil {
		return err
	}

	_, metricsErrCh := metrics.StartServer(ctx, cfg.MetricsAddr)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.HTTPAddr, "backend", cfg.APIBaseURL)
		errCh <- srv.StartServer(httpServer)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-metricsErrCh:
		return err
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
