package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lepinkainen/cinerelay/internal/config"
	"github.com/lepinkainen/cinerelay/internal/server"
)

const shutdownTimeout = 30 * time.Second

// ServeCmd represents the serve command
type ServeCmd struct {
	Listen string `help:"Address to listen on (overrides config, default :8000)"`
}

func (s *ServeCmd) Run(cfg config.Config) error {
	svc, err := newService(cfg)
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		slog.Warn("No catalog API key configured, serving empty results", "provider", cfg.Provider)
	}

	srv := server.New(svc, newRelay(cfg), server.Options{
		Addr:         cfg.Listen,
		ProviderName: cfg.Provider,
		CORSOrigins:  cfg.CORSOrigins,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
