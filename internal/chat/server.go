package chat

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/julianstephens/learnnova/internal/logger"
)

// Serve runs the chat HTTP server on addr until ctx is done. While it runs
// a lockfile advertises the bound address to local clients.
func Serve(ctx context.Context, addr string, svc *Service) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	lockfile, err := LockfilePath()
	if err == nil {
		if err := writeLockfile(lockfile, ln.Addr().String()); err != nil {
			logger.Warn("Failed to write chat lockfile", "path", lockfile, "error", err)
		}
		defer os.Remove(lockfile)
	}

	srv := &http.Server{
		Handler:           NewRouter(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Chat server listening", "addr", ln.Addr().String(), "available", svc.Available())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down chat server: %w", err)
	}
	logger.Info("Chat server stopped")
	return nil
}
