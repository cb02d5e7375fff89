package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Serve accepts connections on ln until ctx is done, then shuts srv down
// within timeout. It returns only after in-flight requests have drained or
// the timeout has expired. srv must not be shut down by anyone else.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration, log *zap.Logger) error {
	done := make(chan error, 1)
	stopped := make(chan struct{})
	defer close(stopped)

	go func() {
		select {
		case <-ctx.Done():
		case <-stopped:
			done <- nil
			return
		}
		log.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	if err := <-done; err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
