package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Samayank/Renal-Tumor-Detection/internal/logging"
)

const shutdownGrace = 10 * time.Second

// Server wraps the standard HTTP server with lifecycle management tied to a
// context.
type Server struct {
	srv    *http.Server
	logger logging.Logger
}

func NewServer(addr string, handler http.Handler, logger logging.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger.With("module", "http_server"),
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
// Websocket connections are not covered by the drain; the gateway closes
// them separately.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
