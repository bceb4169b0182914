package infra

import (
	"context"
	"net/http"
	"time"
)

// HTTPServer wraps http.Server so main can start and drain the API
// without touching stdlib server fields directly.
type HTTPServer struct {
	server *http.Server
}

// NewHTTPServer builds the API server with timeouts from configuration.
func NewHTTPServer(cfg *Config, handler http.Handler) *HTTPServer {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}

	return &HTTPServer{server: srv}
}

// Start serves requests until Shutdown or a listener error.
func (s *HTTPServer) Start() error {
	if s.server == nil {
		return nil
	}
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests within ctx's deadline. An offer
// transaction already past commit completes; its notification goroutine
// is detached and unaffected.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
