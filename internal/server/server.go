package server

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"

	"webhook-examples/internal/common/logging"
)

// Server represents the catalog's HTTP listener
type Server struct {
	srv     *http.Server
	tlsCert string
	tlsKey  string
}

// New creates a new server instance
func New(handler http.Handler, port, tlsCert, tlsKey string) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         ":" + port,
			Handler:      handler,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		tlsCert: tlsCert,
		tlsKey:  tlsKey,
	}
}

// Start begins serving in the background. The returned channel carries the
// listener error if serving stops for any reason other than Shutdown.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)
	useTLS := s.tlsCert != "" && s.tlsKey != ""

	logging.Info("HTTP server listening",
		logging.String("addr", s.srv.Addr),
		logging.Bool("tls", useTLS),
	)

	if useTLS {
		s.srv.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
		go func() {
			if err := s.srv.ListenAndServeTLS(s.tlsCert, s.tlsKey); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()
		return errCh
	}

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
