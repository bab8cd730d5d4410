// Package server exposes the content store over HTTP for the public site and
// the admin panel.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"renonx-go/internal/cms"
)

const shutdownTimeout = 5 * time.Second

// Options configure a Server. Zero values fall back to the real clock, random
// UUIDs, a no-op logger and CORS open to every origin.
type Options struct {
	AllowedOrigins []string
	Logger         cms.Logger
	Clock          cms.Clock
	IDs            cms.IDGenerator
}

// Server routes HTTP requests to a ContentStore.
type Server struct {
	store   *cms.ContentStore
	bucket  cms.AssetBucket
	logger  cms.Logger
	clock   cms.Clock
	ids     cms.IDGenerator
	origins []string
	engine  *gin.Engine
}

// New builds a Server and its routes. bucket may be nil, in which case
// /assets/ answers 404 for every name.
func New(store *cms.ContentStore, bucket cms.AssetBucket, opts Options) *Server {
	s := &Server{
		store:   store,
		bucket:  bucket,
		logger:  opts.Logger,
		clock:   opts.Clock,
		ids:     opts.IDs,
		origins: opts.AllowedOrigins,
	}
	if s.logger == nil {
		s.logger = cms.NewNopLogger()
	}
	if s.clock == nil {
		s.clock = cms.RealClock{}
	}
	if s.ids == nil {
		s.ids = cms.UUIDGenerator{}
	}
	s.engine = s.routes()
	return s
}

// Handler returns the routes wrapped in the CORS policy.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.engine)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	<-errCh
	s.logger.Info("server stopped")
	return nil
}
