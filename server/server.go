package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/hansard/core"
	"github.com/poiesic/hansard/explore"
)

// Explorer runs one explore request.
type Explorer interface {
	Explore(ctx context.Context, req core.Request) (*explore.Result, error)
}

// NameMatcher scores a query against known speaker names.
type NameMatcher interface {
	Matches(query string, known []string) []core.NameMatch
}

// Dependencies are the collaborators the HTTP handlers call into.
type Dependencies struct {
	Explorer Explorer
	Topics   explore.TopicFinder
	// Keywords is optional; topic responses omit keywords without it.
	Keywords explore.KeywordSource
	// Names is optional; /api/v1/names answers 404 without it.
	Names   NameMatcher
	Choices *explore.Choices
}

// Server is the JSON HTTP surface over an explorer.
type Server struct {
	deps            Dependencies
	router          *gin.Engine
	server          *http.Server
	defaultTopN     int
	maxTopN         int
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets the logger used for request logs.
// If logger is nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithTopN sets the default and maximum number of topics /api/v1/topics returns.
func WithTopN(defaultN, maxN int) Option {
	return func(s *Server) error {
		if defaultN <= 0 || maxN < defaultN {
			return fmt.Errorf("invalid topic limits %d/%d", defaultN, maxN)
		}
		s.defaultTopN = defaultN
		s.maxTopN = maxN
		return nil
	}
}

// WithShutdownTimeout bounds how long Run waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) error {
		if d <= 0 {
			return fmt.Errorf("shutdown timeout must be positive, got %s", d)
		}
		s.shutdownTimeout = d
		return nil
	}
}

// New builds a Server and registers its routes.
func New(deps Dependencies, opts ...Option) (*Server, error) {
	if deps.Explorer == nil {
		return nil, ErrExplorerRequired
	}
	if deps.Topics == nil {
		return nil, ErrTopicFinderRequired
	}
	if deps.Choices == nil {
		return nil, ErrChoicesRequired
	}

	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		deps:            deps,
		router:          gin.New(),
		defaultTopN:     5,
		maxTopN:         50,
		shutdownTimeout: 10 * time.Second,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.router.Use(gin.Recovery())
	s.router.Use(requestLogger(s.logger))
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.healthz)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/choices", s.choices)
		v1.GET("/explore", s.explore)
		v1.POST("/explore", s.explore)
		v1.GET("/topics", s.topics)
		v1.GET("/names", s.names)
	}
}

// Handler returns the router for embedding in another server or for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down http server")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
