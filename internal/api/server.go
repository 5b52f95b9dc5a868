package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"cryptonews/internal/config"
	"cryptonews/internal/domain"
	"cryptonews/internal/extract"
)

// BatchRunner kicks off extraction batches. Satisfied by *extract.Factory.
type BatchRunner interface {
	Start(ctx context.Context, siteIDs []string) *extract.Handle
}

// NewsReader is the slice of the storage layer the read endpoints use.
type NewsReader interface {
	GetRecentItems(ctx context.Context, limit int) ([]domain.NewsRecord, error)
	GetItemsBySource(ctx context.Context, source string, limit int) ([]domain.NewsRecord, error)
	GetItemsByDateRange(ctx context.Context, start, end time.Time, limit int) ([]domain.NewsRecord, error)
}

// Saver persists a batch's records. Satisfied by *storage.PostgresStore.
type Saver interface {
	SaveItems(ctx context.Context, records []domain.NewsRecord) (int, error)
}

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// Server holds the dependencies for the HTTP server.
type Server struct {
	config     *config.Config
	router     http.Handler
	httpServer *http.Server
	runner     BatchRunner
	news       NewsReader
	saver      Saver
	checks     map[string]HealthCheck
	logger     *zap.Logger

	mu      sync.Mutex
	current *extract.Handle
}

func NewServer(cfg *config.Config, runner BatchRunner, news NewsReader, saver Saver, checks map[string]HealthCheck, logger *zap.Logger) *Server {
	s := &Server{
		config: cfg,
		runner: runner,
		news:   news,
		saver:  saver,
		checks: checks,
		logger: logger.With(zap.String("component", "api")),
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", s.config.ServerPort),
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.current != nil {
		s.current.Cancel()
	}
	s.mu.Unlock()
	return s.httpServer.Shutdown(ctx)
}
