// Package httpapi exposes the core operations over HTTP. It owns routing,
// the shared-secret authentication gate, JSON codecs and the uniform
// mapping of the error taxonomy to status codes. No core logic lives here.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/healthtracker/internal/logging"
	"github.com/dmitrijs2005/healthtracker/internal/server/api"
	"github.com/dmitrijs2005/healthtracker/internal/server/models"
	"github.com/dmitrijs2005/healthtracker/internal/server/services"
)

// SymptomService is the slice of the symptom operations the handlers need.
type SymptomService interface {
	Create(ctx context.Context, p services.CreateSymptomParams) (*models.Symptom, error)
	ReadAll(ctx context.Context) []*models.Symptom
	Update(ctx context.Context, id string, p services.UpdateSymptomParams) (*models.Symptom, error)
	Delete(ctx context.Context, id string) error
}

// MetricService is the slice of the metric operations the handlers need.
type MetricService interface {
	Create(ctx context.Context, p services.CreateMetricParams) (*models.Metric, error)
	ReadAll(ctx context.Context) []*models.Metric
	Update(ctx context.Context, id string, p services.UpdateMetricParams) (*models.Metric, error)
	Delete(ctx context.Context, id string) error
}

// SyncService is the bulk sync protocol surface.
type SyncService interface {
	ReadAllSince(ctx context.Context, publishedSince *time.Time) (*api.ChangeSet, error)
	PushAll(ctx context.Context, batch *api.ChangeSet) *api.PushResult
}

type Server struct {
	address  string
	apiToken string
	logger   logging.Logger
	symptoms SymptomService
	metrics  MetricService
	sync     SyncService
}

func NewServer(address string, logger logging.Logger, apiToken string, ss SymptomService, ms MetricService, sync SyncService) *Server {
	return &Server{
		address:  address,
		apiToken: apiToken,
		logger:   logger.With("module", "http_server"),
		symptoms: ss,
		metrics:  ms,
		sync:     sync,
	}
}

// Handler builds the full route table. Every route except the health check
// sits behind the authentication gate.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /get-all", s.withAuth(s.handleReadAll))
	mux.HandleFunc("POST /push-all", s.withAuth(s.handlePushAll))

	mux.HandleFunc("POST /symptoms", s.withAuth(s.handleCreateSymptom))
	mux.HandleFunc("GET /symptoms", s.withAuth(s.handleListSymptoms))
	mux.HandleFunc("PATCH /symptoms/{id}", s.withAuth(s.handleUpdateSymptom))
	mux.HandleFunc("DELETE /symptoms/{id}", s.withAuth(s.handleDeleteSymptom))

	mux.HandleFunc("POST /metrics", s.withAuth(s.handleCreateMetric))
	mux.HandleFunc("GET /metrics", s.withAuth(s.handleListMetrics))
	mux.HandleFunc("PATCH /metrics/{id}", s.withAuth(s.handleUpdateMetric))
	mux.HandleFunc("DELETE /metrics/{id}", s.withAuth(s.handleDeleteMetric))

	return s.withRequestID(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
