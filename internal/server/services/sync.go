package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/healthtracker/internal/logging"
	"github.com/dmitrijs2005/healthtracker/internal/server/api"
	"github.com/dmitrijs2005/healthtracker/internal/server/repositories/metrics"
	"github.com/dmitrijs2005/healthtracker/internal/server/repositories/symptoms"
)

// SyncService implements the bulk sync protocol: a cursor-based pull and a
// batch push with per-item outcome accounting. It is stateless across
// invocations; the store is the only shared state.
type SyncService struct {
	symptoms symptoms.Repository
	metrics  metrics.Repository
	logger   logging.Logger
	now      func() time.Time
}

func NewSyncService(sr symptoms.Repository, mr metrics.Repository, logger logging.Logger) *SyncService {
	return &SyncService{
		symptoms: sr,
		metrics:  mr,
		logger:   logger.With("module", "sync_service"),
		now:      time.Now,
	}
}

// ReadAllSince returns every symptom and metric published strictly after
// the cursor, or everything when the cursor is nil, as one atomic response.
// Any store or decoding failure fails the whole pull; one poisoned row
// blocks the batch rather than silently hiding changes.
func (s *SyncService) ReadAllSince(ctx context.Context, publishedSince *time.Time) (*api.ChangeSet, error) {
	storedSymptoms, err := s.symptoms.SelectSince(ctx, publishedSince)
	if err != nil {
		s.logger.Error(ctx, "failed to read symptoms", "error", err)
		return nil, err
	}

	storedMetrics, err := s.metrics.SelectSince(ctx, publishedSince)
	if err != nil {
		s.logger.Error(ctx, "failed to read metrics", "error", err)
		return nil, err
	}

	changes := &api.ChangeSet{
		Symptoms: make([]api.Symptom, 0, len(storedSymptoms)),
		Metrics:  make([]api.Metric, 0, len(storedMetrics)),
	}
	for _, symptom := range storedSymptoms {
		changes.Symptoms = append(changes.Symptoms, api.SymptomFromDomain(symptom))
	}
	for _, metric := range storedMetrics {
		changes.Metrics = append(changes.Metrics, api.MetricFromDomain(metric))
	}

	return changes, nil
}

// PushAll applies one batch of client changes. The whole batch shares a
// single published_at; symptoms are processed before metrics, each item
// independently, in input order. A pushed id always upserts: an existing
// server copy is overwritten unconditionally, with no timestamp or version
// comparison. The newest pusher wins.
func (s *SyncService) PushAll(ctx context.Context, batch *api.ChangeSet) *api.PushResult {
	publishedAt := s.now().UTC()

	result := &api.PushResult{
		Symptoms: api.PushOutcome{Successful: []string{}, Failed: []string{}},
		Metrics:  api.PushOutcome{Successful: []string{}, Failed: []string{}},
	}

	for _, in := range batch.Symptoms {
		symptom, err := api.SymptomToDomain(in, publishedAt)
		if err != nil {
			s.logger.Error(ctx, "failed to convert pushed symptom", "id", in.ID, "error", err)
			result.Symptoms.Failed = append(result.Symptoms.Failed, in.ID)
			continue
		}

		if err := s.symptoms.Upsert(ctx, symptom); err != nil {
			s.logger.Error(ctx, "failed to upsert symptom", "id", in.ID, "error", err)
			result.Symptoms.Failed = append(result.Symptoms.Failed, in.ID)
			continue
		}

		result.Symptoms.Successful = append(result.Symptoms.Successful, in.ID)
	}

	for _, in := range batch.Metrics {
		metric, err := api.MetricToDomain(in, publishedAt)
		if err != nil {
			s.logger.Error(ctx, "failed to convert pushed metric", "id", in.ID, "error", err)
			result.Metrics.Failed = append(result.Metrics.Failed, in.ID)
			continue
		}

		if err := s.metrics.Upsert(ctx, metric); err != nil {
			s.logger.Error(ctx, "failed to upsert metric", "id", in.ID, "error", err)
			result.Metrics.Failed = append(result.Metrics.Failed, in.ID)
			continue
		}

		result.Metrics.Successful = append(result.Metrics.Successful, in.ID)
	}

	return result
}
