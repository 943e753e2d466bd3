package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/healthtracker/internal/logging"
	"github.com/dmitrijs2005/healthtracker/internal/server/models"
	"github.com/dmitrijs2005/healthtracker/internal/server/repositories/metrics"
)

type MetricService struct {
	repo   metrics.Repository
	logger logging.Logger
	now    func() time.Time
}

func NewMetricService(repo metrics.Repository, logger logging.Logger) *MetricService {
	return &MetricService{
		repo:   repo,
		logger: logger.With("module", "metric_service"),
		now:    time.Now,
	}
}

// CreateMetricParams carries the caller-supplied fields of a create. A nil
// ID requests a generated one. SymptomID is not checked against stored
// symptoms; orphaned references are tolerated.
type CreateMetricParams struct {
	ID        *string
	SymptomID string
	Date      time.Time
	Intensity models.Intensity
	Notes     string
	UpdatedAt time.Time
}

func (s *MetricService) Create(ctx context.Context, p CreateMetricParams) (*models.Metric, error) {
	id := models.NewMetricID()
	if p.ID != nil {
		id = *p.ID
	}

	metric := &models.Metric{
		ID:          id,
		SymptomID:   p.SymptomID,
		Date:        p.Date,
		Intensity:   p.Intensity,
		Notes:       p.Notes,
		PublishedAt: s.now().UTC(),
		UpdatedAt:   p.UpdatedAt,
	}
	if err := metric.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, metric); err != nil {
		s.logger.Error(ctx, "failed to create metric", "id", id, "error", err)
		return nil, err
	}

	s.logger.Info(ctx, "metric created", "id", id)
	return metric, nil
}

// ReadAll returns every metric, degrading to an empty collection on
// failure; the cause is only visible in logs.
func (s *MetricService) ReadAll(ctx context.Context) []*models.Metric {
	result, err := s.repo.SelectSince(ctx, nil)
	if err != nil {
		s.logger.Error(ctx, "failed to read metrics", "error", err)
		return []*models.Metric{}
	}
	if result == nil {
		result = []*models.Metric{}
	}
	return result
}

// UpdateMetricParams carries a partial update; nil fields keep their stored
// value.
type UpdateMetricParams struct {
	SymptomID *string
	Date      *time.Time
	Intensity *models.Intensity
	Notes     *string
	UpdatedAt *time.Time
}

func (s *MetricService) Update(ctx context.Context, id string, p UpdateMetricParams) (*models.Metric, error) {
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error(ctx, "failed to update metric", "id", id, "error", err)
		return nil, err
	}

	desired := *before
	desired.PublishedAt = s.now().UTC()

	if p.SymptomID != nil {
		desired.SymptomID = *p.SymptomID
	}
	if p.Date != nil {
		desired.Date = *p.Date
	}
	if p.Intensity != nil {
		desired.Intensity = *p.Intensity
	}
	if p.Notes != nil {
		desired.Notes = *p.Notes
	}
	if p.UpdatedAt != nil {
		desired.UpdatedAt = *p.UpdatedAt
	}

	if err := desired.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Replace(ctx, &desired); err != nil {
		s.logger.Error(ctx, "failed to update metric", "id", id, "error", err)
		return nil, err
	}

	s.logger.Info(ctx, "metric updated", "id", id)
	return &desired, nil
}

func (s *MetricService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error(ctx, "failed to delete metric", "id", id, "error", err)
		return err
	}

	s.logger.Info(ctx, "metric deleted", "id", id)
	return nil
}
