// Package services implements the operations the transport layer exposes:
// per-kind create/list/patch/delete and the bulk sync protocol. Services
// stamp published_at on every write; updated_at is taken from the caller
// and never consulted for conflict decisions.
package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/healthtracker/internal/logging"
	"github.com/dmitrijs2005/healthtracker/internal/server/models"
	"github.com/dmitrijs2005/healthtracker/internal/server/repositories/symptoms"
)

type SymptomService struct {
	repo   symptoms.Repository
	logger logging.Logger
	now    func() time.Time
}

func NewSymptomService(repo symptoms.Repository, logger logging.Logger) *SymptomService {
	return &SymptomService{
		repo:   repo,
		logger: logger.With("module", "symptom_service"),
		now:    time.Now,
	}
}

// CreateSymptomParams carries the caller-supplied fields of a create. A nil
// ID requests a generated one.
type CreateSymptomParams struct {
	ID         *string
	Name       string
	OtherNames []string
	UpdatedAt  time.Time
}

func (s *SymptomService) Create(ctx context.Context, p CreateSymptomParams) (*models.Symptom, error) {
	id := models.NewSymptomID()
	if p.ID != nil {
		id = *p.ID
	}

	symptom := &models.Symptom{
		ID:          id,
		Name:        p.Name,
		OtherNames:  p.OtherNames,
		PublishedAt: s.now().UTC(),
		UpdatedAt:   p.UpdatedAt,
	}
	if err := symptom.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, symptom); err != nil {
		s.logger.Error(ctx, "failed to create symptom", "id", id, "error", err)
		return nil, err
	}

	s.logger.Info(ctx, "symptom created", "id", id)
	return symptom, nil
}

// ReadAll returns every symptom. Store and decoding failures degrade to an
// empty collection; the cause is only visible in logs.
func (s *SymptomService) ReadAll(ctx context.Context) []*models.Symptom {
	result, err := s.repo.SelectSince(ctx, nil)
	if err != nil {
		s.logger.Error(ctx, "failed to read symptoms", "error", err)
		return []*models.Symptom{}
	}
	if result == nil {
		result = []*models.Symptom{}
	}
	return result
}

// UpdateSymptomParams carries a partial update; nil fields keep their
// stored value.
type UpdateSymptomParams struct {
	Name       *string
	OtherNames *[]string
	UpdatedAt  *time.Time
}

// Update reads the stored symptom, applies only the provided fields onto a
// copy, re-stamps published_at, validates the merged result and replaces
// the row.
func (s *SymptomService) Update(ctx context.Context, id string, p UpdateSymptomParams) (*models.Symptom, error) {
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error(ctx, "failed to update symptom", "id", id, "error", err)
		return nil, err
	}

	desired := *before
	desired.PublishedAt = s.now().UTC()

	if p.Name != nil {
		desired.Name = *p.Name
	}
	if p.OtherNames != nil {
		desired.OtherNames = *p.OtherNames
	}
	if p.UpdatedAt != nil {
		desired.UpdatedAt = *p.UpdatedAt
	}

	if err := desired.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Replace(ctx, &desired); err != nil {
		s.logger.Error(ctx, "failed to update symptom", "id", id, "error", err)
		return nil, err
	}

	s.logger.Info(ctx, "symptom updated", "id", id)
	return &desired, nil
}

func (s *SymptomService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error(ctx, "failed to delete symptom", "id", id, "error", err)
		return err
	}

	s.logger.Info(ctx, "symptom deleted", "id", id)
	return nil
}
