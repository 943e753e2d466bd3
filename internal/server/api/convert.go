package api

import (
	"time"

	"github.com/dmitrijs2005/healthtracker/internal/server/models"
)

// SymptomToDomain converts a wire symptom into its domain form, stamping
// the server-assigned publishedAt. Malformed timestamps and missing
// required fields surface common.ErrValidation.
func SymptomToDomain(s Symptom, publishedAt time.Time) (*models.Symptom, error) {
	updatedAt, err := models.ParseTime("updatedAt", s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	symptom := &models.Symptom{
		ID:          s.ID,
		Name:        s.Name,
		OtherNames:  s.OtherNames,
		PublishedAt: publishedAt.UTC(),
		UpdatedAt:   updatedAt,
	}
	if err := symptom.Validate(); err != nil {
		return nil, err
	}
	return symptom, nil
}

// SymptomFromDomain converts a domain symptom into its wire form.
func SymptomFromDomain(s *models.Symptom) Symptom {
	otherNames := s.OtherNames
	if otherNames == nil {
		otherNames = []string{}
	}
	return Symptom{
		ID:         s.ID,
		Name:       s.Name,
		OtherNames: otherNames,
		UpdatedAt:  models.FormatTime(s.UpdatedAt),
	}
}

// MetricToDomain converts a wire metric into its domain form, stamping the
// server-assigned publishedAt.
func MetricToDomain(m Metric, publishedAt time.Time) (*models.Metric, error) {
	date, err := models.ParseTime("date", m.Date)
	if err != nil {
		return nil, err
	}
	updatedAt, err := models.ParseTime("updatedAt", m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	intensity, err := models.ParseIntensity(m.Intensity)
	if err != nil {
		return nil, err
	}

	metric := &models.Metric{
		ID:          m.ID,
		SymptomID:   m.SymptomID,
		Date:        date,
		Intensity:   intensity,
		Notes:       m.Notes,
		PublishedAt: publishedAt.UTC(),
		UpdatedAt:   updatedAt,
	}
	if err := metric.Validate(); err != nil {
		return nil, err
	}
	return metric, nil
}

// MetricFromDomain converts a domain metric into its wire form.
func MetricFromDomain(m *models.Metric) Metric {
	return Metric{
		ID:        m.ID,
		SymptomID: m.SymptomID,
		Date:      models.FormatTime(m.Date),
		UpdatedAt: models.FormatTime(m.UpdatedAt),
		Intensity: string(m.Intensity),
		Notes:     m.Notes,
	}
}
