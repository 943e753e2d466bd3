package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/healthtracker/internal/common"
)

// Intensity is the closed set of symptom intensities. Values are the exact
// lowercase tokens used on the wire and in the store; matching is
// case-sensitive.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// ParseIntensity maps a raw token to an Intensity. Anything outside the
// closed set is a validation failure, never a silent default.
func ParseIntensity(raw string) (Intensity, error) {
	switch Intensity(raw) {
	case IntensityLow, IntensityMedium, IntensityHigh:
		return Intensity(raw), nil
	default:
		return "", fmt.Errorf("%w: %q is not a supported intensity", common.ErrValidation, raw)
	}
}

// Metric records the intensity of a symptom at a point in time. SymptomID
// is not referentially enforced; orphaned references are tolerated.
type Metric struct {
	ID          string
	SymptomID   string
	Date        time.Time
	Intensity   Intensity
	Notes       string
	PublishedAt time.Time
	UpdatedAt   time.Time
}

func (m *Metric) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: 'id' must not be empty", common.ErrValidation)
	}
	if m.SymptomID == "" {
		return fmt.Errorf("%w: 'symptomId' must not be empty", common.ErrValidation)
	}
	if _, err := ParseIntensity(string(m.Intensity)); err != nil {
		return err
	}
	return nil
}
