// Package models holds the domain entities tracked across devices and their
// validation rules. PublishedAt is the server-side causality clock, stamped
// on every server write; UpdatedAt is client-authored and advisory only.
package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/healthtracker/internal/common"
)

type Symptom struct {
	ID          string
	Name        string
	OtherNames  []string
	PublishedAt time.Time
	UpdatedAt   time.Time
}

// Validate checks the fields a client controls. Timestamps are validated at
// parse time, so only identity and the required name are checked here.
func (s *Symptom) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: 'id' must not be empty", common.ErrValidation)
	}
	if s.Name == "" {
		return fmt.Errorf("%w: 'name' must not be empty", common.ErrValidation)
	}
	return nil
}
