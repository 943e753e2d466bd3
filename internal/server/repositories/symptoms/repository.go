// Package symptoms persists symptom rows. Timestamps are stored as
// canonical RFC3339 text and the alias list as one comma-joined column;
// the repository owns the split/join and the row→entity decoding.
package symptoms

import (
	"context"
	"time"

	"github.com/dmitrijs2005/healthtracker/internal/server/models"
)

type Repository interface {
	// Insert adds a new row; common.ErrConflict if the id already exists.
	Insert(ctx context.Context, symptom *models.Symptom) error

	// GetByID returns one symptom; common.ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*models.Symptom, error)

	// SelectSince returns every symptom with published_at strictly after
	// the cursor, or all symptoms when the cursor is nil. Decoding stops at
	// the first corrupt row and fails the whole read.
	SelectSince(ctx context.Context, publishedSince *time.Time) ([]*models.Symptom, error)

	// Replace overwrites every field of the row with the given id;
	// common.ErrNotFound if the id does not exist.
	Replace(ctx context.Context, symptom *models.Symptom) error

	// Upsert inserts the row or, if the id exists, replaces all fields.
	Upsert(ctx context.Context, symptom *models.Symptom) error

	// Delete removes the row; common.ErrNotFound if nothing was removed.
	Delete(ctx context.Context, id string) error
}
