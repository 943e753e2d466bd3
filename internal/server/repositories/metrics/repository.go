// Package metrics persists metric rows, with the same text-encoded storage
// conventions as the symptoms repository.
package metrics

import (
	"context"
	"time"

	"github.com/dmitrijs2005/healthtracker/internal/server/models"
)

type Repository interface {
	// Insert adds a new row; common.ErrConflict if the id already exists.
	Insert(ctx context.Context, metric *models.Metric) error

	// GetByID returns one metric; common.ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*models.Metric, error)

	// SelectSince returns every metric with published_at strictly after the
	// cursor, or all metrics when the cursor is nil. Decoding stops at the
	// first corrupt row and fails the whole read.
	SelectSince(ctx context.Context, publishedSince *time.Time) ([]*models.Metric, error)

	// Replace overwrites every field of the row with the given id;
	// common.ErrNotFound if the id does not exist.
	Replace(ctx context.Context, metric *models.Metric) error

	// Upsert inserts the row or, if the id exists, replaces all fields.
	Upsert(ctx context.Context, metric *models.Metric) error

	// Delete removes the row; common.ErrNotFound if nothing was removed.
	Delete(ctx context.Context, id string) error
}
