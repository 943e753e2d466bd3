package metrics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/healthtracker/internal/common"
	"github.com/dmitrijs2005/healthtracker/internal/dbx"
	"github.com/dmitrijs2005/healthtracker/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type row struct {
	id          string
	publishedAt string
	symptomID   string
	date        string
	updatedAt   string
	intensity   string
	notes       string
}

func toRow(m *models.Metric) row {
	return row{
		id:          m.ID,
		publishedAt: models.FormatTime(m.PublishedAt),
		symptomID:   m.SymptomID,
		date:        models.FormatTime(m.Date),
		updatedAt:   models.FormatTime(m.UpdatedAt),
		intensity:   string(m.Intensity),
		notes:       m.Notes,
	}
}

func (r row) toDomain() (*models.Metric, error) {
	publishedAt, err := time.Parse(time.RFC3339, r.publishedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: metric %s has unparsable published_at %q", common.ErrConversion, r.id, r.publishedAt)
	}
	date, err := time.Parse(time.RFC3339, r.date)
	if err != nil {
		return nil, fmt.Errorf("%w: metric %s has unparsable date %q", common.ErrConversion, r.id, r.date)
	}
	updatedAt, err := time.Parse(time.RFC3339, r.updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: metric %s has unparsable updated_at %q", common.ErrConversion, r.id, r.updatedAt)
	}
	intensity, err := models.ParseIntensity(r.intensity)
	if err != nil {
		return nil, fmt.Errorf("%w: metric %s has unsupported intensity %q", common.ErrConversion, r.id, r.intensity)
	}

	return &models.Metric{
		ID:          r.id,
		SymptomID:   r.symptomID,
		Date:        date.UTC(),
		Intensity:   intensity,
		Notes:       r.notes,
		PublishedAt: publishedAt.UTC(),
		UpdatedAt:   updatedAt.UTC(),
	}, nil
}

const selectColumns = `id, published_at, symptom_id, date, updated_at, intensity, notes`

func (r *PostgresRepository) Insert(ctx context.Context, metric *models.Metric) error {
	query :=
		`INSERT INTO metrics (id, published_at, symptom_id, date, updated_at, intensity, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 `

	m := toRow(metric)
	_, err := r.db.ExecContext(ctx, query, m.id, m.publishedAt, m.symptomID, m.date, m.updatedAt, m.intensity, m.notes)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return fmt.Errorf("%w: metric %s", common.ErrConflict, m.id)
		}
		return fmt.Errorf("%w: failed to create metric: %v", common.ErrStore, err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Metric, error) {
	query := `SELECT ` + selectColumns + ` FROM metrics WHERE id = $1`

	var m row
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.id, &m.publishedAt, &m.symptomID, &m.date, &m.updatedAt, &m.intensity, &m.notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: metric %s", common.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to read metric %s: %v", common.ErrStore, id, err)
	}

	return m.toDomain()
}

func (r *PostgresRepository) SelectSince(ctx context.Context, publishedSince *time.Time) ([]*models.Metric, error) {
	query := `SELECT ` + selectColumns + ` FROM metrics ORDER BY published_at`
	args := []any{}
	if publishedSince != nil {
		query = `SELECT ` + selectColumns + ` FROM metrics WHERE published_at > $1 ORDER BY published_at`
		args = append(args, models.FormatTime(*publishedSince))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read metrics: %v", common.ErrStore, err)
	}
	defer rows.Close()

	var result []*models.Metric
	for rows.Next() {
		var m row
		if err := rows.Scan(&m.id, &m.publishedAt, &m.symptomID, &m.date, &m.updatedAt, &m.intensity, &m.notes); err != nil {
			return nil, fmt.Errorf("%w: failed to read metrics: %v", common.ErrStore, err)
		}
		metric, err := m.toDomain()
		if err != nil {
			return nil, err
		}
		result = append(result, metric)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read metrics: %v", common.ErrStore, err)
	}

	return result, nil
}

func (r *PostgresRepository) Replace(ctx context.Context, metric *models.Metric) error {
	query :=
		`UPDATE metrics SET published_at=$2, symptom_id=$3, date=$4, updated_at=$5, intensity=$6, notes=$7
		 WHERE id = $1
		 `

	m := toRow(metric)
	result, err := r.db.ExecContext(ctx, query, m.id, m.publishedAt, m.symptomID, m.date, m.updatedAt, m.intensity, m.notes)
	if err != nil {
		return fmt.Errorf("%w: failed to update metric %s: %v", common.ErrStore, m.id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to update metric %s: %v", common.ErrStore, m.id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: metric %s", common.ErrNotFound, m.id)
	}

	return nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, metric *models.Metric) error {
	query :=
		`INSERT INTO metrics (id, published_at, symptom_id, date, updated_at, intensity, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		     published_at=EXCLUDED.published_at,
		     symptom_id=EXCLUDED.symptom_id,
		     date=EXCLUDED.date,
		     updated_at=EXCLUDED.updated_at,
		     intensity=EXCLUDED.intensity,
		     notes=EXCLUDED.notes
		 `

	m := toRow(metric)
	_, err := r.db.ExecContext(ctx, query, m.id, m.publishedAt, m.symptomID, m.date, m.updatedAt, m.intensity, m.notes)
	if err != nil {
		return fmt.Errorf("%w: failed to upsert metric %s: %v", common.ErrStore, m.id, err)
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM metrics WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete metric %s: %v", common.ErrStore, id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to delete metric %s: %v", common.ErrStore, id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: metric %s", common.ErrNotFound, id)
	}

	return nil
}
