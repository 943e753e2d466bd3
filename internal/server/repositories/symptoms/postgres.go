package symptoms

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
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

// row is the stored shape of a symptom: timestamps as canonical RFC3339
// text, aliases comma-joined.
type row struct {
	id          string
	publishedAt string
	name        string
	otherNames  string
	updatedAt   string
}

func toRow(s *models.Symptom) row {
	return row{
		id:          s.ID,
		publishedAt: models.FormatTime(s.PublishedAt),
		name:        s.Name,
		otherNames:  strings.Join(s.OtherNames, ","),
		updatedAt:   models.FormatTime(s.UpdatedAt),
	}
}

func (r row) toDomain() (*models.Symptom, error) {
	publishedAt, err := time.Parse(time.RFC3339, r.publishedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: symptom %s has unparsable published_at %q", common.ErrConversion, r.id, r.publishedAt)
	}
	updatedAt, err := time.Parse(time.RFC3339, r.updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: symptom %s has unparsable updated_at %q", common.ErrConversion, r.id, r.updatedAt)
	}

	return &models.Symptom{
		ID:          r.id,
		Name:        r.name,
		OtherNames:  splitNames(r.otherNames),
		PublishedAt: publishedAt.UTC(),
		UpdatedAt:   updatedAt.UTC(),
	}, nil
}

// splitNames drops empty segments so an empty alias column round-trips to
// an empty list, not a list holding one empty string.
func splitNames(joined string) []string {
	names := []string{}
	for _, name := range strings.Split(joined, ",") {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

func (r *PostgresRepository) Insert(ctx context.Context, symptom *models.Symptom) error {
	query :=
		`INSERT INTO symptoms (id, published_at, name, other_names, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	s := toRow(symptom)
	_, err := r.db.ExecContext(ctx, query, s.id, s.publishedAt, s.name, s.otherNames, s.updatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return fmt.Errorf("%w: symptom %s", common.ErrConflict, s.id)
		}
		return fmt.Errorf("%w: failed to create symptom: %v", common.ErrStore, err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Symptom, error) {
	query :=
		`SELECT id, published_at, name, other_names, updated_at FROM symptoms
		 WHERE id = $1
		 `

	var s row
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.id, &s.publishedAt, &s.name, &s.otherNames, &s.updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: symptom %s", common.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to read symptom %s: %v", common.ErrStore, id, err)
	}

	return s.toDomain()
}

func (r *PostgresRepository) SelectSince(ctx context.Context, publishedSince *time.Time) ([]*models.Symptom, error) {
	query := `SELECT id, published_at, name, other_names, updated_at FROM symptoms ORDER BY published_at`
	args := []any{}
	if publishedSince != nil {
		query = `SELECT id, published_at, name, other_names, updated_at FROM symptoms WHERE published_at > $1 ORDER BY published_at`
		args = append(args, models.FormatTime(*publishedSince))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read symptoms: %v", common.ErrStore, err)
	}
	defer rows.Close()

	var result []*models.Symptom
	for rows.Next() {
		var s row
		if err := rows.Scan(&s.id, &s.publishedAt, &s.name, &s.otherNames, &s.updatedAt); err != nil {
			return nil, fmt.Errorf("%w: failed to read symptoms: %v", common.ErrStore, err)
		}
		symptom, err := s.toDomain()
		if err != nil {
			return nil, err
		}
		result = append(result, symptom)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read symptoms: %v", common.ErrStore, err)
	}

	return result, nil
}

func (r *PostgresRepository) Replace(ctx context.Context, symptom *models.Symptom) error {
	query :=
		`UPDATE symptoms SET published_at=$2, name=$3, other_names=$4, updated_at=$5
		 WHERE id = $1
		 `

	s := toRow(symptom)
	result, err := r.db.ExecContext(ctx, query, s.id, s.publishedAt, s.name, s.otherNames, s.updatedAt)
	if err != nil {
		return fmt.Errorf("%w: failed to update symptom %s: %v", common.ErrStore, s.id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to update symptom %s: %v", common.ErrStore, s.id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: symptom %s", common.ErrNotFound, s.id)
	}

	return nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, symptom *models.Symptom) error {
	query :=
		`INSERT INTO symptoms (id, published_at, name, other_names, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET
		     published_at=EXCLUDED.published_at,
		     name=EXCLUDED.name,
		     other_names=EXCLUDED.other_names,
		     updated_at=EXCLUDED.updated_at
		 `

	s := toRow(symptom)
	_, err := r.db.ExecContext(ctx, query, s.id, s.publishedAt, s.name, s.otherNames, s.updatedAt)
	if err != nil {
		return fmt.Errorf("%w: failed to upsert symptom %s: %v", common.ErrStore, s.id, err)
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM symptoms WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete symptom %s: %v", common.ErrStore, id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to delete symptom %s: %v", common.ErrStore, id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: symptom %s", common.ErrNotFound, id)
	}

	return nil
}
