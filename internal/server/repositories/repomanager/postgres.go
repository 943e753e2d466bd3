package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/healthtracker/internal/server/migrations"
	"github.com/dmitrijs2005/healthtracker/internal/server/repositories/metrics"
	"github.com/dmitrijs2005/healthtracker/internal/server/repositories/symptoms"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
	db       *sql.DB
	symptoms symptoms.Repository
	metrics  metrics.Repository
}

func (m *PostgresRepositoryManager) Symptoms() symptoms.Repository {
	return m.symptoms
}

func (m *PostgresRepositoryManager) Metrics() metrics.Repository {
	return m.metrics
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(ctx context.Context, dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:       db,
		symptoms: symptoms.NewPostgresRepository(db),
		metrics:  metrics.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
