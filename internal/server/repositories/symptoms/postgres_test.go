package symptoms

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/healthtracker/internal/common"
	"github.com/dmitrijs2005/healthtracker/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func testSymptom() *models.Symptom {
	return &models.Symptom{
		ID:          "sym_aaaaaaaaaa",
		Name:        "symptom A",
		OtherNames:  []string{"symptom A name b", "symptom A name c"},
		PublishedAt: time.Date(2023, 8, 7, 9, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2023, 8, 7, 7, 34, 55, 0, time.UTC),
	}
}

func TestInsert_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO symptoms`).
		WithArgs(
			"sym_aaaaaaaaaa",
			"2023-08-07T09:00:00.000000Z",
			"symptom A",
			"symptom A name b,symptom A name c",
			"2023-08-07T07:34:55.000000Z",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Insert(context.Background(), testSymptom()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsert_DuplicateKeyIsConflict(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO symptoms`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Insert(context.Background(), testSymptom())
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

func TestInsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO symptoms`).
		WillReturnError(errors.New("db is down"))

	err := repo.Insert(context.Background(), testSymptom())
	if !errors.Is(err, common.ErrStore) {
		t.Fatalf("want ErrStore, got %v", err)
	}
}

func TestGetByID_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "published_at", "name", "other_names", "updated_at"}).
		AddRow("sym_aaaaaaaaaa", "2023-08-07T09:00:00.000000Z", "symptom A", "symptom A name b,symptom A name c", "2023-08-07T07:34:55.000000Z")

	mock.ExpectQuery(`SELECT .* FROM symptoms\s+WHERE id = \$1`).
		WithArgs("sym_aaaaaaaaaa").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "sym_aaaaaaaaaa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "symptom A" {
		t.Fatalf("want name %q, got %q", "symptom A", got.Name)
	}
	if len(got.OtherNames) != 2 {
		t.Fatalf("want 2 aliases, got %v", got.OtherNames)
	}
	if !got.PublishedAt.Equal(time.Date(2023, 8, 7, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected published_at: %v", got.PublishedAt)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM symptoms\s+WHERE id = \$1`).
		WithArgs("sym_missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "sym_missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGetByID_CorruptTimestampIsConversionError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "published_at", "name", "other_names", "updated_at"}).
		AddRow("sym_aaaaaaaaaa", "garbage", "symptom A", "", "2023-08-07T07:34:55.000000Z")

	mock.ExpectQuery(`SELECT .* FROM symptoms\s+WHERE id = \$1`).
		WithArgs("sym_aaaaaaaaaa").
		WillReturnRows(rows)

	_, err := repo.GetByID(context.Background(), "sym_aaaaaaaaaa")
	if !errors.Is(err, common.ErrConversion) {
		t.Fatalf("want ErrConversion, got %v", err)
	}
}

func TestSelectSince_NoCursorSelectsAll(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "published_at", "name", "other_names", "updated_at"}).
		AddRow("sym_aaaaaaaaaa", "2023-08-07T09:00:00.000000Z", "symptom A", "", "2023-08-07T07:34:55.000000Z").
		AddRow("sym_bbbbbbbbbb", "2023-08-08T09:00:00.000000Z", "symptom B", "b2", "2023-08-08T07:34:55.000000Z")

	mock.ExpectQuery(`SELECT .* FROM symptoms ORDER BY published_at`).
		WillReturnRows(rows)

	got, err := repo.SelectSince(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 symptoms, got %d", len(got))
	}
	if len(got[0].OtherNames) != 0 {
		t.Fatalf("empty alias column must decode to empty list, got %v", got[0].OtherNames)
	}
}

func TestSelectSince_CursorIsBoundParameter(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	since := time.Date(2023, 8, 7, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "published_at", "name", "other_names", "updated_at"}).
		AddRow("sym_bbbbbbbbbb", "2023-08-08T09:00:00.000000Z", "symptom B", "", "2023-08-08T07:34:55.000000Z")

	mock.ExpectQuery(`SELECT .* FROM symptoms WHERE published_at > \$1 ORDER BY published_at`).
		WithArgs("2023-08-07T12:00:00.000000Z").
		WillReturnRows(rows)

	got, err := repo.SelectSince(context.Background(), &since)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "sym_bbbbbbbbbb" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSelectSince_PoisonedRowFailsWholeRead(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "published_at", "name", "other_names", "updated_at"}).
		AddRow("sym_aaaaaaaaaa", "2023-08-07T09:00:00.000000Z", "symptom A", "", "2023-08-07T07:34:55.000000Z").
		AddRow("sym_corrupted", "not-a-date", "symptom B", "", "2023-08-08T07:34:55.000000Z")

	mock.ExpectQuery(`SELECT .* FROM symptoms ORDER BY published_at`).
		WillReturnRows(rows)

	_, err := repo.SelectSince(context.Background(), nil)
	if !errors.Is(err, common.ErrConversion) {
		t.Fatalf("want ErrConversion, got %v", err)
	}
}

func TestReplace_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE symptoms SET published_at=\$2, name=\$3, other_names=\$4, updated_at=\$5\s+WHERE id = \$1`).
		WithArgs(
			"sym_aaaaaaaaaa",
			"2023-08-07T09:00:00.000000Z",
			"symptom A",
			"symptom A name b,symptom A name c",
			"2023-08-07T07:34:55.000000Z",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Replace(context.Background(), testSymptom()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReplace_MissingRowIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE symptoms SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Replace(context.Background(), testSymptom())
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUpsert_InsertOrReplace(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.MustCompile(`(?s)INSERT INTO symptoms .* ON CONFLICT \(id\) DO UPDATE SET`)

	mock.ExpectExec(q.String()).
		WithArgs(
			"sym_aaaaaaaaaa",
			"2023-08-07T09:00:00.000000Z",
			"symptom A",
			"symptom A name b,symptom A name c",
			"2023-08-07T07:34:55.000000Z",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Upsert(context.Background(), testSymptom()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM symptoms WHERE id = \$1`).
		WithArgs("sym_aaaaaaaaaa").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "sym_aaaaaaaaaa"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDelete_MissingRowIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM symptoms WHERE id = \$1`).
		WithArgs("sym_missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "sym_missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
