package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/dmitrijs2005/healthtracker/internal/logging"
	"github.com/dmitrijs2005/healthtracker/internal/server/models"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// -------- test fakes --------

// fakeSymptomsRepo is an in-memory symptoms.Repository. Error fields, when
// set, are returned instead of touching the store.
type fakeSymptomsRepo struct {
	store map[string]*models.Symptom

	insertErr  error
	getErr     error
	selectErr  error
	replaceErr error
	upsertErr  error
	deleteErr  error

	ops *[]string
}

func newFakeSymptomsRepo() *fakeSymptomsRepo {
	return &fakeSymptomsRepo{store: map[string]*models.Symptom{}}
}

func (f *fakeSymptomsRepo) record(op string) {
	if f.ops != nil {
		*f.ops = append(*f.ops, op)
	}
}

func (f *fakeSymptomsRepo) Insert(ctx context.Context, s *models.Symptom) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	copied := *s
	f.store[s.ID] = &copied
	return nil
}

func (f *fakeSymptomsRepo) GetByID(ctx context.Context, id string) (*models.Symptom, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.store[id]
	if !ok {
		return nil, errNotFound(id)
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSymptomsRepo) SelectSince(ctx context.Context, publishedSince *time.Time) ([]*models.Symptom, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	var result []*models.Symptom
	for _, s := range f.store {
		if publishedSince == nil || s.PublishedAt.After(*publishedSince) {
			copied := *s
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeSymptomsRepo) Replace(ctx context.Context, s *models.Symptom) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	if _, ok := f.store[s.ID]; !ok {
		return errNotFound(s.ID)
	}
	copied := *s
	f.store[s.ID] = &copied
	return nil
}

func (f *fakeSymptomsRepo) Upsert(ctx context.Context, s *models.Symptom) error {
	f.record("symptom:" + s.ID)
	if f.upsertErr != nil {
		return f.upsertErr
	}
	copied := *s
	f.store[s.ID] = &copied
	return nil
}

func (f *fakeSymptomsRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.store[id]; !ok {
		return errNotFound(id)
	}
	delete(f.store, id)
	return nil
}

// fakeMetricsRepo mirrors fakeSymptomsRepo for metrics.
type fakeMetricsRepo struct {
	store map[string]*models.Metric

	insertErr  error
	getErr     error
	selectErr  error
	replaceErr error
	upsertErr  error
	deleteErr  error

	ops *[]string
}

func newFakeMetricsRepo() *fakeMetricsRepo {
	return &fakeMetricsRepo{store: map[string]*models.Metric{}}
}

func (f *fakeMetricsRepo) record(op string) {
	if f.ops != nil {
		*f.ops = append(*f.ops, op)
	}
}

func (f *fakeMetricsRepo) Insert(ctx context.Context, m *models.Metric) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	copied := *m
	f.store[m.ID] = &copied
	return nil
}

func (f *fakeMetricsRepo) GetByID(ctx context.Context, id string) (*models.Metric, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	m, ok := f.store[id]
	if !ok {
		return nil, errNotFound(id)
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMetricsRepo) SelectSince(ctx context.Context, publishedSince *time.Time) ([]*models.Metric, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	var result []*models.Metric
	for _, m := range f.store {
		if publishedSince == nil || m.PublishedAt.After(*publishedSince) {
			copied := *m
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeMetricsRepo) Replace(ctx context.Context, m *models.Metric) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	if _, ok := f.store[m.ID]; !ok {
		return errNotFound(m.ID)
	}
	copied := *m
	f.store[m.ID] = &copied
	return nil
}

func (f *fakeMetricsRepo) Upsert(ctx context.Context, m *models.Metric) error {
	f.record("metric:" + m.ID)
	if f.upsertErr != nil {
		return f.upsertErr
	}
	copied := *m
	f.store[m.ID] = &copied
	return nil
}

func (f *fakeMetricsRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.store[id]; !ok {
		return errNotFound(id)
	}
	delete(f.store, id)
	return nil
}
