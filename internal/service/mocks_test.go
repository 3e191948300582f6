package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/juansean527/persona-service/internal/model"
)

// MockPersonaStore mocks the PersonaStore interface
type MockPersonaStore struct {
	mock.Mock
}

func (m *MockPersonaStore) Create(ctx context.Context, params model.CreatePersonaParams) (model.Persona, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Persona), args.Error(1)
}

func (m *MockPersonaStore) GetByID(ctx context.Context, id int64) (model.Persona, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Persona), args.Error(1)
}

func (m *MockPersonaStore) GetByEmail(ctx context.Context, email string) (model.Persona, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Persona), args.Error(1)
}

func (m *MockPersonaStore) List(ctx context.Context, offset, limit int) ([]model.Persona, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]model.Persona), args.Error(1)
}

func (m *MockPersonaStore) Update(ctx context.Context, id int64, patch model.PersonaPatch) (model.Persona, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(model.Persona), args.Error(1)
}

func (m *MockPersonaStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBulkStore mocks the BulkStore interface
type MockBulkStore struct {
	mock.Mock
}

func (m *MockBulkStore) InsertBatch(ctx context.Context, records []model.CreatePersonaParams) (int64, error) {
	args := m.Called(ctx, records)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBulkStore) DeleteAll(ctx context.Context, restartIDs bool) (int64, error) {
	args := m.Called(ctx, restartIDs)
	return args.Get(0).(int64), args.Error(1)
}

// MockReportStore mocks the ReportStore interface
type MockReportStore struct {
	mock.Mock
}

func (m *MockReportStore) DomainCounts(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockReportStore) AgeStats(ctx context.Context, today time.Time) (model.AgeStats, error) {
	args := m.Called(ctx, today)
	return args.Get(0).(model.AgeStats), args.Error(1)
}

func (m *MockReportStore) Search(ctx context.Context, term string) ([]model.Persona, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]model.Persona), args.Error(1)
}

// MockGenerator mocks the PersonaGenerator interface
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(count int) ([]model.CreatePersonaParams, error) {
	args := m.Called(count)
	return args.Get(0).([]model.CreatePersonaParams), args.Error(1)
}

// MockSnapshotStorage mocks the SnapshotStorage interface
type MockSnapshotStorage struct {
	mock.Mock
}

func (m *MockSnapshotStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *MockSnapshotStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockSnapshotStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
