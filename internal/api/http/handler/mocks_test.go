package handler

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/juansean527/persona-service/internal/model"
)

type MockPersonaService struct {
	mock.Mock
}

func (m *MockPersonaService) Create(ctx context.Context, params model.CreatePersonaParams) (model.Persona, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Persona), args.Error(1)
}

func (m *MockPersonaService) List(ctx context.Context, skip, limit int) ([]model.Persona, error) {
	args := m.Called(ctx, skip, limit)
	personas, _ := args.Get(0).([]model.Persona)
	return personas, args.Error(1)
}

func (m *MockPersonaService) Get(ctx context.Context, id int64) (model.Persona, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Persona), args.Error(1)
}

func (m *MockPersonaService) Update(ctx context.Context, id int64, patch model.PersonaPatch) (model.Persona, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(model.Persona), args.Error(1)
}

func (m *MockPersonaService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPopulationService struct {
	mock.Mock
}

func (m *MockPopulationService) Populate(ctx context.Context, count int) (int64, error) {
	args := m.Called(ctx, count)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPopulationService) Replace(ctx context.Context, count int) (int64, error) {
	args := m.Called(ctx, count)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPopulationService) Reset(ctx context.Context, restartIDs bool) (int64, error) {
	args := m.Called(ctx, restartIDs)
	return args.Get(0).(int64), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) DomainFrequency(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[string]int64)
	return counts, args.Error(1)
}

func (m *MockReportService) AgeStatistics(ctx context.Context) (model.AgeStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.AgeStats), args.Error(1)
}

func (m *MockReportService) Search(ctx context.Context, term string) ([]model.Persona, error) {
	args := m.Called(ctx, term)
	personas, _ := args.Get(0).([]model.Persona)
	return personas, args.Error(1)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Create(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockExportService) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	args := m.Called(ctx, name)
	body, _ := args.Get(0).(io.ReadCloser)
	return body, args.Error(1)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}
