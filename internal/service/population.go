package service

import (
	"context"
	"fmt"
	"time"

	"github.com/juansean527/persona-service/internal/model"
)

// PersonaGenerator produces synthetic persona records.
type PersonaGenerator interface {
	Generate(count int) ([]model.CreatePersonaParams, error)
}

type Population struct {
	store     model.BulkStore
	generator PersonaGenerator
	options
}

func NewPopulation(store model.BulkStore, generator PersonaGenerator, opts ...Option) *Population {
	return &Population{
		store:     store,
		generator: generator,
		options:   newOptions(opts),
	}
}

// Populate appends count generated personas and returns how many were stored.
// Generated emails that already exist are skipped, so the result may be lower
// than count.
func (s *Population) Populate(ctx context.Context, count int) (int64, error) {
	defer s.observe("populate", time.Now())

	records, err := s.generator.Generate(count)
	if err != nil {
		return 0, fmt.Errorf("failed to generate personas: %w", err)
	}

	return s.insert(ctx, records)
}

// Replace removes every persona, restarts id assignment and then inserts
// count generated personas. An invalid count leaves the table untouched.
func (s *Population) Replace(ctx context.Context, count int) (int64, error) {
	defer s.observe("populate_replace", time.Now())

	records, err := s.generator.Generate(count)
	if err != nil {
		return 0, fmt.Errorf("failed to generate personas: %w", err)
	}

	if _, err := s.reset(ctx, true); err != nil {
		return 0, err
	}

	return s.insert(ctx, records)
}

// Reset deletes every persona and returns the number removed.
func (s *Population) Reset(ctx context.Context, restartIDs bool) (int64, error) {
	defer s.observe("reset", time.Now())

	return s.reset(ctx, restartIDs)
}

func (s *Population) reset(ctx context.Context, restartIDs bool) (int64, error) {
	deleted, err := s.store.DeleteAll(ctx, restartIDs)
	if err != nil {
		s.logger.Error("Population service: failed to reset personas", "error", err)
		return 0, fmt.Errorf("failed to reset personas: %w", err)
	}

	if s.metrics != nil {
		s.metrics.AddDeleted(deleted)
	}
	s.logger.Info("Population service: personas reset", "deleted", deleted, "restart_ids", restartIDs)

	return deleted, nil
}

func (s *Population) insert(ctx context.Context, records []model.CreatePersonaParams) (int64, error) {
	created, err := s.store.InsertBatch(ctx, records)
	if err != nil {
		s.logger.Error("Population service: failed to insert personas", "error", err)
		return 0, fmt.Errorf("failed to insert personas: %w", err)
	}

	if s.metrics != nil {
		s.metrics.AddPopulated(created)
	}
	s.logger.Info("Population service: personas inserted",
		"requested", len(records),
		"created", created,
	)

	return created, nil
}
