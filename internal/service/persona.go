package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/juansean527/persona-service/internal/model"
)

type Persona struct {
	store model.PersonaStore
	options
}

func NewPersona(store model.PersonaStore, opts ...Option) *Persona {
	return &Persona{
		store:   store,
		options: newOptions(opts),
	}
}

// Create stores a new persona. Both a taken email found up front and a
// uniqueness violation raised by storage yield model.ErrConflict.
func (s *Persona) Create(ctx context.Context, params model.CreatePersonaParams) (model.Persona, error) {
	defer s.observe("create", time.Now())

	_, err := s.store.GetByEmail(ctx, params.Email)
	if err == nil {
		s.conflict("create", params.Email)
		return model.Persona{}, model.ErrConflict
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.Persona{}, fmt.Errorf("failed to get persona by email: %w", err)
	}

	persona, err := s.store.Create(ctx, params)
	if errors.Is(err, model.ErrConflict) {
		s.conflict("create", params.Email)
		return model.Persona{}, model.ErrConflict
	}
	if err != nil {
		s.logger.Error("Persona service: failed to create persona", "error", err)
		return model.Persona{}, fmt.Errorf("failed to create persona: %w", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementCreated()
	}
	s.logger.Info("Persona service: persona created", "id", persona.ID)

	return persona, nil
}

// List returns up to limit personas after skipping skip, in id order.
func (s *Persona) List(ctx context.Context, skip, limit int) ([]model.Persona, error) {
	defer s.observe("list", time.Now())

	if skip < 0 {
		return nil, fmt.Errorf("%w: skip must not be negative", model.ErrInvalidArgument)
	}
	if limit < 1 || limit > model.MaxListLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", model.ErrInvalidArgument, model.MaxListLimit)
	}

	personas, err := s.store.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list personas: %w", err)
	}

	return personas, nil
}

func (s *Persona) Get(ctx context.Context, id int64) (model.Persona, error) {
	defer s.observe("get", time.Now())

	persona, err := s.store.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Persona{}, model.ErrNotFound
	}
	if err != nil {
		return model.Persona{}, fmt.Errorf("failed to get persona by id: %w", err)
	}

	return persona, nil
}

// Update applies the set fields of patch to the persona with the given id.
// Fields absent from patch are never written.
func (s *Persona) Update(ctx context.Context, id int64, patch model.PersonaPatch) (model.Persona, error) {
	defer s.observe("update", time.Now())

	current, err := s.store.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Persona{}, model.ErrNotFound
	}
	if err != nil {
		return model.Persona{}, fmt.Errorf("failed to get persona by id: %w", err)
	}

	if patch.ChangesEmail(current.Email) {
		owner, err := s.store.GetByEmail(ctx, patch.Email.Value)
		switch {
		case err == nil && owner.ID != id:
			s.conflict("update", patch.Email.Value)
			return model.Persona{}, model.ErrConflict
		case err != nil && !errors.Is(err, model.ErrNotFound):
			return model.Persona{}, fmt.Errorf("failed to get persona by email: %w", err)
		}
	}

	updated, err := s.store.Update(ctx, id, patch)
	switch {
	case errors.Is(err, model.ErrConflict):
		s.conflict("update", patch.Email.Value)
		return model.Persona{}, model.ErrConflict
	case errors.Is(err, model.ErrNotFound):
		return model.Persona{}, model.ErrNotFound
	case err != nil:
		s.logger.Error("Persona service: failed to update persona", "id", id, "error", err)
		return model.Persona{}, fmt.Errorf("failed to update persona: %w", err)
	}

	return updated, nil
}

func (s *Persona) Delete(ctx context.Context, id int64) error {
	defer s.observe("delete", time.Now())

	err := s.store.Delete(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete persona: %w", err)
	}

	if s.metrics != nil {
		s.metrics.AddDeleted(1)
	}
	s.logger.Info("Persona service: persona deleted", "id", id)

	return nil
}

func (s *Persona) conflict(op, email string) {
	if s.metrics != nil {
		s.metrics.IncrementConflicts()
	}
	s.logger.Info("Persona service: email already registered", "operation", op, "email", email)
}
