package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/juansean527/persona-service/internal/model"
)

type Report struct {
	store model.ReportStore
	options
}

func NewReport(store model.ReportStore, opts ...Option) *Report {
	return &Report{
		store:   store,
		options: newOptions(opts),
	}
}

// DomainFrequency counts personas per email domain.
func (s *Report) DomainFrequency(ctx context.Context) (map[string]int64, error) {
	defer s.observe("report_domains", time.Now())

	counts, err := s.store.DomainCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count email domains: %w", err)
	}

	return counts, nil
}

// AgeStatistics reports average, minimum and maximum age as of today.
func (s *Report) AgeStatistics(ctx context.Context) (model.AgeStats, error) {
	defer s.observe("report_ages", time.Now())

	stats, err := s.store.AgeStats(ctx, s.now())
	if err != nil {
		return model.AgeStats{}, fmt.Errorf("failed to compute age statistics: %w", err)
	}

	return stats, nil
}

// Search finds personas whose names or email contain term, ignoring case.
// The term is matched as given, surrounding spaces included.
func (s *Report) Search(ctx context.Context, term string) ([]model.Persona, error) {
	defer s.observe("search", time.Now())

	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("%w: search term must not be empty", model.ErrInvalidArgument)
	}
	if utf8.RuneCountInString(term) > model.MaxSearchTermLength {
		return nil, fmt.Errorf("%w: search term must be at most %d characters", model.ErrInvalidArgument, model.MaxSearchTermLength)
	}

	personas, err := s.store.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search personas: %w", err)
	}
	if personas == nil {
		personas = []model.Persona{}
	}

	return personas, nil
}
