package model

import (
	"context"
	"time"
)

// Bounds of a single bulk population request.
const (
	MinPopulateCount = 1
	MaxPopulateCount = 999
)

// MaxSearchTermLength limits free-text search input.
const MaxSearchTermLength = 100

// BulkStore defines whole-table write operations.
type BulkStore interface {
	// InsertBatch inserts all records and returns how many rows were created.
	// Records whose email is already stored are skipped.
	InsertBatch(ctx context.Context, records []CreatePersonaParams) (int64, error)
	// DeleteAll removes every persona and returns the number of deleted rows.
	// When restartIDs is true id assignment starts over from 1.
	DeleteAll(ctx context.Context, restartIDs bool) (int64, error)
}

// ReportStore defines read-only aggregate queries over all personas.
type ReportStore interface {
	DomainCounts(ctx context.Context) (map[string]int64, error)
	AgeStats(ctx context.Context, today time.Time) (AgeStats, error)
	Search(ctx context.Context, term string) ([]Persona, error)
}

// AgeStats holds age statistics in whole years.
// All fields are nil when no persona has a birth date.
type AgeStats struct {
	Average *float64
	Min     *int
	Max     *int
}

// Snapshot is an exported copy of the persona table with its reports.
type Snapshot struct {
	GeneratedAt time.Time
	Total       int
	Domains     map[string]int64
	Ages        AgeStats
	Personas    []Persona
}
