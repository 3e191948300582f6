package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/juansean527/persona-service/internal/model"
)

const (
	snapshotContentType = "application/json"
	maxExportNameLength = 128
)

var exportNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*\.json$`)

// Export writes JSON snapshots of all personas and their reports to object storage.
type Export struct {
	personas model.PersonaStore
	reports  model.ReportStore
	storage  model.SnapshotStorage
	options
}

func NewExport(personas model.PersonaStore, reports model.ReportStore, storage model.SnapshotStorage, opts ...Option) *Export {
	return &Export{
		personas: personas,
		reports:  reports,
		storage:  storage,
		options:  newOptions(opts),
	}
}

// Create builds a snapshot, uploads it and returns its object name.
func (s *Export) Create(ctx context.Context) (string, error) {
	defer s.observe("export", time.Now())

	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return "", err
	}

	body, err := json.MarshalIndent(newSnapshotDocument(snapshot), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	name := fmt.Sprintf("personas-%s-%s.json",
		snapshot.GeneratedAt.UTC().Format("20060102T150405Z"),
		strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
	)

	err = s.storage.Upload(ctx, name, bytes.NewReader(body), int64(len(body)), snapshotContentType)
	if err != nil {
		s.logger.Error("Export service: failed to upload snapshot", "name", name, "error", err)
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}

	s.logger.Info("Export service: snapshot uploaded", "name", name, "personas", snapshot.Total)

	return name, nil
}

// Open returns the content of a previously exported snapshot.
func (s *Export) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ValidateExportName(name); err != nil {
		return nil, err
	}

	exists, err := s.storage.Exists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check snapshot: %w", err)
	}
	if !exists {
		return nil, model.ErrNotFound
	}

	rc, err := s.storage.Download(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to download snapshot: %w", err)
	}

	return rc, nil
}

// ValidateExportName rejects names that could escape the snapshot namespace.
func ValidateExportName(name string) error {
	if len(name) > maxExportNameLength || strings.Contains(name, "..") || !exportNamePattern.MatchString(name) {
		return fmt.Errorf("%w: invalid export name %q", model.ErrInvalidArgument, name)
	}
	return nil
}

func (s *Export) snapshot(ctx context.Context) (model.Snapshot, error) {
	now := s.now()

	var all []model.Persona
	for offset := 0; ; offset += model.MaxListLimit {
		page, err := s.personas.List(ctx, offset, model.MaxListLimit)
		if err != nil {
			return model.Snapshot{}, fmt.Errorf("failed to list personas: %w", err)
		}
		all = append(all, page...)
		if len(page) < model.MaxListLimit {
			break
		}
	}

	domains, err := s.reports.DomainCounts(ctx)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to count email domains: %w", err)
	}

	ages, err := s.reports.AgeStats(ctx, now)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to compute age statistics: %w", err)
	}

	return model.Snapshot{
		GeneratedAt: now,
		Total:       len(all),
		Domains:     domains,
		Ages:        ages,
		Personas:    all,
	}, nil
}

type snapshotDocument struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Total       int               `json:"total"`
	Domains     map[string]int64  `json:"domains"`
	Ages        ageDocument       `json:"ages"`
	Personas    []personaDocument `json:"personas"`
}

type ageDocument struct {
	Average *float64 `json:"average"`
	Min     *int     `json:"min"`
	Max     *int     `json:"max"`
}

type personaDocument struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	BirthDate *string   `json:"birth_date"`
	IsActive  bool      `json:"is_active"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

func newSnapshotDocument(s model.Snapshot) snapshotDocument {
	doc := snapshotDocument{
		GeneratedAt: s.GeneratedAt.UTC(),
		Total:       s.Total,
		Domains:     s.Domains,
		Ages:        ageDocument(s.Ages),
		Personas:    make([]personaDocument, 0, len(s.Personas)),
	}
	if doc.Domains == nil {
		doc.Domains = map[string]int64{}
	}

	for _, p := range s.Personas {
		pd := personaDocument{
			ID:        p.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Email:     p.Email,
			Phone:     p.Phone,
			IsActive:  p.IsActive,
			Notes:     p.Notes,
			CreatedAt: p.CreatedAt,
		}
		if p.BirthDate != nil {
			d := p.BirthDate.Format("2006-01-02")
			pd.BirthDate = &d
		}
		doc.Personas = append(doc.Personas, pd)
	}

	return doc
}
