package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/juansean527/persona-service/internal/model"
)

var _ model.PersonaStore = (*PersonaRepository)(nil)

const personaColumns = `id, first_name, last_name, email, phone, birth_date, is_active, notes, created_at`

type PersonaRepository struct {
	db *Connection
}

func NewPersonaRepository(db *Connection) *PersonaRepository {
	return &PersonaRepository{
		db: db,
	}
}

func (r *PersonaRepository) Create(ctx context.Context, params model.CreatePersonaParams) (model.Persona, error) {
	query := `INSERT INTO personas (first_name, last_name, email, phone, birth_date, is_active, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + personaColumns

	persona, err := scanPersona(r.db.QueryRow(ctx, query,
		params.FirstName, params.LastName, params.Email, params.Phone,
		params.BirthDate, params.IsActive, params.Notes,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.Persona{}, model.ErrConflict
		}
		return model.Persona{}, fmt.Errorf("failed to create persona: %w", err)
	}

	return persona, nil
}

func (r *PersonaRepository) GetByID(ctx context.Context, id int64) (model.Persona, error) {
	query := `SELECT ` + personaColumns + ` FROM personas WHERE id = $1`

	persona, err := scanPersona(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Persona{}, model.ErrNotFound
		}
		return model.Persona{}, fmt.Errorf("failed to get persona by id: %w", err)
	}

	return persona, nil
}

func (r *PersonaRepository) GetByEmail(ctx context.Context, email string) (model.Persona, error) {
	query := `SELECT ` + personaColumns + ` FROM personas WHERE email = $1`

	persona, err := scanPersona(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Persona{}, model.ErrNotFound
		}
		return model.Persona{}, fmt.Errorf("failed to get persona by email: %w", err)
	}

	return persona, nil
}

// List returns personas ordered by id.
func (r *PersonaRepository) List(ctx context.Context, offset, limit int) ([]model.Persona, error) {
	query := `SELECT ` + personaColumns + ` FROM personas ORDER BY id OFFSET $1 LIMIT $2`

	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list personas: %w", err)
	}
	defer rows.Close()

	personas := make([]model.Persona, 0, limit)
	for rows.Next() {
		p, err := scanPersona(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan persona: %w", err)
		}
		personas = append(personas, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate personas: %w", err)
	}

	return personas, nil
}

// Update sets only the columns present in patch, so concurrent updates of
// different fields do not undo each other. An empty patch returns the row
// unchanged.
func (r *PersonaRepository) Update(ctx context.Context, id int64, patch model.PersonaPatch) (model.Persona, error) {
	assignments, args := updateAssignments(patch)
	if len(assignments) == 0 {
		return r.GetByID(ctx, id)
	}

	query := `UPDATE personas SET ` + strings.Join(assignments, ", ") + `
			  WHERE id = $1
			  RETURNING ` + personaColumns

	updated, err := scanPersona(r.db.QueryRow(ctx, query, append([]any{id}, args...)...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Persona{}, model.ErrNotFound
		}
		if isUniqueViolation(err) {
			return model.Persona{}, model.ErrConflict
		}
		return model.Persona{}, fmt.Errorf("failed to update persona: %w", err)
	}

	return updated, nil
}

// updateAssignments builds the SET list for the fields set in patch.
// Placeholders start at $2; $1 is the id.
func updateAssignments(patch model.PersonaPatch) ([]string, []any) {
	var (
		assignments []string
		args        []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)+1))
	}

	if patch.FirstName.Set {
		set("first_name", patch.FirstName.Value)
	}
	if patch.LastName.Set {
		set("last_name", patch.LastName.Value)
	}
	if patch.Email.Set {
		set("email", patch.Email.Value)
	}
	if patch.Phone.Set {
		set("phone", patch.Phone.Value)
	}
	if patch.BirthDate.Set {
		set("birth_date", patch.BirthDate.Value)
	}
	if patch.IsActive.Set {
		set("is_active", patch.IsActive.Value)
	}
	if patch.Notes.Set {
		set("notes", patch.Notes.Value)
	}

	return assignments, args
}

func (r *PersonaRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM personas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete persona: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func scanPersona(row pgx.Row) (model.Persona, error) {
	var p model.Persona
	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone,
		&p.BirthDate, &p.IsActive, &p.Notes, &p.CreatedAt,
	)
	return p, err
}
