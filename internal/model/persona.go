package model

import (
	"context"
	"time"
)

// Field limits shared by the schema, the HTTP boundary and the data generator.
const (
	MaxNameLength  = 100
	MaxEmailLength = 254
	MaxPhoneLength = 30
)

// Pagination bounds for listing personas.
const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// PersonaStore defines persistence operations for personas.
type PersonaStore interface {
	Create(ctx context.Context, params CreatePersonaParams) (Persona, error)
	GetByID(ctx context.Context, id int64) (Persona, error)
	GetByEmail(ctx context.Context, email string) (Persona, error)
	List(ctx context.Context, offset, limit int) ([]Persona, error)
	// Update writes only the fields set in patch and returns the stored row.
	Update(ctx context.Context, id int64, patch PersonaPatch) (Persona, error)
	Delete(ctx context.Context, id int64) error
}

// Persona represents a stored persona.
type Persona struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	BirthDate *time.Time
	IsActive  bool
	Notes     *string
	CreatedAt time.Time
}

// CreatePersonaParams contains parameters to create a persona.
type CreatePersonaParams struct {
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	BirthDate *time.Time
	IsActive  bool
	Notes     *string
}

// Patch is a field of a partial update. Fields with Set == false are left untouched.
type Patch[T any] struct {
	Set   bool
	Value T
}

// NewPatch returns a Patch that sets the field to v.
func NewPatch[T any](v T) Patch[T] {
	return Patch[T]{Set: true, Value: v}
}

// PersonaPatch describes a partial update of a persona.
// Nullable columns use pointer values: a set patch holding nil clears the column.
type PersonaPatch struct {
	FirstName Patch[string]
	LastName  Patch[string]
	Email     Patch[string]
	Phone     Patch[*string]
	BirthDate Patch[*time.Time]
	IsActive  Patch[bool]
	Notes     Patch[*string]
}

// ChangesEmail reports whether the patch sets an email different from current.
func (pp PersonaPatch) ChangesEmail(current string) bool {
	return pp.Email.Set && pp.Email.Value != current
}
