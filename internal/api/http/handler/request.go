package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/juansean527/persona-service/internal/model"
)

const dateLayout = "2006-01-02"

// Date is a calendar date encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("date must use YYYY-MM-DD: %w", err)
	}
	d.Time = t
	return nil
}

// Field is a JSON member that remembers whether it was present and whether
// it was null.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		f.Null = true
		return nil
	}
	return json.Unmarshal(b, &f.Value)
}

type createPersonaRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	BirthDate *Date   `json:"birth_date"`
	IsActive  *bool   `json:"is_active"`
	Notes     *string `json:"notes"`
}

func (req createPersonaRequest) Validate() error {
	if err := validateName("first_name", req.FirstName); err != nil {
		return err
	}
	if err := validateName("last_name", req.LastName); err != nil {
		return err
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if req.Phone != nil {
		return validatePhone(*req.Phone)
	}
	return nil
}

func (req createPersonaRequest) params() model.CreatePersonaParams {
	p := model.CreatePersonaParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		IsActive:  true,
		Notes:     req.Notes,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.BirthDate != nil {
		t := req.BirthDate.Time
		p.BirthDate = &t
	}
	return p
}

// updatePersonaRequest carries a partial update: absent members are left
// unchanged, null clears nullable columns.
type updatePersonaRequest struct {
	FirstName Field[string] `json:"first_name"`
	LastName  Field[string] `json:"last_name"`
	Email     Field[string] `json:"email"`
	Phone     Field[string] `json:"phone"`
	BirthDate Field[Date]   `json:"birth_date"`
	IsActive  Field[bool]   `json:"is_active"`
	Notes     Field[string] `json:"notes"`
}

func (req updatePersonaRequest) Validate() error {
	for name, f := range map[string]Field[string]{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"email":      req.Email,
	} {
		if f.Null {
			return invalid("%s must not be null", name)
		}
	}
	if req.IsActive.Null {
		return invalid("is_active must not be null")
	}

	if req.FirstName.Set {
		if err := validateName("first_name", req.FirstName.Value); err != nil {
			return err
		}
	}
	if req.LastName.Set {
		if err := validateName("last_name", req.LastName.Value); err != nil {
			return err
		}
	}
	if req.Email.Set {
		if err := validateEmail(req.Email.Value); err != nil {
			return err
		}
	}
	if req.Phone.Set && !req.Phone.Null {
		return validatePhone(req.Phone.Value)
	}
	return nil
}

func (req updatePersonaRequest) patch() model.PersonaPatch {
	var p model.PersonaPatch
	if req.FirstName.Set {
		p.FirstName = model.NewPatch(req.FirstName.Value)
	}
	if req.LastName.Set {
		p.LastName = model.NewPatch(req.LastName.Value)
	}
	if req.Email.Set {
		p.Email = model.NewPatch(req.Email.Value)
	}
	if req.Phone.Set {
		p.Phone = model.NewPatch(nullable(req.Phone))
	}
	if req.BirthDate.Set {
		var t *time.Time
		if !req.BirthDate.Null {
			v := req.BirthDate.Value.Time
			t = &v
		}
		p.BirthDate = model.NewPatch(t)
	}
	if req.IsActive.Set {
		p.IsActive = model.NewPatch(req.IsActive.Value)
	}
	if req.Notes.Set {
		p.Notes = model.NewPatch(nullable(req.Notes))
	}
	return p
}

func nullable(f Field[string]) *string {
	if f.Null {
		return nil
	}
	v := f.Value
	return &v
}

type populateRequest struct {
	Count int `json:"count"`
}

func validateName(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return invalid("%s must not be empty", field)
	}
	if utf8.RuneCountInString(v) > model.MaxNameLength {
		return invalid("%s must be at most %d characters", field, model.MaxNameLength)
	}
	return nil
}

func validateEmail(v string) error {
	if len(v) > model.MaxEmailLength {
		return invalid("email must be at most %d characters", model.MaxEmailLength)
	}
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v {
		return invalid("email is not a valid address")
	}
	return nil
}

func validatePhone(v string) error {
	if utf8.RuneCountInString(v) > model.MaxPhoneLength {
		return invalid("phone must be at most %d characters", model.MaxPhoneLength)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", model.ErrInvalidArgument, fmt.Sprintf(format, args...))
}
