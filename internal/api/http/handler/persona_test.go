package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/juansean527/persona-service/internal/model"
	"github.com/juansean527/persona-service/internal/testutil"
)

func strPtr(s string) *string { return &s }

func newPersonaRouter(svc PersonaService) http.Handler {
	r := chi.NewRouter()
	r.Route("/personas", NewPersona(svc, testutil.MakeNoopLogger()).Register)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Detail
}

func samplePersona() model.Persona {
	birth := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	return model.Persona{
		ID:        1,
		FirstName: "Ana",
		LastName:  "García",
		Email:     "ana.garcia@gmail.com",
		Phone:     strPtr("+34 612 345 678"),
		BirthDate: &birth,
		IsActive:  true,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestPersona_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(*MockPersonaService)
		wantStatus int
		wantDetail string
	}{
		{
			name: "created with default is_active",
			body: `{"first_name":"Ana","last_name":"García","email":"ana.garcia@gmail.com","phone":"+34 612 345 678","birth_date":"1990-05-17"}`,
			setupMock: func(m *MockPersonaService) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(p model.CreatePersonaParams) bool {
					return p.IsActive && p.Email == "ana.garcia@gmail.com" &&
						p.BirthDate != nil && p.BirthDate.Format("2006-01-02") == "1990-05-17" &&
						p.Notes == nil
				})).Return(samplePersona(), nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "explicit inactive",
			body: `{"first_name":"Ana","last_name":"García","email":"ana@x.com","is_active":false}`,
			setupMock: func(m *MockPersonaService) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(p model.CreatePersonaParams) bool {
					return !p.IsActive
				})).Return(samplePersona(), nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "duplicate email",
			body: `{"first_name":"Ana","last_name":"García","email":"ana@x.com"}`,
			setupMock: func(m *MockPersonaService) {
				m.On("Create", mock.Anything, mock.Anything).Return(model.Persona{}, model.ErrConflict)
			},
			wantStatus: http.StatusConflict,
			wantDetail: "Email already registered",
		},
		{
			name:       "malformed json",
			body:       `{"first_name":`,
			setupMock:  func(*MockPersonaService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "blank first name",
			body:       `{"first_name":"  ","last_name":"García","email":"ana@x.com"}`,
			setupMock:  func(*MockPersonaService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "last name too long",
			body:       `{"first_name":"Ana","last_name":"` + strings.Repeat("ñ", model.MaxNameLength+1) + `","email":"ana@x.com"}`,
			setupMock:  func(*MockPersonaService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid email",
			body:       `{"first_name":"Ana","last_name":"García","email":"not-an-email"}`,
			setupMock:  func(*MockPersonaService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "phone too long",
			body:       `{"first_name":"Ana","last_name":"García","email":"ana@x.com","phone":"` + strings.Repeat("1", model.MaxPhoneLength+1) + `"}`,
			setupMock:  func(*MockPersonaService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad birth date",
			body:       `{"first_name":"Ana","last_name":"García","email":"ana@x.com","birth_date":"17/05/1990"}`,
			setupMock:  func(*MockPersonaService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unexpected failure",
			body: `{"first_name":"Ana","last_name":"García","email":"ana@x.com"}`,
			setupMock: func(m *MockPersonaService) {
				m.On("Create", mock.Anything, mock.Anything).Return(model.Persona{}, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
			wantDetail: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockPersonaService)
			tt.setupMock(svc)

			rec := doRequest(t, newPersonaRouter(svc), http.MethodPost, "/personas/", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, decodeDetail(t, rec))
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestPersona_CreateResponseShape(t *testing.T) {
	svc := new(MockPersonaService)
	svc.On("Create", mock.Anything, mock.Anything).Return(samplePersona(), nil)

	rec := doRequest(t, newPersonaRouter(svc), http.MethodPost, "/personas/",
		`{"first_name":"Ana","last_name":"García","email":"ana.garcia@gmail.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, float64(1), got["id"])
	assert.Equal(t, "1990-05-17", got["birth_date"])
	assert.Equal(t, "+34 612 345 678", got["phone"])
	assert.Contains(t, got, "notes")
	assert.Nil(t, got["notes"])
	assert.Equal(t, "2024-01-02T03:04:05Z", got["created_at"])
}

func TestPersona_List(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		setupMock  func(*MockPersonaService)
		wantStatus int
		wantLen    int
	}{
		{
			name:  "defaults",
			query: "",
			setupMock: func(m *MockPersonaService) {
				m.On("List", mock.Anything, 0, model.DefaultListLimit).Return([]model.Persona{samplePersona()}, nil)
			},
			wantStatus: http.StatusOK,
			wantLen:    1,
		},
		{
			name:  "explicit paging",
			query: "?skip=10&limit=5",
			setupMock: func(m *MockPersonaService) {
				m.On("List", mock.Anything, 10, 5).Return([]model.Persona{}, nil)
			},
			wantStatus: http.StatusOK,
			wantLen:    0,
		},
		{
			name:  "out of range limit rejected by service",
			query: "?limit=5000",
			setupMock: func(m *MockPersonaService) {
				m.On("List", mock.Anything, 0, 5000).Return(nil, model.ErrInvalidArgument)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non numeric skip",
			query:      "?skip=abc",
			setupMock:  func(*MockPersonaService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockPersonaService)
			tt.setupMock(svc)

			rec := doRequest(t, newPersonaRouter(svc), http.MethodGet, "/personas/"+tt.query, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var got []personaResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Len(t, got, tt.wantLen)
				assert.NotNil(t, got)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestPersona_Get(t *testing.T) {
	svc := new(MockPersonaService)
	svc.On("Get", mock.Anything, int64(1)).Return(samplePersona(), nil)
	svc.On("Get", mock.Anything, int64(999)).Return(model.Persona{}, model.ErrNotFound)
	h := newPersonaRouter(svc)

	rec := doRequest(t, h, http.MethodGet, "/personas/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/personas/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Persona not found", decodeDetail(t, rec))

	rec = doRequest(t, h, http.MethodGet, "/personas/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.AssertExpectations(t)
}

func TestPersona_Update(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		setupMock  func(*MockPersonaService)
		wantStatus int
	}{
		{
			name:   "partial update keeps absent fields unset",
			method: http.MethodPatch,
			body:   `{"first_name":"Lucía"}`,
			setupMock: func(m *MockPersonaService) {
				m.On("Update", mock.Anything, int64(1), mock.MatchedBy(func(p model.PersonaPatch) bool {
					return p.FirstName.Set && p.FirstName.Value == "Lucía" &&
						!p.LastName.Set && !p.Email.Set && !p.Phone.Set && !p.Notes.Set
				})).Return(samplePersona(), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "null clears nullable fields",
			method: http.MethodPut,
			body:   `{"phone":null,"birth_date":null,"notes":null}`,
			setupMock: func(m *MockPersonaService) {
				m.On("Update", mock.Anything, int64(1), mock.MatchedBy(func(p model.PersonaPatch) bool {
					return p.Phone.Set && p.Phone.Value == nil &&
						p.BirthDate.Set && p.BirthDate.Value == nil &&
						p.Notes.Set && p.Notes.Value == nil
				})).Return(samplePersona(), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "is_active false is applied",
			method: http.MethodPatch,
			body:   `{"is_active":false}`,
			setupMock: func(m *MockPersonaService) {
				m.On("Update", mock.Anything, int64(1), mock.MatchedBy(func(p model.PersonaPatch) bool {
					return p.IsActive.Set && !p.IsActive.Value
				})).Return(samplePersona(), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "null email rejected",
			method:     http.MethodPatch,
			body:       `{"email":null}`,
			setupMock:  func(*MockPersonaService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid email rejected",
			method:     http.MethodPatch,
			body:       `{"email":"nope"}`,
			setupMock:  func(*MockPersonaService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "email taken",
			method: http.MethodPatch,
			body:   `{"email":"taken@x.com"}`,
			setupMock: func(m *MockPersonaService) {
				m.On("Update", mock.Anything, int64(1), mock.Anything).Return(model.Persona{}, model.ErrConflict)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "missing persona",
			method: http.MethodPatch,
			body:   `{"notes":"hola"}`,
			setupMock: func(m *MockPersonaService) {
				m.On("Update", mock.Anything, int64(1), mock.Anything).Return(model.Persona{}, model.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockPersonaService)
			tt.setupMock(svc)

			rec := doRequest(t, newPersonaRouter(svc), tt.method, "/personas/1", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestPersona_Delete(t *testing.T) {
	svc := new(MockPersonaService)
	svc.On("Delete", mock.Anything, int64(1)).Return(nil)
	svc.On("Delete", mock.Anything, int64(2)).Return(model.ErrNotFound)
	h := newPersonaRouter(svc)

	rec := doRequest(t, h, http.MethodDelete, "/personas/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = doRequest(t, h, http.MethodDelete, "/personas/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	svc.AssertExpectations(t)
}

func TestField_UnmarshalJSON(t *testing.T) {
	var req updatePersonaRequest
	require.NoError(t, json.Unmarshal([]byte(`{"phone":null,"notes":"x"}`), &req))

	assert.True(t, req.Phone.Set)
	assert.True(t, req.Phone.Null)
	assert.True(t, req.Notes.Set)
	assert.False(t, req.Notes.Null)
	assert.Equal(t, "x", req.Notes.Value)
	assert.False(t, req.FirstName.Set)
}
