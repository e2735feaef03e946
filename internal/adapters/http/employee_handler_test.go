package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/staffroster/core/internal/adapters/repository"
	"github.com/staffroster/core/internal/application/services"
	"github.com/staffroster/core/internal/domain/entities"
	"github.com/staffroster/core/internal/infrastructure/logger"
	"github.com/staffroster/core/internal/infrastructure/persistence"
	"github.com/staffroster/core/internal/ports"
	"github.com/staffroster/core/internal/ports/mocks"
)

func newTestEcho(t *testing.T, snapshots ports.SnapshotStore, strict bool) *echo.Echo {
	t.Helper()

	repo, err := repository.NewEmployeeRepository(context.Background(), snapshots)
	require.NoError(t, err)

	log := logger.NewNop()
	handler := NewEmployeeHandler(services.NewEmployeeService(repo, strict, log), log)

	e := echo.New()
	e.Validator = NewValidator()
	handler.Register(e.Group("/employees"))
	return e
}

func newFileEcho(t *testing.T) *echo.Echo {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	return newTestEcho(t, persistence.New(path, logger.NewNop(), nil), true)
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestEmployeeHandler_Lifecycle(t *testing.T) {
	e := newFileEcho(t)

	rec := do(e, http.MethodPost, "/employees", `{"name":"Ann","age":30,"position":"Engineer"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created entities.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "/employees/"+created.ID, rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, entities.Employee{ID: created.ID, Name: "Ann", Age: 30, Position: "Engineer"}, created)

	rec = do(e, http.MethodGet, "/employees/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got entities.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created, got)

	rec = do(e, http.MethodGet, "/employees", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []entities.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, []entities.Employee{created}, list)

	rec = do(e, http.MethodDelete, "/employees/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(e, http.MethodDelete, "/employees/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(e, http.MethodGet, "/employees/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodGet, "/employees", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestEmployeeHandler_CreateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `name=Ann`},
		{name: "age overflow", body: `{"name":"Ann","age":256,"position":"Engineer"}`},
		{name: "negative age", body: `{"name":"Ann","age":-1,"position":"Engineer"}`},
		{name: "age as string", body: `{"name":"Ann","age":"30","position":"Engineer"}`},
		{name: "missing age", body: `{"name":"Ann","position":"Engineer"}`},
		{name: "missing name", body: `{"age":30,"position":"Engineer"}`},
		{name: "missing position", body: `{"name":"Ann","age":30}`},
		{name: "blank name", body: `{"name":"   ","age":30,"position":"Engineer"}`},
		{name: "blank position", body: `{"name":"Ann","age":30,"position":"\t\n"}`},
		{name: "name too long", body: `{"name":"` + strings.Repeat("a", 101) + `","age":30,"position":"Engineer"}`},
	}

	e := newFileEcho(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, "/employees", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	rec := do(e, http.MethodGet, "/employees", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestEmployeeHandler_CreateKeepsFieldsVerbatim(t *testing.T) {
	e := newFileEcho(t)

	rec := do(e, http.MethodPost, "/employees", `{"name":"  Ann ","age":30,"position":"\tEngineer\n"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created entities.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(e, http.MethodGet, "/employees/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got entities.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "  Ann ", got.Name)
	assert.Equal(t, "\tEngineer\n", got.Position)
}

func TestEmployeeHandler_CreateAcceptsZeroAge(t *testing.T) {
	e := newFileEcho(t)

	rec := do(e, http.MethodPost, "/employees", `{"name":"Baby","age":0,"position":"Mascot"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestEmployeeHandler_StaleSnapshot(t *testing.T) {
	tests := []struct {
		name       string
		strict     bool
		wantCreate int
		wantDelete int
	}{
		{name: "strict", strict: true, wantCreate: http.StatusInternalServerError, wantDelete: http.StatusInternalServerError},
		{name: "lenient", strict: false, wantCreate: http.StatusCreated, wantDelete: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			snapshots := mocks.NewMockSnapshotStore(ctrl)
			snapshots.EXPECT().Load(gomock.Any()).Return(map[string]entities.Employee{}, nil)
			snapshots.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full")).Times(2)

			e := newTestEcho(t, snapshots, tt.strict)

			rec := do(e, http.MethodPost, "/employees", `{"name":"Ann","age":30,"position":"Engineer"}`)
			require.Equal(t, tt.wantCreate, rec.Code, rec.Body.String())

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			id, _ := body["id"].(string)
			require.NotEmpty(t, id)

			rec = do(e, http.MethodGet, "/employees/"+id, "")
			assert.Equal(t, http.StatusOK, rec.Code)

			rec = do(e, http.MethodDelete, "/employees/"+id, "")
			assert.Equal(t, tt.wantDelete, rec.Code)
		})
	}
}
