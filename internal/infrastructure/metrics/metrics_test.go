package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSave(t *testing.T) {
	m := New()

	m.ObserveSave(time.Millisecond, nil)
	m.ObserveSave(time.Millisecond, nil)
	m.ObserveSave(time.Millisecond, errors.New("disk full"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.snapshotSaves.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.snapshotSaves.WithLabelValues("error")))
}

func TestRegisterStore(t *testing.T) {
	m := New()

	size, stale := 3, true
	require.NoError(t, m.RegisterStore(func() int { return size }, func() bool { return stale }))

	expected := `
# HELP staffroster_employees Number of employees held in memory
# TYPE staffroster_employees gauge
staffroster_employees 3
# HELP staffroster_snapshot_stale 1 when the snapshot file is behind the in-memory store
# TYPE staffroster_snapshot_stale gauge
staffroster_snapshot_stale 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"staffroster_employees", "staffroster_snapshot_stale"))

	require.Error(t, m.RegisterStore(func() int { return 0 }, func() bool { return false }))
}

func TestMiddleware(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/employees/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "employee not found")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/abc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "/employees/:id", "404")))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
