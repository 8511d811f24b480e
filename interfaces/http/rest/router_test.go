package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clutchdemo/domain/clutch"
	"clutchdemo/domain/core/valueobjects"
	"clutchdemo/interfaces/http/rest"
	"clutchdemo/interfaces/http/rest/handlers"
	pkgerrors "clutchdemo/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeQueries struct {
	clutches  []*clutch.Clutch
	details   map[string]*clutch.Details
	lastLimit int
	err       error
}

func (f *fakeQueries) ListClutches(ctx context.Context, limit int) ([]*clutch.Clutch, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.clutches, nil
}

func (f *fakeQueries) GetClutch(ctx context.Context, clutchID string) (*clutch.Details, error) {
	d, ok := f.details[clutchID]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("clutch " + clutchID)
	}
	return d, nil
}

func newServer(q handlers.ClutchQueries) http.Handler {
	logger := zap.NewNop()
	return rest.NewRouter(q, pkgerrors.NewErrorHandler(logger, false), []string{"*"}, logger).Setup()
}

func do(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func seeded() *fakeQueries {
	uploaded := time.Date(2025, 2, 14, 8, 0, 0, 0, time.UTC)
	c := clutch.NewDemoClutch("clutch-abcdef01", uploaded)
	egg := &clutch.Egg{
		ID:              "egg-123456",
		ClutchID:        c.ID,
		HatchLikelihood: valueobjects.NewDecimal(82.5, 1),
		Confidence:      valueobjects.NewDecimal(0.93, 2),
		EggAnalysis:     clutch.EggAnalysis{VisibleDefects: []string{}},
	}
	return &fakeQueries{
		clutches: []*clutch.Clutch{c},
		details: map[string]*clutch.Details{
			c.ID: {Clutch: c, Eggs: []*clutch.Egg{egg}},
		},
	}
}

func TestHealth(t *testing.T) {
	rec := do(t, newServer(seeded()), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestListClutches(t *testing.T) {
	q := seeded()
	rec := do(t, newServer(q), "/clutches?limit=20")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 20, q.lastLimit)

	var body struct {
		Clutches []map[string]interface{} `json:"clutches"`
		Count    int                      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Clutches, 1)
	assert.Equal(t, "clutch-abcdef01", body.Clutches[0]["id"])
	assert.Equal(t, "clutches/clutch-abcdef01/original.jpg", body.Clutches[0]["imageKey"])
	assert.Equal(t, "analyzed", body.Clutches[0]["status"])
}

func TestListClutches_DefaultLimit(t *testing.T) {
	q := seeded()
	rec := do(t, newServer(q), "/clutches")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, q.lastLimit, "limit is left to the query service")
}

func TestListClutches_BadLimit(t *testing.T) {
	rec := do(t, newServer(seeded()), "/clutches?limit=lots")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body pkgerrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, string(pkgerrors.ErrorTypeValidation), body.Type)
}

func TestListClutches_StoreFailure(t *testing.T) {
	q := seeded()
	q.err = pkgerrors.NewDatabaseError("Query", assert.AnError)
	rec := do(t, newServer(q), "/clutches")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetClutch(t *testing.T) {
	rec := do(t, newServer(seeded()), "/clutches/clutch-abcdef01")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Clutch map[string]interface{}   `json:"clutch"`
		Eggs   []map[string]interface{} `json:"eggs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "clutch-abcdef01", body.Clutch["id"])
	require.Len(t, body.Eggs, 1)
	assert.Equal(t, 82.5, body.Eggs[0]["hatchLikelihood"])
	assert.Equal(t, 0.93, body.Eggs[0]["confidence"])
}

func TestGetClutch_NotFound(t *testing.T) {
	rec := do(t, newServer(seeded()), "/clutches/clutch-00000000")

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body pkgerrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "clutch clutch-00000000 not found", body.Error)
	assert.Equal(t, string(pkgerrors.ErrorTypeNotFound), body.Type)
}

func TestUnknownRoute(t *testing.T) {
	rec := do(t, newServer(seeded()), "/eggs")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimit(t *testing.T) {
	logger := zap.NewNop()
	h := rest.NewRouter(seeded(), pkgerrors.NewErrorHandler(logger, false), []string{"*"}, logger).
		WithRateLimit(2).
		Setup()

	assert.Equal(t, http.StatusOK, do(t, h, "/clutches").Code)
	assert.Equal(t, http.StatusOK, do(t, h, "/clutches").Code)

	rec := do(t, h, "/clutches")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	var body pkgerrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, string(pkgerrors.ErrorTypeRateLimited), body.Type)
}
