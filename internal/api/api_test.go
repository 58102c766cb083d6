package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andresuchdata/wms-engine/internal/config"
	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/andresuchdata/wms-engine/internal/engine"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, cfg config.ServerConfig) *gin.Engine {
	t.Helper()
	var seq atomic.Int64
	eng := engine.New(engine.Options{
		Now:         func() time.Time { return time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC) },
		NewID:       func() string { return fmt.Sprintf("id-%03d", seq.Add(1)) },
		PriceSource: rand.NewSource(1),
	})
	require.NoError(t, eng.Seed(context.Background()))
	return NewRouter(eng, cfg)
}

func do(router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, config.ServerConfig{})
	w := do(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestMovementThenVerify(t *testing.T) {
	router := newTestRouter(t, config.ServerConfig{})

	w := do(router, http.MethodPost, "/api/v1/movements", domain.MovementRequest{
		ProductID: "SKU-AR-01", FromLocationID: "A-01-01", ToLocationID: "B-01-01", Quantity: 5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var entry domain.MovementLogEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, 5, entry.Quantity)
	assert.Len(t, entry.Hash, 64)

	w = do(router, http.MethodGet, "/api/v1/movements/verify", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var v domain.LedgerVerification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.Equal(t, 1, v.TotalEntries)
	assert.Equal(t, 1, v.ValidEntries)
	assert.Empty(t, v.TamperedIDs)
}

func TestErrorStatuses(t *testing.T) {
	router := newTestRouter(t, config.ServerConfig{})

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"malformed body", http.MethodPost, "/api/v1/movements", `{"product_id":`, http.StatusBadRequest},
		{"missing product", http.MethodPost, "/api/v1/movements", domain.MovementRequest{ToLocationID: "A-01-01", Quantity: 1}, http.StatusBadRequest},
		{"insufficient stock", http.MethodPost, "/api/v1/movements", domain.MovementRequest{ProductID: "SKU-AR-01", FromLocationID: "A-01-01", ToLocationID: "B-01-01", Quantity: 500}, http.StatusConflict},
		{"unknown forecast product", http.MethodGet, "/api/v1/forecast/SKU-NOPE", nil, http.StatusNotFound},
		{"unknown location", http.MethodGet, "/api/v1/locations/Z-99-99/travel-time", nil, http.StatusNotFound},
		{"export without storage", http.MethodPost, "/api/v1/movements/export", nil, http.StatusServiceUnavailable},
		{"unknown return status", http.MethodPatch, "/api/v1/returns/id-404", domain.ReturnStatusRequest{Status: "lost"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestReturnLifecycle(t *testing.T) {
	router := newTestRouter(t, config.ServerConfig{})

	w := do(router, http.MethodPost, "/api/v1/returns", domain.ReturnRequest{ProductID: "SKU-DR-05", Reason: "damaged case"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var rc domain.ReturnCase
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rc))
	assert.Equal(t, domain.ReturnReceived, rc.Status)

	w = do(router, http.MethodPatch, "/api/v1/returns/"+rc.ID, domain.ReturnStatusRequest{Status: "restocked"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(router, http.MethodPatch, "/api/v1/returns/"+rc.ID, domain.ReturnStatusRequest{Status: "inspected"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rc))
	assert.Equal(t, domain.ReturnInspected, rc.Status)
}

func TestPlanningRoutes(t *testing.T) {
	router := newTestRouter(t, config.ServerConfig{})

	w := do(router, http.MethodGet, "/api/v1/locations/A-01-01/travel-time", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var est domain.TravelEstimate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &est))
	assert.Equal(t, 2.0, est.Seconds)

	w = do(router, http.MethodPost, "/api/v1/routes/pick", domain.PickRouteRequest{
		Items: []domain.PickLine{{ProductID: "SKU-AR-01", Quantity: 30}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var route domain.PickRoute
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &route))
	require.Len(t, route.Waypoints, 2)
	assert.Equal(t, "A-01-01", route.Waypoints[0].LocationID)
	assert.Equal(t, 24, route.Waypoints[0].Quantity)
	assert.Equal(t, "B-01-01", route.Waypoints[1].LocationID)
	assert.Equal(t, 6, route.Waypoints[1].Quantity)

	w = do(router, http.MethodPost, "/api/v1/packaging/recommend", domain.PackagingRequest{
		Items: []domain.PickLine{{ProductID: "SKU-TS-06", Quantity: 2}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var pack domain.PackagingRecommendation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pack))
	assert.Equal(t, "S", pack.Recommended.BoxID)
	assert.Equal(t, 1, pack.Recommended.BoxCount)
}

func TestAddSupplier(t *testing.T) {
	router := newTestRouter(t, config.ServerConfig{})

	w := do(router, http.MethodPost, "/api/v1/suppliers", domain.SupplierProfile{
		ID: "sup-local", Name: "Local Co-op", PriceScore: 0.8, ReliabilityScore: 0.85, SustainabilityScore: 0.9, LeadTimeDays: 3,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var saved domain.SupplierProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, "SUP-LOCAL", saved.ID)

	w = do(router, http.MethodGet, "/api/v1/suppliers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SUP-LOCAL")

	w = do(router, http.MethodPost, "/api/v1/suppliers", domain.SupplierProfile{ID: "SUP-X", ReliabilityScore: 1.5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSensorIngestIsRateLimited(t *testing.T) {
	router := newTestRouter(t, config.ServerConfig{SensorRatePerSecond: 0.001, SensorBurst: 1})
	reading := domain.SensorReadingRequest{Kind: "Temperature", Value: 4.5, Unit: "C"}

	w := do(router, http.MethodPost, "/api/v1/locations/A-01-01/sensors", reading)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(router, http.MethodPost, "/api/v1/locations/A-01-01/sensors", reading)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// reads are not limited
	w = do(router, http.MethodGet, "/api/v1/locations/A-01-01/sensors", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []domain.SensorReading `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "temperature", body.Data[0].Kind)
}

func TestNormalizeAllowedOrigins(t *testing.T) {
	origins, all := normalizeAllowedOrigins([]string{"https://a.example, https://b.example", " "})
	assert.False(t, all)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, origins)

	_, all = normalizeAllowedOrigins([]string{"*"})
	assert.True(t, all)
}
