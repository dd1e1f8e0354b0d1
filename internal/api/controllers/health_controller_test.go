package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"diplomakids/internal/testutil"
	"diplomakids/pkg/metrics"
)

func healthRouter(t *testing.T) (*gin.Engine, func()) {
	db := testutil.NewTestDB(t)
	h := NewHealthController(db, metrics.New(), zap.NewNop())

	r := gin.New()
	r.GET("/health", h.Health)
	r.GET("/metrics", h.Metrics)

	closeDB := func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())
	}
	return r, closeDB
}

func TestHealthReportsConnectedDatabase(t *testing.T) {
	r, _ := healthRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "success", body.Status)
	data := body.Data.(map[string]interface{})
	assert.Equal(t, "healthy", data["status"])
	assert.Equal(t, "connected", data["database"])
}

func TestHealthDegradesWhenDatabaseIsClosed(t *testing.T) {
	r, closeDB := healthRouter(t)
	closeDB()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "disconnected", body.Data.(map[string]interface{})["database"])
}

func TestMetricsEndpointServesPrometheusText(t *testing.T) {
	r, _ := healthRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
