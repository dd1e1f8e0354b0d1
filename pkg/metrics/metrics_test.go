package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordersUpdateCollectors(t *testing.T) {
	m := New()

	m.RecordOutboxTask("email.welcome", "done")
	m.RecordOutboxTask("email.welcome", "done")
	m.RecordAchievement("financial")
	m.RecordHTTPRequest("GET", "/health", "200", 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.outboxTasks.WithLabelValues("email.welcome", "done")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.achievementsAwarded.WithLabelValues("financial")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/health", "200")))
}

func TestHandlerExposesNamespace(t *testing.T) {
	m := New()
	m.RecordWebhookEvent("payment_intent.succeeded", "applied")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "diplomakids_payments_webhook_events_total"))
}
