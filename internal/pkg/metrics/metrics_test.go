package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Recorders(t *testing.T) {
	m := New()

	m.SubscribersChanged(3)
	m.Notified(4, 1)
	m.Notified(2, 0)
	m.Transitioned(true)
	m.Transitioned(false)
	m.Transitioned(true)
	m.WatchersChanged(2)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.subscribers))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.notifications.WithLabelValues("delivered")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues("failed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("authenticated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("anonymous")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.watchers))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.SubscribersChanged(1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "chatfront_auth_subscribers 1")
}
