package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-wishform/internal/metrics"
	"github.com/goliatone/go-wishform/pkg/client"
	"github.com/goliatone/go-wishform/pkg/controller"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestRequestsAreCountedByStatus(t *testing.T) {
	m := metrics.New(false)
	m.ObserveRequest(client.OpCreateWishlist, http.StatusCreated, 15*time.Millisecond, nil)
	m.ObserveRequest(client.OpCreateWishlist, http.StatusCreated, 5*time.Millisecond, nil)
	m.ObserveRequest(client.OpGetWishlist, 0, time.Millisecond, errors.New("refused"))

	out := scrape(t, m)
	assert.Contains(t, out, `wishform_api_requests_total{operation="createWishlist",status="201"} 2`)
	assert.Contains(t, out, `wishform_api_requests_total{operation="getWishlist",status="transport"} 1`)
	assert.Contains(t, out, `wishform_api_request_duration_seconds_count{operation="createWishlist"} 2`)
}

func TestStaleAndActionCounters(t *testing.T) {
	m := metrics.New(false)
	var hook controller.StaleHook = m.Stale
	hook("wishlist", controller.ActionList)
	m.ObserveAction("product", "delete", nil)
	m.ObserveAction("product", "delete", errors.New("Server error!"))

	out := scrape(t, m)
	assert.Contains(t, out, `wishform_stale_responses_total{action="list",resource="wishlist"} 1`)
	assert.Contains(t, out, `wishform_console_actions_total{action="delete",resource="product",result="ok"} 1`)
	assert.Contains(t, out, `wishform_console_actions_total{action="delete",resource="product",result="failed"} 1`)
}

func TestRuntimeCollectorsAreOptional(t *testing.T) {
	assert.NotContains(t, scrape(t, metrics.New(false)), "go_goroutines")
	assert.Contains(t, scrape(t, metrics.New(true)), "go_goroutines")
}
