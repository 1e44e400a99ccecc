package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordsOperationsAndCache(t *testing.T) {
	m := New("user")
	m.ObserveOperation("create")
	m.ObserveOperation("create")
	m.CacheHit("users_list")
	m.CacheMiss("users_list")
	m.CacheInvalidationFailed("users_list")

	require.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("create")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits.WithLabelValues("users_list")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.cacheMisses.WithLabelValues("users_list")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.cacheInvalidationErr.WithLabelValues("users_list")))

	// inventory gauges only exist for products
	m.SetInventory(3, 10)
}

func TestMetrics_HandlerExposesOwnRegistry(t *testing.T) {
	m := New("product")
	m.SetInventory(2, 15)
	m.ObserveOperation("list")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	require.Contains(t, string(body), "products_total_stock 15")
	require.Contains(t, string(body), `product_operations_total{operation="list"} 1`)
}

func TestRunEvery_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan struct{})
	go func() {
		RunEvery(ctx, 5*time.Millisecond, func(context.Context) { calls.Add(1) })
		close(done)
	}()
	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunEvery did not return after cancel")
	}
}
