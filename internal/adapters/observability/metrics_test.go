package observability_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suite_hotel/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record one sample per family so they are exported
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveStore("hotels", "set")
	observability.SetCatalogSize(3)
	observability.ObserveExternalError("gateway", "/api/hotels/all", errors.New("dial"), time.Second)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	assert.Contains(t, out, "suite_http_requests_total")
	assert.Contains(t, out, `suite_store_events_total{event="set",store="hotels"}`)
	assert.Contains(t, out, "suite_catalog_hotels 3")
	assert.Contains(t, out, `suite_external_errors_total{endpoint="/api/hotels/all",error="*errors.errorString",service="gateway"}`)
}

func TestLabelErr(t *testing.T) {
	assert.Equal(t, "none", observability.LabelErr(nil))
	assert.Equal(t, "*errors.errorString", observability.LabelErr(errors.New("x")))
}
