package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suite_hotel/internal/adapters/gateway"
	"suite_hotel/internal/domain"
)

func testOptions(retries int) gateway.Options {
	return gateway.Options{RPS: 100, MaxRetries: retries, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func TestClient_ListHotels_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/hotels/all", r.URL.Path)
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(500)
		default:
			_ = json.NewEncoder(w).Encode([]map[string]any{{"objectId": "0xh1", "name": "Sea Breeze"}})
		}
	}))
	defer ts.Close()

	cl := gateway.New(ts.URL, testOptions(3))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := cl.ListHotels(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "0xh1", got[0]["objectId"])
	assert.EqualValues(t, 3, atomic.LoadInt32(&hits))
}

func TestClient_ServerErrorExhaustsRetries(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	cl := gateway.New(ts.URL, testOptions(2))
	_, err := cl.ListHotels(context.Background())
	require.ErrorIs(t, err, gateway.ErrUnavailable)
	assert.EqualValues(t, 3, atomic.LoadInt32(&hits)) // first try + 2 retries
}

func TestClient_ClientErrorIsNotRetried(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	cl := gateway.New(ts.URL, testOptions(3))
	_, err := cl.ListHotels(context.Background())
	require.ErrorIs(t, err, gateway.ErrClientStatus)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestClient_ListRooms_FallsBackOn404(t *testing.T) {
	var paths []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path != "/api/hotels/0xh1/rooms" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{{"objectId": "r1", "price_per_day": 120}})
	}))
	defer ts.Close()

	cl := gateway.New(ts.URL, testOptions(0))
	got, err := cl.ListRooms(context.Background(), "0xh1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"/api//hotels/0xh1/rooms", "/api/hotels/0xh1/rooms"}, paths)
}

func TestClient_ListReservations_NotFound(t *testing.T) {
	var guest string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		guest = r.URL.Query().Get("guestAddress")
		http.NotFound(w, r)
	}))
	defer ts.Close()

	cl := gateway.New(ts.URL, testOptions(0))
	_, err := cl.ListReservations(context.Background(), "0xabc")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "0xabc", guest)
}

func TestClient_ContextCanceledDuringBackoff(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	cl := gateway.New(ts.URL, gateway.Options{RPS: 100, MaxRetries: 3, BaseDelay: time.Second, MaxDelay: time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := cl.ListHotels(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
