package syncsvc

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
)

func testConfig(url string) Config {
	return Config{
		APIURL:   url,
		APIToken: "secret-token",
		Timeout:  5 * time.Second,
		Retries:  2,
	}
}

func TestFetchOrders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "get_orders", req["action"])

		json.NewEncoder(w).Encode(ordersResponse{Orders: []wireOrder{
			{OrderNumber: "ORD-001", ClientName: "Acme", Status: "New", DepartureDate: "2024-02-10"},
			{OrderNumber: "ORD-002", Status: "In Progress IR"},
		}})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	orders, err := client.FetchOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD-001", orders[0].OrderNumber)
}

func TestFetchOrders_RetriesTransientFailure(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(ordersResponse{Orders: []wireOrder{{OrderNumber: "ORD-001"}}})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	client.backoff = backoff{initial: time.Millisecond, max: 5 * time.Millisecond}

	orders, err := client.FetchOrders(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, int64(3), calls.Load())
}

func TestFetchOrders_ExhaustsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	client.backoff = backoff{initial: time.Millisecond, max: 5 * time.Millisecond}

	_, err := client.FetchOrders(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 attempts")
}

func TestFetchOrders_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(testConfig(srv.URL))
	_, err := client.FetchOrders(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBackoff_Growth(t *testing.T) {
	b := backoff{initial: time.Second, max: 10 * time.Second}

	assert.Zero(t, b.next(0))

	first := b.next(1)
	assert.InDelta(t, float64(time.Second), float64(first), float64(time.Second)*0.3)

	// Capped at max regardless of attempt number.
	assert.LessOrEqual(t, b.next(10), 10*time.Second)
}
