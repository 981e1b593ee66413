package syncsvc

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/margianalogistics/logibot/internal/order"
)

type captureWriter struct {
	orders  []*order.Order
	failFor map[string]error
}

func (w *captureWriter) Upsert(ctx context.Context, o *order.Order) error {
	if err, ok := w.failFor[o.Number]; ok {
		return err
	}
	w.orders = append(w.orders, o)
	return nil
}

func syncServer(t *testing.T, rows []wireOrder) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ordersResponse{Orders: rows})
	}))
}

func TestImporter_Run(t *testing.T) {
	srv := syncServer(t, []wireOrder{
		{
			OrderNumber:    "ORD-001",
			ClientName:     "Acme",
			ContainerCount: 2,
			Status:         "In Transit CHN-IR",
			DepartureDate:  "2024-02-10",
			ETADate:        "2024-03-05",
		},
		{OrderNumber: "ORD-002", Status: "New"},
	})
	defer srv.Close()

	store := &captureWriter{}
	imp := NewImporter(NewClient(testConfig(srv.URL)), store,
		WithImporterLogger(slog.New(slog.DiscardHandler)))

	require.NoError(t, imp.Run(context.Background()))
	require.Len(t, store.orders, 2)

	first := store.orders[0]
	assert.Equal(t, "ORD-001", first.Number)
	assert.Equal(t, "Acme", first.ClientName)
	require.NotNil(t, first.DepartureDate)
	assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), *first.DepartureDate)
	assert.Nil(t, first.TruckLoadingDate)
}

func TestImporter_SkipsMalformedRows(t *testing.T) {
	srv := syncServer(t, []wireOrder{
		{OrderNumber: ""},
		{OrderNumber: "ORD-BAD", DepartureDate: "10/02/2024"},
		{OrderNumber: "ORD-OK"},
	})
	defer srv.Close()

	store := &captureWriter{}
	imp := NewImporter(NewClient(testConfig(srv.URL)), store,
		WithImporterLogger(slog.New(slog.DiscardHandler)))

	require.NoError(t, imp.Run(context.Background()))
	require.Len(t, store.orders, 1)
	assert.Equal(t, "ORD-OK", store.orders[0].Number)
}

func TestImporter_UpsertFailureDoesNotAbort(t *testing.T) {
	srv := syncServer(t, []wireOrder{
		{OrderNumber: "ORD-001"},
		{OrderNumber: "ORD-002"},
	})
	defer srv.Close()

	store := &captureWriter{failFor: map[string]error{
		"ORD-001": errors.New("store down"),
	}}
	imp := NewImporter(NewClient(testConfig(srv.URL)), store,
		WithImporterLogger(slog.New(slog.DiscardHandler)))

	require.NoError(t, imp.Run(context.Background()))
	require.Len(t, store.orders, 1)
	assert.Equal(t, "ORD-002", store.orders[0].Number)
}

func TestToOrder_RFC3339Accepted(t *testing.T) {
	o, err := toOrder(wireOrder{
		OrderNumber: "ORD-001",
		ETADate:     "2024-03-05T14:30:00Z",
	})
	require.NoError(t, err)
	require.NotNil(t, o.ETADate)
	assert.Equal(t, 14, o.ETADate.Hour())
}
