package report_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/margianalogistics/logibot/internal/order"
	"github.com/margianalogistics/logibot/internal/report"
)

func sampleOrder() order.Order {
	dep := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	eta := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	return order.Order{
		Number:         "ORD-001",
		ClientName:     "Acme Trading",
		ContainerCount: 2,
		GoodsType:      "Electronics",
		Route:          "CHN-IR-TKM",
		Status:         "In Transit CHN-IR",
		DepartureDate:  &dep,
		ETADate:        &eta,
		Notes:          "Handle with care",
	}
}

func TestRenderOrderReport(t *testing.T) {
	data, err := report.RenderOrderReport(sampleOrder(), time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderSummaryReport(t *testing.T) {
	stats := order.Statistics{
		TotalOrders:     42,
		CompletedOrders: 30,
		ActiveOrders:    12,
		TotalContainers: 87,
		TotalWeight:     512.5,
		PeriodDays:      30,
	}

	data, err := report.RenderSummaryReport(stats, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

type captureBlob struct {
	keys map[string][]byte
	err  error
}

func (c *captureBlob) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if c.err != nil {
		return c.err
	}
	if c.keys == nil {
		c.keys = make(map[string][]byte)
	}
	c.keys[key] = data
	return nil
}

func (c *captureBlob) Get(ctx context.Context, key string) ([]byte, error) { return c.keys[key], nil }
func (c *captureBlob) Delete(ctx context.Context, key string) error       { return nil }

func TestArchiver_OrderReport(t *testing.T) {
	store := &captureBlob{}
	a := report.NewArchiver(store, report.WithArchiverLogger(slog.New(slog.DiscardHandler)))

	at := time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC)
	data, filename, err := a.OrderReport(context.Background(), sampleOrder(), at)
	require.NoError(t, err)
	assert.Equal(t, "order_ORD-001_20240214.pdf", filename)
	assert.Equal(t, "%PDF", string(data[:4]))

	archived, ok := store.keys["orders/2024/02/14/order_ORD-001_20240214.pdf"]
	require.True(t, ok, "report must be archived under a date-partitioned key")
	assert.Equal(t, data, archived)
}

func TestArchiver_StorageFailureIsNotFatal(t *testing.T) {
	store := &captureBlob{err: errors.New("bucket unavailable")}
	a := report.NewArchiver(store, report.WithArchiverLogger(slog.New(slog.DiscardHandler)))

	data, filename, err := a.SummaryReport(context.Background(), order.Statistics{PeriodDays: 7}, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.NotEmpty(t, filename)
}
