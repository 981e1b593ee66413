package syncsvc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/margianalogistics/logibot/internal/order"
	"github.com/margianalogistics/logibot/pkg/logger"
)

// OrderWriter is the slice of the order store the importer needs.
type OrderWriter interface {
	Upsert(ctx context.Context, o *order.Order) error
}

// Importer pulls the upstream snapshot and upserts it into the local store.
// Per-row failures are logged and skipped so one malformed order never
// aborts the whole import.
type Importer struct {
	client *Client
	store  OrderWriter
	log    *slog.Logger
}

// ImporterOption configures an Importer.
type ImporterOption func(*Importer)

// WithImporterLogger sets the logger for the Importer.
func WithImporterLogger(log *slog.Logger) ImporterOption {
	return func(i *Importer) {
		if log != nil {
			i.log = log
		}
	}
}

// NewImporter creates an importer over the sync client and order store.
func NewImporter(client *Client, store OrderWriter, opts ...ImporterOption) *Importer {
	i := &Importer{client: client, store: store, log: slog.Default()}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run performs one full sync pass. Returns an error only when the fetch
// itself fails; row-level upsert failures are logged and counted.
func (i *Importer) Run(ctx context.Context) error {
	start := time.Now()

	rows, err := i.client.FetchOrders(ctx)
	if err != nil {
		return fmt.Errorf("sync orders: %w", err)
	}

	var imported, failed int
	for _, row := range rows {
		o, err := toOrder(row)
		if err != nil {
			failed++
			i.log.WarnContext(ctx, "skipping malformed order row",
				logger.OrderNumber(row.OrderNumber),
				logger.Error(err))
			continue
		}

		if err := i.store.Upsert(ctx, o); err != nil {
			failed++
			i.log.ErrorContext(ctx, "failed to upsert order",
				logger.OrderNumber(o.Number),
				logger.Error(err))
			continue
		}
		imported++
	}

	i.log.InfoContext(ctx, "order sync complete",
		slog.Int("imported", imported),
		slog.Int("failed", failed),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

func toOrder(row wireOrder) (*order.Order, error) {
	if row.OrderNumber == "" {
		return nil, fmt.Errorf("missing order number")
	}

	o := &order.Order{
		Number:          row.OrderNumber,
		ClientName:      row.ClientName,
		ContainerCount:  row.ContainerCount,
		GoodsType:       row.GoodsType,
		Route:           row.Route,
		Status:          row.Status,
		HasLoadingPhoto: row.HasLoadingPhoto,
		HasLocalCharges: row.HasLocalCharges,
		Notes:           row.Notes,
	}

	dates := []struct {
		raw  string
		dst  **time.Time
		name string
	}{
		{row.DepartureDate, &o.DepartureDate, "departure_date"},
		{row.ArrivalTransitDate, &o.ArrivalTransitDate, "arrival_transit_date"},
		{row.TruckLoadingDate, &o.TruckLoadingDate, "truck_loading_date"},
		{row.ArrivalDestinationDate, &o.ArrivalDestinationDate, "arrival_destination_date"},
		{row.ClientReceiptDate, &o.ClientReceiptDate, "client_receipt_date"},
		{row.ETADate, &o.ETADate, "eta_date"},
	}
	for _, d := range dates {
		t, err := parseDate(d.raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.name, err)
		}
		*d.dst = t
	}

	return o, nil
}

// parseDate accepts the upstream's date-only format plus RFC 3339 for
// timestamped fields. Empty means the milestone is not set.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date %q", s)
}
