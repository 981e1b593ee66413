package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/margianalogistics/logibot/pkg/pg"
)

// Store is the read/write surface over persisted orders.
// The notification engine only needs EventsInWindow; the bot commands and
// the sync importer use the rest.
type Store interface {
	GetByNumber(ctx context.Context, number string) (*Order, error)
	ActiveOrders(ctx context.Context) ([]Order, error)
	ByStatus(ctx context.Context, status string) ([]Order, error)
	Search(ctx context.Context, text string) ([]Order, error)
	Statistics(ctx context.Context, days int) (*Statistics, error)
	EventsInWindow(ctx context.Context, from, to time.Time) ([]ShipmentEvent, error)
	EventsOn(ctx context.Context, day time.Time) ([]ShipmentEvent, error)
	Upsert(ctx context.Context, o *Order) error
}

const orderColumns = `
	id, order_number,
	COALESCE(client_name, ''), COALESCE(container_count, 0),
	COALESCE(goods_type, ''), COALESCE(route, ''), COALESCE(status, ''),
	departure_date, arrival_transit_date, truck_loading_date,
	arrival_destination_date, client_receipt_date, eta_date,
	COALESCE(has_loading_photo, FALSE), COALESCE(has_local_charges, FALSE),
	COALESCE(notes, ''), created_at, updated_at`

// Repository is the PostgreSQL implementation of Store.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a repository over the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) GetByNumber(ctx context.Context, number string) (*Order, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, number)

	o, err := scanOrder(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, storeErr("get order by number", err)
	}
	return o, nil
}

func (r *Repository) ActiveOrders(ctx context.Context) ([]Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE status = ANY($1) ORDER BY created_at DESC`,
		ActiveStatuses)
	if err != nil {
		return nil, storeErr("list active orders", err)
	}
	return collectOrders(rows, "list active orders")
}

func (r *Repository) ByStatus(ctx context.Context, status string) ([]Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE status = $1 ORDER BY created_at DESC`,
		status)
	if err != nil {
		return nil, storeErr("list orders by status", err)
	}
	return collectOrders(rows, "list orders by status")
}

func (r *Repository) Search(ctx context.Context, text string) ([]Order, error) {
	pattern := "%" + text + "%"
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE order_number ILIKE $1 OR client_name ILIKE $1
		    OR goods_type ILIKE $1 OR route ILIKE $1
		 ORDER BY created_at DESC
		 LIMIT 20`, pattern)
	if err != nil {
		return nil, storeErr("search orders", err)
	}
	return collectOrders(rows, "search orders")
}

func (r *Repository) Statistics(ctx context.Context, days int) (*Statistics, error) {
	stats := &Statistics{PeriodDays: days}
	since := time.Now().AddDate(0, 0, -days)

	err := r.pool.QueryRow(ctx,
		`SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'Completed'),
			COUNT(*) FILTER (WHERE status = ANY($2))
		 FROM orders WHERE created_at >= $1`, since, ActiveStatuses).
		Scan(&stats.TotalOrders, &stats.CompletedOrders, &stats.ActiveOrders)
	if err != nil {
		return nil, storeErr("order statistics", err)
	}

	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(weight), 0), COALESCE(SUM(volume), 0)
		 FROM containers`).
		Scan(&stats.TotalContainers, &stats.TotalWeight, &stats.TotalVolume)
	if err != nil {
		return nil, storeErr("container statistics", err)
	}

	return stats, nil
}

// EventsInWindow returns every lifecycle event whose date falls in [from, to],
// ordered by event date then order number. An empty window yields an empty
// slice, not an error.
func (r *Repository) EventsInWindow(ctx context.Context, from, to time.Time) ([]ShipmentEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT order_number, 'departure' AS event_type, departure_date AS event_date
		  FROM orders WHERE departure_date BETWEEN $1 AND $2
		UNION ALL
		SELECT order_number, 'arrival_transit', arrival_transit_date
		  FROM orders WHERE arrival_transit_date BETWEEN $1 AND $2
		UNION ALL
		SELECT order_number, 'truck_loading', truck_loading_date
		  FROM orders WHERE truck_loading_date BETWEEN $1 AND $2
		UNION ALL
		SELECT order_number, 'arrival_destination', arrival_destination_date
		  FROM orders WHERE arrival_destination_date BETWEEN $1 AND $2
		UNION ALL
		SELECT order_number, 'client_receipt', client_receipt_date
		  FROM orders WHERE client_receipt_date BETWEEN $1 AND $2
		UNION ALL
		SELECT order_number, 'estimated_arrival', eta_date
		  FROM orders WHERE eta_date BETWEEN $1 AND $2
		ORDER BY event_date, order_number`, from, to)
	if err != nil {
		return nil, storeErr("events in window", err)
	}
	defer rows.Close()

	events := []ShipmentEvent{}
	for rows.Next() {
		var ev ShipmentEvent
		if err := rows.Scan(&ev.OrderNumber, &ev.Type, &ev.Date); err != nil {
			return nil, storeErr("events in window", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("events in window", err)
	}
	return events, nil
}

// EventsOn returns the events falling on the given calendar day.
func (r *Repository) EventsOn(ctx context.Context, day time.Time) ([]ShipmentEvent, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return r.EventsInWindow(ctx, start, start.Add(24*time.Hour-time.Nanosecond))
}

// Upsert inserts the order or refreshes an existing row by order number.
// Used by the sync importer; updated_at always moves forward.
func (r *Repository) Upsert(ctx context.Context, o *Order) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO orders (
			order_number, client_name, container_count, goods_type, route, status,
			departure_date, arrival_transit_date, truck_loading_date,
			arrival_destination_date, client_receipt_date, eta_date,
			has_loading_photo, has_local_charges, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (order_number) DO UPDATE SET
			client_name = EXCLUDED.client_name,
			container_count = EXCLUDED.container_count,
			goods_type = EXCLUDED.goods_type,
			route = EXCLUDED.route,
			status = EXCLUDED.status,
			departure_date = EXCLUDED.departure_date,
			arrival_transit_date = EXCLUDED.arrival_transit_date,
			truck_loading_date = EXCLUDED.truck_loading_date,
			arrival_destination_date = EXCLUDED.arrival_destination_date,
			client_receipt_date = EXCLUDED.client_receipt_date,
			eta_date = EXCLUDED.eta_date,
			has_loading_photo = EXCLUDED.has_loading_photo,
			has_local_charges = EXCLUDED.has_local_charges,
			notes = EXCLUDED.notes,
			updated_at = now()`,
		o.Number, o.ClientName, o.ContainerCount, o.GoodsType, o.Route, o.Status,
		o.DepartureDate, o.ArrivalTransitDate, o.TruckLoadingDate,
		o.ArrivalDestinationDate, o.ClientReceiptDate, o.ETADate,
		o.HasLoadingPhoto, o.HasLocalCharges, o.Notes)
	if err != nil {
		return storeErr("upsert order", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.Number, &o.ClientName, &o.ContainerCount,
		&o.GoodsType, &o.Route, &o.Status,
		&o.DepartureDate, &o.ArrivalTransitDate, &o.TruckLoadingDate,
		&o.ArrivalDestinationDate, &o.ClientReceiptDate, &o.ETADate,
		&o.HasLoadingPhoto, &o.HasLocalCharges, &o.Notes,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows, op string) ([]Order, error) {
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return orders, nil
}

// storeErr classifies any non-empty-result failure as ErrStoreUnavailable so
// callers can distinguish transient store trouble from domain errors.
func storeErr(op string, err error) error {
	return errors.Join(ErrStoreUnavailable, fmt.Errorf("%s: %w", op, err))
}
