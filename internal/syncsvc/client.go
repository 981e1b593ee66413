package syncsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// wireOrder is one order row as the upstream API serializes it.
type wireOrder struct {
	OrderNumber    string `json:"order_number"`
	ClientName     string `json:"client_name"`
	ContainerCount int    `json:"container_count"`
	GoodsType      string `json:"goods_type"`
	Route          string `json:"route"`
	Status         string `json:"status"`

	DepartureDate          string `json:"departure_date"`
	ArrivalTransitDate     string `json:"arrival_transit_date"`
	TruckLoadingDate       string `json:"truck_loading_date"`
	ArrivalDestinationDate string `json:"arrival_destination_date"`
	ClientReceiptDate      string `json:"client_receipt_date"`
	ETADate                string `json:"eta_date"`

	HasLoadingPhoto bool   `json:"has_loading_photo"`
	HasLocalCharges bool   `json:"has_local_charges"`
	Notes           string `json:"notes"`
}

type ordersResponse struct {
	Orders []wireOrder `json:"orders"`
}

// Client fetches order snapshots from the upstream API. Requests carry a
// bearer token; transient failures are retried with exponential backoff.
type Client struct {
	cfg     Config
	http    *http.Client
	backoff backoff
}

// NewClient creates a sync API client from config.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		backoff: backoff{initial: time.Second, max: 30 * time.Second},
	}
}

// FetchOrders retrieves the full order snapshot, retrying transient
// failures up to the configured attempt limit.
func (c *Client) FetchOrders(ctx context.Context) ([]wireOrder, error) {
	attempts := c.cfg.Retries + 1
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff.next(attempt - 1)):
			}
		}

		orders, err := c.fetchOnce(ctx)
		if err == nil {
			return orders, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("fetch orders after %d attempts: %w", attempts, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context) ([]wireOrder, error) {
	body, err := json.Marshal(map[string]string{"action": "get_orders"})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sync request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("sync api returned %d", resp.StatusCode)
	}

	var payload ordersResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return payload.Orders, nil
}
