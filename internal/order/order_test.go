package order_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/margianalogistics/logibot/internal/order"
)

func TestOrder_IsActive(t *testing.T) {
	tests := []struct {
		status string
		active bool
	}{
		{"New", true},
		{"In Progress CHN", true},
		{"In Transit IR-TKM", true},
		{"Completed", false},
		{"Cancelled", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			o := order.Order{Status: tt.status}
			assert.Equal(t, tt.active, o.IsActive())
		})
	}
}

func TestOrder_Events(t *testing.T) {
	departure := time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC)
	eta := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	o := order.Order{
		Number:        "ORD-001",
		DepartureDate: &departure,
		ETADate:       &eta,
	}

	events := o.Events()
	assert.Len(t, events, 2)
	assert.Equal(t, order.ShipmentEvent{OrderNumber: "ORD-001", Type: order.EventDeparture, Date: departure}, events[0])
	assert.Equal(t, order.ShipmentEvent{OrderNumber: "ORD-001", Type: order.EventEstimatedArrival, Date: eta}, events[1])
}

func TestOrder_Events_NoDates(t *testing.T) {
	o := order.Order{Number: "ORD-002"}
	assert.Empty(t, o.Events())
}

func TestEventType_Valid(t *testing.T) {
	for _, et := range []order.EventType{
		order.EventDeparture, order.EventArrivalTransit, order.EventTruckLoading,
		order.EventArrivalDestination, order.EventClientReceipt, order.EventEstimatedArrival,
	} {
		assert.True(t, et.Valid(), string(et))
	}
	assert.False(t, order.EventType("teleportation").Valid())
}

func TestEventType_Label(t *testing.T) {
	assert.Equal(t, "Departure from origin", order.EventDeparture.Label())
	assert.Equal(t, "Estimated arrival", order.EventEstimatedArrival.Label())
	// Unknown types fall back to the raw value instead of masking bad data.
	assert.Equal(t, "x", order.EventType("x").Label())
}
