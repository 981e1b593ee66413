package order

import "time"

// EventType identifies a shipment lifecycle milestone.
type EventType string

const (
	EventDeparture          EventType = "departure"
	EventArrivalTransit     EventType = "arrival_transit"
	EventTruckLoading       EventType = "truck_loading"
	EventArrivalDestination EventType = "arrival_destination"
	EventClientReceipt      EventType = "client_receipt"
	EventEstimatedArrival   EventType = "estimated_arrival"
)

// Valid reports whether et is one of the known event types.
func (et EventType) Valid() bool {
	switch et {
	case EventDeparture, EventArrivalTransit, EventTruckLoading,
		EventArrivalDestination, EventClientReceipt, EventEstimatedArrival:
		return true
	}
	return false
}

// Label returns the human-readable event name used in chat messages.
func (et EventType) Label() string {
	switch et {
	case EventDeparture:
		return "Departure from origin"
	case EventArrivalTransit:
		return "Arrival at transit country"
	case EventTruckLoading:
		return "Truck loading"
	case EventArrivalDestination:
		return "Arrival at destination country"
	case EventClientReceipt:
		return "Client receipt"
	case EventEstimatedArrival:
		return "Estimated arrival"
	default:
		return string(et)
	}
}

// ShipmentEvent is a view over an order's lifecycle date columns: one
// timestamped milestone for one order. It has no lifecycle of its own.
type ShipmentEvent struct {
	OrderNumber string
	Type        EventType
	Date        time.Time
}
