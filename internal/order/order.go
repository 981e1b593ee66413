package order

import "time"

// Order mirrors one row of the operator's orders table. Lifecycle date
// fields are nil until the corresponding milestone is planned or reached.
type Order struct {
	ID             int64
	Number         string
	ClientName     string
	ContainerCount int
	GoodsType      string
	Route          string
	Status         string

	DepartureDate          *time.Time
	ArrivalTransitDate     *time.Time
	TruckLoadingDate       *time.Time
	ArrivalDestinationDate *time.Time
	ClientReceiptDate      *time.Time
	ETADate                *time.Time

	HasLoadingPhoto bool
	HasLocalCharges bool
	Notes           string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveStatuses are the order statuses considered in flight.
// Everything else (Completed, Cancelled) is terminal.
var ActiveStatuses = []string{
	"New",
	"In Progress CHN",
	"In Transit CHN-IR",
	"In Progress IR",
	"In Transit IR-TKM",
}

// IsActive reports whether the order is in an in-flight status.
func (o *Order) IsActive() bool {
	for _, s := range ActiveStatuses {
		if o.Status == s {
			return true
		}
	}
	return false
}

// Events expands the order's populated lifecycle dates into shipment events.
func (o *Order) Events() []ShipmentEvent {
	dates := []struct {
		t  *time.Time
		et EventType
	}{
		{o.DepartureDate, EventDeparture},
		{o.ArrivalTransitDate, EventArrivalTransit},
		{o.TruckLoadingDate, EventTruckLoading},
		{o.ArrivalDestinationDate, EventArrivalDestination},
		{o.ClientReceiptDate, EventClientReceipt},
		{o.ETADate, EventEstimatedArrival},
	}

	events := make([]ShipmentEvent, 0, len(dates))
	for _, d := range dates {
		if d.t != nil {
			events = append(events, ShipmentEvent{
				OrderNumber: o.Number,
				Type:        d.et,
				Date:        *d.t,
			})
		}
	}
	return events
}

// Statistics is the aggregate summary behind the /summary command and the
// summary report.
type Statistics struct {
	TotalOrders     int
	CompletedOrders int
	ActiveOrders    int
	TotalContainers int
	TotalWeight     float64
	TotalVolume     float64
	PeriodDays      int
}
