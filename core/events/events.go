package events

import (
	"time"

	"github.com/kilianp07/fleetrent/core/rental"
)

// PositionEvent is published for each step a vehicle takes on the grid.
// Finished marks the arrival notification at the end location.
type PositionEvent struct {
	VehicleID string
	X, Y      int
	FinalX    int
	FinalY    int
	Finished  bool
}

// FaultEvent is published when a vehicle fails during a rental.
type FaultEvent struct {
	VehicleID string
	Reason    string
	Time      time.Time
}

// ReceiptEvent is published when a rental's simulation completes. Besides
// the customer receipt it carries the billing fields the receipt itself
// does not print, so metrics consumers need no second lookup.
type ReceiptEvent struct {
	Receipt     rental.Receipt
	Seq         int64
	VehicleType string
	BasePrice   float64
	Steps       int
}
