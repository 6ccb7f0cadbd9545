package sim

import (
	"github.com/kilianp07/fleetrent/core/events"
	"github.com/kilianp07/fleetrent/core/rental"
	"github.com/kilianp07/fleetrent/internal/eventbus"
)

// PositionSink receives vehicle movement notifications: one call per grid
// step, in step order per vehicle, plus a final call with finished=true
// when the vehicle arrives.
type PositionSink interface {
	UpdateVehiclePosition(vehicleID string, x, y, finalX, finalY int, finished bool)
}

// ReceiptSink accepts the receipt of each finished rental. The simulation
// does not persist receipts itself.
type ReceiptSink interface {
	HandleReceipt(rental.Receipt) error
}

// DocumentResolver resolves a user's personal id and driver licence for
// the receipt.
type DocumentResolver interface {
	Document(userID string) (personalID, driverLicense string)
}

// NopPositionSink discards position notifications.
type NopPositionSink struct{}

func (NopPositionSink) UpdateVehiclePosition(string, int, int, int, int, bool) {}

// NopDocumentResolver resolves every user to unknown documents.
type NopDocumentResolver struct{}

func (NopDocumentResolver) Document(string) (string, string) { return "N/A", "N/A" }

// BusPositionSink publishes position notifications as events on the bus so
// display collaborators can subscribe without blocking the simulation.
type BusPositionSink struct {
	Bus eventbus.EventBus
}

func (s BusPositionSink) UpdateVehiclePosition(vehicleID string, x, y, finalX, finalY int, finished bool) {
	if s.Bus == nil {
		return
	}
	s.Bus.Publish(events.PositionEvent{
		VehicleID: vehicleID,
		X:         x,
		Y:         y,
		FinalX:    finalX,
		FinalY:    finalY,
		Finished:  finished,
	})
}

// MultiReceiptSink hands each receipt to several sinks in order. The first
// error stops the fan-out and is returned.
type MultiReceiptSink []ReceiptSink

func (m MultiReceiptSink) HandleReceipt(r rental.Receipt) error {
	for _, s := range m {
		if err := s.HandleReceipt(r); err != nil {
			return err
		}
	}
	return nil
}

// MultiPositionSink fans a notification out to several sinks in order.
type MultiPositionSink []PositionSink

func (m MultiPositionSink) UpdateVehiclePosition(vehicleID string, x, y, finalX, finalY int, finished bool) {
	for _, s := range m {
		s.UpdateVehiclePosition(vehicleID, x, y, finalX, finalY, finished)
	}
}
