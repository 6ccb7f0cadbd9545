package metrics

import (
	"context"

	"github.com/kilianp07/fleetrent/core/events"
	coremetrics "github.com/kilianp07/fleetrent/core/metrics"
	"github.com/kilianp07/fleetrent/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// simulation events. It stops when the context is canceled.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.FaultEvent:
					if r, ok := sink.(coremetrics.FaultRecorder); ok {
						_ = r.RecordVehicleFault(coremetrics.VehicleFaultEvent{
							VehicleID: e.VehicleID,
							Reason:    e.Reason,
							Time:      e.Time,
						})
					}
				case events.ReceiptEvent:
					rc := e.Receipt
					_ = sink.RecordRentalOutcome([]coremetrics.RentalOutcome{{
						Seq:         e.Seq,
						VehicleID:   rc.VehicleID,
						VehicleType: e.VehicleType,
						UserID:      rc.UserID,
						BasePrice:   e.BasePrice,
						TotalPrice:  rc.TotalPrice,
						Steps:       e.Steps,
						Promotion:   rc.Promotion == "yes",
						Fault:       rc.Fault == "yes",
						StartTime:   rc.StartTime,
						EndTime:     rc.EndTime,
					}})
				}
			}
		}
	}()
}
