// Package rental defines the rental entity shared by the simulation,
// pricing and reporting stages.
package rental

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/kilianp07/fleetrent/core/grid"
	"github.com/kilianp07/fleetrent/core/model"
)

// One duration unit corresponds to 30 minutes of simulated wall time.
const minutesPerDurationUnit = 30

// seq is the global rental sequence counter. It is monotonic across every
// rental ever constructed in the process and is never reset between runs.
var seq atomic.Int64

// NextSeq returns the next global sequence number. Safe under concurrent
// construction.
func NextSeq() int64 { return seq.Add(1) }

// Rental describes a single rental of one vehicle over a time window.
// Price fields are filled in by the pricing engine; StartTime is truncated
// in place by the daily reporting pass.
type Rental struct {
	Vehicle      *model.Vehicle
	UserID       string
	Start        grid.Point
	End          grid.Point
	Duration     float64 // unitless ticks; 1 tick = 30 simulated minutes
	HasFault     bool
	HasPromotion bool

	Seq       int64
	StartTime time.Time
	EndTime   time.Time

	BasePrice  float64
	TotalPrice float64
}

// New constructs a rental, assigns the next global sequence number and
// derives the end timestamp from the duration.
func New(start time.Time, userID string, vehicle *model.Vehicle, from, to grid.Point, duration float64, fault, promotion bool) (*Rental, error) {
	if vehicle == nil {
		return nil, fmt.Errorf("rental for user %s: vehicle is required", userID)
	}
	if duration < 0 {
		return nil, fmt.Errorf("rental for user %s: negative duration %f", userID, duration)
	}
	r := &Rental{
		Vehicle:      vehicle,
		UserID:       userID,
		Start:        from,
		End:          to,
		Duration:     duration,
		HasFault:     fault,
		HasPromotion: promotion,
		Seq:          NextSeq(),
		StartTime:    start,
	}
	r.EndTime = start.Add(time.Duration(int64(duration*minutesPerDurationUnit)) * time.Minute)
	return r, nil
}

// Steps returns the number of grid cells the vehicle crosses.
func (r *Rental) Steps() int { return grid.Distance(r.Start, r.End) }

// TimePerStep returns the dwell time per path step in duration units.
func (r *Rental) TimePerStep() float64 { return grid.TimePerStep(r.Duration, r.Steps()) }

// Receipt synthesizes the receipt value for this rental using the user's
// resolved documents.
func (r *Rental) Receipt(personalID, driverLicense string) Receipt {
	return Receipt{
		UserID:        r.UserID,
		PersonalID:    personalID,
		DriverLicense: driverLicense,
		VehicleID:     r.Vehicle.ID,
		StartLocation: r.Start.String(),
		EndLocation:   r.End.String(),
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		TotalPrice:    r.TotalPrice,
		Promotion:     yesNo(r.HasPromotion),
		Fault:         yesNo(r.HasFault),
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
