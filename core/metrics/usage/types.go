package usage

import "time"

// Record aggregates usage figures for a vehicle and day.
type Record struct {
	VehicleID     string
	Date          time.Time
	Steps         int
	EnergyDrained int
	Recharges     int
	Revenue       float64
}

// RevenuePerStep returns the revenue earned per grid step walked.
func (r Record) RevenuePerStep() float64 {
	if r.Steps == 0 {
		return 0
	}
	return r.Revenue / float64(r.Steps)
}
