package metrics

import "time"

// RentalOutcome represents one finished rental to be recorded.
type RentalOutcome struct {
	Seq         int64
	VehicleID   string
	VehicleType string
	UserID      string
	BasePrice   float64
	TotalPrice  float64
	Steps       int
	Promotion   bool
	Fault       bool
	FaultReason string
	StartTime   time.Time
	EndTime     time.Time
}

// MetricsSink records rental outcomes for observability purposes.
type MetricsSink interface {
	RecordRentalOutcome(outcomes []RentalOutcome) error
}

// VehicleStateEvent is a snapshot of a vehicle taken after its rental ended.
type VehicleStateEvent struct {
	VehicleID    string
	VehicleType  string
	BatteryLevel int
	Status       string
	Component    string
	Time         time.Time
}

// VehicleStateRecorder records vehicle state snapshots.
type VehicleStateRecorder interface {
	RecordVehicleState(ev VehicleStateEvent) error
}

// VehicleFaultEvent captures a breakdown during simulation.
type VehicleFaultEvent struct {
	VehicleID string
	Reason    string
	Time      time.Time
}

// FaultRecorder records vehicle breakdowns.
type FaultRecorder interface {
	RecordVehicleFault(ev VehicleFaultEvent) error
}

// RunSummaryEvent captures one aggregated report row. Date is zero for the
// whole-run summary and set to midnight for daily rows.
type RunSummaryEvent struct {
	Rentals         int
	TotalRevenue    float64
	TotalDiscount   float64
	TotalPromo      float64
	MaintenanceCost float64
	RepairCost      float64
	TotalTax        float64
	Date            time.Time
	Time            time.Time
}

// RunSummaryRecorder records aggregated report rows.
type RunSummaryRecorder interface {
	RecordRunSummary(ev RunSummaryEvent) error
}

// NopSink implements every recorder interface with no-op methods.
type NopSink struct{}

func (NopSink) RecordRentalOutcome([]RentalOutcome) error { return nil }

func (NopSink) RecordVehicleState(VehicleStateEvent) error { return nil }
func (NopSink) RecordVehicleFault(VehicleFaultEvent) error { return nil }
func (NopSink) RecordRunSummary(RunSummaryEvent) error     { return nil }
