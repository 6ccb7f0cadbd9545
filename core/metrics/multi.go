package metrics

// MultiSink fans rental outcomes out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRentalOutcome forwards the record to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordRentalOutcome(outcomes []RentalOutcome) error {
	for _, s := range m.Sinks {
		if err := s.RecordRentalOutcome(outcomes); err != nil {
			return err
		}
	}
	return nil
}

// RecordVehicleState forwards vehicle snapshots to sinks that support them.
func (m *MultiSink) RecordVehicleState(ev VehicleStateEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(VehicleStateRecorder); ok {
			if err := rec.RecordVehicleState(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordVehicleFault forwards breakdowns to sinks that support them.
func (m *MultiSink) RecordVehicleFault(ev VehicleFaultEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(FaultRecorder); ok {
			if err := rec.RecordVehicleFault(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordRunSummary forwards report rows to sinks that support them.
func (m *MultiSink) RecordRunSummary(ev RunSummaryEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(RunSummaryRecorder); ok {
			if err := rec.RecordRunSummary(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
