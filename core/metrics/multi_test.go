package metrics

import "testing"

// TestMultiSink ensures events are forwarded to all sinks.

type recordSink struct {
	count int
}

func (r *recordSink) RecordRentalOutcome([]RentalOutcome) error {
	r.count++
	return nil
}

func (r *recordSink) RecordVehicleFault(VehicleFaultEvent) error {
	r.count++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordRentalOutcome(nil); err != nil {
		t.Fatalf("record outcome: %v", err)
	}
	if err := m.RecordVehicleFault(VehicleFaultEvent{}); err != nil {
		t.Fatalf("record fault: %v", err)
	}
	if s1.count != 2 || s2.count != 2 {
		t.Fatalf("events not forwarded")
	}
}

// A sink without the optional recorder interfaces is skipped, not an error.
type outcomesOnlySink struct{ count int }

func (r *outcomesOnlySink) RecordRentalOutcome([]RentalOutcome) error {
	r.count++
	return nil
}

func TestMultiSinkSkipsUnsupported(t *testing.T) {
	s := &outcomesOnlySink{}
	m := NewMultiSink(s)
	if err := m.RecordVehicleState(VehicleStateEvent{}); err != nil {
		t.Fatalf("record state: %v", err)
	}
	if err := m.RecordRunSummary(RunSummaryEvent{}); err != nil {
		t.Fatalf("record summary: %v", err)
	}
	if s.count != 0 {
		t.Fatalf("unsupported events should be skipped")
	}
}
