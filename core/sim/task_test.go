package sim

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kilianp07/fleetrent/core/faultregistry"
	"github.com/kilianp07/fleetrent/core/grid"
	"github.com/kilianp07/fleetrent/core/model"
	"github.com/kilianp07/fleetrent/core/rental"
)

type memReceiptSink struct {
	mu       sync.Mutex
	receipts []rental.Receipt
}

func (s *memReceiptSink) HandleReceipt(r rental.Receipt) error {
	s.mu.Lock()
	s.receipts = append(s.receipts, r)
	s.mu.Unlock()
	return nil
}

func (s *memReceiptSink) all() []rental.Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]rental.Receipt(nil), s.receipts...)
}

type posRecord struct {
	vehicleID string
	x, y      int
	finished  bool
}

type memPositionSink struct {
	mu      sync.Mutex
	records []posRecord
}

func (s *memPositionSink) UpdateVehiclePosition(id string, x, y, fx, fy int, finished bool) {
	s.mu.Lock()
	s.records = append(s.records, posRecord{vehicleID: id, x: x, y: y, finished: finished})
	s.mu.Unlock()
}

func (s *memPositionSink) all() []posRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]posRecord(nil), s.records...)
}

func fastConfig() Config {
	return Config{StepScale: time.Nanosecond, RechargeSettle: time.Nanosecond}
}

func newTestRental(t *testing.T, id string, from, to grid.Point, duration float64, fault bool) *rental.Rental {
	t.Helper()
	v, err := model.NewVehicle(id, model.TypeCar, "Tesla", "M3", 5000)
	if err != nil {
		t.Fatalf("vehicle: %v", err)
	}
	r, err := rental.New(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), "K1", v, from, to, duration, fault, false)
	if err != nil {
		t.Fatalf("rental: %v", err)
	}
	return r
}

func TestTaskWalksFullPath(t *testing.T) {
	r := newTestRental(t, "v1", grid.Point{X: 0, Y: 0}, grid.Point{X: 2, Y: 1}, 3, false)
	receipts := &memReceiptSink{}
	positions := &memPositionSink{}
	task, err := NewTask(r, fastConfig(), positions, receipts, nil, faultregistry.NewMemoryStore(), nil, nil)
	if err != nil {
		t.Fatalf("task: %v", err)
	}
	if task.State() != StatePending {
		t.Fatalf("expected pending got %s", task.State())
	}
	if err := task.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if task.State() != StateCompleted {
		t.Fatalf("expected completed got %s", task.State())
	}

	recs := positions.all()
	// Start notification + one per step + arrival notification.
	if len(recs) != 1+3+1 {
		t.Fatalf("expected 5 notifications got %d", len(recs))
	}
	last := recs[len(recs)-1]
	if !last.finished || last.x != 2 || last.y != 1 {
		t.Fatalf("wrong arrival notification: %+v", last)
	}
	if got := r.Vehicle.BatteryLevel(); got != 97 {
		t.Fatalf("expected battery 97 got %f", got)
	}
	if len(receipts.all()) != 1 {
		t.Fatalf("expected one receipt")
	}
}

func TestTaskZeroStepRental(t *testing.T) {
	r := newTestRental(t, "v1", grid.Point{X: 4, Y: 4}, grid.Point{X: 4, Y: 4}, 2, false)
	receipts := &memReceiptSink{}
	task, err := NewTask(r, fastConfig(), nil, receipts, nil, faultregistry.NewMemoryStore(), nil, nil)
	if err != nil {
		t.Fatalf("task: %v", err)
	}
	if err := task.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if task.State() != StateCompleted {
		t.Fatalf("expected completed got %s", task.State())
	}
	if got := r.Vehicle.BatteryLevel(); got != model.MaxBatteryLevel {
		t.Fatalf("battery should be untouched, got %f", got)
	}
}

func TestTaskRechargesEmptyBattery(t *testing.T) {
	// 100 steps drain the battery to exactly zero; the task must settle and
	// reset it to full before finishing.
	r := newTestRental(t, "v1", grid.Point{X: 0, Y: 0}, grid.Point{X: 50, Y: 50}, 1, false)
	receipts := &memReceiptSink{}
	task, err := NewTask(r, fastConfig(), nil, receipts, nil, faultregistry.NewMemoryStore(), nil, nil)
	if err != nil {
		t.Fatalf("task: %v", err)
	}
	if err := task.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := r.Vehicle.BatteryLevel(); got != model.MaxBatteryLevel {
		t.Fatalf("expected recharged battery got %f", got)
	}
}

func TestTaskRecordsFault(t *testing.T) {
	r := newTestRental(t, "v1", grid.Point{X: 0, Y: 0}, grid.Point{X: 1, Y: 0}, 1, true)
	receipts := &memReceiptSink{}
	registry := faultregistry.NewMemoryStore()
	task, err := NewTask(r, fastConfig(), nil, receipts, nil, registry, nil, nil)
	if err != nil {
		t.Fatalf("task: %v", err)
	}
	if err := task.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	v, ok := registry.Get("v1")
	if !ok {
		t.Fatalf("faulty vehicle not registered")
	}
	reason, at := v.Fault()
	if reason != model.FaultTire && reason != model.FaultEngine {
		t.Fatalf("unexpected fault reason %q", reason)
	}
	if !at.Equal(r.EndTime) {
		t.Fatalf("fault time should be the rental end time")
	}
	recs := receipts.all()
	if len(recs) != 1 || recs[0].Fault != "yes" {
		t.Fatalf("receipt should record the fault: %+v", recs)
	}
}

func TestTaskInterrupted(t *testing.T) {
	r := newTestRental(t, "v1", grid.Point{X: 0, Y: 0}, grid.Point{X: 5, Y: 5}, 10, false)
	receipts := &memReceiptSink{}
	cfg := Config{StepScale: time.Minute, RechargeSettle: time.Second}
	task, err := NewTask(r, cfg, nil, receipts, nil, faultregistry.NewMemoryStore(), nil, nil)
	if err != nil {
		t.Fatalf("task: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err = task.Run(ctx)
	if err == nil {
		t.Fatalf("expected interruption error")
	}
	if task.State() != StateInterrupted {
		t.Fatalf("expected interrupted got %s", task.State())
	}
	if len(receipts.all()) != 0 {
		t.Fatalf("interrupted task must not emit a receipt")
	}
}
