package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/looplab/fsm"

	"github.com/kilianp07/fleetrent/core/events"
	"github.com/kilianp07/fleetrent/core/faultregistry"
	"github.com/kilianp07/fleetrent/core/grid"
	"github.com/kilianp07/fleetrent/core/logger"
	"github.com/kilianp07/fleetrent/core/rental"
	"github.com/kilianp07/fleetrent/internal/eventbus"
)

// Task lifecycle states.
const (
	StatePending     = "pending"
	StateMoving      = "moving"
	StateCompleted   = "completed"
	StateInterrupted = "interrupted"
)

const (
	eventDepart = "depart"
	eventArrive = "arrive"
	eventAbort  = "abort"
)

// Task simulates a single rental: it walks the planned path, discharges
// and recharges the vehicle battery, records faults and emits the receipt.
// A task exclusively owns its rental's vehicle while it runs.
type Task struct {
	rental    *rental.Rental
	cfg       Config
	positions PositionSink
	receipts  ReceiptSink
	docs      DocumentResolver
	registry  faultregistry.Store
	bus       eventbus.EventBus
	log       logger.Logger
	machine   *fsm.FSM
}

// NewTask builds a task for one rental. receipts and registry are required;
// the remaining collaborators default to no-ops.
func NewTask(r *rental.Rental, cfg Config, positions PositionSink, receipts ReceiptSink, docs DocumentResolver, registry faultregistry.Store, bus eventbus.EventBus, log logger.Logger) (*Task, error) {
	if r == nil {
		return nil, fmt.Errorf("sim: rental is required")
	}
	if receipts == nil || registry == nil {
		return nil, fmt.Errorf("sim: receipt sink and fault registry are required")
	}
	if positions == nil {
		positions = NopPositionSink{}
	}
	if docs == nil {
		docs = NopDocumentResolver{}
	}
	if log == nil {
		log = logger.Nop{}
	}
	t := &Task{
		rental:    r,
		cfg:       cfg,
		positions: positions,
		receipts:  receipts,
		docs:      docs,
		registry:  registry,
		bus:       bus,
		log:       log,
	}
	t.machine = fsm.NewFSM(
		StatePending,
		fsm.Events{
			{Name: eventDepart, Src: []string{StatePending}, Dst: StateMoving},
			{Name: eventArrive, Src: []string{StateMoving, StatePending}, Dst: StateCompleted},
			{Name: eventAbort, Src: []string{StatePending, StateMoving}, Dst: StateInterrupted},
		},
		fsm.Callbacks{},
	)
	return t, nil
}

// State returns the current lifecycle state of the task.
func (t *Task) State() string { return t.machine.Current() }

// Run walks the rental's path step by step until arrival or cancellation.
// On cancellation it returns the context error and leaves the task in the
// interrupted state; the vehicle keeps whatever battery level it reached.
func (t *Task) Run(ctx context.Context) error {
	r := t.rental
	v := r.Vehicle
	started := time.Now()

	path := grid.Plan(r.Start, r.End)
	dwell := time.Duration(r.TimePerStep() * float64(t.cfg.StepScale))

	if len(path) > 0 {
		if err := t.machine.Event(ctx, eventDepart); err != nil {
			return fmt.Errorf("sim: task for rental %d: %w", r.Seq, err)
		}
	}
	t.positions.UpdateVehiclePosition(v.ID, r.Start.X, r.Start.Y, r.End.X, r.End.Y, false)

	for _, step := range path {
		t.positions.UpdateVehiclePosition(v.ID, step.X, step.Y, r.End.X, r.End.Y, false)
		level := v.Discharge()
		simulationSteps.WithLabelValues(string(v.Type)).Inc()

		if err := t.sleep(ctx, dwell); err != nil {
			return t.abort(ctx, err)
		}
		if level == 0 {
			t.log.Debugf("vehicle %s battery empty, waiting for recharge", v.ID)
			if err := t.sleep(ctx, t.cfg.RechargeSettle); err != nil {
				return t.abort(ctx, err)
			}
			v.Recharge()
			batteryRecharges.Inc()
		}
	}

	t.positions.UpdateVehiclePosition(v.ID, r.End.X, r.End.Y, r.End.X, r.End.Y, true)
	if err := t.machine.Event(ctx, eventArrive); err != nil {
		return fmt.Errorf("sim: task for rental %d: %w", r.Seq, err)
	}

	if r.HasFault {
		reason := v.RecordFault(r.EndTime)
		t.registry.Register(v)
		vehicleFaults.WithLabelValues(reason).Inc()
		t.log.Infof("fault occurred for vehicle %s: %s", v.ID, reason)
		if t.bus != nil {
			t.bus.Publish(events.FaultEvent{VehicleID: v.ID, Reason: reason, Time: r.EndTime})
		}
	}

	personalID, license := t.docs.Document(r.UserID)
	receipt := r.Receipt(personalID, license)
	if err := t.receipts.HandleReceipt(receipt); err != nil {
		return fmt.Errorf("sim: receipt for rental %d: %w", r.Seq, err)
	}
	if t.bus != nil {
		t.bus.Publish(events.ReceiptEvent{
			Receipt:     receipt,
			Seq:         r.Seq,
			VehicleType: string(v.Type),
			BasePrice:   r.BasePrice,
			Steps:       r.Steps(),
		})
	}

	taskDuration.WithLabelValues(string(v.Type)).Observe(time.Since(started).Seconds())
	t.log.Debugf("rental %d finished for vehicle %s", r.Seq, v.ID)
	return nil
}

// abort records the interruption and preserves the cause.
func (t *Task) abort(ctx context.Context, cause error) error {
	// The run context is already done; the transition must still fire.
	_ = t.machine.Event(context.Background(), eventAbort)
	tasksInterrupted.Inc()
	return fmt.Errorf("sim: task for rental %d interrupted: %w", t.rental.Seq, cause)
}

// sleep waits for d or until the context is cancelled.
func (t *Task) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
