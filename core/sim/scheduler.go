package sim

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kilianp07/fleetrent/core/faultregistry"
	"github.com/kilianp07/fleetrent/core/logger"
	"github.com/kilianp07/fleetrent/core/rental"
	"github.com/kilianp07/fleetrent/internal/eventbus"
)

// TimeGroup is the set of rentals sharing one exact start timestamp. The
// whole group runs concurrently before the next group starts.
type TimeGroup struct {
	Start   time.Time
	Rentals []*rental.Rental
}

// GroupByStartTime partitions rentals into time groups ordered by ascending
// start timestamp. Rentals with identical timestamps share a group.
func GroupByStartTime(rentals []*rental.Rental) []TimeGroup {
	byStart := make(map[time.Time][]*rental.Rental)
	for _, r := range rentals {
		key := r.StartTime
		byStart[key] = append(byStart[key], r)
	}
	groups := make([]TimeGroup, 0, len(byStart))
	for start, rs := range byStart {
		groups = append(groups, TimeGroup{Start: start, Rentals: rs})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Start.Before(groups[j].Start) })
	return groups
}

// RunResult collects the outcome of a full simulation run. Errors are keyed
// by rental sequence number; interrupted rentals appear in both Interrupted
// and Errors.
type RunResult struct {
	Completed   []*rental.Rental
	Interrupted []*rental.Rental
	Errors      map[int64]error
}

// Scheduler executes rentals group by group. Within a group every rental
// runs as its own task; the scheduler blocks on a join barrier until each
// task has completed or been marked interrupted, so a failing task can
// never leave the barrier waiting.
type Scheduler struct {
	cfg       Config
	positions PositionSink
	receipts  ReceiptSink
	docs      DocumentResolver
	registry  faultregistry.Store
	bus       eventbus.EventBus
	log       logger.Logger
}

// NewScheduler creates a scheduler. receipts and registry are required.
func NewScheduler(cfg Config, positions PositionSink, receipts ReceiptSink, docs DocumentResolver, registry faultregistry.Store, bus eventbus.EventBus, log logger.Logger) (*Scheduler, error) {
	if receipts == nil || registry == nil {
		return nil, fmt.Errorf("sim: receipt sink and fault registry are required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if positions == nil {
		positions = NopPositionSink{}
	}
	if docs == nil {
		docs = NopDocumentResolver{}
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Scheduler{
		cfg:       cfg,
		positions: positions,
		receipts:  receipts,
		docs:      docs,
		registry:  registry,
		bus:       bus,
		log:       log,
	}, nil
}

// Run simulates every rental, honoring group order. Battery and fault
// state observed by a group reflects all mutations completed by earlier
// groups. Cancellation marks the remaining tasks interrupted and returns
// once the current group's barrier releases.
func (s *Scheduler) Run(ctx context.Context, rentals []*rental.Rental) RunResult {
	res := RunResult{Errors: make(map[int64]error)}
	groups := GroupByStartTime(rentals)

	workers := s.cfg.MaxWorkers
	for _, g := range groups {
		s.log.Infof("starting %d rental simulations for %s", len(g.Rentals), g.Start.Format(time.RFC3339))

		var (
			wg  sync.WaitGroup
			mu  sync.Mutex
			sem chan struct{}
		)
		if workers > 0 {
			sem = make(chan struct{}, workers)
		}

		// Each vehicle may serve at most one rental per group; battery and
		// fault mutations are owned by a single task at a time.
		seen := make(map[string]int64, len(g.Rentals))
		for _, r := range g.Rentals {
			if prev, dup := seen[r.Vehicle.ID]; dup {
				res.Errors[r.Seq] = fmt.Errorf("sim: vehicle %s already rented in group %s by rental %d", r.Vehicle.ID, g.Start.Format(time.RFC3339), prev)
				continue
			}
			seen[r.Vehicle.ID] = r.Seq

			wg.Add(1)
			go func(r *rental.Rental) {
				defer wg.Done()
				if sem != nil {
					sem <- struct{}{}
					defer func() { <-sem }()
				}
				task, err := NewTask(r, s.cfg, s.positions, s.receipts, s.docs, s.registry, s.bus, s.log)
				if err == nil {
					err = task.Run(ctx)
				}
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					res.Completed = append(res.Completed, r)
				case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
					res.Interrupted = append(res.Interrupted, r)
					res.Errors[r.Seq] = err
					s.log.Warnf("rental %d interrupted: %v", r.Seq, err)
				default:
					res.Errors[r.Seq] = err
					s.log.Errorf("rental %d failed: %v", r.Seq, err)
				}
			}(r)
		}
		// Join barrier: the next group must observe every mutation of this one.
		wg.Wait()
	}

	sort.Slice(res.Completed, func(i, j int) bool { return res.Completed[i].Seq < res.Completed[j].Seq })
	sort.Slice(res.Interrupted, func(i, j int) bool { return res.Interrupted[i].Seq < res.Interrupted[j].Seq })
	s.log.Infof("all simulations completed: %d ok, %d interrupted, %d failed",
		len(res.Completed), len(res.Interrupted), len(res.Errors)-len(res.Interrupted))
	return res
}
