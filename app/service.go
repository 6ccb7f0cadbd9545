package app

import (
	"context"
	"fmt"
	"time"

	"github.com/kilianp07/fleetrent/config"
	"github.com/kilianp07/fleetrent/core/faultregistry"
	coremetrics "github.com/kilianp07/fleetrent/core/metrics"
	"github.com/kilianp07/fleetrent/core/model"
	"github.com/kilianp07/fleetrent/core/pricing"
	"github.com/kilianp07/fleetrent/core/rental"
	"github.com/kilianp07/fleetrent/core/results"
	"github.com/kilianp07/fleetrent/core/sim"
	"github.com/kilianp07/fleetrent/infra/csvdata"
	"github.com/kilianp07/fleetrent/infra/logger"
	"github.com/kilianp07/fleetrent/infra/metrics"
	"github.com/kilianp07/fleetrent/infra/mqtt"
	"github.com/kilianp07/fleetrent/infra/receipt"
	"github.com/kilianp07/fleetrent/infra/userdocs"
	"github.com/kilianp07/fleetrent/internal/eventbus"
)

// Report is the outcome of a full simulation run: the aggregated financial
// rows plus the per-type revenue leaders derived from the receipts.
type Report struct {
	Summary    results.Results
	Daily      []results.Results
	PriceStats results.PriceStats
	TopByType  map[string]receipt.TopVehicle
	Completed  int
	Failed     int
}

// Rows returns the export order used by the report writers: daily rows
// first, the run summary last.
func (r *Report) Rows() []results.Results {
	rows := make([]results.Results, 0, len(r.Daily)+1)
	rows = append(rows, r.Daily...)
	rows = append(rows, r.Summary)
	return rows
}

// Service wires the rental simulation together: data loading, pricing,
// sinks, the scheduler and the aggregation step.
type Service struct {
	cfg      *config.Config
	log      logger.Logger
	bus      *eventbus.Bus
	vehicles []*model.Vehicle
	rentals  []*rental.Rental
	docs     *userdocs.Store
	registry faultregistry.Store
	receipts sim.ReceiptSink
	memory   *receipt.MemorySink
	sink     coremetrics.MetricsSink
	mqtt     *mqtt.PahoClient
}

// New creates a Service from the configuration. Every input problem that
// would make the run meaningless is fatal here.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	engine, err := pricing.NewEngine(cfg.Pricing)
	if err != nil {
		return nil, fmt.Errorf("pricing engine: %w", err)
	}

	vehicles, err := csvdata.LoadVehicles(cfg.Data.VehiclesFile, logg)
	if err != nil {
		return nil, fmt.Errorf("load vehicles: %w", err)
	}
	rentals, err := csvdata.LoadRentals(cfg.Data.RentalsFile, vehicles, logg)
	if err != nil {
		return nil, fmt.Errorf("load rentals: %w", err)
	}
	for _, r := range rentals {
		r.BasePrice, r.TotalPrice = engine.Price(r)
	}

	docs := userdocs.NewStore()
	if cfg.Data.UserDocsFile != "" {
		if err := docs.Load(cfg.Data.UserDocsFile); err != nil {
			return nil, fmt.Errorf("load user documents: %w", err)
		}
	}
	users := make([]string, 0, len(rentals))
	for _, r := range rentals {
		users = append(users, r.UserID)
	}
	docs.Generate(users)

	// The registry starts empty; tasks register a vehicle when its fault
	// fires, so the snapshot lists only vehicles that failed during the run.
	registry := faultregistry.NewMemoryStore()

	memory := receipt.NewMemorySink()
	var writer sim.ReceiptSink
	switch cfg.Receipts.Format {
	case "pdf":
		writer, err = receipt.NewPDFWriter(cfg.Receipts.Dir)
	default:
		writer, err = receipt.NewTextWriter(cfg.Receipts.Dir)
	}
	if err != nil {
		return nil, fmt.Errorf("receipt writer: %w", err)
	}

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sinks: %w", err)
	}

	svc := &Service{
		cfg:      cfg,
		log:      logg,
		bus:      eventbus.New(),
		vehicles: vehicles,
		rentals:  rentals,
		docs:     docs,
		registry: registry,
		receipts: sim.MultiReceiptSink{writer, memory},
		memory:   memory,
		sink:     sink,
	}
	if cfg.MQTT.Enabled {
		client, err := mqtt.NewPahoClient(cfg.MQTT.Client)
		if err != nil {
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		svc.mqtt = client
	}
	return svc, nil
}

// Vehicles returns the loaded fleet.
func (s *Service) Vehicles() []*model.Vehicle { return s.vehicles }

// Rentals returns the loaded, priced rentals.
func (s *Service) Rentals() []*rental.Rental { return s.rentals }

// FaultyVehicles returns the vehicles that broke down during the run,
// sorted by id.
func (s *Service) FaultyVehicles() []*model.Vehicle { return s.registry.Snapshot() }

// Run executes the whole simulation and returns the aggregated report.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	metrics.StartEventCollector(ctx, s.bus, s.sink)
	if addr := s.cfg.Metrics.PrometheusAddr; addr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	positions := sim.MultiPositionSink{sim.BusPositionSink{Bus: s.bus}}
	if s.mqtt != nil {
		positions = append(positions, s.mqtt)
	}
	sched, err := sim.NewScheduler(
		s.cfg.Simulation.SimConfig(),
		positions,
		s.receipts,
		s.docs,
		s.registry,
		s.bus,
		logger.New("scheduler"),
	)
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}

	res := sched.Run(ctx, s.rentals)
	for seq, err := range res.Errors {
		s.log.Warnf("rental %d failed: %v", seq, err)
	}

	report := &Report{
		Summary:    results.Summarize(res.Completed),
		Daily:      results.DailyReports(res.Completed),
		PriceStats: results.ComputePriceStats(res.Completed),
		TopByType:  s.memory.TopRevenueByType(vehicleTypes(s.vehicles)),
		Completed:  len(res.Completed),
		Failed:     len(res.Errors),
	}
	s.recordSummary(report)
	s.recordVehicleStates()

	if path := s.cfg.Data.UserDocsFile; path != "" {
		if err := s.docs.Save(path); err != nil {
			s.log.Errorf("save user documents: %v", err)
		}
	}
	return report, nil
}

// Close releases external resources held by the service.
func (s *Service) Close() error {
	if s.mqtt != nil {
		s.mqtt.Disconnect()
	}
	s.bus.Close()
	return nil
}

func (s *Service) recordSummary(report *Report) {
	rec, ok := s.sink.(coremetrics.RunSummaryRecorder)
	if !ok {
		return
	}
	for _, row := range report.Rows() {
		ev := coremetrics.RunSummaryEvent{
			Rentals:         report.Completed,
			TotalRevenue:    row.TotalRevenue,
			TotalDiscount:   row.TotalDiscount,
			TotalPromo:      row.TotalPromo,
			MaintenanceCost: row.MaintenanceCost,
			RepairCost:      row.RepairCost,
			TotalTax:        row.TotalTax,
			Date:            row.Date,
			Time:            time.Now(),
		}
		if err := rec.RecordRunSummary(ev); err != nil {
			s.log.Errorf("record run summary: %v", err)
		}
	}
}

// recordVehicleStates snapshots every vehicle's battery and status after
// the run for sinks that track vehicle state.
func (s *Service) recordVehicleStates() {
	rec, ok := s.sink.(coremetrics.VehicleStateRecorder)
	if !ok {
		return
	}
	now := time.Now()
	for _, v := range s.vehicles {
		ev := coremetrics.VehicleStateEvent{
			VehicleID:    v.ID,
			VehicleType:  string(v.Type),
			BatteryLevel: int(v.BatteryLevel()),
			Status:       string(v.Status()),
			Time:         now,
		}
		if err := rec.RecordVehicleState(ev); err != nil {
			s.log.Errorf("record vehicle state: %v", err)
		}
	}
}

func vehicleTypes(vehicles []*model.Vehicle) map[string]string {
	types := make(map[string]string, len(vehicles))
	for _, v := range vehicles {
		types[v.ID] = string(v.Type)
	}
	return types
}
