package metrics

import (
	core "github.com/kilianp07/fleetrent/core/metrics"
	"github.com/kilianp07/fleetrent/core/metrics/usage"
	"github.com/kilianp07/fleetrent/core/model"
	"github.com/prometheus/client_golang/prometheus"
)

// UsageSink aggregates rental outcomes into per-vehicle daily usage KPIs.
type UsageSink struct {
	store   usage.Store
	steps   *prometheus.GaugeVec
	revenue *prometheus.GaugeVec
	perStep *prometheus.GaugeVec
}

// NewUsageSink creates a sink with Prometheus gauges registered on reg.
func NewUsageSink(store usage.Store, reg prometheus.Registerer) *UsageSink {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	steps := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vehicle_daily_steps",
		Help: "Daily grid steps walked per vehicle",
	}, []string{"vehicle_id", "day"})
	revenue := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vehicle_daily_revenue",
		Help: "Daily revenue per vehicle",
	}, []string{"vehicle_id", "day"})
	perStep := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vehicle_revenue_per_step",
		Help: "Daily revenue per grid step walked",
	}, []string{"vehicle_id", "day"})
	reg.MustRegister(steps, revenue, perStep)
	return &UsageSink{store: store, steps: steps, revenue: revenue, perStep: perStep}
}

// RecordRentalOutcome folds outcomes into the usage store and refreshes the
// gauges for the affected days.
func (s *UsageSink) RecordRentalOutcome(outcomes []core.RentalOutcome) error {
	for _, o := range outcomes {
		rec := usage.Record{
			VehicleID:     o.VehicleID,
			Date:          o.StartTime,
			Steps:         o.Steps,
			EnergyDrained: o.Steps,
			// Every full discharge triggers one recharge during the walk.
			Recharges: o.Steps / model.MaxBatteryLevel,
			Revenue:   o.TotalPrice,
		}
		if err := s.store.Add(rec); err != nil {
			return err
		}
		day := usage.Day(o.StartTime)
		recs, err := s.store.Query(o.VehicleID, day, day)
		if err != nil {
			return err
		}
		for _, r := range recs {
			label := r.Date.Format("2006-01-02")
			s.steps.WithLabelValues(r.VehicleID, label).Set(float64(r.Steps))
			s.revenue.WithLabelValues(r.VehicleID, label).Set(r.Revenue)
			s.perStep.WithLabelValues(r.VehicleID, label).Set(r.RevenuePerStep())
		}
	}
	return nil
}
