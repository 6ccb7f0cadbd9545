package metrics

import (
	"strconv"

	coremetrics "github.com/kilianp07/fleetrent/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records rental outcomes in Prometheus metrics.
type PromSink struct {
	rentals *prometheus.CounterVec
	revenue *prometheus.CounterVec
	price   *prometheus.HistogramVec
	battery *prometheus.GaugeVec
}

// NewPromSink registers rental metrics on the default Prometheus registerer.
// The Prometheus server should be started separately with StartPromServer.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	rentals := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rentals_total",
		Help: "Total number of finished rentals",
	}, []string{"vehicle_type", "fault", "promotion"})
	revenue := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rental_revenue_total",
		Help: "Total revenue from finished rentals",
	}, []string{"vehicle_type"})
	price := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rental_price",
		Help:    "Final price per rental",
		Buckets: prometheus.ExponentialBuckets(100, 4, 10),
	}, []string{"vehicle_type"})
	battery := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vehicle_battery_level",
		Help: "Battery level of a vehicle after its last rental",
	}, []string{"vehicle_id"})

	if err := reg.Register(rentals); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			rentals = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(revenue); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			revenue = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(price); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			price = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(battery); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			battery = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{rentals: rentals, revenue: revenue, price: price, battery: battery}, nil
}

// RecordRentalOutcome increments the counters for each finished rental.
func (s *PromSink) RecordRentalOutcome(outcomes []coremetrics.RentalOutcome) error {
	for _, o := range outcomes {
		s.rentals.WithLabelValues(o.VehicleType, strconv.FormatBool(o.Fault), strconv.FormatBool(o.Promotion)).Inc()
		s.revenue.WithLabelValues(o.VehicleType).Add(o.TotalPrice)
		s.price.WithLabelValues(o.VehicleType).Observe(o.TotalPrice)
	}
	return nil
}

// RecordVehicleState sets the battery gauge for the vehicle.
func (s *PromSink) RecordVehicleState(ev coremetrics.VehicleStateEvent) error {
	s.battery.WithLabelValues(ev.VehicleID).Set(float64(ev.BatteryLevel))
	return nil
}
