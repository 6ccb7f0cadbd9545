package sim

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	simulationSteps  *prometheus.CounterVec
	batteryRecharges prometheus.Counter
	vehicleFaults    *prometheus.CounterVec
	tasksInterrupted prometheus.Counter
	taskDuration     *prometheus.HistogramVec
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, prometheus.Counter, *prometheus.CounterVec, prometheus.Counter, *prometheus.HistogramVec) {
	steps := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_simulation_steps_total",
			Help: "Number of grid steps simulated",
		},
		[]string{"vehicle_type"},
	)
	rech := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "battery_recharges_total",
			Help: "Number of mid-transit battery recharges",
		},
	)
	faults := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vehicle_faults_total",
			Help: "Number of vehicle faults recorded during rentals",
		},
		[]string{"reason"},
	)
	intr := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rental_tasks_interrupted_total",
			Help: "Number of rental tasks cancelled before arrival",
		},
	)
	dur := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rental_task_duration_seconds",
			Help:    "Wall-clock duration of rental simulation tasks",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"vehicle_type"},
	)
	return steps, rech, faults, intr, dur
}

func init() {
	simulationSteps, batteryRecharges, vehicleFaults, tasksInterrupted, taskDuration = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers simulation metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(simulationSteps, batteryRecharges, vehicleFaults, tasksInterrupted, taskDuration)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	simulationSteps, batteryRecharges, vehicleFaults, tasksInterrupted, taskDuration = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
