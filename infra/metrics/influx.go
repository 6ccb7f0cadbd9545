package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/fleetrent/core/metrics"
	"github.com/kilianp07/fleetrent/infra/logger"
)

// InfluxSink writes rental events to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRentalOutcome writes each finished rental as a line protocol event.
func (s *InfluxSink) RecordRentalOutcome(outcomes []coremetrics.RentalOutcome) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, o := range outcomes {
		p := write.NewPointWithMeasurement("rental_event").
			AddTag("vehicle_id", o.VehicleID).
			AddTag("vehicle_type", o.VehicleType).
			AddTag("fault", strconv.FormatBool(o.Fault)).
			AddTag("promotion", strconv.FormatBool(o.Promotion)).
			AddTag("component", "scheduler").
			AddField("seq", o.Seq).
			AddField("base_price", round3(o.BasePrice)).
			AddField("total_price", round3(o.TotalPrice)).
			AddField("steps", o.Steps).
			SetTime(o.EndTime)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordVehicleState writes a snapshot of a vehicle.
func (s *InfluxSink) RecordVehicleState(ev coremetrics.VehicleStateEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("vehicle_state").
		AddTag("vehicle_id", ev.VehicleID).
		AddTag("vehicle_type", ev.VehicleType)
	if ev.Component != "" {
		p.AddTag("component", ev.Component)
	}
	p = p.AddField("battery_level", ev.BatteryLevel).
		AddField("status", ev.Status).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordVehicleFault persists a breakdown event.
func (s *InfluxSink) RecordVehicleFault(ev coremetrics.VehicleFaultEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("vehicle_fault").
		AddTag("vehicle_id", ev.VehicleID).
		AddTag("reason", ev.Reason).
		AddTag("component", "scheduler").
		AddField("count", 1).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordRunSummary writes one aggregated report row.
func (s *InfluxSink) RecordRunSummary(ev coremetrics.RunSummaryEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("run_summary").
		AddTag("component", "results")
	if !ev.Date.IsZero() {
		p = p.AddTag("day", ev.Date.Format("2006-01-02"))
	}
	p = p.AddField("rentals", ev.Rentals).
		AddField("total_revenue", round3(ev.TotalRevenue)).
		AddField("total_discount", round3(ev.TotalDiscount)).
		AddField("total_promo", round3(ev.TotalPromo)).
		AddField("maintenance_cost", round3(ev.MaintenanceCost)).
		AddField("repair_cost", round3(ev.RepairCost)).
		AddField("total_tax", round3(ev.TotalTax)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
