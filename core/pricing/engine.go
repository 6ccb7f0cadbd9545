// Package pricing computes rental prices from static configuration.
package pricing

import (
	"fmt"

	"github.com/kilianp07/fleetrent/core/grid"
	"github.com/kilianp07/fleetrent/core/model"
	"github.com/kilianp07/fleetrent/core/rental"
)

// Inner rectangle of the city. Rentals with both endpoints inside it are
// billed with the narrow-area factor.
const (
	narrowMin = 5
	narrowMax = 15 // exclusive
)

// One duration unit corresponds to 30 minutes; the original billing formula
// multiplies by 30*60 and uses the product directly as an hours-equivalent.
// The arithmetic is load-bearing and must not be "fixed".
const hoursPerDurationUnit = 30 * 60

// Config holds the static pricing parameters. All values must be positive.
type Config struct {
	CarUnitPrice     float64 `json:"car_unit_price"`
	BikeUnitPrice    float64 `json:"bike_unit_price"`
	ScooterUnitPrice float64 `json:"scooter_unit_price"`
	PromotionFactor  float64 `json:"promotion_factor"`
	NarrowFactor     float64 `json:"narrow_factor"`
	WideFactor       float64 `json:"wide_factor"`
}

// Validate checks that every rate and factor is present and positive.
func (c Config) Validate() error {
	fields := map[string]float64{
		"car_unit_price":     c.CarUnitPrice,
		"bike_unit_price":    c.BikeUnitPrice,
		"scooter_unit_price": c.ScooterUnitPrice,
		"promotion_factor":   c.PromotionFactor,
		"narrow_factor":      c.NarrowFactor,
		"wide_factor":        c.WideFactor,
	}
	for name, v := range fields {
		if v <= 0 {
			return fmt.Errorf("pricing: %s must be positive, got %f", name, v)
		}
	}
	return nil
}

// Engine prices rentals. Construct it with NewEngine so a broken
// configuration aborts startup instead of surfacing per rental.
type Engine struct {
	cfg   Config
	rates map[model.VehicleType]float64
}

// NewEngine validates the configuration and builds the per-type rate table.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg: cfg,
		rates: map[model.VehicleType]float64{
			model.TypeCar:     cfg.CarUnitPrice,
			model.TypeBike:    cfg.BikeUnitPrice,
			model.TypeScooter: cfg.ScooterUnitPrice,
		},
	}, nil
}

// InNarrowArea reports whether a point falls inside the inner city
// rectangle x,y ∈ [5,15).
func InNarrowArea(p grid.Point) bool {
	return p.X >= narrowMin && p.X < narrowMax && p.Y >= narrowMin && p.Y < narrowMax
}

// IsNarrow classifies a rental as narrow only when both endpoints are in
// the inner rectangle. The same classification partitions the income
// buckets in reporting.
func IsNarrow(r *rental.Rental) bool {
	return InNarrowArea(r.Start) && InNarrowArea(r.End)
}

// Price computes and stores the base and total price on the rental.
// A faulty rental is priced at zero.
func (e *Engine) Price(r *rental.Rental) (base, total float64) {
	if r.HasFault {
		r.BasePrice = 0
		r.TotalPrice = 0
		return 0, 0
	}

	unitRate := e.rates[r.Vehicle.Type]
	if r.HasPromotion {
		unitRate *= e.cfg.PromotionFactor
	}

	distanceFactor := e.cfg.WideFactor
	if IsNarrow(r) {
		distanceFactor = e.cfg.NarrowFactor
	}

	hours := r.Duration * hoursPerDurationUnit
	base = unitRate * hours
	total = base * distanceFactor

	r.BasePrice = base
	r.TotalPrice = total
	return base, total
}
