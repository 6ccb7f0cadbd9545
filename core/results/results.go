// Package results turns a finished rental list into financial report rows.
// Aggregation runs strictly after the scheduler barrier: both passes walk a
// stable list and never race with simulation tasks.
package results

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/fleetrent/core/pricing"
	"github.com/kilianp07/fleetrent/core/rental"
)

const (
	discountRate    = 0.1
	promoRate       = 0.15
	maintenanceRate = 0.2
	taxRate         = 0.1
	discountEvery   = 10
)

// Results is one report row. Date is zero for the run summary and set to
// midnight of the calendar day for daily rows.
type Results struct {
	TotalRevenue      float64   `json:"total_revenue"`
	TotalDiscount     float64   `json:"total_discount"`
	TotalPromo        float64   `json:"total_promo"`
	TotalNarrowIncome float64   `json:"total_narrow_income"`
	TotalWideIncome   float64   `json:"total_wide_income"`
	MaintenanceCost   float64   `json:"maintenance_cost"`
	RepairCost        float64   `json:"repair_cost"`
	CompanyCosts      float64   `json:"company_costs"`
	TotalTax          float64   `json:"total_tax"`
	Date              time.Time `json:"date,omitempty"`
}

// Summarize folds the rental list into a single Results row. It reads the
// prices stored on each rental and never recomputes them, so it must run
// after pricing.
//
// The income buckets are labeled the opposite way round from the pricing
// classification: rentals priced as narrow feed TotalWideIncome and rentals
// priced as wide feed TotalNarrowIncome. The swapped labels are kept for
// report compatibility; do not "fix" them here.
func Summarize(rentals []*rental.Rental) Results {
	var res Results
	for _, r := range rentals {
		res.TotalRevenue += r.TotalPrice

		if pricing.IsNarrow(r) {
			res.TotalWideIncome += r.TotalPrice
		} else {
			res.TotalNarrowIncome += r.TotalPrice
		}

		if r.Seq%discountEvery == 0 {
			res.TotalDiscount += r.BasePrice - r.BasePrice*discountRate
		}

		if r.HasPromotion {
			if r.Seq%discountEvery == 0 {
				tier := r.BasePrice * discountRate
				res.TotalPromo += tier - tier*promoRate
			} else {
				res.TotalPromo += r.BasePrice - r.BasePrice*promoRate
			}
		}

		if r.HasFault && r.Vehicle != nil {
			res.RepairCost += r.Vehicle.Price * r.Vehicle.Type.RepairFraction()
		}
	}

	res.MaintenanceCost = res.TotalRevenue * maintenanceRate
	res.CompanyCosts = res.MaintenanceCost
	res.TotalTax = (res.TotalRevenue - res.MaintenanceCost - res.RepairCost - res.CompanyCosts) * taxRate
	return res
}

// DailyReports truncates every rental's start time to midnight of its
// calendar day, groups by the resulting day and summarizes each group.
// The truncation mutates the rentals in place: callers must not rely on
// the original start times afterwards.
func DailyReports(rentals []*rental.Rental) []Results {
	byDay := make(map[time.Time][]*rental.Rental)
	for _, r := range rentals {
		y, m, d := r.StartTime.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, r.StartTime.Location())
		r.StartTime = day
		byDay[day] = append(byDay[day], r)
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	reports := make([]Results, 0, len(days))
	for _, day := range days {
		res := Summarize(byDay[day])
		res.Date = day
		reports = append(reports, res)
	}
	return reports
}

// PriceStats describes the distribution of final prices across a run.
type PriceStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// ComputePriceStats returns distribution figures over the final prices.
// Faulty rentals count as zero-price samples, same as in revenue.
func ComputePriceStats(rentals []*rental.Rental) PriceStats {
	if len(rentals) == 0 {
		return PriceStats{}
	}
	prices := make([]float64, 0, len(rentals))
	for _, r := range rentals {
		prices = append(prices, r.TotalPrice)
	}
	sort.Float64s(prices)

	stats := PriceStats{
		Count: len(prices),
		Mean:  stat.Mean(prices, nil),
		Min:   prices[0],
		Max:   prices[len(prices)-1],
	}
	if len(prices) > 1 {
		stats.StdDev = stat.StdDev(prices, nil)
	}
	return stats
}
