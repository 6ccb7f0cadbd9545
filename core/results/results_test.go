package results

import (
	"math"
	"testing"
	"time"

	"github.com/kilianp07/fleetrent/core/grid"
	"github.com/kilianp07/fleetrent/core/model"
	"github.com/kilianp07/fleetrent/core/rental"
)

func testRental(t *testing.T, typ model.VehicleType, acquisition float64, from, to grid.Point, base, total float64, fault, promo bool, start time.Time) *rental.Rental {
	t.Helper()
	v, err := model.NewVehicle("v-"+string(typ), typ, "Acme", "One", acquisition)
	if err != nil {
		t.Fatalf("vehicle: %v", err)
	}
	r, err := rental.New(start, "K1", v, from, to, 1, fault, promo)
	if err != nil {
		t.Fatalf("rental: %v", err)
	}
	r.BasePrice = base
	r.TotalPrice = total
	return r
}

var day1 = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func TestSummarizeRevenueAndTax(t *testing.T) {
	wide := grid.Point{X: 0, Y: 0}
	rentals := []*rental.Rental{
		testRental(t, model.TypeCar, 5000, wide, wide, 100, 200, false, false, day1),
		testRental(t, model.TypeBike, 1200, wide, wide, 50, 100, false, false, day1),
	}
	rentals[0].Seq = 1
	rentals[1].Seq = 2

	res := Summarize(rentals)
	if res.TotalRevenue != 300 {
		t.Fatalf("revenue = %f want 300", res.TotalRevenue)
	}
	if res.MaintenanceCost != 60 {
		t.Fatalf("maintenance = %f want 60", res.MaintenanceCost)
	}
	if res.CompanyCosts != res.MaintenanceCost {
		t.Fatalf("company costs %f != maintenance %f", res.CompanyCosts, res.MaintenanceCost)
	}
	// (300 - 60 - 0 - 60) * 0.1
	if res.TotalTax != 18 {
		t.Fatalf("tax = %f want 18", res.TotalTax)
	}
}

func TestSummarizeIncomeBucketsAreSwapped(t *testing.T) {
	narrow := grid.Point{X: 6, Y: 6}
	wide := grid.Point{X: 0, Y: 0}
	rentals := []*rental.Rental{
		testRental(t, model.TypeCar, 5000, narrow, narrow, 100, 100, false, false, day1),
		testRental(t, model.TypeCar, 5000, wide, wide, 100, 400, false, false, day1),
	}
	rentals[0].Seq = 1
	rentals[1].Seq = 2

	res := Summarize(rentals)
	if res.TotalWideIncome != 100 {
		t.Fatalf("wide income = %f want 100 (narrow-classified revenue)", res.TotalWideIncome)
	}
	if res.TotalNarrowIncome != 400 {
		t.Fatalf("narrow income = %f want 400 (wide-classified revenue)", res.TotalNarrowIncome)
	}
}

func TestSummarizeDiscountEveryTenth(t *testing.T) {
	wide := grid.Point{X: 0, Y: 0}
	r := testRental(t, model.TypeCar, 5000, wide, wide, 1000, 2000, false, false, day1)
	r.Seq = 10

	res := Summarize([]*rental.Rental{r})
	if res.TotalDiscount != 900 {
		t.Fatalf("discount = %f want 900", res.TotalDiscount)
	}

	r.Seq = 11
	res = Summarize([]*rental.Rental{r})
	if res.TotalDiscount != 0 {
		t.Fatalf("discount = %f want 0 for non-tenth rental", res.TotalDiscount)
	}
}

func TestSummarizePromoTiers(t *testing.T) {
	wide := grid.Point{X: 0, Y: 0}
	r := testRental(t, model.TypeCar, 5000, wide, wide, 1000, 2000, false, true, day1)

	r.Seq = 3
	res := Summarize([]*rental.Rental{r})
	if want := 1000 - 1000*0.15; res.TotalPromo != want {
		t.Fatalf("promo = %f want %f", res.TotalPromo, want)
	}

	r.Seq = 20
	res = Summarize([]*rental.Rental{r})
	if want := 100 - 100*0.15; math.Abs(res.TotalPromo-want) > 1e-9 {
		t.Fatalf("tenth-rental promo = %f want %f", res.TotalPromo, want)
	}
}

func TestSummarizeRepairCostByType(t *testing.T) {
	wide := grid.Point{X: 0, Y: 0}
	rentals := []*rental.Rental{
		testRental(t, model.TypeCar, 5000, wide, wide, 0, 0, true, false, day1),
		testRental(t, model.TypeBike, 1000, wide, wide, 0, 0, true, false, day1),
		testRental(t, model.TypeScooter, 1000, wide, wide, 0, 0, true, false, day1),
	}
	for i, r := range rentals {
		r.Seq = int64(i + 1)
	}

	res := Summarize(rentals)
	// 5000*0.07 + 1000*0.04 + 1000*0.02
	if want := 350.0 + 40 + 20; math.Abs(res.RepairCost-want) > 1e-9 {
		t.Fatalf("repair cost = %f want %f", res.RepairCost, want)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	wide := grid.Point{X: 0, Y: 0}
	rentals := []*rental.Rental{
		testRental(t, model.TypeCar, 5000, wide, wide, 100, 200, false, true, day1),
		testRental(t, model.TypeBike, 1200, wide, wide, 50, 100, true, false, day1),
	}
	rentals[0].Seq = 10
	rentals[1].Seq = 11

	first := Summarize(rentals)
	second := Summarize(rentals)
	if first != second {
		t.Fatalf("summarize not idempotent: %+v vs %+v", first, second)
	}
}

func TestDailyReports(t *testing.T) {
	wide := grid.Point{X: 0, Y: 0}
	d1 := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	d2 := time.Date(2025, 3, 2, 17, 0, 0, 0, time.UTC)
	rentals := []*rental.Rental{
		testRental(t, model.TypeCar, 5000, wide, wide, 100, 200, false, false, d2),
		testRental(t, model.TypeBike, 1200, wide, wide, 50, 100, false, false, d1),
		testRental(t, model.TypeCar, 5000, wide, wide, 100, 300, false, false, d1),
	}
	for i, r := range rentals {
		r.Seq = int64(i + 1)
	}

	reports := DailyReports(rentals)
	if len(reports) != 2 {
		t.Fatalf("expected 2 daily rows got %d", len(reports))
	}
	if !reports[0].Date.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("first row date = %v", reports[0].Date)
	}
	if reports[0].TotalRevenue != 400 {
		t.Fatalf("day one revenue = %f want 400", reports[0].TotalRevenue)
	}
	if reports[1].TotalRevenue != 200 {
		t.Fatalf("day two revenue = %f want 200", reports[1].TotalRevenue)
	}
	// The pass truncates start times in place.
	for _, r := range rentals {
		if h, m, _ := r.StartTime.Clock(); h != 0 || m != 0 {
			t.Fatalf("start time %v not truncated to midnight", r.StartTime)
		}
	}
}

func TestComputePriceStats(t *testing.T) {
	wide := grid.Point{X: 0, Y: 0}
	rentals := []*rental.Rental{
		testRental(t, model.TypeCar, 5000, wide, wide, 0, 100, false, false, day1),
		testRental(t, model.TypeCar, 5000, wide, wide, 0, 300, false, false, day1),
	}
	stats := ComputePriceStats(rentals)
	if stats.Count != 2 || stats.Mean != 200 || stats.Min != 100 || stats.Max != 300 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.StdDev == 0 {
		t.Fatalf("expected non-zero std dev")
	}
	if got := ComputePriceStats(nil); got != (PriceStats{}) {
		t.Fatalf("empty input should yield zero stats, got %+v", got)
	}
}
