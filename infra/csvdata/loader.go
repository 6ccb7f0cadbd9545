// Package csvdata loads the fleet and rental input files. The files come
// from an external booking system and are only loosely validated there, so
// every loader skips malformed rows instead of failing the run.
package csvdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kilianp07/fleetrent/core/grid"
	"github.com/kilianp07/fleetrent/core/logger"
	"github.com/kilianp07/fleetrent/core/model"
	"github.com/kilianp07/fleetrent/core/rental"
)

// TimeLayout is the timestamp format used in the rentals file.
const TimeLayout = "2.1.2006 15:04"

// dateLayout is the day-only format used for car purchase dates.
const dateLayout = "2.1.2006"

// Vehicle file columns.
const (
	vehColID = iota
	vehColManufacturer
	vehColModel
	vehColPurchaseDate
	vehColPrice
	vehColRange
	vehColMaxSpeed
	vehColDescription
	vehColType
	vehColumns
)

// Rental file columns.
const (
	rentColDate = iota
	rentColUser
	rentColVehicle
	rentColStart
	rentColEnd
	rentColDuration
	rentColFault
	rentColPromotion
	rentColumns
)

// LoadVehicles reads the vehicle file. Rows with a duplicate id, an unknown
// type or too few columns are skipped with a warning.
func LoadVehicles(path string, log logger.Logger) ([]*model.Vehicle, error) {
	if log == nil {
		log = logger.Nop{}
	}
	rows, err := readAll(path)
	if err != nil {
		return nil, fmt.Errorf("load vehicles: %w", err)
	}

	var vehicles []*model.Vehicle
	seen := make(map[string]bool)
	for i, row := range rows {
		if len(row) < vehColumns {
			log.Warnf("vehicles row %d: expected %d columns, got %d, skipping", i+2, vehColumns, len(row))
			continue
		}
		id := strings.TrimSpace(row[vehColID])
		if seen[id] {
			log.Warnf("vehicles row %d: duplicate id %s, skipping", i+2, id)
			continue
		}
		typ := model.VehicleType(strings.ToLower(strings.TrimSpace(row[vehColType])))
		price := parseFloatSafe(row[vehColPrice], 0)

		v, err := model.NewVehicle(id, typ, strings.TrimSpace(row[vehColManufacturer]), strings.TrimSpace(row[vehColModel]), price)
		if err != nil {
			log.Warnf("vehicles row %d: %v, skipping", i+2, err)
			continue
		}
		switch typ {
		case model.TypeCar:
			v.Description = strings.TrimSpace(row[vehColDescription])
			if d, err := time.Parse(dateLayout, strings.TrimSpace(row[vehColPurchaseDate])); err == nil {
				v.PurchaseDate = d
			}
		case model.TypeBike:
			v.RangePerCharge = parseFloatSafe(row[vehColRange], 0)
		case model.TypeScooter:
			v.MaxSpeed = parseFloatSafe(row[vehColMaxSpeed], 0)
		}
		vehicles = append(vehicles, v)
		seen[id] = true
	}
	return vehicles, nil
}

// LoadRentals reads the rental file and resolves each row against the loaded
// vehicles. Rows referencing an unknown vehicle, repeating a (vehicle, date)
// pair or failing to parse are skipped with a warning. The result is sorted
// by start time.
func LoadRentals(path string, vehicles []*model.Vehicle, log logger.Logger) ([]*rental.Rental, error) {
	if log == nil {
		log = logger.Nop{}
	}
	rows, err := readAll(path)
	if err != nil {
		return nil, fmt.Errorf("load rentals: %w", err)
	}

	byID := make(map[string]*model.Vehicle, len(vehicles))
	for _, v := range vehicles {
		byID[strings.ToLower(v.ID)] = v
	}

	var rentals []*rental.Rental
	seen := make(map[string]bool)
	for i, row := range rows {
		if len(row) != rentColumns {
			log.Warnf("rentals row %d: expected %d columns, got %d, skipping", i+2, rentColumns, len(row))
			continue
		}
		for j := range row {
			row[j] = strings.TrimSpace(row[j])
		}

		start, err := time.Parse(TimeLayout, row[rentColDate])
		if err != nil {
			log.Warnf("rentals row %d: bad date %q, skipping", i+2, row[rentColDate])
			continue
		}
		key := strings.ToLower(row[rentColVehicle]) + "_" + row[rentColDate]
		if seen[key] {
			log.Warnf("rentals row %d: duplicate rental for vehicle %s at %s, skipping", i+2, row[rentColVehicle], row[rentColDate])
			continue
		}
		seen[key] = true

		v, ok := byID[strings.ToLower(row[rentColVehicle])]
		if !ok {
			log.Warnf("rentals row %d: unknown vehicle %s, skipping", i+2, row[rentColVehicle])
			continue
		}
		from, err := grid.ParsePoint(row[rentColStart])
		if err != nil {
			log.Warnf("rentals row %d: bad start location: %v, skipping", i+2, err)
			continue
		}
		to, err := grid.ParsePoint(row[rentColEnd])
		if err != nil {
			log.Warnf("rentals row %d: bad end location: %v, skipping", i+2, err)
			continue
		}

		duration := float64(parseIntSafe(row[rentColDuration], 0))
		fault := strings.EqualFold(row[rentColFault], "yes")
		promotion := strings.EqualFold(row[rentColPromotion], "yes")

		r, err := rental.New(start, row[rentColUser], v, from, to, duration, fault, promotion)
		if err != nil {
			log.Warnf("rentals row %d: %v, skipping", i+2, err)
			continue
		}
		rentals = append(rentals, r)
	}

	sort.Slice(rentals, func(i, j int) bool { return rentals[i].StartTime.Before(rentals[j].StartTime) })
	return rentals, nil
}

// readAll reads every record after the header, skipping blank lines. Rows may
// have varying column counts; validation happens per loader.
func readAll(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	// Drop the header and blank rows.
	var rows [][]string
	for _, rec := range records[1:] {
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func parseFloatSafe(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return v
}

func parseIntSafe(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}
