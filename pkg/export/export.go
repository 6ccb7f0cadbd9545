// Package export serializes report rows for external consumers.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/kilianp07/fleetrent/core/results"
)

const dateLayout = "2006-01-02"

// WriteJSON writes the report rows to w in JSON format.
func WriteJSON(w io.Writer, rows []results.Results) error {
	enc := json.NewEncoder(w)
	return enc.Encode(rows)
}

// WriteCSV writes the report rows to w in CSV format with a header row.
// The date column is empty for the whole-run summary row.
func WriteCSV(w io.Writer, rows []results.Results) error {
	cw := csv.NewWriter(w)
	header := []string{
		"date", "total_revenue", "total_discount", "total_promo",
		"total_narrow_income", "total_wide_income", "maintenance_cost",
		"repair_cost", "company_costs", "total_tax",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		date := ""
		if !r.Date.IsZero() {
			date = r.Date.Format(dateLayout)
		}
		rec := []string{
			date,
			formatAmount(r.TotalRevenue),
			formatAmount(r.TotalDiscount),
			formatAmount(r.TotalPromo),
			formatAmount(r.TotalNarrowIncome),
			formatAmount(r.TotalWideIncome),
			formatAmount(r.MaintenanceCost),
			formatAmount(r.RepairCost),
			formatAmount(r.CompanyCosts),
			formatAmount(r.TotalTax),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
