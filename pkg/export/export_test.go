package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/kilianp07/fleetrent/core/results"
)

func sampleRows() []results.Results {
	return []results.Results{
		{
			TotalRevenue:    300,
			MaintenanceCost: 60,
			CompanyCosts:    60,
			TotalTax:        18,
			Date:            time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			TotalRevenue:    300,
			MaintenanceCost: 60,
			CompanyCosts:    60,
			TotalTax:        18,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRows()); err != nil {
		t.Fatalf("write: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}
	if records[0][0] != "date" || records[0][1] != "total_revenue" {
		t.Fatalf("unexpected header %v", records[0])
	}
	if records[1][0] != "2025-06-01" {
		t.Fatalf("daily row date = %q", records[1][0])
	}
	// The summary row has no date.
	if records[2][0] != "" {
		t.Fatalf("summary row date = %q want empty", records[2][0])
	}
	if records[1][1] != "300" || records[1][9] != "18" {
		t.Fatalf("unexpected amounts %v", records[1])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleRows()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var rows []results.Results
	if err := json.Unmarshal(buf.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 || rows[0].TotalRevenue != 300 {
		t.Fatalf("unexpected rows %+v", rows)
	}
	if !strings.Contains(buf.String(), "total_revenue") {
		t.Fatalf("json should use snake_case field names: %s", buf.String())
	}
}
