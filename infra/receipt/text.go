// Package receipt provides the sinks that persist or collect rental
// receipts: plain text files, PDF documents and an in-memory collector used
// for reporting.
package receipt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kilianp07/fleetrent/core/rental"
)

const fileTimeLayout = "2006-01-02T15-04-05.000000000"

// TextWriter writes one text file per receipt into a directory.
type TextWriter struct {
	dir string
}

// NewTextWriter creates the directory if needed and returns the writer.
func NewTextWriter(dir string) (*TextWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("receipt: create dir %s: %w", dir, err)
	}
	return &TextWriter{dir: dir}, nil
}

// HandleReceipt renders the receipt and writes it to a per-rental file.
func (w *TextWriter) HandleReceipt(r rental.Receipt) error {
	name := fmt.Sprintf("receipt_%s_%s.txt", r.VehicleID, time.Now().Format(fileTimeLayout))
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, []byte(Render(r)), 0o644); err != nil {
		return fmt.Errorf("receipt: write %s: %w", path, err)
	}
	return nil
}

// Render produces the customer-facing text of a receipt.
func Render(r rental.Receipt) string {
	var b strings.Builder
	b.WriteString("RECEIPT\n")
	fmt.Fprintf(&b, "User ID: %s\n", r.UserID)
	fmt.Fprintf(&b, "Personal ID: %s\n", r.PersonalID)
	fmt.Fprintf(&b, "Driver License: %s\n", r.DriverLicense)
	fmt.Fprintf(&b, "Vehicle ID: %s\n", r.VehicleID)
	fmt.Fprintf(&b, "Start Location: %s\n", r.StartLocation)
	fmt.Fprintf(&b, "Destination: %s\n", r.EndLocation)
	fmt.Fprintf(&b, "Start Time: %s\n", r.StartTime.Format(time.RFC3339))
	fmt.Fprintf(&b, "End Time: %s\n", r.EndTime.Format(time.RFC3339))
	fmt.Fprintf(&b, "Price: %.2f\n", r.TotalPrice)
	fmt.Fprintf(&b, "Promotion Applied: %s\n", r.Promotion)
	fmt.Fprintf(&b, "Fault Occurred: %s\n", r.Fault)
	b.WriteString("\nThank you for using our service!")
	return b.String()
}
