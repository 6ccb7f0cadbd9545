package receipt

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/kilianp07/fleetrent/core/rental"
)

// PDFWriter writes one PDF document per receipt into a directory.
type PDFWriter struct {
	dir string
}

// NewPDFWriter creates the directory if needed and returns the writer.
func NewPDFWriter(dir string) (*PDFWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("receipt: create dir %s: %w", dir, err)
	}
	return &PDFWriter{dir: dir}, nil
}

// HandleReceipt renders the receipt as a one-page PDF.
func (w *PDFWriter) HandleReceipt(r rental.Receipt) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Rental Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("User ID        : %s", r.UserID),
		fmt.Sprintf("Personal ID    : %s", r.PersonalID),
		fmt.Sprintf("Driver License : %s", r.DriverLicense),
		fmt.Sprintf("Vehicle ID     : %s", r.VehicleID),
		fmt.Sprintf("Start Location : %s", r.StartLocation),
		fmt.Sprintf("Destination    : %s", r.EndLocation),
		fmt.Sprintf("Start Time     : %s", r.StartTime.Format(time.RFC3339)),
		fmt.Sprintf("End Time       : %s", r.EndTime.Format(time.RFC3339)),
		fmt.Sprintf("Price          : %.2f", r.TotalPrice),
		fmt.Sprintf("Promotion      : %s", r.Promotion),
		fmt.Sprintf("Fault          : %s", r.Fault),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Thank you for using our service!", "", "", false)

	name := fmt.Sprintf("receipt_%s_%s.pdf", r.VehicleID, time.Now().Format(fileTimeLayout))
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("receipt: create %s: %w", path, err)
	}
	defer f.Close()
	if err := pdf.Output(f); err != nil {
		return fmt.Errorf("receipt: render %s: %w", path, err)
	}
	return nil
}
