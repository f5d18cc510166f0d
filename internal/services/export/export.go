// File: internal/services/export/export.go
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/iyunix/go-vendornexus/internal/domain"
)

// Columns is the header row shared by every export format.
var Columns = []string{"Vendor Name", "Contact", "Address", "City", "Website", "Rating"}

const (
	ReportTitle   = "Vendor Sourcing Report"
	PDFFileName   = "vendor_sourcing_report.pdf"
	CSVFileName   = "vendor_sourcing_report.csv"
	notAvailable  = "N/A"
	noRatingValue = "-"
)

// Row renders one vendor in column order.
func Row(v domain.Vendor) []string {
	return []string{
		v.Name,
		orNA(v.Contact),
		orNA(v.Address),
		orNA(v.City),
		orNA(v.Website),
		FormatRating(v.Rating),
	}
}

// FormatRating renders "4.5/5", or "-" when the rating is missing or zero.
func FormatRating(r *float64) string {
	if r == nil || *r == 0 {
		return noRatingValue
	}
	return strconv.FormatFloat(*r, 'f', -1, 64) + "/5"
}

// WriteCSV writes the header and one row per vendor in the given order.
func WriteCSV(w io.Writer, vendors []domain.Vendor) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("export: csv header: %w", err)
	}
	for _, v := range vendors {
		if err := cw.Write(Row(v)); err != nil {
			return fmt.Errorf("export: csv row %q: %w", v.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

var columnWidths = []float64{55, 40, 75, 30, 55, 22}

// WritePDF renders a landscape A4 report with a striped vendor table.
func WritePDF(w io.Writer, vendors []domain.Vendor, generatedAt time.Time) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(ReportTitle, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(41, 128, 185)
	pdf.Cell(0, 10, ReportTitle)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.Cell(0, 8, "Generated on "+generatedAt.Format("2006-01-02"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	for i, col := range Columns {
		pdf.CellFormat(columnWidths[i], 8, col, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for n, v := range vendors {
		if n%2 == 1 {
			pdf.SetFillColor(240, 248, 255)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for i, cell := range Row(v) {
			pdf.CellFormat(columnWidths[i], 7, tr(truncate(cell, columnWidths[i])), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("export: pdf: %w", err)
	}
	return nil
}

// truncate keeps a cell on one line at 8pt Helvetica, roughly 0.55 chars/mm.
func truncate(s string, width float64) string {
	limit := int(width * 0.55)
	r := []rune(s)
	if len(r) <= limit || limit < 4 {
		return s
	}
	return string(r[:limit-3]) + "..."
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
