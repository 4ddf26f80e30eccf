package services

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"tea-backend/internal/models"
	"tea-backend/internal/timeutil"
)

// WriteSummaryPDF renders the run report as a one-document A4 summary.
func WriteSummaryPDF(w io.Writer, r *models.RunReport) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Tea Auction - Seed Run Summary", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Run %s", r.RunID), "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 6, fmt.Sprintf("Started: %s   Duration: %s",
		r.StartedAt.In(timeutil.Location).Format("02-Jan-2006 03:04 PM"), r.Duration().Round(time.Millisecond)), "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 6, fmt.Sprintf("Source: %s", r.Source), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Entity outcomes
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Batches", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(70, 7, "Entity", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Success", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Skipped", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Errors", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, kind := range r.Entities.Kinds() {
		s := r.Entities[kind]
		pdf.CellFormat(70, 6, string(kind), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", s.Success), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", s.Skipped), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", len(s.Errors)), "1", 1, "R", false, 0, "")
	}
	success, skipped, failed := r.Entities.Totals()
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 7, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("%d", success), "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("%d", skipped), "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("%d", failed), "1", 1, "R", false, 0, "")
	pdf.Ln(5)

	// Table counts
	if len(r.Tables) > 0 {
		pdf.SetFillColor(240, 240, 240)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Table Counts", "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, tc := range r.Tables {
			count := fmt.Sprintf("%d", tc.Count)
			if tc.Count < 0 {
				pdf.SetFillColor(255, 200, 200)
				count = "n/a"
			} else {
				pdf.SetFillColor(255, 255, 255)
			}
			pdf.CellFormat(110, 6, tc.Table, "1", 0, "L", false, 0, "")
			pdf.CellFormat(80, 6, count, "1", 1, "R", true, 0, "")
		}
		pdf.Ln(5)
	}

	// Errors, truncated per entity
	for _, kind := range r.Entities.Kinds() {
		errors := r.Entities[kind].Errors
		if len(errors) == 0 {
			continue
		}
		pdf.SetFillColor(240, 240, 240)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(190, 7, fmt.Sprintf("%s errors", kind), "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 9)
		for i, msg := range errors {
			if i == maxSummaryErrors {
				pdf.MultiCell(190, 5, fmt.Sprintf("... and %d more", len(errors)-maxSummaryErrors), "", "L", false)
				break
			}
			pdf.MultiCell(190, 5, msg, "", "L", false)
		}
		pdf.Ln(3)
	}

	if r.Error != "" {
		pdf.SetFillColor(255, 200, 200)
		pdf.SetFont("Arial", "B", 11)
		pdf.MultiCell(190, 7, "Run failed: "+r.Error, "1", "L", true)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
