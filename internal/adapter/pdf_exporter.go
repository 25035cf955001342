package adapter

import (
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	m "github.com/dabecart/VVToolkit/internal/model"
)

// PDFExporter writes a run report as a printable A4 document.
type PDFExporter struct{}

// NewPDFExporter constructs a PDFExporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Export writes the PDF to path.
func (e *PDFExporter) Export(report *m.RunReport, path m.Path) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Verification & Validation Test Report", "", 1, "L", false, 0, "")

	passed, failed, invalid := report.Summary()

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, fmt.Sprintf("Project: %s", report.Project), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Run: %s", report.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Started: %s    Finished: %s",
		report.StartedAt.Format(time.RFC3339), report.FinishedAt.Format(time.RFC3339)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Summary: %d passed, %d failed, %d invalid", passed, failed, invalid),
		"", 1, "L", false, 0, "")
	pdf.Ln(4)

	for i := range report.Outcomes {
		e.writeOutcome(pdf, &report.Outcomes[i])
	}

	if err := pdf.OutputFileAndClose(string(path)); err != nil {
		return fmt.Errorf("could not save pdf: %w", err)
	}

	return nil
}

func (e *PDFExporter) writeOutcome(pdf *gofpdf.Fpdf, outcome *m.TestOutcome) {
	status := "FAIL"

	switch {
	case outcome.Invalid():
		status = "INVALID"
		pdf.SetTextColor(156, 101, 0)
	case outcome.Passed():
		status = "PASS"
		pdf.SetTextColor(0, 97, 0)
	default:
		pdf.SetTextColor(156, 0, 6)
	}

	if outcome.Retried() {
		status += " (retried)"
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Test %d: %s [%s] - %s",
		outcome.ItemID, outcome.Name, outcome.Category, status), "B", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	if outcome.Rule != nil {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 5, "Rule: "+outcome.Rule.String(), "", 1, "L", false, 0, "")
	}

	for attemptIdx, attempt := range outcome.Attempts {
		label := fmt.Sprintf("Attempt %d", attemptIdx+1)
		if attempt.Invalid {
			label += " (invalid)"
		}

		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(0, 5, label, "", 1, "L", false, 0, "")

		for iterIdx, iter := range attempt.Iterations {
			verdict := "FAIL"
			if iter.Passed {
				verdict = "PASS"
			}

			if iter.Err != nil {
				verdict = iter.Err.Error()
			}

			pdf.SetFont("Helvetica", "", 9)
			pdf.CellFormat(0, 5, fmt.Sprintf("Iteration %d: %s (return %d, %.2f ms)",
				iterIdx+1, verdict, iter.ReturnCode, float64(iter.Duration.Microseconds())/1000),
				"", 1, "L", false, 0, "")

			if iter.Output != "" {
				pdf.SetFont("Courier", "", 8)
				pdf.MultiCell(0, 4, strings.TrimRight(iter.Output, "\n"), "", "L", false)
			}
		}

		if attempt.Err != nil && len(attempt.Iterations) == 0 {
			pdf.SetFont("Helvetica", "", 9)
			pdf.CellFormat(0, 5, attempt.Err.Error(), "", 1, "L", false, 0, "")
		}
	}

	pdf.Ln(3)
}
