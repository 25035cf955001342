package adapter

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	m "github.com/dabecart/VVToolkit/internal/model"
)

// ReportExporter renders a run report into an external document format.
type ReportExporter interface {
	Export(report *m.RunReport, path m.Path) error
}

// ReportSheet is the worksheet name of exported spreadsheets.
const ReportSheet = "Report"

// XLSXExporter writes a run report as a spreadsheet: a title block, one
// header row per test and one row per iteration.
type XLSXExporter struct{}

// NewXLSXExporter constructs an XLSXExporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Export writes the spreadsheet to path.
func (e *XLSXExporter) Export(report *m.RunReport, path m.Path) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", ReportSheet); err != nil {
		return fmt.Errorf("could not name report sheet: %w", err)
	}

	styles, err := newSheetStyles(f)
	if err != nil {
		return fmt.Errorf("could not build styles: %w", err)
	}

	row, err := e.writeTitleBlock(f, report, styles)
	if err != nil {
		return err
	}

	for i := range report.Outcomes {
		row, err = e.writeOutcome(f, &report.Outcomes[i], row, styles)
		if err != nil {
			return err
		}
	}

	widths := map[string]float64{"A": 10, "B": 28, "C": 18, "D": 26, "E": 12, "F": 60}
	for col, width := range widths {
		if err := f.SetColWidth(ReportSheet, col, col, width); err != nil {
			return fmt.Errorf("could not set column width: %w", err)
		}
	}

	if err := f.SaveAs(string(path)); err != nil {
		return fmt.Errorf("could not save spreadsheet: %w", err)
	}

	return nil
}

type sheetStyles struct {
	title   int
	header  int
	pass    int
	fail    int
	invalid int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles

	var err error

	s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return s, err
	}

	s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return s, err
	}

	s.pass, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "006100"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
	})
	if err != nil {
		return s, err
	}

	s.fail, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "9C0006"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})
	if err != nil {
		return s, err
	}

	s.invalid, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "9C6500"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFEB9C"}, Pattern: 1},
	})

	return s, err
}

func (e *XLSXExporter) writeTitleBlock(f *excelize.File, report *m.RunReport, styles sheetStyles) (int, error) {
	passed, failed, invalid := report.Summary()

	rows := [][]any{
		{"Verification & Validation Test Report"},
		{"Project", report.Project},
		{"Run", report.ID},
		{"Started", report.StartedAt.Format(time.RFC3339)},
		{"Finished", report.FinishedAt.Format(time.RFC3339)},
		{"Summary", fmt.Sprintf("%d passed, %d failed, %d invalid", passed, failed, invalid)},
	}

	for i, cells := range rows {
		for j, value := range cells {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return 0, err
			}

			if err := f.SetCellValue(ReportSheet, cell, value); err != nil {
				return 0, err
			}
		}
	}

	if err := f.SetCellStyle(ReportSheet, "A1", "A1", styles.title); err != nil {
		return 0, err
	}

	return len(rows) + 2, nil
}

func (e *XLSXExporter) writeOutcome(f *excelize.File, outcome *m.TestOutcome, row int, styles sheetStyles) (int, error) {
	rule := ""
	if outcome.Rule != nil {
		rule = outcome.Rule.String()
	}

	status, statusStyle := outcomeStatus(outcome, styles)
	if outcome.Retried() {
		status += " (retried)"
	}

	header := []any{outcome.ItemID, outcome.Name, outcome.Category, rule, status, ""}
	if err := e.writeRow(f, row, header); err != nil {
		return 0, err
	}

	last, err := excelize.CoordinatesToCellName(len(header), row)
	if err != nil {
		return 0, err
	}

	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return 0, err
	}

	if err := f.SetCellStyle(ReportSheet, first, last, styles.header); err != nil {
		return 0, err
	}

	statusCell, err := excelize.CoordinatesToCellName(5, row)
	if err != nil {
		return 0, err
	}

	if err := f.SetCellStyle(ReportSheet, statusCell, statusCell, statusStyle); err != nil {
		return 0, err
	}

	row++

	for attemptIdx, attempt := range outcome.Attempts {
		label := fmt.Sprintf("attempt %d", attemptIdx+1)
		if attempt.Invalid {
			label += " (invalid)"
		}

		for iterIdx, iter := range attempt.Iterations {
			verdict := "FAIL"
			if iter.Passed {
				verdict = "PASS"
			}

			if iter.Err != nil {
				verdict = iter.Err.Error()
			}

			cells := []any{
				"",
				label,
				fmt.Sprintf("iteration %d", iterIdx+1),
				fmt.Sprintf("return %d, %.2f ms", iter.ReturnCode, float64(iter.Duration.Microseconds())/1000),
				verdict,
				iter.Output,
			}

			if err := e.writeRow(f, row, cells); err != nil {
				return 0, err
			}

			row++
		}

		if attempt.Err != nil && len(attempt.Iterations) == 0 {
			cells := []any{"", label, "", "", attempt.Err.Error(), ""}
			if err := e.writeRow(f, row, cells); err != nil {
				return 0, err
			}

			row++
		}
	}

	return row + 1, nil
}

func (e *XLSXExporter) writeRow(f *excelize.File, row int, cells []any) error {
	for j, value := range cells {
		cell, err := excelize.CoordinatesToCellName(j+1, row)
		if err != nil {
			return err
		}

		if err := f.SetCellValue(ReportSheet, cell, value); err != nil {
			return err
		}
	}

	return nil
}

func outcomeStatus(outcome *m.TestOutcome, styles sheetStyles) (string, int) {
	switch {
	case outcome.Invalid():
		return "INVALID", styles.invalid
	case outcome.Passed():
		return "PASS", styles.pass
	default:
		return "FAIL", styles.fail
	}
}
