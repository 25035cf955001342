package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// newResultFile runs a ready project and returns the .vvt path.
func newResultFile(t *testing.T) string {
	t.Helper()

	path := newReadyProject(t)
	resultPath := filepath.Join(filepath.Dir(path), "run.vvt")

	_, err := executeCommand(t, "-f", path, "--no-tty", "test", "run", "-o", resultPath)
	require.NoError(t, err)

	return resultPath
}

func TestReportCmd_ExportsSpreadsheet(t *testing.T) {
	resultPath := newResultFile(t)
	out := filepath.Join(filepath.Dir(resultPath), "run.xlsx")

	output, err := executeCommand(t, "--no-tty", "report", resultPath, "-o", out, "--format", "xlsx")
	require.NoError(t, err)
	assert.Contains(t, output, "Wrote xlsx report to "+out)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)

	defer func() { _ = f.Close() }()

	title, err := f.GetCellValue("Report", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Verification & Validation Test Report", title)
}

func TestReportCmd_FormatFromOutputExtension(t *testing.T) {
	resultPath := newResultFile(t)
	out := filepath.Join(filepath.Dir(resultPath), "run.pdf")

	output, err := executeCommand(t, "--no-tty", "report", resultPath, "-o", out, "--format", "")
	require.NoError(t, err)
	assert.Contains(t, output, "Wrote pdf report")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestReportCmd_UnknownFormatFails(t *testing.T) {
	resultPath := newResultFile(t)

	_, err := executeCommand(t, "--no-tty", "report", resultPath, "-o", "", "--format", "html")
	require.Error(t, err)

	assert.Contains(t, err.Error(), `unknown report format "html"`)
}

func TestViewCmd_PrintsRecordedRun(t *testing.T) {
	resultPath := newResultFile(t)

	out, err := executeCommand(t, "--no-tty", "view", resultPath)
	require.NoError(t, err)

	assert.Contains(t, out, `project "demo"`)
	assert.Contains(t, out, "1 passed, 0 failed, 0 invalid")
	assert.Contains(t, out, "PASS")
}
