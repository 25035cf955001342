package controller

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyMsg(t *testing.T, model tea.Model, msg tea.Msg) runModel {
	t.Helper()

	updated, _ := model.Update(msg)

	rm, ok := updated.(runModel)
	require.True(t, ok)

	return rm
}

func TestRunModel_ProgressView(t *testing.T) {
	t.Parallel()

	rm := newRunModel()
	rm = applyMsg(t, rm, suiteStartedMsg{total: 3})
	rm = applyMsg(t, rm, testStartedMsg{id: 1, name: "version banner", reps: 2})

	view := rm.View()
	assert.Contains(t, view, "VVToolkit Test Run")
	assert.Contains(t, view, "Running test 1: version banner (2 repetitions)")
	assert.Contains(t, view, "0")
	assert.Contains(t, view, "3")
}

func TestRunModel_TracksCompletedTests(t *testing.T) {
	t.Parallel()

	rm := newRunModel()
	rm = applyMsg(t, rm, suiteStartedMsg{total: 2})
	rm = applyMsg(t, rm, testFinishedMsg{row: runRow{id: 1, name: "a", status: "PASS"}})
	rm = applyMsg(t, rm, testFinishedMsg{row: runRow{id: 2, name: "b", status: "FAIL"}})

	assert.Equal(t, 2, rm.completed)
	assert.Len(t, rm.resultsList.Items(), 2)
}

func TestRunModel_ResultsViewAfterSuiteFinished(t *testing.T) {
	t.Parallel()

	rm := newRunModel()
	rm = applyMsg(t, rm, suiteStartedMsg{total: 2})
	rm = applyMsg(t, rm, testFinishedMsg{row: runRow{id: 1, name: "a", status: "PASS", category: "smoke"}})
	rm = applyMsg(t, rm, testFinishedMsg{row: runRow{id: 2, name: "b", status: "INVALID", category: "smoke"}})
	rm = applyMsg(t, rm, suiteFinishedMsg{passed: 1, failed: 0, invalid: 1})

	require.True(t, rm.finished)

	view := rm.View()
	assert.Contains(t, view, "passed")
	assert.Contains(t, view, "invalid")
	assert.Contains(t, view, "a")
	assert.Contains(t, view, "b")
}

func TestRunModel_QuitKeys(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"q", "esc", "ctrl+c"} {
		rm := newRunModel()

		updated, cmd := rm.Update(keyMsg(key))
		quit, ok := updated.(runModel)
		require.True(t, ok, key)

		assert.True(t, quit.quitting, key)
		require.NotNil(t, cmd, key)
		assert.Equal(t, tea.Quit(), cmd(), key)
		assert.Empty(t, quit.View(), key)
	}
}

func TestRunModel_WindowSizeResizesList(t *testing.T) {
	t.Parallel()

	rm := newRunModel()
	rm = applyMsg(t, rm, tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Equal(t, 100, rm.width)
	assert.Equal(t, 40, rm.height)
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func TestRunRow_FilterValue(t *testing.T) {
	t.Parallel()

	row := runRow{id: 4, name: "banner", category: "smoke"}
	assert.Contains(t, row.FilterValue(), "banner")
}
