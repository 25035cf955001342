package controller

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	m "github.com/dabecart/VVToolkit/internal/model"
)

// TUI implements UI using Bubble Tea for live run display. Static views are
// rendered as plain text. The Bubble Tea program runs on its own goroutine,
// coupled to the caller through an errgroup, so the suite can execute while
// the terminal stays responsive.
type TUI struct {
	output  io.Writer
	program *tea.Program
	group   *errgroup.Group
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start initializes the UI. In run mode it launches the Bubble Tea program.
func (t *TUI) Start(options ...StartOption) error {
	cfg := StartConfig{}
	for _, opt := range options {
		opt(&cfg)
	}

	if cfg.mode != ModeRun {
		return nil
	}

	t.program = tea.NewProgram(newRunModel(), tea.WithOutput(t.output))
	t.group = &errgroup.Group{}

	t.group.Go(func() error {
		_, err := t.program.Run()

		return err
	})

	return nil
}

// Close asks the program to quit.
func (t *TUI) Close() {
	if t.program != nil {
		t.program.Quit()
	}
}

// Wait blocks until the user closes the run view.
func (t *TUI) Wait() error {
	if t.group == nil {
		return nil
	}

	return t.group.Wait()
}

// ShowItems prints the test list.
func (t *TUI) ShowItems(items []m.Item) error {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(t.output, "No tests defined")
		return nil
	}

	for _, item := range items {
		rule := "-"
		if item.Rule != nil {
			rule = item.Rule.String()
		}

		enabled := " "
		if item.Enabled {
			enabled = "x"
		}

		_, _ = fmt.Fprintf(t.output, "[%s] %3d  %-24s %-16s reps=%d  %s\n",
			enabled, item.ID, item.Name, item.Category, item.Repetitions, rule)
	}

	return nil
}

// ShowBuildStatus prints each item's build state.
func (t *TUI) ShowBuildStatus(items []m.Item) error {
	for _, item := range items {
		status := "not built"

		switch {
		case !item.Enabled:
			status = "disabled"
		case item.BuildError != nil:
			status = item.BuildError.Error()
		case item.HasBeenBuilt():
			status = fmt.Sprintf("built (%d captures)", len(item.Baseline))
		}

		_, _ = fmt.Fprintf(t.output, "%3d  %-24s %s\n", item.ID, item.Name, status)
	}

	return nil
}

// ShowReport prints a run report summary.
func (t *TUI) ShowReport(report *m.RunReport) error {
	passed, failed, invalid := report.Summary()

	_, _ = fmt.Fprintf(t.output, "Run %s of project %q\n", report.ID, report.Project)
	_, _ = fmt.Fprintf(t.output, "Started %s, finished %s\n",
		report.StartedAt.Format(time.RFC3339), report.FinishedAt.Format(time.RFC3339))
	_, _ = fmt.Fprintf(t.output, "%d passed, %d failed, %d invalid\n", passed, failed, invalid)

	for i := range report.Outcomes {
		outcome := &report.Outcomes[i]
		_, _ = fmt.Fprintf(t.output, "%3d  %-24s %s\n", outcome.ItemID, outcome.Name, statusLabel(outcome))
	}

	return nil
}

// SuiteStarted forwards the run size to the model.
func (t *TUI) SuiteStarted(total int) {
	t.send(suiteStartedMsg{total: total})
}

// TestStarted forwards the current test to the model.
func (t *TUI) TestStarted(item m.Item) {
	t.send(testStartedMsg{id: item.ID, name: item.Name, reps: item.Repetitions})
}

// TestFinished forwards one completed test to the model.
func (t *TUI) TestFinished(item m.Item, outcome m.TestOutcome) {
	output := ""
	if latest := outcome.Latest(); latest != nil && len(latest.Iterations) > 0 {
		output = latest.Iterations[0].Output
	}

	t.send(testFinishedMsg{row: runRow{
		id:       item.ID,
		name:     item.Name,
		category: item.Category,
		status:   statusLabel(&outcome),
		output:   output,
	}})
}

// SuiteFinished forwards the summary to the model.
func (t *TUI) SuiteFinished(report *m.RunReport) {
	passed, failed, invalid := report.Summary()
	t.send(suiteFinishedMsg{passed: passed, failed: failed, invalid: invalid})
}

func (t *TUI) send(msg tea.Msg) {
	if t.program != nil {
		t.program.Send(msg)
	}
}

func statusLabel(outcome *m.TestOutcome) string {
	switch {
	case outcome.Invalid():
		return "INVALID"
	case outcome.Passed():
		return "PASS"
	default:
		return "FAIL"
	}
}
