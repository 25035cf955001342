package controller

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/dabecart/VVToolkit/internal/model"
)

var (
	passText    = color.New(color.FgGreen, color.Bold).SprintFunc()
	failText    = color.New(color.FgRed, color.Bold).SprintFunc()
	invalidText = color.New(color.FgYellow, color.Bold).SprintFunc()
)

// SimpleUI implements UI using plain text written through the cobra command.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(_ ...StartOption) error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {

}

// Wait returns once all output is flushed, which for plain text is
// immediately.
func (s *SimpleUI) Wait() error {
	return nil
}

// ShowItems prints the test list as a table.
func (s *SimpleUI) ShowItems(items []m.Item) error {
	if len(items) == 0 {
		s.printf("No tests defined\n")
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"ID", "Name", "Category", "Reps", "Enabled", "Rule", "Built"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	enabledCount := 0

	for _, item := range items {
		rule := "-"
		if item.Rule != nil {
			rule = item.Rule.String()
		}

		built := "no"
		if item.HasBeenBuilt() {
			built = fmt.Sprintf("%d captures", len(item.Baseline))
		}

		enabled := "no"
		if item.Enabled {
			enabled = "yes"
			enabledCount++
		}

		table.Append([]string{
			fmt.Sprintf("%d", item.ID),
			item.Name,
			item.Category,
			fmt.Sprintf("%d", item.Repetitions),
			enabled,
			rule,
			built,
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", len(items)),
		"", "", "",
		fmt.Sprintf("%d enabled", enabledCount),
		"", "",
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// ShowBuildStatus prints each item's build state, flagging blocking errors.
func (s *SimpleUI) ShowBuildStatus(items []m.Item) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"ID", "Name", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, item := range items {
		status := "not built"

		switch {
		case !item.Enabled:
			status = "disabled"
		case item.BuildError != nil:
			status = failText(item.BuildError.Error())
		case item.HasBeenBuilt():
			status = passText(fmt.Sprintf("built (%d captures)", len(item.Baseline)))
		}

		table.Append([]string{fmt.Sprintf("%d", item.ID), item.Name, status})
	}

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// ShowReport prints a run report summary and a per-test table.
func (s *SimpleUI) ShowReport(report *m.RunReport) error {
	passed, failed, invalid := report.Summary()

	s.printf("Run %s of project %q\n", report.ID, report.Project)
	s.printf("Started %s, finished %s\n",
		report.StartedAt.Format(time.RFC3339), report.FinishedAt.Format(time.RFC3339))
	s.printf("%s passed, %s failed, %s invalid\n",
		passText(passed), failText(failed), invalidText(invalid))

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"ID", "Name", "Category", "Status", "Attempts", "Iterations"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for i := range report.Outcomes {
		outcome := &report.Outcomes[i]

		iterations := 0
		if latest := outcome.Latest(); latest != nil {
			iterations = len(latest.Iterations)
		}

		table.Append([]string{
			fmt.Sprintf("%d", outcome.ItemID),
			outcome.Name,
			outcome.Category,
			outcomeText(outcome),
			fmt.Sprintf("%d", len(outcome.Attempts)),
			fmt.Sprintf("%d", iterations),
		})
	}

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// SuiteStarted announces the upcoming run.
func (s *SimpleUI) SuiteStarted(total int) {
	s.printf("Running %d tests\n", total)
}

// TestStarted announces one test.
func (s *SimpleUI) TestStarted(item m.Item) {
	s.printf("Test %d %q (%d repetitions)... ", item.ID, item.Name, item.Repetitions)
}

// TestFinished prints the outcome of one test.
func (s *SimpleUI) TestFinished(_ m.Item, outcome m.TestOutcome) {
	s.printf("%s\n", outcomeText(&outcome))
}

// SuiteFinished prints the final summary line.
func (s *SimpleUI) SuiteFinished(report *m.RunReport) {
	passed, failed, invalid := report.Summary()
	s.printf("Done: %s passed, %s failed, %s invalid\n",
		passText(passed), failText(failed), invalidText(invalid))
}

func outcomeText(outcome *m.TestOutcome) string {
	status := failText("FAIL")

	switch {
	case outcome.Invalid():
		status = invalidText("INVALID")
	case outcome.Passed():
		status = passText("PASS")
	}

	if outcome.Retried() {
		status += " (retried)"
	}

	return status
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
