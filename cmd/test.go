package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dabecart/VVToolkit/internal/controller"
	m "github.com/dabecart/VVToolkit/internal/model"
)

var testOutputFlag string
var retryResultsFlag string

// testCmd represents the test command family.
var testCmd = newTestCmd()

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run the full suite uninterrupted and record results",
	}

	cmd.AddCommand(newTestRunCmd())
	cmd.AddCommand(newTestRetryCmd())

	return cmd
}

func newTestRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute every enabled test and write a .vvt result file",
		Long: `Runs every enabled test once per repetition, in id order, without
interruption. Test mode refuses to start while any enabled test lacks a
verification rule, lacks a baseline it needs, or carries an unresolved
build error. A process-level failure during the run invalidates that
test's result; the rest of the suite still runs.`,
		Args: cobra.ExactArgs(0),
		RunE: func(c *cobra.Command, _ []string) error {
			project, dir, err := loadProject()
			if err != nil {
				return err
			}

			if err := ui.Start(controller.WithRunMode()); err != nil {
				return err
			}

			report, err := workflow.RunSuite(c.Context(), dir, project, ui)
			if err != nil {
				ui.Close()
				_ = ui.Wait()

				return err
			}

			out := testOutputFlag
			if out == "" {
				out = defaultResultPath(projectFlag)
			}

			if err := resultStore.SaveReport(m.Path(out), report); err != nil {
				ui.Close()
				_ = ui.Wait()

				return err
			}

			if err := ui.Wait(); err != nil {
				return err
			}

			logger.Info("saved results", "path", out, "run", report.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&testOutputFlag, "output", "o", "", "path of the .vvt result file")

	return cmd
}

func newTestRetryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retry <id>",
		Short: "Re-run one test against an existing result file",
		Long: `Re-runs a single test and appends the new attempt to its entry in the
result file. The earlier attempt stays on record, so the final report
shows that the test was retried instead of silently overwriting it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}

			if retryResultsFlag == "" {
				retryResultsFlag = defaultResultPath(projectFlag)
			}

			project, dir, err := loadProject()
			if err != nil {
				return err
			}

			report, err := resultStore.LoadReport(m.Path(retryResultsFlag))
			if err != nil {
				return err
			}

			if err := workflow.RetryTest(c.Context(), dir, project, report, id); err != nil {
				return err
			}

			if err := resultStore.SaveReport(m.Path(retryResultsFlag), report); err != nil {
				return err
			}

			outcome := report.OutcomeByID(id)
			c.Printf("Test %d retried: %s (%d attempts)\n", id, retryStatus(outcome), len(outcome.Attempts))

			return nil
		},
	}

	cmd.Flags().StringVar(&retryResultsFlag, "results", "", "path of the .vvt result file")

	return cmd
}

func retryStatus(outcome *m.TestOutcome) string {
	switch {
	case outcome.Invalid():
		return "INVALID"
	case outcome.Passed():
		return "PASS"
	default:
		return "FAIL"
	}
}

func defaultResultPath(projectPath string) string {
	base := strings.TrimSuffix(projectPath, ".vvf")

	return fmt.Sprintf("%s.vvt", base)
}

func init() {
	rootCmd.AddCommand(testCmd)
}
