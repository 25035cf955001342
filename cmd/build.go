package cmd

import (
	"github.com/spf13/cobra"

	m "github.com/dabecart/VVToolkit/internal/model"
)

var ruleModeFlag string
var ruleOperatorFlag string
var ruleOperandFlag string

// buildCmd represents the build command family.
var buildCmd = newBuildCmd()

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Attach verification rules and capture baseline outputs",
	}

	cmd.AddCommand(newBuildRunCmd())
	cmd.AddCommand(newBuildClearCmd())
	cmd.AddCommand(newBuildRuleCmd())
	cmd.AddCommand(newBuildStatusCmd())

	return cmd
}

func newBuildRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [id]",
		Short: "Run one test, or every enabled test, capturing outputs",
		Long: `Runs the command of one test (or of every enabled, not yet built test)
once per repetition and stores the captured outputs as the baseline.
A launch failure or a non-zero return code is a blocking error: it is
recorded on the test and must be resolved, or the test disabled, before
test mode may proceed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			project, dir, err := loadProject()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				id, err := parseItemID(args[0])
				if err != nil {
					return err
				}

				err = workflow.BuildItem(c.Context(), dir, project, id)
				if saveErr := saveProject(project); saveErr != nil {
					return saveErr
				}

				return err
			}

			// Blocking errors are saved on the item before returning, so a
			// later `build status` still shows what went wrong.
			err = workflow.BuildAll(c.Context(), dir, project)
			if saveErr := saveProject(project); saveErr != nil {
				return saveErr
			}

			return err
		},
	}
}

func newBuildClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [id]",
		Short: "Drop captured outputs of one test, or of all tests",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			project, _, err := loadProject()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				id, err := parseItemID(args[0])
				if err != nil {
					return err
				}

				if err := workflow.ClearItem(project, id); err != nil {
					return err
				}
			} else {
				workflow.ClearAll(project)
			}

			return saveProject(project)
		},
	}
}

func newBuildRuleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rule <id>",
		Short: "Attach a verification rule to a test",
		Long: `Attaches the pass/fail policy applied to a test's output.

Mode same-output compares every test iteration byte for byte against the
baseline captured in build mode. Mode conditional-output applies an operator
(eq, ne, lt, gt, le, ge, contains, not-contains) between the output and a
fixed operand; numeric values compare numerically, anything else compares
lexicographically, and the substring operators always work on strings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}

			project, _, err := loadProject()
			if err != nil {
				return err
			}

			rule := m.VerificationRule{
				Mode:     m.VerificationMode(ruleModeFlag),
				Operator: m.Operator(ruleOperatorFlag),
				Operand:  ruleOperandFlag,
			}

			if err := workflow.SetRule(project, id, rule); err != nil {
				return err
			}

			return saveProject(project)
		},
	}

	cmd.Flags().StringVarP(&ruleModeFlag, "mode", "m", string(m.SameOutput), "verification mode (same-output or conditional-output)")
	cmd.Flags().StringVar(&ruleOperatorFlag, "operator", "", "conditional operator")
	cmd.Flags().StringVar(&ruleOperandFlag, "operand", "", "conditional operand")

	return cmd
}

func newBuildStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show build state and blocking errors per test",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			project, _, err := loadProject()
			if err != nil {
				return err
			}

			return ui.ShowBuildStatus(project.Items)
		},
	}
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
