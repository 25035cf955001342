package cmd

import (
	"github.com/spf13/cobra"

	m "github.com/dabecart/VVToolkit/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <results.vvt>",
		Short: "View a previously recorded result file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			report, err := resultStore.LoadReport(m.Path(args[0]))
			if err != nil {
				return err
			}

			return ui.ShowReport(report)
		},
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
