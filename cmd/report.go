package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dabecart/VVToolkit/internal/adapter"
	m "github.com/dabecart/VVToolkit/internal/model"
)

var reportOutputFlag string
var reportFormatFlag string

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <results.vvt>",
		Short: "Export a result file as a spreadsheet or printable PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			report, err := resultStore.LoadReport(m.Path(args[0]))
			if err != nil {
				return err
			}

			format := reportFormatFlag
			if format == "" {
				format = formatFromPath(reportOutputFlag)
			}

			out := reportOutputFlag
			if out == "" {
				out = strings.TrimSuffix(args[0], ".vvt") + "." + format
			}

			var exporter adapter.ReportExporter

			switch format {
			case "xlsx":
				exporter = adapter.NewXLSXExporter()
			case "pdf":
				exporter = adapter.NewPDFExporter()
			default:
				return fmt.Errorf("unknown report format %q", format)
			}

			if err := exporter.Export(report, m.Path(out)); err != nil {
				return err
			}

			c.Printf("Wrote %s report to %s\n", format, out)

			return nil
		},
	}

	cmd.Flags().StringVarP(&reportOutputFlag, "output", "o", "", "path of the exported report")
	cmd.Flags().StringVar(&reportFormatFlag, "format", "", "report format (xlsx or pdf)")

	return cmd
}

func formatFromPath(path string) string {
	switch filepath.Ext(path) {
	case ".pdf":
		return "pdf"
	default:
		return "xlsx"
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
