// Package cmd provides the root command and CLI setup for vvt.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dabecart/VVToolkit/internal/adapter"
	"github.com/dabecart/VVToolkit/internal/config"
	"github.com/dabecart/VVToolkit/internal/controller"
	"github.com/dabecart/VVToolkit/internal/domain"
	m "github.com/dabecart/VVToolkit/internal/model"
)

var projectFlag string
var configFlag string
var verboseFlag bool
var noTTYFlag bool
var noColorFlag bool

var cfg *config.Config
var logger *log.Logger
var projectStore adapter.ProjectStore
var resultStore adapter.ResultStore
var workflow domain.Workflow
var ui controller.UI

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vvt",
		Short: "Shell-based validation test workbench",
		Long: `VVToolkit defines, executes and reports on suites of shell-invoked
validation tests through a three-phase workflow:

  setup   define the ordered list of tests in a .vvf project file
  build   attach verification rules and capture baseline outputs
  test    run the full suite uninterrupted and record a .vvt result file

Reports can be exported as a spreadsheet or a printable PDF.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupEnvironment(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&projectFlag, "project", "f", "tests.vvf", "path to the .vvf project file")
	cmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to the configuration file")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&noTTYFlag, "no-tty", false, "force plain text output")
	cmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")

	return cmd
}

// setupEnvironment wires the adapters, workflow and UI from configuration
// and flags. It runs before every subcommand.
func setupEnvironment(cmd *cobra.Command) error {
	path := configFlag
	if path == "" {
		path = config.DefaultPath()
	}

	var err error

	cfg, err = config.LoadConfig(path)
	if err != nil {
		return err
	}

	level := log.InfoLevel
	if parsed, parseErr := log.ParseLevel(cfg.LogLevel); parseErr == nil {
		level = parsed
	}

	if verboseFlag {
		level = log.DebugLevel
	}

	logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Level: level})

	if noColorFlag || !cfg.Color {
		color.NoColor = true
	}

	runner := adapter.NewShellCommandRunner(cfg.Shell, cfg.Timeout)
	orch := domain.NewOrchestrator(runner, logger)

	projectStore = adapter.NewFileProjectStore()
	resultStore = adapter.NewFileResultStore()
	workflow = domain.NewWorkflow(orch, logger)
	ui = controller.NewUI(cmd, !noTTYFlag && controller.IsTTY(cmd.OutOrStdout()))

	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadProject reads the project file named by the --project flag and
// resolves the directory test commands run in.
func loadProject() (*m.Project, m.Path, error) {
	project, err := projectStore.Load(m.Path(projectFlag))
	if err != nil {
		return nil, "", err
	}

	dir, err := adapter.ProjectDir(m.Path(projectFlag))
	if err != nil {
		return nil, "", err
	}

	return project, dir, nil
}

func saveProject(project *m.Project) error {
	return projectStore.Save(m.Path(projectFlag), project)
}

func parseItemID(arg string) (int, error) {
	var id int

	if _, err := fmt.Sscanf(arg, "%d", &id); err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid item id %q", arg)
	}

	return id, nil
}
