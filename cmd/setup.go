package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dabecart/VVToolkit/internal/domain"
	m "github.com/dabecart/VVToolkit/internal/model"
)

var addNameFlag string
var addCategoryFlag string
var addCommandFlag string
var addRepetitionsFlag int

var setNameFlag string
var setCategoryFlag string
var setCommandFlag string
var setRepetitionsFlag int

// setupCmd represents the setup command family.
var setupCmd = newSetupCmd()

func newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Define the ordered list of tests",
	}

	cmd.AddCommand(newSetupInitCmd())
	cmd.AddCommand(newSetupListCmd())
	cmd.AddCommand(newSetupAddCmd())
	cmd.AddCommand(newSetupRemoveCmd())
	cmd.AddCommand(newSetupDuplicateCmd())
	cmd.AddCommand(newSetupEnableCmd(true))
	cmd.AddCommand(newSetupEnableCmd(false))
	cmd.AddCommand(newSetupSetCmd())

	return cmd
}

func newSetupInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [name]",
		Short: "Create a new empty project file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if _, err := os.Stat(projectFlag); err == nil {
				return fmt.Errorf("project file %s already exists", projectFlag)
			}

			name := "Untitled"
			if len(args) == 1 {
				name = args[0]
			}

			return saveProject(m.NewProject(name))
		},
	}
}

func newSetupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List test definitions",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			project, _, err := loadProject()
			if err != nil {
				return err
			}

			return ui.ShowItems(project.Items)
		},
	}
}

func newSetupAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a test definition",
		Args:  cobra.ExactArgs(0),
		RunE: func(c *cobra.Command, _ []string) error {
			project, _, err := loadProject()
			if err != nil {
				return err
			}

			item, err := workflow.AddItem(project, addNameFlag, addCategoryFlag, addCommandFlag, addRepetitionsFlag)
			if err != nil {
				return err
			}

			if err := saveProject(project); err != nil {
				return err
			}

			c.Printf("Added test %d %q\n", item.ID, item.Name)

			return nil
		},
	}

	cmd.Flags().StringVarP(&addNameFlag, "name", "n", "", "test name")
	cmd.Flags().StringVar(&addCategoryFlag, "category", "", "grouping category")
	cmd.Flags().StringVarP(&addCommandFlag, "command", "c", "", "shell command to run")
	cmd.Flags().IntVarP(&addRepetitionsFlag, "repetitions", "r", 1, "how many times the command runs")

	return cmd
}

func newSetupRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a test definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}

			project, _, err := loadProject()
			if err != nil {
				return err
			}

			if err := workflow.RemoveItem(project, id); err != nil {
				return err
			}

			return saveProject(project)
		},
	}
}

func newSetupDuplicateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <id>",
		Short: "Copy a test definition under a new id",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}

			project, _, err := loadProject()
			if err != nil {
				return err
			}

			dup, err := workflow.DuplicateItem(project, id)
			if err != nil {
				return err
			}

			if err := saveProject(project); err != nil {
				return err
			}

			c.Printf("Duplicated test %d as %d\n", id, dup.ID)

			return nil
		},
	}
}

func newSetupEnableCmd(enable bool) *cobra.Command {
	use, short := "enable <id>", "Include a test in build and test runs"
	if !enable {
		use, short = "disable <id>", "Exclude a test from build and test runs"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}

			project, _, err := loadProject()
			if err != nil {
				return err
			}

			if err := workflow.SetEnabled(project, id, enable); err != nil {
				return err
			}

			return saveProject(project)
		},
	}
}

func newSetupSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Edit fields of a test definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}

			project, _, err := loadProject()
			if err != nil {
				return err
			}

			upd := domain.ItemUpdate{}

			if c.Flags().Changed("name") {
				upd.Name = &setNameFlag
			}

			if c.Flags().Changed("category") {
				upd.Category = &setCategoryFlag
			}

			if c.Flags().Changed("command") {
				upd.Command = &setCommandFlag
			}

			if c.Flags().Changed("repetitions") {
				upd.Repetitions = &setRepetitionsFlag
			}

			if err := workflow.UpdateItem(project, id, upd); err != nil {
				return err
			}

			return saveProject(project)
		},
	}

	cmd.Flags().StringVarP(&setNameFlag, "name", "n", "", "test name")
	cmd.Flags().StringVar(&setCategoryFlag, "category", "", "grouping category")
	cmd.Flags().StringVarP(&setCommandFlag, "command", "c", "", "shell command to run")
	cmd.Flags().IntVarP(&setRepetitionsFlag, "repetitions", "r", 1, "how many times the command runs")

	return cmd
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
