package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"drivesync/internal/facility"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the facility settings",
	}
	cmd.AddCommand(newSettingsListCmd())
	cmd.AddCommand(newSettingsSetCmd())
	cmd.AddCommand(newSettingsToggleCmd())
	return cmd
}

// openStore loads the facility settings named by the config.
func openStore(cmd *cobra.Command) (*facility.Store, error) {
	cfg, err := setupCLI(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	path, err := cfg.ResolveSettingsFile()
	if err != nil {
		return nil, err
	}
	return facility.Load(path)
}

func newSettingsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the facility settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			values := store.Snapshot()
			rows := make([][]string, 0, len(values))
			for _, name := range facility.SortedNames(values) {
				rows = append(rows, []string{name, strconv.FormatBool(values[name]), facility.Label(name)})
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("SETTING", "VALUE", "DESCRIPTION").
				Rows(rows...)
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

func newSettingsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <true|false>",
		Short: "Set a facility setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("invalid value %q: want true or false", args[1])
			}
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			action := facility.ModifySetting{Name: args[0], Value: value}
			if err := store.Dispatch(action); err != nil {
				return err
			}
			if err := store.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %t\n", action.Name, action.Value)
			return nil
		},
	}
}

func newSettingsToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <name>",
		Short: "Flip a facility setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			action, err := store.Toggle(args[0])
			if err != nil {
				return err
			}
			if err := store.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %t\n", action.Name, action.Value)
			return nil
		},
	}
}
