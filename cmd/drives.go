package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"drivesync/internal/drives"
	"drivesync/internal/selection"
)

func newDrivesCmd() *cobra.Command {
	var (
		modeFlag string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "drives",
		Short: "List the local drives offered for an import or export",
		Long: `Discover local drives once and print the ones the drive picker would offer.

Import lists drives that hold at least one channel. Export lists drives that
can be written to.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := selection.ParseMode(modeFlag)
			if err != nil {
				return err
			}
			cfg, err := setupCLI(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := checkDependencies(cfg.Discovery); err != nil {
				return err
			}
			discoverer, err := newDiscoverer(cfg.Discovery)
			if err != nil {
				return err
			}

			ctx := contextOf(cmd)
			if cfg.Discovery.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, cfg.Discovery.Timeout)
				defer cancel()
			}
			infos, err := discoverer.Discover(ctx)
			if err != nil {
				return fmt.Errorf("discover drives: %w", err)
			}

			visible := selection.VisibleDrives(drives.ToSelection(infos), mode)
			if asJSON {
				return printDrivesJSON(cmd.OutOrStdout(), mode, visible)
			}
			printDrivesTable(cmd.OutOrStdout(), visible)
			return nil
		},
	}

	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "import", "transfer mode: import or export")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the drives as JSON")
	return cmd
}

type drivesOutput struct {
	Mode   string            `json:"mode"`
	Title  string            `json:"title"`
	Drives []selection.Drive `json:"drives"`
}

func printDrivesJSON(w io.Writer, mode selection.Mode, visible []selection.Drive) error {
	if visible == nil {
		visible = []selection.Drive{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(drivesOutput{Mode: mode.String(), Title: selection.Title(mode), Drives: visible})
}

func printDrivesTable(w io.Writer, visible []selection.Drive) {
	if len(visible) == 0 {
		fmt.Fprintln(w, selection.EmptyMessage)
		return
	}

	rows := make([][]string, 0, len(visible))
	for _, d := range visible {
		space := ""
		if d.TotalBytes > 0 {
			space = drives.SpaceLabel(d.FreeBytes, d.TotalBytes)
		}
		rows = append(rows, []string{
			d.ID,
			d.Name,
			d.MountPoint,
			strconv.FormatBool(d.Writable),
			strconv.Itoa(len(d.Channels)),
			space,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "MOUNT", "WRITABLE", "CHANNELS", "SPACE").
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
}
