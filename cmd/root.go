package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"drivesync/internal"
	"drivesync/internal/config"
	"drivesync/internal/drives"
	"drivesync/internal/facility"
	"drivesync/pkg/logging"
)

var (
	cfgFile  string
	logLevel string
)

// Seams replaced in tests.
var (
	isTerminal = func(f *os.File) bool {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	newDiscoverer = func(cfg config.DiscoveryConfig) (drives.Discoverer, error) {
		return drives.NewServiceFromConfig(cfg)
	}
)

// ErrNotATerminal is returned when the interactive UI is started without a terminal.
var ErrNotATerminal = errors.New("drivesync needs an interactive terminal; use 'drivesync drives' for scripted output")

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drivesync",
		Short: "Import and export channels over local drives",
		Long: `drivesync lists the local drives that can take part in an offline content
transfer. Importing offers drives that already hold channels; exporting offers
drives that can be written to.

Run without arguments to open the interactive drive picker.`,
		// SilenceUsage is set to true to prevent printing usage message on errors
		// handled by us (e.g. no drives found, unreadable config)
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runTUI,
	}
	cmd.SetVersionTemplate(`{{printf "drivesync version %s\n" .Version}}`)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "extra config file layered over ~/.config/drivesync/config.yaml")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	cmd.AddCommand(newDrivesCmd())
	cmd.AddCommand(newSettingsCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

// loadConfig reads the layered config and applies the --log-level override.
func loadConfig() (config.Config, logging.LogLevel, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return config.Config{}, 0, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return config.Config{}, 0, err
	}
	return cfg, level, nil
}

// setupCLI loads config for one-shot commands, which log to stderr.
func setupCLI(stderr io.Writer) (config.Config, error) {
	cfg, level, err := loadConfig()
	if err != nil {
		return config.Config{}, err
	}
	logging.InitForCLI(level, stderr)
	return cfg, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if !isTerminal(os.Stdout) {
		return ErrNotATerminal
	}

	cfg, level, err := loadConfig()
	if err != nil {
		return err
	}
	logPath, err := cfg.ResolveLogFile()
	if err != nil {
		return err
	}
	closeLog, err := logging.InitForTUI(level, logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := checkDependencies(cfg.Discovery); err != nil {
		return err
	}
	discoverer, err := newDiscoverer(cfg.Discovery)
	if err != nil {
		return err
	}

	settingsPath, err := cfg.ResolveSettingsFile()
	if err != nil {
		return err
	}
	store, err := facility.Load(settingsPath)
	if err != nil {
		return err
	}

	var watcher *drives.Watcher
	if cfg.Discovery.WatchEnabled() {
		watcher, err = drives.NewWatcher(cfg.Discovery.MountRoots, cfg.Discovery.WatchDebounce)
		if err != nil {
			logging.Warn("CLI", "hot-plug watching disabled: %v", err)
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("CLI", "starting %s", internal.GetFullVersionString())
	m := internal.NewModel(internal.Options{
		Context:    ctx,
		Discoverer: discoverer,
		Watcher:    watcher,
		Store:      store,
		Timeout:    cfg.Discovery.Timeout,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run interface: %w", err)
	}
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
