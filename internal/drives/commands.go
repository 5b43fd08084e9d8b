// Package drives provides drive detection and content probing.
// This module wraps discovery and hot-plug watching as Bubble Tea commands.
package drives

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"drivesync/pkg/logging"
)

// LoadDrives runs discovery for activation token and reports the result as a
// DrivesLoaded or DiscoveryFailed message.
func LoadDrives(ctx context.Context, d Discoverer, token uint64, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		runCtx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		infos, err := d.Discover(runCtx)
		if err != nil {
			logging.Error("Drives", err, "drive discovery failed for activation %d", token)
			return DiscoveryFailed{Token: token, Err: err}
		}
		logging.Info("Drives", "activation %d: %d drives found", token, len(infos))
		return DrivesLoaded{Token: token, Drives: infos}
	}
}

// WaitForChange blocks until the watcher reports a change. It returns nil once
// the watcher is closed.
func WaitForChange(w *Watcher) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-w.Changes(); !ok {
			return nil
		}
		return DrivesChanged{}
	}
}
