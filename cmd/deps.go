package cmd

import (
	"fmt"
	"os/exec"

	"drivesync/internal/config"
)

var lookPath = exec.LookPath

// checkDependencies verifies that the programs the discovery backend shells
// out to are installed.
func checkDependencies(cfg config.DiscoveryConfig) error {
	if cfg.Backend != config.BackendLsblk {
		return nil
	}
	if _, err := lookPath("lsblk"); err != nil {
		return fmt.Errorf("lsblk (drive detection) is not installed\n\n"+
			"Install it and try again:\n"+
			"   Debian/Ubuntu: sudo apt install util-linux\n"+
			"   Arch Linux:    sudo pacman -S util-linux\n\n"+
			"or set 'discovery.backend: %s' in the config: %w", config.BackendPartitions, err)
	}
	return nil
}
