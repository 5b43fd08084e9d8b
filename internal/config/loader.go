package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"drivesync/pkg/logging"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/drivesync"
	projectConfigDir = ".drivesync"
	configFileName   = "config.yaml"
)

// ErrInvalidConfig wraps validation failures.
var ErrInvalidConfig = errors.New("invalid configuration")

// LoadConfig layers defaults, user, project and, when extraPath is not empty,
// an explicit file. The result is validated.
func LoadConfig(extraPath string) (Config, error) {
	config := GetDefaultConfig()

	layers := []struct {
		name string
		path func() (string, error)
	}{
		{"user", getUserConfigPath},
		{"project", getProjectConfigPath},
	}
	for _, layer := range layers {
		path, err := layer.path()
		if err != nil {
			// Optional layer; keep going without it.
			logging.Warn("Config", "could not determine %s config path: %v", layer.name, err)
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		overlay, err := loadConfigFromFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("error loading %s config from %s: %w", layer.name, path, err)
		}
		logging.Debug("Config", "applied %s config %s", layer.name, path)
		config = mergeConfigs(config, overlay)
	}

	if extraPath != "" {
		overlay, err := loadConfigFromFile(extraPath)
		if err != nil {
			return Config{}, fmt.Errorf("error loading config from %s: %w", extraPath, err)
		}
		config = mergeConfigs(config, overlay)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a Config from a YAML file.
func loadConfigFromFile(filePath string) (Config, error) {
	var config Config
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Zero values in the
// overlay leave the base untouched.
func mergeConfigs(base, overlay Config) Config {
	merged := base

	if overlay.LogLevel != "" {
		merged.LogLevel = overlay.LogLevel
	}
	if overlay.LogFile != "" {
		merged.LogFile = overlay.LogFile
	}

	d := overlay.Discovery
	if d.Backend != "" {
		merged.Discovery.Backend = d.Backend
	}
	if d.ContentDir != "" {
		merged.Discovery.ContentDir = d.ContentDir
	}
	if len(d.MountRoots) > 0 {
		merged.Discovery.MountRoots = append([]string(nil), d.MountRoots...)
	}
	if d.ProbeWorkers != 0 {
		merged.Discovery.ProbeWorkers = d.ProbeWorkers
	}
	if d.Timeout != 0 {
		merged.Discovery.Timeout = d.Timeout
	}
	if d.Watch != nil {
		watch := *d.Watch
		merged.Discovery.Watch = &watch
	}
	if d.WatchDebounce != 0 {
		merged.Discovery.WatchDebounce = d.WatchDebounce
	}

	if overlay.Facility.SettingsFile != "" {
		merged.Facility.SettingsFile = overlay.Facility.SettingsFile
	}
	return merged
}

// Validate checks the values a loader cannot fix up on its own.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Discovery.Backend {
	case BackendLsblk, BackendPartitions:
	default:
		return fmt.Errorf("%w: unknown discovery backend %q", ErrInvalidConfig, c.Discovery.Backend)
	}
	if c.Discovery.ContentDir == "" {
		return fmt.Errorf("%w: discovery.content_dir is empty", ErrInvalidConfig)
	}
	if c.Discovery.ProbeWorkers <= 0 {
		return fmt.Errorf("%w: discovery.probe_workers must be positive", ErrInvalidConfig)
	}
	if c.Discovery.Timeout <= 0 {
		return fmt.Errorf("%w: discovery.timeout must be positive", ErrInvalidConfig)
	}
	if c.Discovery.WatchDebounce < 0 {
		return fmt.Errorf("%w: discovery.watch_debounce is negative", ErrInvalidConfig)
	}
	return nil
}
