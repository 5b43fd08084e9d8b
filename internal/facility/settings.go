// Package facility holds the facility configuration page state: a small set of
// boolean learner permissions, changed only through dispatched actions and
// persisted to a YAML file.
package facility

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"drivesync/pkg/logging"
)

// ErrUnknownSetting is returned for setting names the facility does not have.
var ErrUnknownSetting = errors.New("unknown facility setting")

// Setting names.
const (
	LearnerCanEditUsername        = "learner_can_edit_username"
	LearnerCanEditName            = "learner_can_edit_name"
	LearnerCanSignUp              = "learner_can_sign_up"
	LearnerCanDeleteAccount       = "learner_can_delete_account"
	LearnerCanLoginWithNoPassword = "learner_can_login_with_no_password"
)

// settingOrder is the display order of the configuration page.
var settingOrder = []string{
	LearnerCanEditUsername,
	LearnerCanEditName,
	LearnerCanSignUp,
	LearnerCanDeleteAccount,
	LearnerCanLoginWithNoPassword,
}

var settingLabels = map[string]string{
	LearnerCanEditUsername:        "Allow learners to edit their username",
	LearnerCanEditName:            "Allow learners to edit their full name",
	LearnerCanSignUp:              "Allow learners to create accounts",
	LearnerCanDeleteAccount:       "Allow learners to delete their account",
	LearnerCanLoginWithNoPassword: "Allow learners to sign in with no password",
}

// Names returns the setting names in display order.
func Names() []string {
	return append([]string(nil), settingOrder...)
}

// Label returns the human-readable description of a setting.
func Label(name string) string {
	if l, ok := settingLabels[name]; ok {
		return l
	}
	return name
}

// Known reports whether name is a facility setting.
func Known(name string) bool {
	_, ok := settingLabels[name]
	return ok
}

// Defaults returns the settings of a new facility.
func Defaults() map[string]bool {
	return map[string]bool{
		LearnerCanEditUsername:        false,
		LearnerCanEditName:            true,
		LearnerCanSignUp:              false,
		LearnerCanDeleteAccount:       false,
		LearnerCanLoginWithNoPassword: false,
	}
}

// ModifySetting is the action that changes one setting.
type ModifySetting struct {
	Name  string
	Value bool
}

// Store owns the facility settings. It is safe for concurrent use.
type Store struct {
	mu          sync.Mutex
	path        string
	settings    map[string]bool
	subscribers []func(ModifySetting)
}

// fileFormat is the on-disk layout of the settings file.
type fileFormat struct {
	UpdatedAt time.Time       `yaml:"updated_at"`
	Settings  map[string]bool `yaml:"settings"`
}

// NewStore returns a store with default settings that saves to path.
func NewStore(path string) *Store {
	return &Store{path: path, settings: Defaults()}
}

// Load reads the settings file at path. A missing file yields the defaults;
// unknown names in the file are dropped.
func Load(path string) (*Store, error) {
	s := NewStore(path)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logging.Debug("Facility", "no settings file at %s, using defaults", path)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read facility settings: %w", err)
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse facility settings %s: %w", path, err)
	}
	for name, value := range f.Settings {
		if !Known(name) {
			logging.Warn("Facility", "ignoring unknown setting %q in %s", name, path)
			continue
		}
		s.settings[name] = value
	}
	return s, nil
}

// Path returns the settings file path.
func (s *Store) Path() string { return s.path }

// Get returns the value of a setting.
func (s *Store) Get(name string) (bool, error) {
	if !Known(name) {
		return false, fmt.Errorf("%w: %q", ErrUnknownSetting, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings[name], nil
}

// Snapshot returns a copy of all settings.
func (s *Store) Snapshot() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.settings))
	for k, v := range s.settings {
		out[k] = v
	}
	return out
}

// Subscribe registers fn to be called after every applied action.
func (s *Store) Subscribe(fn func(ModifySetting)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Dispatch applies an action and notifies subscribers.
func (s *Store) Dispatch(action ModifySetting) error {
	if !Known(action.Name) {
		return fmt.Errorf("%w: %q", ErrUnknownSetting, action.Name)
	}

	s.mu.Lock()
	s.settings[action.Name] = action.Value
	subscribers := slices.Clone(s.subscribers)
	s.mu.Unlock()

	logging.Info("Facility", "%s set to %t", action.Name, action.Value)
	for _, fn := range subscribers {
		fn(action)
	}
	return nil
}

// Toggle flips a setting, the way the configuration page checkbox does.
func (s *Store) Toggle(name string) (ModifySetting, error) {
	current, err := s.Get(name)
	if err != nil {
		return ModifySetting{}, err
	}
	action := ModifySetting{Name: name, Value: !current}
	return action, s.Dispatch(action)
}

// Save writes the settings file atomically.
func (s *Store) Save() error {
	f := fileFormat{UpdatedAt: time.Now().UTC(), Settings: s.Snapshot()}
	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("encode facility settings: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".facility-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close settings: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}

// SortedNames returns the names in a snapshot in display order, followed by any
// others alphabetically.
func SortedNames(settings map[string]bool) []string {
	var names []string
	for _, n := range settingOrder {
		if _, ok := settings[n]; ok {
			names = append(names, n)
		}
	}
	var extra []string
	for n := range settings {
		if !Known(n) {
			extra = append(extra, n)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}
