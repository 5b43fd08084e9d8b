// Package internal provides the core application model and state management for DriveSync's TUI.
//
// This package implements the Bubble Tea model pattern for the interactive terminal user interface.
// The model handles:
//   - Screen transitions between the main menu, drive selection, channel summary and settings
//   - Drive discovery results, failures and hot-plug refreshes
//   - Handing drive-selection outcomes to the transfer wizard
//   - Facility settings toggles and their persistence
package internal

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"drivesync/internal/drives"
	"drivesync/internal/facility"
	"drivesync/internal/handlers"
	"drivesync/internal/screens"
	"drivesync/internal/selection"
	"drivesync/internal/state"
	"drivesync/internal/workflow"
	"drivesync/pkg/logging"
)

// statusTimeout is how long transient status messages stay on screen.
const statusTimeout = 3 * time.Second

// Options wires the model to its collaborators.
type Options struct {
	Context    context.Context
	Discoverer drives.Discoverer
	Watcher    *drives.Watcher // nil disables hot-plug refresh
	Store      *facility.Store // nil keeps settings in memory only
	Timeout    time.Duration   // per discovery run, 0 for none
}

// Model represents the complete application state for the DriveSync TUI.
type Model struct {
	// Screen and navigation state
	screen  screens.Screen
	cursor  int
	choices []string

	// Status line
	message    string
	messageErr bool
	messageSet time.Time

	width  int
	height int

	// Collaborators
	ctx        context.Context
	discoverer drives.Discoverer
	watcher    *drives.Watcher
	store      *facility.Store
	timeout    time.Duration

	// Drive selection dialog and the wizard it feeds
	dialog *selection.Controller
	wizard *workflow.Wizard
	infos  map[string]drives.DriveInfo

	mainMenu    *handlers.MainMenuHandler
	driveSelect *handlers.DriveSelectHandler
	settings    *handlers.SettingsHandler

	spinner spinner.Model
	help    help.Model
	keys    KeyMap
}

// NewModel creates the model on the main menu.
func NewModel(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	store := opts.Store
	if store == nil {
		store = facility.NewStore("")
	}
	dialog, _ := selection.NewController(selection.ModeImport)

	return Model{
		screen:      screens.ScreenMain,
		choices:     screens.MainMenuChoices,
		width:       100,
		height:      30,
		ctx:         ctx,
		discoverer:  opts.Discoverer,
		watcher:     opts.Watcher,
		store:       store,
		timeout:     opts.Timeout,
		dialog:      dialog,
		infos:       map[string]drives.DriveInfo{},
		mainMenu:    handlers.NewMainMenuHandler(),
		driveSelect: handlers.NewDriveSelectHandler(),
		settings:    handlers.NewSettingsHandler(store),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		help:        help.New(),
		keys:        DefaultKeyMap(),
	}
}

// Init implements tea.Model. It starts listening for mount changes.
func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return drives.WaitForChange(m.watcher)
	}
	return nil
}

// Update implements tea.Model and routes every incoming message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.screen != screens.ScreenDriveSelect || m.dialog.Phase() != selection.PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case drives.DrivesLoaded:
		if m.screen != screens.ScreenDriveSelect {
			return m, nil
		}
		if err := m.dialog.Load(msg.Token, drives.ToSelection(msg.Drives)); err != nil {
			logging.Debug("TUI", "dropping drive list: %v", err)
			return m, nil
		}
		m.infos = make(map[string]drives.DriveInfo, len(msg.Drives))
		for _, d := range msg.Drives {
			m.infos[d.ID] = d
		}
		m.driveSelect.Clamp(m.dialog)
		return m, nil

	case drives.DiscoveryFailed:
		if err := m.dialog.Fail(msg.Token, msg.Err); err != nil {
			logging.Debug("TUI", "dropping discovery failure: %v", err)
		}
		return m, nil

	case drives.DrivesChanged:
		var cmds []tea.Cmd
		if m.watcher != nil {
			cmds = append(cmds, drives.WaitForChange(m.watcher))
		}
		if m.screen == screens.ScreenDriveSelect && m.dialog.Phase() != selection.PhaseFailed {
			logging.Debug("TUI", "mounts changed, refreshing activation %d", m.dialog.Activation())
			cmds = append(cmds, m.loadDrives())
		}
		if len(cmds) == 0 {
			return m, nil
		}
		return m, tea.Batch(cmds...)

	case state.SettingsSavedMsg:
		if msg.Err != nil {
			logging.Error("TUI", msg.Err, "saving facility settings")
			return m.setStatus(FormatError("Could not save settings: "+msg.Err.Error()), true)
		}
		return m.setStatus(FormatSuccess("Settings saved"), false)

	case state.StatusMsg:
		return m.setStatus(msg.Message, false)

	case state.ErrorMsg:
		if msg.RequiresManualDismiss {
			m.message = msg.Message
			m.messageErr = true
			m.screen = screens.ScreenError
			return m, nil
		}
		return m.setStatus(FormatError(msg.Message), true)

	case state.ClearStatusMsg:
		if msg.Set.Equal(m.messageSet) {
			m.message = ""
			m.messageErr = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.closeWizard()
		return m, tea.Quit
	}

	switch m.screen {
	case screens.ScreenMain:
		return m.updateMainMenu(msg)
	case screens.ScreenDriveSelect:
		return m.updateDriveSelect(msg)
	case screens.ScreenChannels:
		return m.updateChannels(msg)
	case screens.ScreenSettings:
		return m.updateSettings(msg)
	default:
		// About and error screens: any key returns to the main menu
		return m.toMainMenu(), nil
	}
}

func (m Model) updateMainMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.cursor = len(m.choices) - 1
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		} else {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Select):
		action, cmd := m.mainMenu.HandleSelection(m.cursor)
		if action.Quit {
			return m, cmd
		}
		switch action.Screen {
		case screens.ScreenDriveSelect:
			return m.openDriveSelect(action.Mode)
		default:
			m.screen = action.Screen
			m.cursor = 0
		}
	}
	return m, nil
}

// openDriveSelect starts a transfer wizard and a new dialog activation.
func (m Model) openDriveSelect(mode selection.Mode) (tea.Model, tea.Cmd) {
	w, err := workflow.NewWizard(mode)
	if err != nil {
		return m.setStatus(FormatError(err.Error()), true)
	}
	m.wizard = w
	return m.activateDialog(mode)
}

func (m Model) activateDialog(mode selection.Mode) (Model, tea.Cmd) {
	token := m.dialog.Activate(mode)
	logging.Info("TUI", "%s drive selection opened (activation %d)", mode, token)
	m.infos = map[string]drives.DriveInfo{}
	m.driveSelect.Reset()
	m.screen = screens.ScreenDriveSelect
	m.message = ""
	return m, tea.Batch(m.spinner.Tick, m.loadDrives())
}

func (m Model) loadDrives() tea.Cmd {
	if m.discoverer == nil {
		token := m.dialog.Activation()
		return func() tea.Msg {
			return drives.DiscoveryFailed{Token: token, Err: errors.New("no drive discovery configured")}
		}
	}
	return drives.LoadDrives(m.ctx, m.discoverer, m.dialog.Activation(), m.timeout)
}

func (m Model) updateDriveSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.driveSelect.MoveUp(m.dialog)
	case key.Matches(msg, m.keys.Down):
		m.driveSelect.MoveDown(m.dialog)
	case key.Matches(msg, m.keys.Select):
		if m.dialog.Phase() != selection.PhaseReady || m.dialog.IsEmpty() {
			return m, nil
		}
		if err := m.driveSelect.SelectCurrent(m.dialog); err != nil {
			return m.setStatus(FormatError(err.Error()), true)
		}
	case key.Matches(msg, m.keys.Continue):
		out, ok, err := m.driveSelect.Continue(m.dialog, m.wizard)
		if err != nil {
			return m.setStatus(FormatError(err.Error()), true)
		}
		if !ok {
			return m.setStatus(FormatWarning("Select a drive to continue"), false)
		}
		logging.Info("TUI", "%s continues with drive %s", m.wizard.Mode(), out.DriveID)
		m.screen = screens.ScreenChannels
		m.choices = screens.ChannelPageChoices
		m.cursor = 0
	case key.Matches(msg, m.keys.Back):
		if _, err := m.driveSelect.Cancel(m.dialog, m.wizard); err != nil {
			logging.Debug("TUI", "cancel: %v", err)
		}
		return m.toMainMenu(), nil
	case key.Matches(msg, m.keys.Retry):
		switch m.dialog.Phase() {
		case selection.PhaseFailed:
			return m.activateDialog(m.dialog.Mode())
		case selection.PhaseReady:
			return m, m.loadDrives()
		}
	}
	return m, nil
}

func (m Model) updateChannels(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Back):
		return m.backToDriveSelect()
	case key.Matches(msg, m.keys.Select):
		if m.cursor == 0 {
			return m.backToDriveSelect()
		}
		m.closeWizard()
		return m.toMainMenu(), nil
	}
	return m, nil
}

// closeWizard sends Cancel to a wizard that is still open, from the dialog
// or from a channel page.
func (m Model) closeWizard() {
	if m.wizard == nil || m.wizard.Closed() {
		return
	}
	if m.screen != screens.ScreenDriveSelect && m.screen != screens.ScreenChannels {
		return
	}
	if _, err := m.driveSelect.Cancel(m.dialog, m.wizard); err != nil {
		logging.Debug("TUI", "closing %s wizard: %v", m.wizard.Mode(), err)
	}
}

func (m Model) backToDriveSelect() (tea.Model, tea.Cmd) {
	if err := m.wizard.Back(); err != nil {
		return m.setStatus(FormatError(err.Error()), true)
	}
	return m.activateDialog(m.wizard.Mode())
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.settings.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.settings.MoveDown()
	case key.Matches(msg, m.keys.Select):
		if _, err := m.settings.ToggleCurrent(); err != nil {
			return m.setStatus(FormatError(err.Error()), true)
		}
		return m, saveSettings(m.store)
	case key.Matches(msg, m.keys.Back):
		return m.toMainMenu(), nil
	}
	return m, nil
}

// saveSettings writes the settings file in the background.
func saveSettings(store *facility.Store) tea.Cmd {
	if store.Path() == "" {
		return nil
	}
	return func() tea.Msg {
		return state.SettingsSavedMsg{Path: store.Path(), Err: store.Save()}
	}
}

func (m Model) toMainMenu() Model {
	m.screen = screens.ScreenMain
	m.choices = screens.MainMenuChoices
	m.cursor = 0
	m.message = ""
	m.messageErr = false
	return m
}

func (m Model) setStatus(text string, isErr bool) (Model, tea.Cmd) {
	now := time.Now()
	m.message = text
	m.messageErr = isErr
	m.messageSet = now
	return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return state.ClearStatusMsg{Set: now}
	})
}

// Screen returns the active screen.
func (m Model) Screen() screens.Screen { return m.screen }

// Dialog returns the drive selection controller.
func (m Model) Dialog() *selection.Controller { return m.dialog }

// Wizard returns the transfer wizard of the last opened drive selection.
func (m Model) Wizard() *workflow.Wizard { return m.wizard }

// Message returns the status line text.
func (m Model) Message() string { return m.message }

// View renders the active screen.
func (m Model) View() string {
	switch m.screen {
	case screens.ScreenMain:
		return m.renderMainMenu()
	case screens.ScreenDriveSelect:
		return m.renderDriveSelect()
	case screens.ScreenChannels:
		return m.renderChannels()
	case screens.ScreenSettings:
		return m.renderSettings()
	case screens.ScreenAbout:
		return m.renderAbout()
	case screens.ScreenError:
		return m.renderError()
	default:
		return "Unknown screen"
	}
}
