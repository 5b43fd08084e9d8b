package internal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"drivesync/internal/drives"
	"drivesync/internal/facility"
	"drivesync/internal/selection"
	"drivesync/internal/workflow"
)

// Styles
var (
	// Tokyo Night palette
	primaryColor    = lipgloss.Color("#7aa2f7") // blue
	secondaryColor  = lipgloss.Color("#9ece6a") // green
	warningColor    = lipgloss.Color("#e0af68") // yellow
	errorColor      = lipgloss.Color("#f7768e") // red
	textColor       = lipgloss.Color("#c0caf5") // foreground
	dimColor        = lipgloss.Color("#565f89") // comment
	backgroundColor = lipgloss.Color("#1a1b26") // background
	borderColor     = lipgloss.Color("#414868") // border

	asciiStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Align(lipgloss.Center).
			MarginBottom(1)

	titleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true).
			Align(lipgloss.Center).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Align(lipgloss.Center).
			MarginBottom(1)

	menuItemStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			PaddingRight(2).
			Foreground(textColor)

	selectedMenuItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				PaddingRight(2).
				Background(primaryColor).
				Foreground(backgroundColor).
				Bold(true).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor)

	inactiveMenuItemStyle = menuItemStyle.
				Foreground(dimColor)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Foreground(textColor)

	primaryButtonStyle = buttonStyle.
				Background(primaryColor).
				Foreground(backgroundColor).
				Bold(true)

	disabledButtonStyle = buttonStyle.
				BorderForeground(dimColor).
				Foreground(dimColor)

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(2, 3).
			Margin(1)

	warningStyle = lipgloss.NewStyle().
			Foreground(backgroundColor).
			Background(warningColor).
			Bold(true).
			Align(lipgloss.Center).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(warningColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(backgroundColor).
			Background(errorColor).
			Bold(true).
			Align(lipgloss.Center).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor)

	statusStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Align(lipgloss.Center)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Align(lipgloss.Center)

	helpStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Align(lipgloss.Center).
			Italic(true).
			MarginTop(2)

	infoBoxStyle = lipgloss.NewStyle().
			Background(borderColor).
			Foreground(textColor).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimColor)

	dimStyle = lipgloss.NewStyle().Foreground(dimColor)

	spinnerStyle = lipgloss.NewStyle().Foreground(primaryColor)
)

// ASCII art for the program name
const asciiArt = `┳┓  •
┃┃┏┓┓┓┏┏┓┏┓┓┏┏┓┏
┻┛┛ ┗┗┛┗ ┛┗┫┛┗┗
           ┛    `

// frame centers content inside the application border.
func (m Model) frame(body string) string {
	content := borderStyle.Width(m.width - 8).Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderHeader() string {
	ascii := asciiStyle.Render(asciiArt)
	title := titleStyle.Render(AppDesc)
	subtitle := subtitleStyle.Render("v" + GetVersionString())
	return ascii + "\n" + title + "\n" + subtitle
}

func (m Model) renderHelp(bindings []key.Binding) string {
	return helpStyle.Render(m.help.ShortHelpView(bindings))
}

func (m Model) renderStatus() string {
	if m.message == "" {
		return ""
	}
	if m.messageErr {
		return "\n" + statusErrorStyle.Render(m.message)
	}
	return "\n" + statusStyle.Render(m.message)
}

func (m Model) renderMenu(s *strings.Builder) {
	for i, choice := range m.choices {
		if m.cursor == i {
			s.WriteString(selectedMenuItemStyle.Render(CurrentSymbols.Pointer+" "+choice) + "\n")
		} else {
			s.WriteString(menuItemStyle.Render("  "+choice) + "\n")
		}
	}
}

// Render the main menu
func (m Model) renderMainMenu() string {
	var s strings.Builder
	s.WriteString(m.renderHeader() + "\n\n")
	m.renderMenu(&s)
	s.WriteString(m.renderStatus())
	s.WriteString("\n" + m.renderHelp([]key.Binding{m.keys.Up, m.keys.Down, m.keys.Select, m.keys.Quit}))
	return m.frame(s.String())
}

// Render the drive selection dialog
func (m Model) renderDriveSelect() string {
	var s strings.Builder
	c := m.dialog

	s.WriteString(titleStyle.Render(CurrentSymbols.Drive+" "+c.Title()) + "\n\n")

	switch {
	case c.Phase() == selection.PhaseLoading:
		s.WriteString(subtitleStyle.Render(m.spinner.View()+" "+c.StatusMessage()) + "\n")
	case c.Phase() == selection.PhaseFailed:
		s.WriteString(errorStyle.Render(c.StatusMessage()) + "\n")
		s.WriteString(dimStyle.Render("Press r to retry") + "\n")
	case c.IsEmpty():
		s.WriteString(warningStyle.Render(c.StatusMessage()) + "\n")
		s.WriteString(dimStyle.Render(emptyHint(c.Mode())) + "\n")
	default:
		selected, _ := c.SelectedDriveID()
		for i, d := range c.VisibleDrives() {
			row := m.renderDriveRow(d, d.ID == selected)
			if i == m.driveSelect.Cursor() {
				s.WriteString(selectedMenuItemStyle.Render(row) + "\n")
			} else {
				s.WriteString(menuItemStyle.Render(row) + "\n")
			}
		}
	}

	cont := disabledButtonStyle.Render("Continue")
	if c.CanConfirm() {
		cont = primaryButtonStyle.Render("Continue")
	}
	s.WriteString("\n" + lipgloss.JoinHorizontal(lipgloss.Top, buttonStyle.Render("Cancel"), " ", cont) + "\n")

	s.WriteString(m.renderStatus())
	s.WriteString("\n" + m.renderHelp(m.keys.DriveSelectHelp()))
	return m.frame(s.String())
}

func (m Model) renderDriveRow(d selection.Drive, selected bool) string {
	row := Radio(selected) + " " + d.Name
	if d.MountPoint != "" {
		row += "  " + d.MountPoint
	}
	if d.TotalBytes > 0 {
		row += "  (" + drives.SpaceLabel(d.FreeBytes, d.TotalBytes) + ")"
	}
	if m.dialog.Mode() == selection.ModeImport {
		row += fmt.Sprintf("  %s %d", CurrentSymbols.Channel, len(d.Channels))
		if !d.Writable {
			row += " " + CurrentSymbols.ReadOnly
		}
	}
	return row
}

func emptyHint(mode selection.Mode) string {
	if mode == selection.ModeExport {
		return "Insert a writable drive. The list refreshes when it is mounted."
	}
	return "Insert a drive with channels on it. The list refreshes when it is mounted."
}

// Render the page that follows a confirmed drive selection
func (m Model) renderChannels() string {
	var s strings.Builder

	info := m.infos[m.wizard.DriveID()]
	switch m.wizard.Page() {
	case workflow.PageImportChannels:
		s.WriteString(titleStyle.Render("Import from "+info.Name) + "\n\n")
		if len(info.Channels) == 0 {
			s.WriteString(dimStyle.Render("No channels found on this drive") + "\n")
		}
		for _, ch := range info.Channels {
			line := fmt.Sprintf("%s %s  v%d", CurrentSymbols.Channel, channelTitle(ch), ch.Version)
			s.WriteString(menuItemStyle.Render(line) + "\n")
		}
	case workflow.PageExportChannels:
		s.WriteString(titleStyle.Render("Export to "+info.Name) + "\n\n")
		details := fmt.Sprintf("Destination: %s\nFree space:  %s",
			info.MountPoint, drives.SpaceLabel(info.Space.Free, info.Space.Total))
		s.WriteString(infoBoxStyle.Render(details) + "\n")
	}

	s.WriteString("\n")
	m.renderMenu(&s)
	s.WriteString(m.renderStatus())
	s.WriteString("\n" + m.renderHelp(m.keys.MenuHelp()))
	return m.frame(s.String())
}

func channelTitle(ch drives.ChannelInfo) string {
	if ch.Name != "" {
		return ch.Name
	}
	return ch.ID
}

// Render the facility settings checklist
func (m Model) renderSettings() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Facility settings") + "\n\n")

	values := m.store.Snapshot()
	for i, name := range facility.Names() {
		row := Checkbox(values[name]) + " " + facility.Label(name)
		if i == m.settings.Cursor() {
			s.WriteString(selectedMenuItemStyle.Render(row) + "\n")
		} else {
			s.WriteString(menuItemStyle.Render(row) + "\n")
		}
	}
	if m.store.Path() != "" {
		s.WriteString("\n" + dimStyle.Render("Saved to "+m.store.Path()) + "\n")
	} else {
		s.WriteString("\n" + inactiveMenuItemStyle.Render("Changes are not saved") + "\n")
	}

	s.WriteString(m.renderStatus())
	s.WriteString("\n" + m.renderHelp(m.keys.MenuHelp()))
	return m.frame(s.String())
}

// Render about screen
func (m Model) renderAbout() string {
	var s strings.Builder

	s.WriteString(asciiStyle.Render(asciiArt) + "\n")
	s.WriteString(titleStyle.Render("About "+AppName) + "\n\n")

	about := GetAboutText() + `

Import channels from a local drive, or export them to one.

` + CurrentSymbols.Bullet + ` Import lists drives that already hold channels
` + CurrentSymbols.Bullet + ` Export lists drives that can be written to
` + CurrentSymbols.Bullet + ` The drive list refreshes when drives are mounted

Powered by Bubble Tea & Lipgloss

Press any key to return to main menu`

	s.WriteString(lipgloss.NewStyle().
		Foreground(textColor).
		Margin(0, 2).
		Align(lipgloss.Left).
		Render(about))

	return m.frame(s.String())
}

// Render error screen that requires manual dismissal
func (m Model) renderError() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(CurrentSymbols.Error+" Error") + "\n\n")
	s.WriteString(errorStyle.Render(m.message) + "\n\n")
	s.WriteString(helpStyle.Render("Press any key to continue"))
	return m.frame(s.String())
}
