package screens

import "drivesync/internal/selection"

// Menu choice constants for different screens
var (
	// MainMenuChoices defines the main menu options in the correct order
	MainMenuChoices = []string{
		"📥 Import from drive",
		"📤 Export to drive",
		"⚙️ Facility settings",
		"ℹ️ About",
		"❌ Exit",
	}

	// ChannelPageChoices are the buttons under the post-selection summary
	ChannelPageChoices = []string{
		"⬅️ Choose another drive",
		"🏠 Main menu",
	}
)

// GetMenuChoices returns the appropriate menu choices for a given screen
func GetMenuChoices(screen Screen) []string {
	switch screen {
	case ScreenMain:
		return MainMenuChoices
	case ScreenChannels:
		return ChannelPageChoices
	default:
		return []string{}
	}
}

// MenuAction represents the result of a menu selection
type MenuAction struct {
	Screen Screen
	Mode   selection.Mode // set when the action opens the drive dialog
	Quit   bool
}

// GetMainMenuAction returns the action for a main menu selection
func GetMainMenuAction(index int) MenuAction {
	switch index {
	case 0: // Import
		return MenuAction{Screen: ScreenDriveSelect, Mode: selection.ModeImport}
	case 1: // Export
		return MenuAction{Screen: ScreenDriveSelect, Mode: selection.ModeExport}
	case 2: // Facility settings
		return MenuAction{Screen: ScreenSettings}
	case 3: // About
		return MenuAction{Screen: ScreenAbout}
	case 4: // Exit
		return MenuAction{Screen: ScreenMain, Quit: true}
	default:
		return MenuAction{Screen: ScreenMain}
	}
}
