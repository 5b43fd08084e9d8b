package handlers

import (
	"drivesync/internal/screens"

	tea "github.com/charmbracelet/bubbletea"
)

// MainMenuHandler handles main menu selections and returns the next screen state
type MainMenuHandler struct{}

// NewMainMenuHandler creates a new main menu handler
func NewMainMenuHandler() *MainMenuHandler {
	return &MainMenuHandler{}
}

// HandleSelection processes a main menu selection and returns the next state
func (h *MainMenuHandler) HandleSelection(cursor int) (screens.MenuAction, tea.Cmd) {
	action := screens.GetMainMenuAction(cursor)
	if action.Quit {
		return action, tea.Quit
	}
	return action, nil
}
