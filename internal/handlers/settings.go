package handlers

import "drivesync/internal/facility"

// SettingsHandler drives the facility settings checklist
type SettingsHandler struct {
	store  *facility.Store
	cursor int
}

// NewSettingsHandler creates a settings handler over store
func NewSettingsHandler(store *facility.Store) *SettingsHandler {
	return &SettingsHandler{store: store}
}

func (h *SettingsHandler) Cursor() int { return h.cursor }

// MoveUp moves the cursor up, wrapping to the bottom
func (h *SettingsHandler) MoveUp() {
	if h.cursor > 0 {
		h.cursor--
	} else {
		h.cursor = len(facility.Names()) - 1
	}
}

// MoveDown moves the cursor down, wrapping to the top
func (h *SettingsHandler) MoveDown() {
	if h.cursor < len(facility.Names())-1 {
		h.cursor++
	} else {
		h.cursor = 0
	}
}

// ToggleCurrent flips the highlighted checkbox
func (h *SettingsHandler) ToggleCurrent() (facility.ModifySetting, error) {
	return h.store.Toggle(facility.Names()[h.cursor])
}
