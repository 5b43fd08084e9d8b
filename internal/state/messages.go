package state

import "time"

// ErrorMsg represents an error message that may require dismissal
type ErrorMsg struct {
	Message               string
	RequiresManualDismiss bool
}

// StatusMsg is a transient status line message
type StatusMsg struct {
	Message string
}

// ClearStatusMsg clears a transient status message set at Set
type ClearStatusMsg struct {
	Set time.Time
}

// SettingsSavedMsg reports the result of writing the facility settings file
type SettingsSavedMsg struct {
	Path string
	Err  error
}
