// Package selection implements the drive-selection dialog logic: which drives are
// offered for a transfer mode, which one the user picked, and what the dialog hands
// back to the surrounding workflow when it closes.
package selection

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSelection is returned when selecting a drive that is not visible.
	ErrInvalidSelection = errors.New("drive is not selectable")
	// ErrNoSelection is returned when confirming without a selected drive.
	ErrNoSelection = errors.New("no drive selected")
	// ErrUnknownMode is returned for transfer modes other than import and export.
	ErrUnknownMode = errors.New("unknown transfer mode")
	// ErrStaleActivation is returned when a drive list arrives for an activation
	// that has since been replaced.
	ErrStaleActivation = errors.New("stale dialog activation")
)

// Drive is a local drive candidate for a content transfer.
type Drive struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Writable bool     `json:"writable"`
	Channels []string `json:"channels"` // IDs of channels already installed on the drive

	// Display extras, never used for filtering.
	MountPoint string `json:"mount_point,omitempty"`
	FreeBytes  uint64 `json:"free_bytes,omitempty"`
	TotalBytes uint64 `json:"total_bytes,omitempty"`
}

// HasContent reports whether the drive holds at least one channel.
func (d Drive) HasContent() bool {
	return len(d.Channels) > 0
}

// Mode is the direction of a content transfer.
type Mode int

const (
	ModeImport Mode = iota + 1 // drive -> device
	ModeExport                 // device -> drive
)

// String returns the canonical name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeImport:
		return "import"
	case ModeExport:
		return "export"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeImport || m == ModeExport
}

// ParseMode accepts "import" and "export" as well as the wizard transfer types
// "localimport" and "localexport".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "import", "localimport":
		return ModeImport, nil
	case "export", "localexport":
		return ModeExport, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Phase is the loading state of the dialog's drive list.
type Phase int

const (
	PhaseLoading Phase = iota // discovery in flight
	PhaseReady                // drive list supplied
	PhaseFailed               // discovery failed, waiting for a retry
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// OutcomeKind tells the workflow how the dialog was closed.
type OutcomeKind int

const (
	OutcomeForward OutcomeKind = iota + 1
	OutcomeCancel
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeForward:
		return "forward"
	case OutcomeCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Outcome is the terminal signal of the dialog. Forward carries the selected
// drive and has the same shape for import and export; Cancel carries nothing.
type Outcome struct {
	Kind    OutcomeKind
	DriveID string
}

// Forward builds a forward outcome for driveID.
func Forward(driveID string) Outcome {
	return Outcome{Kind: OutcomeForward, DriveID: driveID}
}

// Cancel builds a cancel outcome.
func Cancel() Outcome {
	return Outcome{Kind: OutcomeCancel}
}

// Transitioner consumes dialog outcomes and moves the surrounding workflow on.
type Transitioner interface {
	Transition(Outcome) error
}

// Display text used by the dialog.
const (
	TitleImport   = "Select a drive"
	TitleExport   = "Select an export destination"
	LoadingStatus = "Finding local drives…"
	EmptyMessage  = "No drives were detected"
)

// Title returns the dialog title for mode.
func Title(mode Mode) string {
	switch mode {
	case ModeImport:
		return TitleImport
	case ModeExport:
		return TitleExport
	default:
		return ""
	}
}
