// Package workflow moves the content-transfer wizard between pages in response
// to the outcomes of its dialogs.
package workflow

import (
	"errors"
	"fmt"

	"drivesync/internal/selection"
	"drivesync/pkg/logging"
)

// ErrInvalidTransition is returned for outcomes the current page cannot accept.
var ErrInvalidTransition = errors.New("invalid wizard transition")

// Page is a wizard step.
type Page int

const (
	PageSelectDrive Page = iota
	PageImportChannels
	PageExportChannels
	PageClosed
)

func (p Page) String() string {
	switch p {
	case PageSelectDrive:
		return "select-drive"
	case PageImportChannels:
		return "import-channels"
	case PageExportChannels:
		return "export-channels"
	case PageClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Step records one accepted transition.
type Step struct {
	From    Page
	To      Page
	Outcome selection.Outcome
}

// Wizard is the local import/export wizard. It implements selection.Transitioner.
type Wizard struct {
	mode    selection.Mode
	page    Page
	driveID string
	history []Step
}

var _ selection.Transitioner = (*Wizard)(nil)

// NewWizard opens a wizard for mode on the drive-selection page.
func NewWizard(mode selection.Mode) (*Wizard, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %d", selection.ErrUnknownMode, mode)
	}
	return &Wizard{mode: mode, page: PageSelectDrive}, nil
}

// Transition applies a dialog outcome.
func (w *Wizard) Transition(out selection.Outcome) error {
	from := w.page
	if from == PageClosed {
		return fmt.Errorf("%w: wizard is closed", ErrInvalidTransition)
	}

	switch out.Kind {
	case selection.OutcomeCancel:
		w.page = PageClosed
		w.driveID = ""
	case selection.OutcomeForward:
		if from != PageSelectDrive {
			return fmt.Errorf("%w: forward from %s", ErrInvalidTransition, from)
		}
		if out.DriveID == "" {
			return fmt.Errorf("%w: forward without a drive", ErrInvalidTransition)
		}
		w.driveID = out.DriveID
		if w.mode == selection.ModeExport {
			w.page = PageExportChannels
		} else {
			w.page = PageImportChannels
		}
	default:
		return fmt.Errorf("%w: outcome %s", ErrInvalidTransition, out.Kind)
	}

	w.history = append(w.history, Step{From: from, To: w.page, Outcome: out})
	logging.Debug("Workflow", "%s wizard: %s -> %s", w.mode, from, w.page)
	return nil
}

// Back returns from a channel page to drive selection.
func (w *Wizard) Back() error {
	if w.page != PageImportChannels && w.page != PageExportChannels {
		return fmt.Errorf("%w: back from %s", ErrInvalidTransition, w.page)
	}
	w.history = append(w.history, Step{From: w.page, To: PageSelectDrive})
	w.page = PageSelectDrive
	w.driveID = ""
	return nil
}

func (w *Wizard) Mode() selection.Mode { return w.mode }
func (w *Wizard) Page() Page { return w.page }

// DriveID returns the drive chosen on the selection page, if any.
func (w *Wizard) DriveID() string { return w.driveID }

// Closed reports whether the wizard was cancelled.
func (w *Wizard) Closed() bool { return w.page == PageClosed }

// History returns the accepted transitions in order.
func (w *Wizard) History() []Step {
	return append([]Step(nil), w.history...)
}
