package selection

import "fmt"

// VisibleDrives returns the drives offered for mode, in input order.
// Import needs installed content; export needs a writable drive.
func VisibleDrives(drives []Drive, mode Mode) []Drive {
	var keep func(Drive) bool
	switch mode {
	case ModeImport:
		keep = Drive.HasContent
	case ModeExport:
		keep = func(d Drive) bool { return d.Writable }
	default:
		return nil
	}

	visible := make([]Drive, 0, len(drives))
	for _, d := range drives {
		if keep(d) {
			visible = append(visible, d)
		}
	}
	return visible
}

// Controller holds the state of one drive-selection dialog. It is not safe for
// concurrent use; the owning UI serialises calls.
type Controller struct {
	mode       Mode
	phase      Phase
	activation uint64
	drives     []Drive
	visible    []Drive
	selected   string
	err        error
}

// NewController returns a controller for mode in the Loading phase.
func NewController(mode Mode) (*Controller, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, mode)
	}
	c := &Controller{mode: mode}
	c.Activate(mode)
	return c, nil
}

// Activate starts a new dialog activation: the drive list and selection are
// dropped and the controller waits in Loading for the next Load. The returned
// token identifies this activation.
func (c *Controller) Activate(mode Mode) uint64 {
	if mode.Valid() {
		c.mode = mode
	}
	c.activation++
	c.phase = PhaseLoading
	c.drives = nil
	c.visible = nil
	c.selected = ""
	c.err = nil
	return c.activation
}

// Activation returns the token of the current activation.
func (c *Controller) Activation() uint64 {
	return c.activation
}

// Load supplies the discovered drives for activation token. The first Load
// moves Loading to Ready; later loads refresh the list in place and drop a
// selection that is no longer visible.
func (c *Controller) Load(token uint64, drives []Drive) error {
	if token != c.activation {
		return fmt.Errorf("%w: got %d, current %d", ErrStaleActivation, token, c.activation)
	}
	if c.phase == PhaseFailed {
		return fmt.Errorf("%w: activation %d already failed", ErrStaleActivation, token)
	}

	c.drives = append([]Drive(nil), drives...)
	c.phase = PhaseReady
	c.refilter()
	return nil
}

// Fail records a discovery failure for activation token. Only a loading
// activation can fail; a new Activate is the retry path.
func (c *Controller) Fail(token uint64, err error) error {
	if token != c.activation {
		return fmt.Errorf("%w: got %d, current %d", ErrStaleActivation, token, c.activation)
	}
	if c.phase != PhaseLoading {
		return nil
	}
	c.phase = PhaseFailed
	c.err = err
	return nil
}

// SetMode switches the transfer mode. The selection is always cleared.
func (c *Controller) SetMode(mode Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownMode, mode)
	}
	c.mode = mode
	c.selected = ""
	c.refilter()
	return nil
}

// Select marks driveID as the chosen drive. The empty id means no selection
// and is never selectable.
func (c *Controller) Select(driveID string) error {
	if driveID == "" || c.phase != PhaseReady || !c.isVisible(driveID) {
		return fmt.Errorf("%w: %q", ErrInvalidSelection, driveID)
	}
	c.selected = driveID
	return nil
}

// Confirm closes the dialog forward with the selected drive.
func (c *Controller) Confirm() (Outcome, error) {
	if c.selected == "" {
		return Outcome{}, ErrNoSelection
	}
	return Forward(c.selected), nil
}

// Cancel closes the dialog without a drive.
func (c *Controller) Cancel() Outcome {
	return Cancel()
}

// ConfirmTo confirms and hands the outcome to t.
func (c *Controller) ConfirmTo(t Transitioner) (Outcome, error) {
	out, err := c.Confirm()
	if err != nil {
		return Outcome{}, err
	}
	if err := t.Transition(out); err != nil {
		return Outcome{}, fmt.Errorf("transition forward: %w", err)
	}
	return out, nil
}

// CancelTo cancels and hands the outcome to t.
func (c *Controller) CancelTo(t Transitioner) (Outcome, error) {
	out := c.Cancel()
	if err := t.Transition(out); err != nil {
		return Outcome{}, fmt.Errorf("transition cancel: %w", err)
	}
	return out, nil
}

func (c *Controller) Mode() Mode { return c.mode }
func (c *Controller) Phase() Phase { return c.phase }
func (c *Controller) Title() string { return Title(c.mode) }
func (c *Controller) Err() error { return c.err }
func (c *Controller) Drives() []Drive { return append([]Drive(nil), c.drives...) }

// VisibleDrives returns the drives currently offered for selection.
func (c *Controller) VisibleDrives() []Drive {
	return append([]Drive(nil), c.visible...)
}

// Drive looks up a visible drive by id.
func (c *Controller) Drive(id string) (Drive, bool) {
	for _, d := range c.visible {
		if d.ID == id {
			return d, true
		}
	}
	return Drive{}, false
}

// SelectedDriveID returns the selected drive id, if any.
func (c *Controller) SelectedDriveID() (string, bool) {
	return c.selected, c.selected != ""
}

// CanConfirm reports whether Confirm would succeed.
func (c *Controller) CanConfirm() bool {
	return c.selected != ""
}

// IsEmpty reports the empty state: the list has loaded and nothing is visible.
func (c *Controller) IsEmpty() bool {
	return c.phase == PhaseReady && len(c.visible) == 0
}

// EmptyMessage is the empty-state text.
func (c *Controller) EmptyMessage() string { return EmptyMessage }

// StatusMessage is the text shown in place of the list while it is not ready.
func (c *Controller) StatusMessage() string {
	switch c.phase {
	case PhaseLoading:
		return LoadingStatus
	case PhaseFailed:
		if c.err != nil {
			return "Could not find local drives: " + c.err.Error()
		}
		return "Could not find local drives"
	default:
		if c.IsEmpty() {
			return EmptyMessage
		}
		return ""
	}
}

func (c *Controller) refilter() {
	c.visible = VisibleDrives(c.drives, c.mode)
	if c.selected != "" && !c.isVisible(c.selected) {
		c.selected = ""
	}
}

func (c *Controller) isVisible(id string) bool {
	_, ok := c.Drive(id)
	return ok
}
