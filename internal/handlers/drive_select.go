package handlers

import (
	"errors"

	"drivesync/internal/selection"
)

// DriveSelectHandler moves the cursor over the dialog's visible drives and
// turns key presses into controller calls.
type DriveSelectHandler struct {
	cursor int
}

// NewDriveSelectHandler creates a handler with the cursor on the first row
func NewDriveSelectHandler() *DriveSelectHandler {
	return &DriveSelectHandler{}
}

// Cursor returns the highlighted row
func (h *DriveSelectHandler) Cursor() int { return h.cursor }

// Reset moves the cursor back to the first row
func (h *DriveSelectHandler) Reset() { h.cursor = 0 }

// Clamp keeps the cursor inside the visible list after it changed.
func (h *DriveSelectHandler) Clamp(c *selection.Controller) {
	n := len(c.VisibleDrives())
	if h.cursor >= n {
		h.cursor = n - 1
	}
	if h.cursor < 0 {
		h.cursor = 0
	}
}

// MoveUp moves the cursor up, wrapping to the bottom
func (h *DriveSelectHandler) MoveUp(c *selection.Controller) {
	n := len(c.VisibleDrives())
	if n == 0 {
		return
	}
	if h.cursor > 0 {
		h.cursor--
	} else {
		h.cursor = n - 1
	}
}

// MoveDown moves the cursor down, wrapping to the top
func (h *DriveSelectHandler) MoveDown(c *selection.Controller) {
	n := len(c.VisibleDrives())
	if n == 0 {
		return
	}
	if h.cursor < n-1 {
		h.cursor++
	} else {
		h.cursor = 0
	}
}

// SelectCurrent selects the drive under the cursor
func (h *DriveSelectHandler) SelectCurrent(c *selection.Controller) error {
	visible := c.VisibleDrives()
	if h.cursor < 0 || h.cursor >= len(visible) {
		return selection.ErrInvalidSelection
	}
	return c.Select(visible[h.cursor].ID)
}

// Continue confirms the selection and hands the outcome to t. ok is false
// when there was nothing to confirm.
func (h *DriveSelectHandler) Continue(c *selection.Controller, t selection.Transitioner) (out selection.Outcome, ok bool, err error) {
	out, err = c.ConfirmTo(t)
	if errors.Is(err, selection.ErrNoSelection) {
		return selection.Outcome{}, false, nil
	}
	if err != nil {
		return selection.Outcome{}, false, err
	}
	return out, true, nil
}

// Cancel closes the dialog through t
func (h *DriveSelectHandler) Cancel(c *selection.Controller, t selection.Transitioner) (selection.Outcome, error) {
	h.Reset()
	return c.CancelTo(t)
}
