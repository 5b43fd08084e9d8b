package selection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDrives() []Drive {
	return []Drive{
		{ID: "unwritable_drive", Name: "Unwritable", Writable: false, Channels: []string{"installed_channel"}},
		{ID: "writable_importable_drive", Name: "Writable and Importable", Writable: true, Channels: []string{"channel_1"}},
		{ID: "no_content_drive", Name: "Writable and Importable", Writable: true, Channels: []string{}},
	}
}

func ids(drives []Drive) []string {
	out := make([]string, 0, len(drives))
	for _, d := range drives {
		out = append(out, d.ID)
	}
	return out
}

func loadedController(t *testing.T, mode Mode, drives []Drive) *Controller {
	t.Helper()
	c, err := NewController(mode)
	require.NoError(t, err)
	require.NoError(t, c.Load(c.Activation(), drives))
	return c
}

func TestVisibleDrives(t *testing.T) {
	drives := []Drive{
		{ID: "A", Writable: false, Channels: []string{"c1"}},
		{ID: "B", Writable: true, Channels: []string{"c1"}},
		{ID: "C", Writable: true, Channels: nil},
	}

	assert.Equal(t, []string{"A", "B"}, ids(VisibleDrives(drives, ModeImport)))
	assert.Equal(t, []string{"B", "C"}, ids(VisibleDrives(drives, ModeExport)))
	assert.Nil(t, VisibleDrives(drives, Mode(42)))
}

func TestVisibleDrives_PreservesInputOrder(t *testing.T) {
	drives := []Drive{
		{ID: "z", Writable: true},
		{ID: "a", Writable: true},
		{ID: "m", Writable: false},
		{ID: "b", Writable: true},
	}
	assert.Equal(t, []string{"z", "a", "b"}, ids(VisibleDrives(drives, ModeExport)))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"import", ModeImport},
		{"export", ModeExport},
		{"localimport", ModeImport},
		{"LocalExport", ModeExport},
		{" import ", ModeImport},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseMode("remoteimport")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Select a drive", Title(ModeImport))
	assert.Equal(t, "Select an export destination", Title(ModeExport))
	assert.Empty(t, Title(Mode(0)))
}

func TestNewController_RejectsUnknownMode(t *testing.T) {
	_, err := NewController(Mode(7))
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestController_LoadingThenReady(t *testing.T) {
	c, err := NewController(ModeImport)
	require.NoError(t, err)

	assert.Equal(t, PhaseLoading, c.Phase())
	assert.Equal(t, "Finding local drives…", c.StatusMessage())
	assert.False(t, c.IsEmpty(), "loading is not the empty state")
	assert.Empty(t, c.VisibleDrives())

	require.NoError(t, c.Load(c.Activation(), sampleDrives()))
	assert.Equal(t, PhaseReady, c.Phase())
	assert.Empty(t, c.StatusMessage())

	// A second load for the same activation refreshes without going back to Loading.
	require.NoError(t, c.Load(c.Activation(), sampleDrives()[:1]))
	assert.Equal(t, PhaseReady, c.Phase())
	assert.Equal(t, []string{"unwritable_drive"}, ids(c.VisibleDrives()))
}

func TestController_ImportShowsOnlyDrivesWithContent(t *testing.T) {
	c := loadedController(t, ModeImport, sampleDrives())
	assert.Equal(t, []string{"unwritable_drive", "writable_importable_drive"}, ids(c.VisibleDrives()))
	assert.Equal(t, "Select a drive", c.Title())
}

func TestController_ExportShowsOnlyWritableDrives(t *testing.T) {
	c := loadedController(t, ModeExport, sampleDrives())
	assert.Equal(t, []string{"writable_importable_drive", "no_content_drive"}, ids(c.VisibleDrives()))
	assert.Equal(t, "Select an export destination", c.Title())
}

func TestController_EmptyState(t *testing.T) {
	drives := sampleDrives()
	for i := range drives {
		drives[i].Channels = nil
	}
	c := loadedController(t, ModeImport, drives)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, "No drives were detected", c.StatusMessage())
	assert.Equal(t, c.StatusMessage(), c.EmptyMessage())

	drives = sampleDrives()
	for i := range drives {
		drives[i].Writable = false
	}
	c = loadedController(t, ModeExport, drives)
	assert.True(t, c.IsEmpty())
}

func TestController_CanConfirmFollowsSelection(t *testing.T) {
	c := loadedController(t, ModeImport, sampleDrives())
	assert.False(t, c.CanConfirm())

	require.NoError(t, c.Select("writable_importable_drive"))
	assert.True(t, c.CanConfirm())

	id, ok := c.SelectedDriveID()
	assert.True(t, ok)
	assert.Equal(t, "writable_importable_drive", id)

	// idempotent
	require.NoError(t, c.Select("writable_importable_drive"))
	id, _ = c.SelectedDriveID()
	assert.Equal(t, "writable_importable_drive", id)
}

func TestController_SelectRejectsHiddenOrUnknownDrive(t *testing.T) {
	c := loadedController(t, ModeImport, sampleDrives())

	err := c.Select("no_content_drive")
	assert.ErrorIs(t, err, ErrInvalidSelection)
	err = c.Select("missing")
	assert.ErrorIs(t, err, ErrInvalidSelection)
	assert.False(t, c.CanConfirm())
}

func TestController_SelectWhileLoadingFails(t *testing.T) {
	c, err := NewController(ModeExport)
	require.NoError(t, err)
	assert.ErrorIs(t, c.Select("anything"), ErrInvalidSelection)
}

func TestController_SelectRejectsEmptyID(t *testing.T) {
	c := loadedController(t, ModeExport, []Drive{{ID: "", Name: "Unlabelled", Writable: true}})
	require.Len(t, c.VisibleDrives(), 1)

	assert.ErrorIs(t, c.Select(""), ErrInvalidSelection)
	assert.False(t, c.CanConfirm())
	_, err := c.Confirm()
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestController_ConfirmSameShapeForBothModes(t *testing.T) {
	for _, mode := range []Mode{ModeImport, ModeExport} {
		c := loadedController(t, mode, sampleDrives())
		require.NoError(t, c.Select("writable_importable_drive"))

		out, err := c.Confirm()
		require.NoError(t, err)
		assert.Equal(t, Outcome{Kind: OutcomeForward, DriveID: "writable_importable_drive"}, out, mode.String())
	}
}

func TestController_ConfirmWithoutSelection(t *testing.T) {
	c := loadedController(t, ModeImport, sampleDrives())
	_, err := c.Confirm()
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestController_CancelAlwaysAvailable(t *testing.T) {
	c, err := NewController(ModeImport)
	require.NoError(t, err)
	assert.Equal(t, Outcome{Kind: OutcomeCancel}, c.Cancel())

	require.NoError(t, c.Load(c.Activation(), sampleDrives()))
	require.NoError(t, c.Select("unwritable_drive"))
	assert.Equal(t, Outcome{Kind: OutcomeCancel}, c.Cancel())
}

func TestController_RefreshDropsVanishedSelection(t *testing.T) {
	c := loadedController(t, ModeExport, sampleDrives())
	require.NoError(t, c.Select("no_content_drive"))

	// Drive became read-only.
	drives := sampleDrives()
	drives[2].Writable = false
	require.NoError(t, c.Load(c.Activation(), drives))

	_, ok := c.SelectedDriveID()
	assert.False(t, ok)
	assert.False(t, c.CanConfirm())
}

func TestController_RefreshKeepsStillVisibleSelection(t *testing.T) {
	c := loadedController(t, ModeImport, sampleDrives())
	require.NoError(t, c.Select("writable_importable_drive"))

	require.NoError(t, c.Load(c.Activation(), sampleDrives()[1:]))
	id, ok := c.SelectedDriveID()
	assert.True(t, ok)
	assert.Equal(t, "writable_importable_drive", id)
}

func TestController_SetModeClearsSelection(t *testing.T) {
	c := loadedController(t, ModeImport, sampleDrives())
	require.NoError(t, c.Select("writable_importable_drive"))

	require.NoError(t, c.SetMode(ModeExport))
	assert.False(t, c.CanConfirm())
	assert.Equal(t, []string{"writable_importable_drive", "no_content_drive"}, ids(c.VisibleDrives()))

	assert.ErrorIs(t, c.SetMode(Mode(9)), ErrUnknownMode)
}

func TestController_ActivateResetsState(t *testing.T) {
	c := loadedController(t, ModeImport, sampleDrives())
	require.NoError(t, c.Select("unwritable_drive"))
	first := c.Activation()

	second := c.Activate(ModeExport)
	assert.NotEqual(t, first, second)
	assert.Equal(t, PhaseLoading, c.Phase())
	assert.Equal(t, ModeExport, c.Mode())
	assert.False(t, c.CanConfirm())
	assert.Empty(t, c.Drives())

	err := c.Load(first, sampleDrives())
	assert.ErrorIs(t, err, ErrStaleActivation)
	assert.Equal(t, PhaseLoading, c.Phase())
}

func TestController_FailAndRetry(t *testing.T) {
	c, err := NewController(ModeImport)
	require.NoError(t, err)
	token := c.Activation()

	boom := errors.New("lsblk: not found")
	require.NoError(t, c.Fail(token, boom))
	assert.Equal(t, PhaseFailed, c.Phase())
	assert.Equal(t, boom, c.Err())
	assert.Contains(t, c.StatusMessage(), "lsblk: not found")
	assert.False(t, c.IsEmpty())

	// A late result for the failed activation is refused.
	assert.ErrorIs(t, c.Load(token, sampleDrives()), ErrStaleActivation)

	retry := c.Activate(ModeImport)
	assert.Equal(t, PhaseLoading, c.Phase())
	assert.Nil(t, c.Err())
	require.NoError(t, c.Load(retry, sampleDrives()))
	assert.Equal(t, PhaseReady, c.Phase())
}

func TestController_FailAfterReadyIsIgnored(t *testing.T) {
	c := loadedController(t, ModeImport, sampleDrives())
	require.NoError(t, c.Fail(c.Activation(), errors.New("refresh failed")))
	assert.Equal(t, PhaseReady, c.Phase())
}

type recordingTransitioner struct {
	got []Outcome
	err error
}

func (r *recordingTransitioner) Transition(o Outcome) error {
	r.got = append(r.got, o)
	return r.err
}

func TestController_ConfirmToAndCancelTo(t *testing.T) {
	c := loadedController(t, ModeImport, sampleDrives())
	rec := &recordingTransitioner{}

	_, err := c.ConfirmTo(rec)
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Empty(t, rec.got, "nothing is forwarded without a selection")

	require.NoError(t, c.Select("writable_importable_drive"))
	out, err := c.ConfirmTo(rec)
	require.NoError(t, err)
	assert.Equal(t, Forward("writable_importable_drive"), out)

	_, err = c.CancelTo(rec)
	require.NoError(t, err)
	assert.Equal(t, []Outcome{Forward("writable_importable_drive"), Cancel()}, rec.got)

	rec.err = errors.New("wizard closed")
	_, err = c.CancelTo(rec)
	assert.ErrorContains(t, err, "wizard closed")
}
