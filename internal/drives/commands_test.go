package drives

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type discoverFunc func(ctx context.Context) ([]DriveInfo, error)

func (f discoverFunc) Discover(ctx context.Context) ([]DriveInfo, error) { return f(ctx) }

func TestLoadDrives(t *testing.T) {
	d := discoverFunc(func(ctx context.Context) ([]DriveInfo, error) {
		return []DriveInfo{{ID: "A"}}, nil
	})

	msg := LoadDrives(context.Background(), d, 7, time.Second)()
	loaded, ok := msg.(DrivesLoaded)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, uint64(7), loaded.Token)
	assert.Equal(t, "A", loaded.Drives[0].ID)
}

func TestLoadDrives_Failure(t *testing.T) {
	boom := errors.New("boom")
	d := discoverFunc(func(ctx context.Context) ([]DriveInfo, error) { return nil, boom })

	msg := LoadDrives(context.Background(), d, 3, 0)()
	failed, ok := msg.(DiscoveryFailed)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, uint64(3), failed.Token)
	assert.ErrorIs(t, failed.Err, boom)
}

func TestLoadDrives_Timeout(t *testing.T) {
	d := discoverFunc(func(ctx context.Context) ([]DriveInfo, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	msg := LoadDrives(context.Background(), d, 1, 10*time.Millisecond)()
	failed, ok := msg.(DiscoveryFailed)
	require.True(t, ok)
	assert.ErrorIs(t, failed.Err, context.DeadlineExceeded)
}
