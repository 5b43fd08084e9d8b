package drives

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drivesync/internal/config"
	"drivesync/internal/selection"
)

type fakeLister struct {
	volumes []Volume
	err     error
}

func (f *fakeLister) List(ctx context.Context) ([]Volume, error) {
	return f.volumes, f.err
}

func testService(volumes []Volume) *Service {
	s := NewService(&fakeLister{volumes: volumes}, "KOLIBRI_DATA", 2)
	s.channels = func(ctx context.Context, mountPoint, contentDir string) ([]ChannelInfo, error) {
		switch mountPoint {
		case "/media/content":
			return []ChannelInfo{{ID: "c1", Name: "Channel One"}, {ID: "c2", Name: "Channel Two"}}, nil
		case "/media/broken":
			return nil, errors.New("permission denied")
		default:
			return nil, nil
		}
	}
	s.writable = func(path string) bool { return path != "/media/locked" }
	s.usage = func(ctx context.Context, path string) (Space, error) {
		if path == "/media/broken" {
			return Space{}, errors.New("stat failed")
		}
		return Space{Free: 10, Total: 20}, nil
	}
	return s
}

func TestService_Discover(t *testing.T) {
	s := testService([]Volume{
		{Device: "/dev/sdb1", MountPoint: "/media/content", UUID: "U1", Label: "CONTENT", Removable: true},
		{Device: "/dev/sdc1", MountPoint: "/media/locked", Removable: true},
		{Device: "/dev/sdd1", MountPoint: "/media/readonly", UUID: "U3", ReadOnly: true},
		{Device: "/dev/sde1", MountPoint: "/media/broken", UUID: "U4"},
	})

	drives, err := s.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, drives, 4)

	assert.Equal(t, "U1", drives[0].ID)
	assert.Equal(t, "CONTENT", drives[0].Name)
	assert.True(t, drives[0].Writable)
	assert.Equal(t, []string{"c1", "c2"}, drives[0].ChannelIDs())
	assert.Equal(t, Space{Free: 10, Total: 20}, drives[0].Space)

	assert.Equal(t, "/dev/sdc1", drives[1].ID, "device path is the fallback id")
	assert.Equal(t, "External Drive", drives[1].Name)
	assert.False(t, drives[1].Writable)

	assert.False(t, drives[2].Writable, "read-only mounts are never writable")
	assert.Equal(t, "Local Drive", drives[2].Name)

	// probe failures degrade the drive instead of failing discovery
	assert.Empty(t, drives[3].Channels)
	assert.Equal(t, Space{}, drives[3].Space)
}

func TestService_DiscoverDeduplicates(t *testing.T) {
	s := testService([]Volume{
		{Device: "/dev/sdb1", MountPoint: "/media/content", UUID: "U1"},
		{Device: "/dev/sdb1", MountPoint: "/media/content-bind", UUID: "U1"},
	})
	drives, err := s.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, drives, 1)
	assert.Equal(t, "/media/content", drives[0].MountPoint)
}

func TestService_DiscoverListerError(t *testing.T) {
	s := NewService(&fakeLister{err: errors.New("lsblk missing")}, "KOLIBRI_DATA", 1)
	_, err := s.Discover(context.Background())
	assert.ErrorContains(t, err, "lsblk missing")
}

func TestService_DiscoverCancelled(t *testing.T) {
	s := testService([]Volume{{Device: "/dev/sdb1", MountPoint: "/media/content"}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Discover(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_ProbeConcurrencyIsBounded(t *testing.T) {
	var volumes []Volume
	for _, mp := range []string{"/media/a", "/media/b", "/media/c", "/media/d", "/media/e", "/media/f"} {
		volumes = append(volumes, Volume{Device: mp, MountPoint: mp})
	}
	s := testService(volumes)

	var inFlight, peak atomic.Int32
	s.channels = func(ctx context.Context, mountPoint, contentDir string) ([]ChannelInfo, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)
		return nil, nil
	}

	drives, err := s.Discover(context.Background())
	require.NoError(t, err)
	assert.Len(t, drives, 6)
	assert.LessOrEqual(t, peak.Load(), int32(2))
	for i, d := range drives {
		assert.Equal(t, volumes[i].Device, d.ID, "lister order is kept")
	}
}

func TestNewServiceFromConfig(t *testing.T) {
	cfg := config.GetDefaultConfig().Discovery

	s, err := NewServiceFromConfig(cfg)
	require.NoError(t, err)
	assert.IsType(t, &LsblkLister{}, s.lister)

	cfg.Backend = config.BackendPartitions
	s, err = NewServiceFromConfig(cfg)
	require.NoError(t, err)
	assert.IsType(t, &PartitionLister{}, s.lister)
	assert.Equal(t, cfg.ProbeWorkers, s.workers)

	cfg.Backend = "udisks"
	_, err = NewServiceFromConfig(cfg)
	assert.Error(t, err)
}

func TestToSelection(t *testing.T) {
	infos := []DriveInfo{
		{
			Volume:   Volume{MountPoint: "/media/a"},
			ID:       "A",
			Name:     "Alpha",
			Writable: true,
			Channels: []ChannelInfo{{ID: "c1"}},
			Space:    Space{Free: 1, Total: 2},
		},
		{ID: "B", Name: "Beta"},
	}
	assert.Equal(t, []selection.Drive{
		{ID: "A", Name: "Alpha", Writable: true, Channels: []string{"c1"}, MountPoint: "/media/a", FreeBytes: 1, TotalBytes: 2},
		{ID: "B", Name: "Beta", Channels: []string{}},
	}, ToSelection(infos))
}
