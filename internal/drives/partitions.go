package drives

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/shirou/gopsutil/v3/disk"
)

// PartitionLister lists mounted partitions through gopsutil. It works where
// lsblk is missing, at the cost of labels and UUIDs.
type PartitionLister struct {
	MountRoots []string

	partitions func(ctx context.Context, all bool) ([]disk.PartitionStat, error)
}

// List returns the partitions mounted under one of the configured mount roots.
func (l *PartitionLister) List(ctx context.Context) ([]Volume, error) {
	partitions := l.partitions
	if partitions == nil {
		partitions = disk.PartitionsWithContext
	}
	parts, err := partitions(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list partitions: %w", err)
	}

	volumes := make([]Volume, 0, len(parts))
	for _, p := range parts {
		if p.Mountpoint == "" || p.Mountpoint == "/" {
			continue
		}
		if !UnderMountRoot(p.Mountpoint, l.MountRoots) {
			continue
		}
		volumes = append(volumes, Volume{
			Device:     p.Device,
			MountPoint: p.Mountpoint,
			Label:      filepath.Base(p.Mountpoint),
			Filesystem: p.Fstype,
			ReadOnly:   slices.Contains(p.Opts, "ro"),
			Removable:  true,
		})
	}
	return volumes, nil
}
