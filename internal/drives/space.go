// Package drives provides drive detection and content probing.
// This module reports free space on mounted drives.
package drives

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/disk"
)

var diskUsage = disk.UsageWithContext

// UsageOf returns the free and total bytes of the filesystem holding path.
func UsageOf(ctx context.Context, path string) (Space, error) {
	usage, err := diskUsage(ctx, path)
	if err != nil {
		return Space{}, fmt.Errorf("disk usage of %s: %w", path, err)
	}
	return Space{Free: usage.Free, Total: usage.Total}, nil
}

// SpaceLabel renders free space for drive labels, e.g. "12 GB free of 64 GB".
// It is empty when the capacity is unknown.
func SpaceLabel(free, total uint64) string {
	if total == 0 {
		return ""
	}
	return humanize.Bytes(free) + " free of " + humanize.Bytes(total)
}
