package drives

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"drivesync/internal/config"
	"drivesync/internal/selection"
	"drivesync/pkg/logging"
)

// Discoverer finds local drives and describes them.
type Discoverer interface {
	Discover(ctx context.Context) ([]DriveInfo, error)
}

// Service discovers drives with a Lister and probes each volume for content,
// writability and free space.
type Service struct {
	lister     Lister
	contentDir string
	workers    int

	// probes, replaceable in tests
	channels func(ctx context.Context, mountPoint, contentDir string) ([]ChannelInfo, error)
	writable func(path string) bool
	usage    func(ctx context.Context, path string) (Space, error)
}

// NewService returns a Service probing up to workers volumes at a time.
func NewService(lister Lister, contentDir string, workers int) *Service {
	if workers <= 0 {
		workers = 1
	}
	return &Service{
		lister:     lister,
		contentDir: contentDir,
		workers:    workers,
		channels:   ProbeChannels,
		writable:   isWritable,
		usage:      UsageOf,
	}
}

// NewServiceFromConfig builds a Service for the configured backend.
func NewServiceFromConfig(cfg config.DiscoveryConfig) (*Service, error) {
	var lister Lister
	switch cfg.Backend {
	case config.BackendLsblk:
		lister = &LsblkLister{MountRoots: cfg.MountRoots}
	case config.BackendPartitions:
		lister = &PartitionLister{MountRoots: cfg.MountRoots}
	default:
		return nil, fmt.Errorf("unknown discovery backend %q", cfg.Backend)
	}
	return NewService(lister, cfg.ContentDir, cfg.ProbeWorkers), nil
}

// Discover lists volumes and probes them concurrently. The result keeps the
// lister's order; a volume appearing twice under the same id is reported once.
// A probe failure degrades that drive rather than failing discovery.
func (s *Service) Discover(ctx context.Context) ([]DriveInfo, error) {
	start := time.Now()
	volumes, err := s.lister.List(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]DriveInfo, len(volumes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range volumes {
		g.Go(func() error {
			results[i] = s.probe(gctx, volumes[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discovery interrupted: %w", err)
	}

	seen := make(map[string]bool, len(results))
	drives := make([]DriveInfo, 0, len(results))
	for _, d := range results {
		if seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		drives = append(drives, d)
	}

	logging.Debug("Drives", "discovered %d drives in %s", len(drives), time.Since(start).Round(time.Millisecond))
	return drives, nil
}

func (s *Service) probe(ctx context.Context, v Volume) DriveInfo {
	info := DriveInfo{
		Volume: v,
		ID:     driveID(v),
		Name:   driveName(v),
	}

	channels, err := s.channels(ctx, v.MountPoint, s.contentDir)
	if err != nil {
		logging.Warn("Drives", "probing content on %s: %v", v.MountPoint, err)
	}
	info.Channels = channels

	info.Writable = !v.ReadOnly && s.writable(v.MountPoint)

	space, err := s.usage(ctx, v.MountPoint)
	if err != nil {
		logging.Debug("Drives", "no usage for %s: %v", v.MountPoint, err)
	} else {
		info.Space = space
	}
	return info
}

// driveID prefers the filesystem UUID, which survives remounts.
func driveID(v Volume) string {
	if v.UUID != "" {
		return v.UUID
	}
	return v.Device
}

func driveName(v Volume) string {
	if v.Label != "" {
		return v.Label
	}
	if v.Removable {
		return "External Drive"
	}
	return "Local Drive"
}

// ToSelection converts probed drives into dialog candidates.
func ToSelection(infos []DriveInfo) []selection.Drive {
	out := make([]selection.Drive, 0, len(infos))
	for _, d := range infos {
		out = append(out, selection.Drive{
			ID:         d.ID,
			Name:       d.Name,
			Writable:   d.Writable,
			Channels:   d.ChannelIDs(),
			MountPoint: d.MountPoint,
			FreeBytes:  d.Space.Free,
			TotalBytes: d.Space.Total,
		})
	}
	return out
}
