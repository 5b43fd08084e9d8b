// Package drives provides drive detection and content probing.
// This module handles drive enumeration using lsblk.
package drives

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Lister enumerates mounted filesystems that may hold or receive content.
type Lister interface {
	List(ctx context.Context) ([]Volume, error)
}

// CommandRunner runs an external command and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

var lsblkArgs = []string{"-J", "-b", "-o", "NAME,SIZE,LABEL,UUID,FSTYPE,MOUNTPOINT,TYPE,HOTPLUG,RO"}

// LsblkLister lists external filesystems from lsblk JSON output.
type LsblkLister struct {
	MountRoots []string      // Mount locations that mark a device as external
	Run        CommandRunner // nil runs lsblk
}

// List scans block devices and returns the mounted filesystems of external disks.
// Disks holding the root filesystem are never returned.
func (l *LsblkLister) List(ctx context.Context) ([]Volume, error) {
	run := l.Run
	if run == nil {
		run = execRunner
	}
	out, err := run(ctx, "lsblk", lsblkArgs...)
	if err != nil {
		return nil, fmt.Errorf("run lsblk: %w", err)
	}

	var lsblkOutput LsblkOutput
	if err := json.Unmarshal(out, &lsblkOutput); err != nil {
		return nil, fmt.Errorf("parse lsblk output: %w", err)
	}

	// Pre-allocate with reasonable capacity to avoid repeated allocations
	volumes := make([]Volume, 0, 8)
	for i := range lsblkOutput.BlockDevices {
		device := &lsblkOutput.BlockDevices[i]
		if device.Type != "disk" {
			continue
		}
		if isSystemDrive(device) {
			continue
		}
		if !isExternalDrive(device, l.MountRoots) {
			continue
		}
		collectMountedFilesystems(device, bool(device.ReadOnly), bool(device.Hotplug), &volumes)
	}
	return volumes, nil
}

// isSystemDrive checks if a device contains the root filesystem (safety check).
func isSystemDrive(device *LsblkDevice) bool {
	if device.Mountpoint == "/" {
		return true
	}
	for i := range device.Children {
		if isSystemDrive(&device.Children[i]) {
			return true
		}
	}
	return false
}

// isExternalDrive determines if a device is external based on multiple criteria.
func isExternalDrive(device *LsblkDevice, roots []string) bool {
	// Criteria 1: Traditional hotplug detection
	if device.Hotplug {
		return true
	}

	// Criteria 2: Device naming pattern (sd* devices are typically external)
	if strings.HasPrefix(strings.ToLower(device.Name), "sd") {
		return true
	}

	// Criteria 3: Check mount locations (single pass through hierarchy)
	return hasExternalMountPoint(device, roots)
}

func hasExternalMountPoint(device *LsblkDevice, roots []string) bool {
	if device.Mountpoint != "" && UnderMountRoot(device.Mountpoint, roots) {
		return true
	}
	for i := range device.Children {
		if hasExternalMountPoint(&device.Children[i], roots) {
			return true
		}
	}
	return false
}

// UnderMountRoot reports whether mountPoint is one of roots or lies below one.
func UnderMountRoot(mountPoint string, roots []string) bool {
	mountPoint = filepath.Clean(mountPoint)
	for _, root := range roots {
		root = filepath.Clean(root)
		if mountPoint == root || strings.HasPrefix(mountPoint, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// collectMountedFilesystems walks the device tree, inheriting read-only and
// hotplug flags from the parent disk.
func collectMountedFilesystems(device *LsblkDevice, readOnly, removable bool, volumes *[]Volume) {
	readOnly = readOnly || bool(device.ReadOnly)
	if device.Fstype != "" && device.Mountpoint != "" && device.Mountpoint != "[SWAP]" {
		*volumes = append(*volumes, Volume{
			Device:     "/dev/" + device.Name,
			MountPoint: device.Mountpoint,
			Label:      device.Label,
			UUID:       device.UUID,
			Filesystem: device.Fstype,
			Size:       uint64(device.Size),
			ReadOnly:   readOnly,
			Removable:  removable,
		})
	}
	for i := range device.Children {
		collectMountedFilesystems(&device.Children[i], readOnly, removable, volumes)
	}
}
