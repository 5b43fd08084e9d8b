// Package drives provides drive detection and content probing.
// This module defines the core types used throughout the drives package.
package drives

import (
	"bytes"
	"strconv"
)

// Volume is one mounted filesystem reported by a Lister.
type Volume struct {
	Device     string // Block device path (e.g., "/dev/sdb1")
	MountPoint string // Where the filesystem is mounted
	Label      string // Volume label, may be empty
	UUID       string // Filesystem UUID, may be empty
	Filesystem string // Filesystem type (e.g., "vfat", "ext4")
	Size       uint64 // Size in bytes, 0 when unknown
	ReadOnly   bool   // Mounted or flagged read-only
	Removable  bool   // Hot-pluggable device
}

// ChannelInfo describes one channel database found on a drive.
type ChannelInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version int    `json:"version"`
}

// Space is the capacity of a mounted filesystem.
type Space struct {
	Free  uint64
	Total uint64
}

// DriveInfo is a probed volume: its identity, whether it accepts writes, which
// channels it holds and how much room is left.
type DriveInfo struct {
	Volume
	ID       string
	Name     string
	Writable bool
	Channels []ChannelInfo
	Space    Space
}

// ChannelIDs returns the ids of the drive's channels, in probe order.
func (d DriveInfo) ChannelIDs() []string {
	ids := make([]string, 0, len(d.Channels))
	for _, c := range d.Channels {
		ids = append(ids, c.ID)
	}
	return ids
}

// DrivesLoaded is a Bubble Tea message containing the results of drive enumeration
// for one dialog activation.
type DrivesLoaded struct {
	Token  uint64
	Drives []DriveInfo
}

// DiscoveryFailed is a Bubble Tea message reporting that enumeration failed.
type DiscoveryFailed struct {
	Token uint64
	Err   error
}

// DrivesChanged is a Bubble Tea message sent when a mount root changed.
type DrivesChanged struct{}

// LsblkDevice represents a block device from lsblk JSON output.
type LsblkDevice struct {
	Name       string        `json:"name"`
	Size       lsblkNumber   `json:"size"`
	Label      string        `json:"label"`
	UUID       string        `json:"uuid"`
	Fstype     string        `json:"fstype"`
	Mountpoint string        `json:"mountpoint"`
	Type       string        `json:"type"`
	Hotplug    lsblkBool     `json:"hotplug"`
	ReadOnly   lsblkBool     `json:"ro"`
	Children   []LsblkDevice `json:"children"`
}

// LsblkOutput represents the root JSON structure from lsblk command.
type LsblkOutput struct {
	BlockDevices []LsblkDevice `json:"blockdevices"`
}

// lsblkBool accepts true/false as well as the "0"/"1" strings older util-linux
// releases print.
type lsblkBool bool

func (b *lsblkBool) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	switch string(data) {
	case "true", "1":
		*b = true
	default:
		*b = false
	}
	return nil
}

// lsblkNumber accepts sizes printed either as numbers or as strings.
type lsblkNumber uint64

func (n *lsblkNumber) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseUint(string(bytes.Trim(data, `"`)), 10, 64)
	if err != nil {
		// null, "" or a human-readable size: unknown
		v = 0
	}
	*n = lsblkNumber(v)
	return nil
}
