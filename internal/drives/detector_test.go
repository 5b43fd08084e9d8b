package drives

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lsblkFixture = `{
  "blockdevices": [
    {"name": "nvme0n1", "size": 512110190592, "type": "disk", "hotplug": false, "ro": false,
     "children": [
       {"name": "nvme0n1p1", "size": 536870912, "fstype": "vfat", "mountpoint": "/boot", "uuid": "BOOT", "type": "part"},
       {"name": "nvme0n1p2", "size": 511573319680, "fstype": "ext4", "mountpoint": "/", "uuid": "ROOT", "type": "part"}
     ]},
    {"name": "sdb", "size": "62109253632", "type": "disk", "hotplug": "1", "ro": "0",
     "children": [
       {"name": "sdb1", "size": "62108205056", "fstype": "exfat", "label": "KOLIBRI", "uuid": "1A2B-3C4D",
        "mountpoint": "/media/admin/KOLIBRI", "type": "part"},
       {"name": "sdb2", "size": "1048576", "fstype": "", "mountpoint": null, "type": "part"}
     ]},
    {"name": "sdc", "size": 8004304896, "type": "disk", "hotplug": true, "ro": true,
     "children": [
       {"name": "sdc1", "size": 8003256320, "fstype": "iso9660", "label": "DVD", "uuid": "2024-01-01",
        "mountpoint": "/run/media/admin/DVD", "type": "part"}
     ]},
    {"name": "sr0", "size": 1073741312, "type": "rom", "hotplug": true, "mountpoint": "/media/cdrom"},
    {"name": "vda", "size": 10737418240, "type": "disk", "hotplug": false,
     "children": [
       {"name": "vda1", "fstype": "swap", "mountpoint": "[SWAP]", "type": "part"},
       {"name": "vda2", "fstype": "xfs", "uuid": "DATA", "mountpoint": "/mnt/data", "type": "part"}
     ]},
    {"name": "vdb", "size": 10737418240, "type": "disk", "hotplug": false,
     "children": [
       {"name": "vdb1", "fstype": "xfs", "uuid": "SRV", "mountpoint": "/srv", "type": "part"}
     ]}
  ]
}`

func fixtureRunner(out string, err error) CommandRunner {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte(out), err
	}
}

func TestLsblkLister_List(t *testing.T) {
	l := &LsblkLister{
		MountRoots: []string{"/media", "/run/media", "/mnt"},
		Run:        fixtureRunner(lsblkFixture, nil),
	}

	volumes, err := l.List(context.Background())
	require.NoError(t, err)
	require.Len(t, volumes, 3)

	assert.Equal(t, Volume{
		Device:     "/dev/sdb1",
		MountPoint: "/media/admin/KOLIBRI",
		Label:      "KOLIBRI",
		UUID:       "1A2B-3C4D",
		Filesystem: "exfat",
		Size:       62108205056,
		ReadOnly:   false,
		Removable:  true,
	}, volumes[0])

	assert.Equal(t, "/dev/sdc1", volumes[1].Device)
	assert.True(t, volumes[1].ReadOnly, "read-only flag is inherited from the disk")

	assert.Equal(t, "/dev/vda2", volumes[2].Device, "non-hotplug disk mounted under a root counts as external")
	assert.False(t, volumes[2].Removable)
}

func TestLsblkLister_PassesArgs(t *testing.T) {
	var gotName string
	var gotArgs []string
	l := &LsblkLister{Run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		return []byte(`{"blockdevices": []}`), nil
	}}

	volumes, err := l.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, volumes)
	assert.Equal(t, "lsblk", gotName)
	assert.Contains(t, gotArgs, "-J")
	assert.Contains(t, gotArgs, "-b")
}

func TestLsblkLister_Errors(t *testing.T) {
	_, err := (&LsblkLister{Run: fixtureRunner("", errors.New("exec: lsblk not found"))}).List(context.Background())
	assert.ErrorContains(t, err, "lsblk not found")

	_, err = (&LsblkLister{Run: fixtureRunner("not json", nil)}).List(context.Background())
	assert.ErrorContains(t, err, "parse lsblk output")
}

func TestUnderMountRoot(t *testing.T) {
	roots := []string{"/media", "/run/media/"}
	assert.True(t, UnderMountRoot("/media/usb", roots))
	assert.True(t, UnderMountRoot("/run/media/admin/usb", roots))
	assert.True(t, UnderMountRoot("/media", roots))
	assert.False(t, UnderMountRoot("/mediafiles", roots))
	assert.False(t, UnderMountRoot("/home/admin", roots))
	assert.False(t, UnderMountRoot("/media/usb", nil))
}
