//go:build windows

package drives

import "os"

// isWritable reports whether a file can be created in path.
func isWritable(path string) bool {
	f, err := os.CreateTemp(path, ".drivesync-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
