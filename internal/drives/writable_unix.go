//go:build !windows

package drives

import "golang.org/x/sys/unix"

// isWritable reports whether the current user may write to path.
func isWritable(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}
