//go:build !linux && !darwin

package treesort

import "os"

// reserveFile sizes f to size bytes. Disk blocks are not reserved on this
// platform.
func reserveFile(f *os.File, size int64) error {
	return f.Truncate(size)
}
