//go:build linux

package treesort

import (
	"os"

	"golang.org/x/sys/unix"
)

// reserveFile sizes f to size bytes and reserves its disk blocks, so writes
// through a mapping of a generated file cannot SIGBUS on a full disk.
// Filesystems without fallocate (NFS, some FUSE mounts) only get the size.
func reserveFile(f *os.File, size int64) error {
	fd := int(f.Fd())
	_ = unix.Fallocate(fd, 0, 0, size)
	// fallocate with mode 0 extends the file, but a pre-existing longer
	// file must still be cut back to size.
	return unix.Ftruncate(fd, size)
}
