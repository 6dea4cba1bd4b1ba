//go:build linux

package treesort

import "golang.org/x/sys/unix"

// MADV_POPULATE_WRITE was added in Linux 5.14.
// On older kernels, madvise returns EINVAL which we ignore.
const madvPopulateWrite = 23

// prefaultRegion asks the kernel to fault in the pages of the region for
// writing, falling back to a read-ahead hint on older kernels.
func prefaultRegion(data []byte) {
	if len(data) == 0 {
		return
	}
	if err := unix.Madvise(data, madvPopulateWrite); err != nil {
		_ = unix.Madvise(data, unix.MADV_WILLNEED)
	}
}
