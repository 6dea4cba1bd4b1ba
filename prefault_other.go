//go:build !linux

package treesort

import "golang.org/x/sys/unix"

// prefaultRegion hints that the region is about to be used.
// MADV_POPULATE_WRITE is Linux 5.14+ specific.
func prefaultRegion(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, unix.MADV_WILLNEED)
}
