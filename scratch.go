package treesort

import (
	"fmt"

	streamerrors "github.com/tamirms/treesort/errors"
	"golang.org/x/sys/unix"
)

// allocScratch maps n bytes of anonymous private memory for one side of a
// merge. The buffer lives outside the Go heap and must be released with
// freeScratch. A zero-length request returns nil.
func allocScratch(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	b, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes: %w", streamerrors.ErrScratchAlloc, n, err)
	}
	// Read front to back exactly once during the merge.
	_ = unix.Madvise(b, unix.MADV_SEQUENTIAL)
	return b, nil
}

// freeScratch unmaps a buffer from allocScratch. Safe on nil.
func freeScratch(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if err := unix.Munmap(b); err != nil {
		return fmt.Errorf("munmap scratch: %w", err)
	}
	return nil
}
