package treesort

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/gofrs/flock"
	streamerrors "github.com/tamirms/treesort/errors"
)

// SortFile sorts the records of the file at path in place.
//
// The file is opened read/write, locked for the duration of the run (see
// WithoutLock), memory-mapped, sorted, flushed and unmapped.
func SortFile(ctx context.Context, path string, opts ...Option) (*Stats, error) {
	cfg := newSortConfig(opts)

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	if cfg.lock {
		// Lock after open so a missing path is never created by flock.
		lock := flock.New(path)
		locked, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("lock input file: %w", err)
		}
		if !locked {
			return nil, fmt.Errorf("%w: %s", streamerrors.ErrFileLocked, path)
		}
		defer lock.Unlock()
	}

	return sortMapped(ctx, f, cfg)
}

// SortMapped sorts an already open file in place. f must be opened
// read/write. The caller keeps ownership of f.
func SortMapped(ctx context.Context, f *os.File, opts ...Option) (*Stats, error) {
	return sortMapped(ctx, f, newSortConfig(opts))
}

func sortMapped(ctx context.Context, f *os.File, cfg *sortConfig) (stats *Stats, err error) {
	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat input file: %w", err)
	}
	if stat.Size() == 0 {
		return nil, streamerrors.ErrEmptyFile
	}

	mm, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", streamerrors.ErrMapFailed, err)
	}
	defer func() {
		if uerr := mm.Unmap(); uerr != nil {
			err = errors.Join(err, fmt.Errorf("unmap input file: %w", uerr))
		}
	}()

	// Fault every page in before the workers start so the measured run
	// covers sorting and merging only.
	prefaultRegion(mm)

	stats, err = sortRegion(ctx, []byte(mm), cfg)
	if err != nil {
		return nil, err
	}
	if err := mm.Flush(); err != nil {
		return nil, fmt.Errorf("flush input file: %w", err)
	}
	return stats, nil
}

// SortBytes sorts an in-memory region of records in place. No file is
// opened or mapped; useful for data that is already resident.
func SortBytes(ctx context.Context, data []byte, opts ...Option) (*Stats, error) {
	return sortRegion(ctx, data, newSortConfig(opts))
}

func sortRegion(ctx context.Context, region []byte, cfg *sortConfig) (*Stats, error) {
	rc, err := newRunContext(region, cfg)
	if err != nil {
		return nil, err
	}
	return rc.run(ctx)
}
