package treesort

import (
	"fmt"

	streamerrors "github.com/tamirms/treesort/errors"
	intbits "github.com/tamirms/treesort/internal/bits"
)

// Block is one worker's assignment: a contiguous byte range of the file.
//
// Blocks returned by Partition are ordered by Index, contiguous and
// non-overlapping, and their lengths sum to the file size. Every block
// boundary except the end of the file is aligned to both the page size and
// RecordSize, so only the block reaching the end of the file can end in a
// partial record. Trailing blocks may be empty when the aligned block length
// overshoots the file.
type Block struct {
	Index  int
	Offset int64
	Length int64
}

// End returns the offset one past the last byte of the block.
func (b Block) End() int64 { return b.Offset + b.Length }

// Records returns the number of whole records in the block.
func (b Block) Records() int64 { return recordCount(b.Length) }

// Partition computes the worker count and block table for a file of
// fileSize bytes. Options supply page size, processor count and an optional
// thread override; unset values come from the running system.
func Partition(fileSize int64, opts ...Option) ([]Block, error) {
	return partition(fileSize, newSortConfig(opts))
}

func partition(fileSize int64, cfg *sortConfig) ([]Block, error) {
	if fileSize <= 0 {
		return nil, streamerrors.ErrEmptyFile
	}
	if cfg.threadsSet && !intbits.IsPowerOfTwo(cfg.threads) {
		return nil, fmt.Errorf("%w: got %d", streamerrors.ErrThreadsNotPowerOfTwo, cfg.threads)
	}
	if cfg.pageSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", streamerrors.ErrInvalidPageSize, cfg.pageSize)
	}
	if cfg.processors <= 0 {
		return nil, fmt.Errorf("%w: got %d", streamerrors.ErrInvalidProcessors, cfg.processors)
	}

	pageSize := int64(cfg.pageSize)
	numPages := intbits.CeilDiv(fileSize, pageSize)

	var workers int
	if numPages < int64(cfg.processors) {
		// Never more workers than pages to hand out.
		workers = int(numPages)
		if cfg.threadsSet && cfg.threads != workers {
			cfg.logger.Warn().
				Int("requested", cfg.threads).
				Int("workers", workers).
				Int64("pages", numPages).
				Msg("thread override ignored: file has fewer pages than processors")
		}
	} else {
		workers = cfg.processors
		if cfg.threadsSet {
			workers = cfg.threads
		}
	}

	unit := intbits.LCM(pageSize, RecordSize)
	blockLength := intbits.AlignUp(intbits.CeilDiv(fileSize, int64(workers)), unit)

	blocks := make([]Block, workers)
	var offset int64
	for i := range blocks {
		length := min(blockLength, fileSize-offset)
		if i == workers-1 {
			length = fileSize - offset
		}
		blocks[i] = Block{Index: i, Offset: offset, Length: length}
		offset += length
	}

	cfg.logger.Debug().
		Int64("file_size", fileSize).
		Int("page_size", cfg.pageSize).
		Int("processors", cfg.processors).
		Int("workers", workers).
		Int64("block_length", blockLength).
		Msg("partitioned input")

	return blocks, nil
}
