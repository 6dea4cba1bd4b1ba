// Package errors defines all exported error sentinels for the treesort library.
//
// Every failure belongs to one of four kinds (ErrConfiguration, ErrResource,
// ErrThreadCreation, ErrMergeConsistency). Specific sentinels wrap their kind,
// so errors.Is matches either the specific error or its kind.
package errors

import (
	"errors"
	"fmt"
)

// Error kinds. All of them are fatal to a run.
var (
	ErrConfiguration    = errors.New("treesort: configuration error")
	ErrResource         = errors.New("treesort: resource error")
	ErrThreadCreation   = errors.New("treesort: worker creation failed")
	ErrMergeConsistency = errors.New("treesort: merge consistency error")
)

// Configuration errors
var (
	ErrEmptyFile            = fmt.Errorf("%w: input file is empty", ErrConfiguration)
	ErrThreadsNotPowerOfTwo = fmt.Errorf("%w: thread count must be a power of two", ErrConfiguration)
	ErrInvalidPageSize      = fmt.Errorf("%w: page size must be positive", ErrConfiguration)
	ErrInvalidProcessors    = fmt.Errorf("%w: processor count must be positive", ErrConfiguration)
)

// Resource errors
var (
	ErrMapFailed    = fmt.Errorf("%w: cannot map input file", ErrResource)
	ErrScratchAlloc = fmt.Errorf("%w: cannot allocate merge scratch buffer", ErrResource)
	ErrFileLocked   = fmt.Errorf("%w: input file is locked by another run", ErrResource)
)

// Merge errors
var (
	ErrShortMerge  = fmt.Errorf("%w: merged byte count mismatch", ErrMergeConsistency)
	ErrNotAdjacent = fmt.Errorf("%w: merge ranges are not adjacent", ErrMergeConsistency)
)

// ErrSiblingFailed is returned by a master whose sibling exited with an error.
// The sibling's own error is reported alongside it.
var ErrSiblingFailed = errors.New("treesort: sibling worker failed")

// Verification errors
var (
	ErrNotSorted           = errors.New("treesort: records are not sorted")
	ErrFingerprintMismatch = errors.New("treesort: record multiset changed during sort")
)
