package treesort

import (
	"errors"
	"fmt"

	streamerrors "github.com/tamirms/treesort/errors"
)

// mergeAdjacent merges two adjacent sorted ranges, span[:split] (A) and
// span[split:] (B), into a single sorted range occupying span.
//
// Both sides are first copied into scratch buffers so the merge can write
// straight back over the sources. On equal keys the record from A goes
// first. Only whole records move: a trailing partial record at the end of B
// stays where it is. A must be a whole number of records unless B holds no
// whole record, in which case nothing moves.
//
// Returns the number of bytes written; anything other than the whole-record
// size of A plus B is reported as ErrShortMerge.
func mergeAdjacent(span []byte, split int) (written int, err error) {
	if split < 0 || split > len(span) {
		return 0, fmt.Errorf("%w: split %d in span of %d bytes", streamerrors.ErrNotAdjacent, split, len(span))
	}
	a := span[:split]
	b := wholeRecords(span[split:])
	if len(b) == 0 {
		// Nothing to move: A is already sorted in place.
		return 0, nil
	}
	if split%RecordSize != 0 {
		return 0, fmt.Errorf("%w: split %d is not record aligned", streamerrors.ErrNotAdjacent, split)
	}
	want := len(a) + len(b)

	sa, err := allocScratch(len(a))
	if err != nil {
		return 0, err
	}
	defer func() { err = errors.Join(err, freeScratch(sa)) }()

	sb, err := allocScratch(len(b))
	if err != nil {
		return 0, err
	}
	defer func() { err = errors.Join(err, freeScratch(sb)) }()

	copy(sa, a)
	copy(sb, b)

	written = mergeRecords(span[:want], sa, sb)
	if written != want {
		return written, fmt.Errorf("%w: wrote %d of %d bytes", streamerrors.ErrShortMerge, written, want)
	}
	return written, nil
}

// mergeRecords merges the sorted records of a and b into dst and returns the
// number of bytes written. dst must not overlap a or b.
func mergeRecords(dst, a, b []byte) int {
	n := 0
	for len(a) >= RecordSize && len(b) >= RecordSize {
		if CompareKeys(b, a) < 0 {
			n += copy(dst[n:], b[:RecordSize])
			b = b[RecordSize:]
		} else {
			n += copy(dst[n:], a[:RecordSize])
			a = a[RecordSize:]
		}
	}
	n += copy(dst[n:], a)
	n += copy(dst[n:], b)
	return n
}
