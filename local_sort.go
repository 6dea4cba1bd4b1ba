package treesort

import "sort"

// sortBlock sorts the whole records of b in place by key.
// The sort is not stable: records with equal keys may be reordered.
// Blocks are disjoint, so concurrent calls on different blocks need no locking.
func sortBlock(b []byte) {
	sort.Sort(recordSlice(wholeRecords(b)))
}
