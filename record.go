package treesort

import (
	"bytes"
	"sort"
)

const (
	// RecordSize is the fixed width of every record in the input file.
	RecordSize = 64

	// KeyLength is the width of the key prefix that orders records.
	// Keys compare byte-wise as unsigned values.
	KeyLength = 8
)

// CompareKeys compares the key prefixes of two records.
// Both slices must be at least KeyLength bytes long.
func CompareKeys(a, b []byte) int {
	return bytes.Compare(a[:KeyLength], b[:KeyLength])
}

// recordCount returns the number of whole records in n bytes.
func recordCount(n int64) int64 {
	return n / RecordSize
}

// wholeRecords trims b to its whole-record prefix. The trailing partial
// record (only possible at the end of the file) is never moved.
func wholeRecords(b []byte) []byte {
	return b[:len(b)-len(b)%RecordSize]
}

// recordSlice adapts a record-aligned byte slice to sort.Interface.
// Swap goes through a fixed-size temporary so sorting never allocates.
type recordSlice []byte

var _ sort.Interface = recordSlice(nil)

func (r recordSlice) Len() int { return len(r) / RecordSize }

func (r recordSlice) Less(i, j int) bool {
	return CompareKeys(r[i*RecordSize:], r[j*RecordSize:]) < 0
}

func (r recordSlice) Swap(i, j int) {
	var tmp [RecordSize]byte
	a := r[i*RecordSize : (i+1)*RecordSize]
	b := r[j*RecordSize : (j+1)*RecordSize]
	copy(tmp[:], a)
	copy(a, b)
	copy(b, tmp[:])
}

// record returns the i-th record.
func (r recordSlice) record(i int) []byte {
	return r[i*RecordSize : (i+1)*RecordSize]
}
