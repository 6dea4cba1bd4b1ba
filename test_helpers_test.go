package treesort

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/rs/zerolog"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

// testOptions returns options that make small inputs split into many
// blocks: one-record pages and a fixed processor count.
func testOptions(t testing.TB, processors int, extra ...Option) []Option {
	t.Helper()
	opts := []Option{
		WithPageSize(RecordSize),
		WithProcessors(processors),
		WithLogger(zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.WarnLevel)),
	}
	return append(opts, extra...)
}

// randomRecords returns n records with independent random keys.
func randomRecords(rng *rand.Rand, n int) []byte {
	data := make([]byte, n*RecordSize)
	for i := range n {
		EncodeRecord(data[i*RecordSize:], rng.Uint64(), uint64(i))
	}
	return data
}

// recordsWithKeys builds one record per key, in the given order.
func recordsWithKeys(keys []uint64) []byte {
	data := make([]byte, len(keys)*RecordSize)
	for i, k := range keys {
		EncodeRecord(data[i*RecordSize:], k, uint64(i))
	}
	return data
}

// keysOf extracts the big-endian key of every whole record.
func keysOf(data []byte) []uint64 {
	recs := recordSlice(wholeRecords(data))
	keys := make([]uint64, recs.Len())
	for i := range keys {
		keys[i] = binary.BigEndian.Uint64(recs.record(i))
	}
	return keys
}

// referenceSort returns a sorted copy of data's records, stable on ties.
func referenceSort(data []byte) []byte {
	whole := wholeRecords(data)
	recs := make([][]byte, len(whole)/RecordSize)
	for i := range recs {
		recs[i] = whole[i*RecordSize : (i+1)*RecordSize]
	}
	slices.SortStableFunc(recs, func(a, b []byte) int { return CompareKeys(a, b) })
	out := make([]byte, 0, len(data))
	for _, r := range recs {
		out = append(out, r...)
	}
	return append(out, data[len(whole):]...)
}

// assertSorted fails the test if data is not in key order.
func assertSorted(t *testing.T, data []byte) {
	t.Helper()
	if err := Verify(data); err != nil {
		t.Fatalf("output not sorted: %v", err)
	}
}

// assertSameKeys fails the test if got and want hold different key sequences.
func assertSameKeys(t *testing.T, got, want []byte) {
	t.Helper()
	gk, wk := keysOf(got), keysOf(want)
	if !slices.Equal(gk, wk) {
		for i := range min(len(gk), len(wk)) {
			if gk[i] != wk[i] {
				t.Fatalf("key mismatch at record %d: got %016x, want %016x", i, gk[i], wk[i])
			}
		}
		t.Fatalf("record count mismatch: got %d, want %d", len(gk), len(wk))
	}
}

// hasDuplicateKeys reports whether any two records share a key.
func hasDuplicateKeys(data []byte) bool {
	keys := keysOf(data)
	slices.Sort(keys)
	for i := 1; i < len(keys); i++ {
		if keys[i] == keys[i-1] {
			return true
		}
	}
	return false
}

