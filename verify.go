package treesort

import (
	"fmt"
	"math/bits"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"
	streamerrors "github.com/tamirms/treesort/errors"
	"github.com/zeebo/xxh3"
)

// Verify scans data once and checks that every adjacent pair of records is
// in key order. It returns ErrNotSorted naming the first inversion.
func Verify(data []byte) error {
	recs := recordSlice(wholeRecords(data))
	for i := 1; i < recs.Len(); i++ {
		prev, cur := recs.record(i-1), recs.record(i)
		if CompareKeys(prev, cur) > 0 {
			return fmt.Errorf("%w: record %d key %x precedes record %d key %x",
				streamerrors.ErrNotSorted, i-1, prev[:KeyLength], i, cur[:KeyLength])
		}
	}
	return nil
}

// VerifyFile maps the file at path read-only and runs Verify over it.
func VerifyFile(path string) error {
	return withReadOnlyMap(path, Verify)
}

// FingerprintFile returns the Fingerprint of the file at path.
func FingerprintFile(path string) (RecordFingerprint, error) {
	var fp RecordFingerprint
	err := withReadOnlyMap(path, func(data []byte) error {
		fp = Fingerprint(data)
		return nil
	})
	return fp, err
}

// DigestFile returns the Digest of the file at path.
func DigestFile(path string) (uint64, error) {
	var sum uint64
	err := withReadOnlyMap(path, func(data []byte) error {
		sum = Digest(data)
		return nil
	})
	return sum, err
}

// withReadOnlyMap maps path read-only for a single sequential scan.
// An empty file is passed to fn as a nil slice.
func withReadOnlyMap(path string, fn func([]byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}
	if stat.Size() == 0 {
		return fn(nil)
	}
	fadviseSequential(int(f.Fd()), 0, stat.Size())

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return fmt.Errorf("%w: %w", streamerrors.ErrMapFailed, err)
	}
	defer mm.Unmap()

	return fn(mm)
}

// RecordFingerprint is an order-independent hash of a record multiset.
// Two regions holding the same records in any order have equal
// fingerprints, so comparing the value before and after a sort shows the
// run only permuted records.
type RecordFingerprint struct {
	Hi, Lo  uint64
	Records int64
}

// Fingerprint sums the xxh3-128 hash of every whole record in data, plus
// the trailing partial record if any.
func Fingerprint(data []byte) RecordFingerprint {
	var fp RecordFingerprint
	add := func(rec []byte) {
		h := xxh3.Hash128(rec)
		var carry uint64
		fp.Lo, carry = bits.Add64(fp.Lo, h.Lo, 0)
		fp.Hi, _ = bits.Add64(fp.Hi, h.Hi, carry)
	}

	whole := wholeRecords(data)
	recs := recordSlice(whole)
	for i := range recs.Len() {
		add(recs.record(i))
	}
	if tail := data[len(whole):]; len(tail) > 0 {
		add(tail)
	}
	fp.Records = int64(recs.Len())
	return fp
}

// CheckFingerprint returns ErrFingerprintMismatch if data no longer holds
// the records summarized by want.
func CheckFingerprint(data []byte, want RecordFingerprint) error {
	if got := Fingerprint(data); got != want {
		return fmt.Errorf("%w: got %016x%016x over %d records, want %016x%016x over %d records",
			streamerrors.ErrFingerprintMismatch, got.Hi, got.Lo, got.Records, want.Hi, want.Lo, want.Records)
	}
	return nil
}

// Digest returns the order-dependent xxHash64 of data. Sorting the same
// input with distinct keys always yields the same digest.
func Digest(data []byte) uint64 {
	return xxhash.Sum64(data)
}
