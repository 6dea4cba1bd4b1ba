package treesort

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/spaolacci/murmur3"
	streamerrors "github.com/tamirms/treesort/errors"
)

// EncodeRecord fills rec (RecordSize bytes) with the given big-endian key
// and a payload derived from seq. The payload carries seq in its first
// eight bytes so records stay distinguishable when keys collide.
func EncodeRecord(rec []byte, key, seq uint64) {
	_ = rec[RecordSize-1]
	binary.BigEndian.PutUint64(rec[0:KeyLength], key)
	binary.LittleEndian.PutUint64(rec[KeyLength:KeyLength+8], seq)
	for i := KeyLength + 8; i < RecordSize; i++ {
		rec[i] = byte(seq >> ((i % 8) * 8))
	}
}

// GeneratedKey returns the key of record i in a file produced by
// GenerateFile with the given seed.
func GeneratedKey(i uint64, seed uint32) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], i)
	return murmur3.Sum64WithSeed(buf[:], seed)
}

// GenerateFile writes a file of n records with pseudo-random keys derived
// from seed. Generation is deterministic: the same n and seed produce the
// same bytes.
func GenerateFile(path string, n int64, seed uint32) (err error) {
	if n <= 0 {
		return streamerrors.ErrEmptyFile
	}
	size := n * RecordSize

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	if err := reserveFile(f, size); err != nil {
		return fmt.Errorf("reserve %d bytes: %w", size, err)
	}

	mm, err := mmap.MapRegion(f, int(size), mmap.RDWR, 0, 0)
	if err != nil {
		return fmt.Errorf("%w: %w", streamerrors.ErrMapFailed, err)
	}
	prefaultRegion(mm)

	recs := recordSlice(mm)
	for i := range recs.Len() {
		seq := uint64(i)
		EncodeRecord(recs.record(i), GeneratedKey(seq, seed), seq)
	}

	if err := mm.Flush(); err != nil {
		return errors.Join(fmt.Errorf("flush: %w", err), mm.Unmap())
	}
	return mm.Unmap()
}
