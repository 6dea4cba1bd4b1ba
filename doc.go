// Package treesort sorts large files of fixed-width records in place, in
// parallel, using a memory-mapped view of the file and a binary merge tree
// of worker goroutines.
//
// Every record is RecordSize (64) bytes; the first KeyLength (8) bytes are
// its key, compared as unsigned bytes. The whole file must fit in the
// address space.
//
// # Basic Usage
//
// Sorting a file:
//
//	stats, err := treesort.SortFile(ctx, "records.dat")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("sorted %d records in %v\n", stats.Records, stats.Elapsed)
//
// Forcing a worker count (must be a power of two):
//
//	stats, err := treesort.SortFile(ctx, "records.dat", treesort.WithThreads(8))
//
// Checking the result:
//
//	if err := treesort.VerifyFile("records.dat"); err != nil {
//	    log.Fatal(err)
//	}
//
// # How a run works
//
//  1. Partition splits the file into one block per worker. Blocks are
//     aligned to both the page size and RecordSize.
//  2. All worker goroutines are started and park on a one-shot latch, which
//     opens once the last one exists.
//  3. Each worker sorts its own block in place.
//  4. Odd-indexed workers stop. Even-indexed workers wait for the sibling
//     at index+1, +2, +4, ... and merge its sorted block into their own,
//     using two anonymous-mmap scratch buffers per merge.
//  5. Worker 0 finishes last, owning the whole sorted file.
//
// # Package Structure
//
//   - Public API: file.go (SortFile, SortMapped, SortBytes), partition.go (Partition)
//   - Configuration: options.go (Option, With* functions)
//   - Run: run.go (runContext, workers), barrier.go (latch), schedule.go (merge tree)
//   - Sorting: record.go (record layout, CompareKeys), local_sort.go, merge.go, scratch.go
//   - Checks: verify.go (Verify, Fingerprint, Digest), generate.go (GenerateFile)
//   - Platform: fallocate_*.go, fadvise_*.go, prefault_*.go (OS-specific hints)
package treesort
