// Treesort sorts a file of 64-byte records in place by their 8-byte key
// prefix, using one worker per processor and a binary merge tree.
//
// Usage:
//
//	treesort [-v] [-t threads] [-r repeat] <file>
//
// Flags:
//
//	-v   Verbose: debug logging, plus order and multiset checks after each run
//	-t   Worker count override; must be a power of two
//	-r   Number of times to sort the file, for benchmarking (default: 1)
//
// Exit codes:
//
//	1  usage            6  other resource failure
//	2  cannot open      8  worker creation failed
//	4  empty file       9  flush/unmap or unclassified failure
//	5  cannot map       10 bad thread override
//	                    11 merge or verification failure
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tamirms/treesort"
	streamerrors "github.com/tamirms/treesort/errors"
)

func main() {
	verbose := flag.Bool("v", false, "verbose output and post-run verification")
	threads := flag.Int("t", 0, "worker count override (power of two)")
	repeat := flag.Int("r", 1, "number of times to sort the file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-v] [-t threads] [-r repeat] <file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()
	log.Logger = logger

	if flag.NArg() != 1 || *repeat < 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	opts := []treesort.Option{treesort.WithLogger(logger)}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			opts = append(opts, treesort.WithThreads(*threads))
		}
	})

	if err := run(context.Background(), path, *repeat, *verbose, opts); err != nil {
		log.Error().Err(err).Str("file", path).Msg("sort failed")
		os.Exit(exitCode(err))
	}
}

func run(ctx context.Context, path string, repeat int, verbose bool, opts []treesort.Option) error {
	var total, best time.Duration
	for i := range repeat {
		var before treesort.RecordFingerprint
		if verbose {
			fp, err := treesort.FingerprintFile(path)
			if err != nil {
				return err
			}
			before = fp
		}

		stats, err := treesort.SortFile(ctx, path, opts...)
		if err != nil {
			return err
		}
		total += stats.Elapsed
		if i == 0 || stats.Elapsed < best {
			best = stats.Elapsed
		}

		log.Info().
			Int("run", i+1).
			Int("workers", stats.Workers).
			Int64("records", stats.Records).
			Int("merges", stats.Merges).
			Dur("elapsed", stats.Elapsed).
			Float64("mrec_per_sec", stats.RecordsPerSecond()/1e6).
			Msg("run complete")

		if verbose {
			for _, b := range stats.Blocks {
				log.Debug().
					Int("block", b.Index).
					Int64("offset", b.Offset).
					Int64("length", b.Length).
					Msg("initial block")
			}
			if err := checkFile(path, before); err != nil {
				return err
			}
		}
	}

	if repeat > 1 {
		log.Info().
			Int("runs", repeat).
			Dur("mean", total/time.Duration(repeat)).
			Dur("best", best).
			Msg("benchmark summary")
	}
	return nil
}

// checkFile re-reads the sorted file: keys must be ordered and the record
// multiset must match the one taken before the run.
func checkFile(path string, before treesort.RecordFingerprint) error {
	if err := treesort.VerifyFile(path); err != nil {
		return err
	}
	after, err := treesort.FingerprintFile(path)
	if err != nil {
		return err
	}
	if after != before {
		return fmt.Errorf("%w: %d records before, %d after",
			streamerrors.ErrFingerprintMismatch, before.Records, after.Records)
	}
	digest, err := treesort.DigestFile(path)
	if err != nil {
		return err
	}
	log.Debug().Str("digest", fmt.Sprintf("%016x", digest)).Msg("verified sorted output")
	return nil
}

func exitCode(err error) int {
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, streamerrors.ErrEmptyFile):
		return 4
	case errors.Is(err, streamerrors.ErrThreadsNotPowerOfTwo),
		errors.Is(err, streamerrors.ErrConfiguration):
		return 10
	case errors.Is(err, streamerrors.ErrMapFailed):
		return 5
	case errors.Is(err, streamerrors.ErrResource):
		return 6
	case errors.Is(err, streamerrors.ErrThreadCreation):
		return 8
	case errors.Is(err, streamerrors.ErrMergeConsistency),
		errors.Is(err, streamerrors.ErrSiblingFailed),
		errors.Is(err, streamerrors.ErrNotSorted),
		errors.Is(err, streamerrors.ErrFingerprintMismatch):
		return 11
	case errors.As(err, &pathErr):
		return 2
	default:
		return 9
	}
}
