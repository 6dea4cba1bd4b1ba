// Gen writes a file of 64-byte records with pseudo-random 8-byte keys, as
// input for treesort benchmarks.
//
// Usage:
//
//	go run ./cmd/gen -n 16000000 -seed 7 records.dat
//
// Flags:
//
//	-n      Number of records (default: 1,000,000)
//	-seed   Key seed; the same n and seed produce the same file (default: 1)
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tamirms/treesort"
)

func main() {
	n := flag.Int64("n", 1_000_000, "number of records")
	seed := flag.Uint("seed", 1, "key seed")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-n records] [-seed seed] <file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	if flag.NArg() != 1 || *n <= 0 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	start := time.Now()
	if err := treesort.GenerateFile(path, *n, uint32(*seed)); err != nil {
		log.Error().Err(err).Str("file", path).Msg("generate failed")
		os.Exit(2)
	}
	log.Info().
		Str("file", path).
		Int64("records", *n).
		Int64("bytes", *n*treesort.RecordSize).
		Dur("elapsed", time.Since(start)).
		Msg("generated")
}
