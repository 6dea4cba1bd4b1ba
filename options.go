package treesort

import (
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// Option is a functional option for configuring a sort run.
type Option func(*sortConfig)

type sortConfig struct {
	threads    int
	threadsSet bool // true when WithThreads was given, even with an invalid value
	pageSize   int
	processors int
	logger     zerolog.Logger
	lock       bool // take an exclusive flock on the input for the run
}

func defaultSortConfig() *sortConfig {
	return &sortConfig{
		pageSize:   unix.Getpagesize(),
		processors: runtime.NumCPU(),
		logger:     zerolog.Nop(),
		lock:       true,
	}
}

func newSortConfig(opts []Option) *sortConfig {
	cfg := defaultSortConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithThreads overrides the worker count. n must be a power of two.
// The override is ignored (with a warning) when the file has fewer pages
// than there are processors.
func WithThreads(n int) Option {
	return func(c *sortConfig) {
		c.threads = n
		c.threadsSet = true
	}
}

// WithPageSize overrides the OS page size used to align blocks.
func WithPageSize(size int) Option {
	return func(c *sortConfig) {
		c.pageSize = size
	}
}

// WithProcessors overrides the processor count used as the default
// worker count.
func WithProcessors(n int) Option {
	return func(c *sortConfig) {
		c.processors = n
	}
}

// WithLogger sets the logger for partition, merge and run events.
// Default is a disabled logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *sortConfig) {
		c.logger = l
	}
}

// WithoutLock disables the exclusive advisory lock SortFile holds on the
// input file for the run.
func WithoutLock() Option {
	return func(c *sortConfig) {
		c.lock = false
	}
}
