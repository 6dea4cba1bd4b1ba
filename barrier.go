package treesort

import (
	"context"
	"sync"
	"time"
)

// latch is a one-shot start gate. Workers block in wait until the
// controller calls open; it never closes again.
type latch struct {
	ch       chan struct{}
	once     sync.Once
	openedAt time.Time
}

func newLatch() *latch {
	return &latch{ch: make(chan struct{})}
}

// open releases every waiter. Only the first call has any effect.
func (l *latch) open() {
	l.once.Do(func() {
		l.openedAt = time.Now()
		close(l.ch)
	})
}

// wait blocks until the latch opens or ctx is done.
func (l *latch) wait(ctx context.Context) error {
	select {
	case <-l.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
