package treesort

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	streamerrors "github.com/tamirms/treesort/errors"
	"golang.org/x/sync/errgroup"
)

// worker is one block's goroutine state. Only the worker itself writes
// block, view and err; a master reads a sibling's fields only after the
// sibling's done channel is closed.
type worker struct {
	block  Block
	view   []byte // capped at block.End(), so it cannot grow into a neighbour
	plan   mergePlan
	done   chan struct{}
	err    error
	merges int
}

// runContext owns everything a single sort run shares: the mapped region,
// the block table, the start latch and per-worker completion signals.
// It is created per run and never reused.
type runContext struct {
	cfg     *sortConfig
	region  []byte
	blocks  []Block // initial plan, read-only after construction
	workers []*worker
	start   *latch

	merges      atomic.Int64
	mergedBytes atomic.Int64
}

func newRunContext(region []byte, cfg *sortConfig) (*runContext, error) {
	blocks, err := partition(int64(len(region)), cfg)
	if err != nil {
		return nil, err
	}

	rc := &runContext{
		cfg:     cfg,
		region:  region,
		blocks:  blocks,
		workers: make([]*worker, len(blocks)),
		start:   newLatch(),
	}
	for i, b := range blocks {
		rc.workers[i] = &worker{
			block: b,
			view:  region[b.Offset:b.End():b.End()],
			plan:  newMergePlan(i, len(blocks)),
			done:  make(chan struct{}),
		}
	}
	return rc, nil
}

// run spawns one goroutine per block, releases them together and waits for
// worker 0, whose block spans the whole region once every merge is done.
func (rc *runContext) run(ctx context.Context) (*Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(rc.workers))
	for _, w := range rc.workers {
		if !g.TryGo(func() error { return rc.runWorker(gctx, w) }) {
			// Workers already spawned are parked on the latch; cancel
			// releases them before the group is drained.
			cancel()
			_ = g.Wait()
			return nil, fmt.Errorf("%w: worker %d of %d", streamerrors.ErrThreadCreation, w.block.Index, len(rc.workers))
		}
	}

	rc.start.open()
	root := rc.workers[0]
	<-root.done
	elapsed := time.Since(rc.start.openedAt)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if root.block.Length != int64(len(rc.region)) {
		return nil, fmt.Errorf("%w: root block covers %d of %d bytes",
			streamerrors.ErrShortMerge, root.block.Length, len(rc.region))
	}

	stats := &Stats{
		Workers:     len(rc.workers),
		Records:     recordCount(int64(len(rc.region))),
		Merges:      int(rc.merges.Load()),
		MergedBytes: rc.mergedBytes.Load(),
		Elapsed:     elapsed,
		Blocks:      rc.blocks,
	}
	rc.cfg.logger.Info().
		Int("workers", stats.Workers).
		Int64("records", stats.Records).
		Int("merges", stats.Merges).
		Dur("elapsed", stats.Elapsed).
		Msg("sort complete")
	return stats, nil
}

// runWorker sorts the worker's block and, for masters, absorbs siblings in
// tree order. done is closed on every exit path so waiting masters never
// hang on a failed sibling.
func (rc *runContext) runWorker(ctx context.Context, w *worker) (err error) {
	defer func() {
		w.err = err
		close(w.done)
	}()

	if err := rc.start.wait(ctx); err != nil {
		return err
	}

	sortBlock(w.view)
	if w.plan.role() == roleLeaf {
		return nil
	}

	for {
		idx, ok := w.plan.next()
		if !ok {
			return nil
		}
		sib := rc.workers[idx]
		select {
		case <-sib.done:
		case <-ctx.Done():
			return ctx.Err()
		}
		if sib.err != nil {
			return fmt.Errorf("%w: worker %d waiting on %d: %w", streamerrors.ErrSiblingFailed, w.block.Index, idx, sib.err)
		}
		if err := rc.absorb(w, sib); err != nil {
			return err
		}
		w.plan.advance()
	}
}

// absorb merges a finished sibling's block into the master's block.
func (rc *runContext) absorb(w, sib *worker) error {
	span, split, err := rc.grant(w.block, sib.block)
	if err != nil {
		return err
	}
	n, err := mergeAdjacent(span, split)
	if err != nil {
		return fmt.Errorf("worker %d absorbing %d: %w", w.block.Index, sib.block.Index, err)
	}

	w.block.Length += sib.block.Length
	w.view = span
	w.merges++
	rc.merges.Add(1)
	rc.mergedBytes.Add(int64(n))

	rc.cfg.logger.Debug().
		Int("master", w.block.Index).
		Int("sibling", sib.block.Index).
		Int("round", w.merges).
		Int64("length", w.block.Length).
		Msg("merged sibling")
	return nil
}

// grant returns the combined view of two adjacent blocks for the duration
// of one merge, plus the split point between them.
func (rc *runContext) grant(master, sibling Block) ([]byte, int, error) {
	if master.End() != sibling.Offset {
		return nil, 0, fmt.Errorf("%w: block %d ends at %d, block %d starts at %d",
			streamerrors.ErrNotAdjacent, master.Index, master.End(), sibling.Index, sibling.Offset)
	}
	end := sibling.End()
	return rc.region[master.Offset:end:end], int(master.Length), nil
}
