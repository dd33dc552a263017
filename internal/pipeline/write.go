package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"matrixmarket/pkg/mmio"
)

// Write drives f until HasNext is false, optionally dispatching chunk
// producers to a worker pool, and writes the resulting text to w in the
// order NextChunk produced them. numThreads <= 1 runs producers
// sequentially with no goroutines at all.
func Write(ctx context.Context, w interface{ Write([]byte) (int, error) }, f mmio.Formatter, opts mmio.WriteOptions) error {
	numThreads := opts.NumThreads
	if numThreads <= 0 {
		numThreads = runtime.GOMAXPROCS(0)
	}

	if numThreads <= 1 {
		for f.HasNext() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			text, err := f.NextChunk(opts)()
			if err != nil {
				return err
			}
			if _, err := w.Write([]byte(text)); err != nil {
				return mmio.ErrIO
			}
		}
		return nil
	}

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(numThreads)

	// futures holds at most numThreads outstanding chunks: the
	// submission goroutine blocks on the channel send once that many
	// are queued but not yet drained, so submission and draining
	// interleave instead of the whole formatter running to completion
	// before the first byte reaches w. The pipeline never buffers more
	// than numThreads+1 chunks' worth of formatted text at a time (the
	// queued chunks plus the one being written).
	futures := make(chan chan result, numThreads)
	go func() {
		defer close(futures)
		for f.HasNext() {
			if gctx.Err() != nil {
				return
			}
			producer := f.NextChunk(opts)
			out := make(chan result, 1)
			select {
			case futures <- out:
			case <-gctx.Done():
				return
			}
			group.Go(func() error {
				text, err := producer()
				out <- result{text: text, err: err}
				return err
			})
		}
	}()

	var flushErr error
	for out := range futures {
		r := <-out
		if flushErr != nil || r.err != nil {
			if flushErr == nil {
				flushErr = r.err
			}
			continue
		}
		if _, err := w.Write([]byte(r.text)); err != nil {
			flushErr = mmio.ErrIO
		}
	}

	if err := group.Wait(); err != nil && flushErr == nil {
		flushErr = err
	}
	return flushErr
}

type result struct {
	text string
	err  error
}
