// Package pipeline implements the read and write orchestrators:
// bounded in-flight worker-pool scheduling around the chunk
// slicer/line counter/parser/formatter primitives.
//
// The read side runs an ordered-FIFO, bounded-backpressure worker pool
// over line-count futures and parse tasks: a fixed pool of line-count
// workers drains a job channel, their results are handed back through a
// channel of per-chunk result channels (submitted in stream order, so
// range-ing over it enforces FIFO delivery without a busy-poll loop),
// and parse tasks run on a second, optionally single-slot, worker pool
// gated by the sink's ParallelOK flag.
package pipeline

import (
	"context"
	"io"
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"matrixmarket/internal/chunk"
	"matrixmarket/internal/parse"
	"matrixmarket/pkg/mmio"
)

// dispatchFunc binds a sliced chunk buffer and its stream position to a
// parse task ready to run on a worker goroutine. bodyLine is the 0-based
// offset of the chunk's first body line (chunkLineStart minus the
// header's line count).
type dispatchFunc func(buf []byte, chunkLineStart, bodyLine int64) func() error

type lcResult struct {
	buf       []byte
	lineCount int64
}

type lcJob struct {
	buf    []byte
	result chan lcResult
}

// run drives the shared chunk pipeline: slice, count lines (in stream
// order), dispatch a parse task per chunk. It returns the total line
// count (header lines plus every body line read) and the first error in
// stream order, honoring the ordering and cancellation guarantees
// callers depend on.
func run(ctx context.Context, r io.Reader, header mmio.Header, opts mmio.ReadOptions, parallelOK bool, dispatch dispatchFunc) (int64, error) {
	numThreads := opts.NumThreads
	if numThreads <= 0 {
		numThreads = runtime.GOMAXPROCS(0)
	}
	if numThreads < 1 {
		numThreads = 1
	}
	inflight := 10 * numThreads

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	slicer := chunk.NewSlicer(r, opts.ChunkSizeBytes)

	jobs := make(chan lcJob, inflight)
	fifo := make(chan chan lcResult, inflight)

	var lcWG sync.WaitGroup
	lcWG.Add(numThreads)
	for i := 0; i < numThreads; i++ {
		go func() {
			defer lcWG.Done()
			for j := range jobs {
				j.result <- lcResult{buf: j.buf, lineCount: chunk.CountLines(j.buf)}
			}
		}()
	}

	prodErrCh := make(chan error, 1)
	go func() {
		defer close(jobs)
		defer close(fifo)
		for {
			select {
			case <-ctx.Done():
				prodErrCh <- nil
				return
			default:
			}
			buf, err := slicer.Next()
			if err != nil {
				prodErrCh <- &mmio.ParseError{Msg: "reading input: " + err.Error()}
				return
			}
			if len(buf) == 0 {
				prodErrCh <- nil
				return
			}
			result := make(chan lcResult, 1)
			select {
			case jobs <- lcJob{buf: buf, result: result}:
			case <-ctx.Done():
				prodErrCh <- nil
				return
			}
			select {
			case fifo <- result:
			case <-ctx.Done():
				prodErrCh <- nil
				return
			}
		}
	}()

	parseConcurrency := numThreads
	if !parallelOK {
		parseConcurrency = 1
	}
	parseGroup, _ := errgroup.WithContext(ctx)
	parseGroup.SetLimit(parseConcurrency)

	var errMu sync.Mutex
	var bestErr error
	bestLine := int64(math.MaxInt64)
	record := func(err error, atLine int64) {
		if err == nil {
			return
		}
		errMu.Lock()
		defer errMu.Unlock()
		if atLine < bestLine {
			bestErr, bestLine = err, atLine
			cancel()
		}
	}

	lineNum := header.HeaderLineCount
	for result := range fifo {
		lc := <-result
		chunkLineStart := lineNum
		lineNum += lc.lineCount
		bodyLine := chunkLineStart - header.HeaderLineCount
		task := dispatch(lc.buf, chunkLineStart, bodyLine)
		parseGroup.Go(func() error {
			if err := task(); err != nil {
				record(err, chunkLineStart)
				return err
			}
			return nil
		})
	}
	lcWG.Wait()
	_ = parseGroup.Wait()

	if prodErr := <-prodErrCh; prodErr != nil {
		record(prodErr, math.MaxInt64-1)
	}

	if bestErr != nil {
		return lineNum, bestErr
	}
	if err := ctx.Err(); err != nil {
		return lineNum, err
	}
	return lineNum, nil
}

// ReadMatrixCoordinate runs the read pipeline over a coordinate-matrix
// body, delivering records to sink.
func ReadMatrixCoordinate(ctx context.Context, r io.Reader, header mmio.Header, sink mmio.MatrixCoordinateSink, opts mmio.ReadOptions) (int64, error) {
	flags := sink.Flags()
	return run(ctx, r, header, opts, flags.ParallelOK, func(buf []byte, chunkLineStart, bodyLine int64) func() error {
		h := sink.ChunkHandler(bodyLine)
		return func() error { return parse.MatrixCoordinateChunk(buf, header, chunkLineStart, h) }
	})
}

// ReadVectorCoordinate runs the read pipeline over a coordinate-vector
// body.
func ReadVectorCoordinate(ctx context.Context, r io.Reader, header mmio.Header, sink mmio.VectorCoordinateSink, opts mmio.ReadOptions) (int64, error) {
	flags := sink.Flags()
	return run(ctx, r, header, opts, flags.ParallelOK, func(buf []byte, chunkLineStart, bodyLine int64) func() error {
		h := sink.ChunkHandler(bodyLine)
		return func() error { return parse.VectorCoordinateChunk(buf, header, chunkLineStart, h) }
	})
}

// ReadArray runs the read pipeline over an array body. Each chunk's
// starting (row, col) is derived from its global body-line offset:
// row = bodyLine mod NRows, col = bodyLine div NRows.
func ReadArray(ctx context.Context, r io.Reader, header mmio.Header, sink mmio.ArraySink, opts mmio.ReadOptions) (int64, error) {
	if header.NRows <= 0 {
		return header.HeaderLineCount, mmio.ErrInvalidArgument
	}
	flags := sink.Flags()
	return run(ctx, r, header, opts, flags.ParallelOK, func(buf []byte, chunkLineStart, bodyLine int64) func() error {
		h := sink.ChunkHandler(bodyLine)
		startRow := bodyLine % header.NRows
		startCol := bodyLine / header.NRows
		return func() error { return parse.ArrayChunk(buf, header, chunkLineStart, startRow, startCol, h) }
	})
}
