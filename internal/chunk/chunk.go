// Package chunk implements the line-aligned byte-buffer slicer and the
// line counter that feed the read pipeline.
// Only the pipeline's I/O goroutine ever calls Slicer.Next; no locking is
// needed because of that single-writer discipline.
package chunk

import (
	"bufio"
	"bytes"
	"io"
)

// Slicer pulls newline-aligned byte chunks from an input stream. It never
// splits a line across two chunks: if a single line exceeds the target
// size, the chunk grows until the line's terminating newline (or EOF).
type Slicer struct {
	r         *bufio.Reader
	targetLen int
}

// NewSlicer wraps r with a buffered reader and sets the target chunk
// size. A targetLen <= 0 falls back to a 1 MiB target.
func NewSlicer(r io.Reader, targetLen int) *Slicer {
	if targetLen <= 0 {
		targetLen = 1 << 20
	}
	bufSize := targetLen
	if bufSize < 4096 {
		bufSize = 4096
	}
	return &Slicer{r: bufio.NewReaderSize(r, bufSize), targetLen: targetLen}
}

// Next returns the next chunk. A zero-length return with nil error signals
// EOF. The returned buffer always ends immediately after a newline unless
// the stream ended without a trailing newline, in which case it ends at
// EOF.
func (s *Slicer) Next() ([]byte, error) {
	var buf bytes.Buffer
	for buf.Len() < s.targetLen {
		line, err := s.r.ReadBytes('\n')
		if len(line) > 0 {
			buf.Write(line)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		// ReadBytes returns nil error only once it hit '\n'; loop again
		// to see whether we've reached the target length yet.
	}
	return buf.Bytes(), nil
}

// CountLines returns the number of lines in buf: the chunk_line_count
// the read pipeline needs to assign each chunk's starting line number.
// A non-empty final line with no trailing newline still counts as one
// line, matching how eachLine walks it during parsing.
func CountLines(buf []byte) int64 {
	n := int64(bytes.Count(buf, []byte{'\n'}))
	if len(buf) > 0 && buf[len(buf)-1] != '\n' {
		n++
	}
	return n
}
