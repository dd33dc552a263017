// Package parse implements the three per-chunk body parsers: matrix
// coordinate, vector coordinate, and array. Each walks a chunk buffer
// line by line, skips comments and blank
// lines (which still count for positional accounting), tokenizes on
// whitespace, decodes tokens through internal/codec, and invokes the
// caller's handler exactly once per non-empty, non-comment line.
package parse

import (
	"bytes"

	"matrixmarket/internal/codec"
	"matrixmarket/pkg/mmio"
)

// eachLine walks buf line by line, calling fn with the 0-based index of
// the line within the chunk and its content (without the trailing
// newline). It returns the first error fn returns.
func eachLine(buf []byte, fn func(idx int64, line []byte) error) error {
	var idx int64
	for len(buf) > 0 {
		nl := bytes.IndexByte(buf, '\n')
		var line []byte
		if nl >= 0 {
			line = buf[:nl]
			buf = buf[nl+1:]
		} else {
			line = buf
			buf = nil
		}
		line = bytes.TrimRight(line, "\r")
		if err := fn(idx, line); err != nil {
			return err
		}
		idx++
	}
	return nil
}

// skip reports whether line is blank or a comment line (first
// non-whitespace byte is '%').
func skip(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return true
	}
	return trimmed[0] == '%'
}

// absLine converts a chunk-relative line index into the absolute 1-based
// source line number used in error messages.
func absLine(chunkLineStart, idx int64) int64 { return chunkLineStart + idx + 1 }

func decodeValue(absoluteLine int64, field mmio.Field, tokens [][]byte, valueIdx int) (mmio.Value, error) {
	switch field {
	case mmio.FieldPattern:
		if valueIdx < len(tokens) {
			return mmio.Value{}, &mmio.ParseError{
				Line: absoluteLine, Token: string(tokens[valueIdx]),
				Msg: "pattern field must not carry a value token",
			}
		}
		return mmio.Value{}, nil
	case mmio.FieldComplex:
		if valueIdx+1 >= len(tokens) {
			return mmio.Value{}, &mmio.ParseError{Line: absoluteLine, Msg: "missing complex value tokens"}
		}
		re, im, err := codec.ParseComplex(absoluteLine, string(tokens[valueIdx]), string(tokens[valueIdx+1]))
		if err != nil {
			return mmio.Value{}, err
		}
		return mmio.ComplexValue(re, im), nil
	case mmio.FieldInteger:
		if valueIdx >= len(tokens) {
			return mmio.Value{}, &mmio.ParseError{Line: absoluteLine, Msg: "missing value token"}
		}
		n, err := codec.ParseInt(absoluteLine, string(tokens[valueIdx]))
		if err != nil {
			return mmio.Value{}, err
		}
		return mmio.IntValue(n), nil
	default: // real, double
		if valueIdx >= len(tokens) {
			return mmio.Value{}, &mmio.ParseError{Line: absoluteLine, Msg: "missing value token"}
		}
		x, err := codec.ParseFloat(absoluteLine, string(tokens[valueIdx]))
		if err != nil {
			return mmio.Value{}, err
		}
		return mmio.RealValue(x), nil
	}
}

// MatrixCoordinateChunk parses a chunk of a coordinate-matrix body:
// "row col [value]" per line, 1-based row/col decremented to 0-based
// before delivery.
func MatrixCoordinateChunk(buf []byte, header mmio.Header, chunkLineStart int64, handler mmio.MatrixCoordinateHandler) error {
	return eachLine(buf, func(idx int64, line []byte) error {
		if skip(line) {
			return nil
		}
		absoluteLine := absLine(chunkLineStart, idx)
		tokens := bytes.Fields(line)
		if len(tokens) < 2 {
			return &mmio.ParseError{Line: absoluteLine, Msg: "expected at least row and column tokens"}
		}
		row, err := codec.ParseInt(absoluteLine, string(tokens[0]))
		if err != nil {
			return err
		}
		col, err := codec.ParseInt(absoluteLine, string(tokens[1]))
		if err != nil {
			return err
		}
		val, err := decodeValue(absoluteLine, header.Field, tokens, 2)
		if err != nil {
			return err
		}
		return handler.Handle(row-1, col-1, val)
	})
}

// VectorCoordinateChunk parses a chunk of a coordinate-vector body:
// "row [value]" per line.
func VectorCoordinateChunk(buf []byte, header mmio.Header, chunkLineStart int64, handler mmio.VectorCoordinateHandler) error {
	return eachLine(buf, func(idx int64, line []byte) error {
		if skip(line) {
			return nil
		}
		absoluteLine := absLine(chunkLineStart, idx)
		tokens := bytes.Fields(line)
		if len(tokens) < 1 {
			return &mmio.ParseError{Line: absoluteLine, Msg: "expected a row token"}
		}
		row, err := codec.ParseInt(absoluteLine, string(tokens[0]))
		if err != nil {
			return err
		}
		val, err := decodeValue(absoluteLine, header.Field, tokens, 1)
		if err != nil {
			return err
		}
		return handler.Handle(row-1, val)
	})
}

// ArrayChunk parses a chunk of an array body: one value token (two for
// complex) per line, in column-major order. startRow/startCol is the
// position of the chunk's first line, computed by the pipeline from the
// chunk's global body-line offset.
func ArrayChunk(buf []byte, header mmio.Header, chunkLineStart int64, startRow, startCol int64, handler mmio.ArrayHandler) error {
	row, col := startRow, startCol
	advance := func() {
		row++
		if row == header.NRows {
			row = 0
			col++
		}
	}
	return eachLine(buf, func(idx int64, line []byte) error {
		if skip(line) {
			// A skipped line still occupies one column-major slot, so
			// the cursor must advance exactly as it would for a value
			// line: otherwise the next chunk's startRow/startCol (from
			// the pipeline's line-count-based body offset) desyncs from
			// this chunk's in-progress position.
			advance()
			return nil
		}
		absoluteLine := absLine(chunkLineStart, idx)
		tokens := bytes.Fields(line)
		val, err := decodeValue(absoluteLine, header.Field, tokens, 0)
		if err != nil {
			return err
		}
		if err := handler.Handle(row, col, val); err != nil {
			return err
		}
		advance()
		return nil
	})
}
