// Package format implements the four output-chunk generators: triplet,
// dense-vector (the promoted column-as-value case), CSC, and dense 2-D
// callable. Each is a stateful HasNext/NextChunk generator; the
// ChunkProducer a NextChunk call returns captures its window by
// reference and is safe to invoke on a worker goroutine.
package format

import (
	"strings"

	"matrixmarket/internal/codec"
	"matrixmarket/pkg/mmio"
)

func formatValue(v mmio.Value, field mmio.Field, precision int) string {
	switch field {
	case mmio.FieldInteger:
		return codec.FormatInt(v.Int)
	case mmio.FieldComplex:
		return codec.FormatComplex(v.Re, v.Im, precision)
	default:
		return codec.FormatFloat(v.Re, precision)
	}
}

// TripletFormatter formats parallel (row, col, value) sequences as
// coordinate body lines: "row+1 col+1 [value]". Values may be nil (or
// empty) to omit the value column entirely, which is how pattern
// matrices are formatted.
type TripletFormatter struct {
	Rows, Cols []int64
	Values     []mmio.Value
	Field      mmio.Field

	pos int
}

// NewTripletFormatter validates that Rows/Cols/Values (if present) have
// equal length before returning a ready-to-use formatter.
func NewTripletFormatter(rows, cols []int64, values []mmio.Value, field mmio.Field) (*TripletFormatter, error) {
	if len(rows) != len(cols) {
		return nil, mmio.ErrInvalidArgument
	}
	if len(values) != 0 && len(values) != len(rows) {
		return nil, mmio.ErrInvalidArgument
	}
	return &TripletFormatter{Rows: rows, Cols: cols, Values: values, Field: field}, nil
}

func (f *TripletFormatter) HasNext() bool { return f.pos < len(f.Rows) }

func (f *TripletFormatter) NextChunk(opts mmio.WriteOptions) mmio.ChunkProducer {
	chunkSize := opts.ChunkSizeValues
	remaining := int64(len(f.Rows) - f.pos)
	if chunkSize <= 0 || chunkSize > remaining {
		chunkSize = remaining
	}
	start, end := f.pos, f.pos+int(chunkSize)
	f.pos = end

	rows := f.Rows[start:end]
	cols := f.Cols[start:end]
	var values []mmio.Value
	if len(f.Values) != 0 {
		values = f.Values[start:end]
	}
	field := f.Field
	precision := opts.Precision

	return func() (string, error) {
		var sb strings.Builder
		sb.Grow(len(rows) * 25)
		for i := range rows {
			sb.WriteString(codec.FormatInt(rows[i] + 1))
			sb.WriteByte(' ')
			sb.WriteString(codec.FormatInt(cols[i] + 1))
			if values != nil {
				sb.WriteByte(' ')
				sb.WriteString(formatValue(values[i], field, precision))
			}
			sb.WriteByte('\n')
		}
		return sb.String(), nil
	}
}

// DenseVectorFormatter formats (row, value) pairs as "row+1 value" lines.
// It reuses the triplet layout's second column slot for a scalar instead
// of a column index, which is how dense vectors get written in
// coordinate-shaped text.
type DenseVectorFormatter struct {
	Rows   []int64
	Values []mmio.Value
	Field  mmio.Field

	pos int
}

// NewDenseVectorFormatter validates equal-length Rows/Values.
func NewDenseVectorFormatter(rows []int64, values []mmio.Value, field mmio.Field) (*DenseVectorFormatter, error) {
	if len(rows) != len(values) {
		return nil, mmio.ErrInvalidArgument
	}
	return &DenseVectorFormatter{Rows: rows, Values: values, Field: field}, nil
}

func (f *DenseVectorFormatter) HasNext() bool { return f.pos < len(f.Rows) }

func (f *DenseVectorFormatter) NextChunk(opts mmio.WriteOptions) mmio.ChunkProducer {
	chunkSize := opts.ChunkSizeValues
	remaining := int64(len(f.Rows) - f.pos)
	if chunkSize <= 0 || chunkSize > remaining {
		chunkSize = remaining
	}
	start, end := f.pos, f.pos+int(chunkSize)
	f.pos = end

	rows := f.Rows[start:end]
	values := f.Values[start:end]
	field := f.Field
	precision := opts.Precision

	return func() (string, error) {
		var sb strings.Builder
		sb.Grow(len(rows) * 25)
		for i := range rows {
			sb.WriteString(codec.FormatInt(rows[i] + 1))
			sb.WriteByte(' ')
			sb.WriteString(formatValue(values[i], field, precision))
			sb.WriteByte('\n')
		}
		return sb.String(), nil
	}
}
