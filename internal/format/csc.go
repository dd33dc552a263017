package format

import (
	"strings"

	"matrixmarket/internal/codec"
	"matrixmarket/pkg/mmio"
)

// CSCFormatter formats a compressed-sparse-column structure
// (Indptr, Indices, Values) as coordinate body lines. Transpose swaps the
// emitted row/col columns, which is how a CSR structure formats itself:
// interpret it as CSC over the transposed shape and set Transpose=true.
type CSCFormatter struct {
	Indptr    []int64 // length ncols+1
	Indices   []int64
	Values    []mmio.Value
	Field     mmio.Field
	Transpose bool

	col          int64 // next unformatted column
	nnzPerColumn float64
}

// NewCSCFormatter validates Indices/Values length and precomputes the
// average nonzeros-per-column density used to size chunks.
func NewCSCFormatter(indptr, indices []int64, values []mmio.Value, field mmio.Field, transpose bool) (*CSCFormatter, error) {
	if len(indptr) < 1 {
		return nil, mmio.ErrInvalidArgument
	}
	if len(values) != 0 && len(values) != len(indices) {
		return nil, mmio.ErrInvalidArgument
	}
	numColumns := int64(len(indptr) - 1)
	nnz := int64(len(indices))
	var nnzPerColumn float64
	if numColumns > 0 {
		nnzPerColumn = float64(nnz) / float64(numColumns)
	}
	return &CSCFormatter{
		Indptr: indptr, Indices: indices, Values: values, Field: field, Transpose: transpose,
		nnzPerColumn: nnzPerColumn,
	}, nil
}

func (f *CSCFormatter) numColumns() int64 { return int64(len(f.Indptr) - 1) }

func (f *CSCFormatter) HasNext() bool { return f.col < f.numColumns() }

func (f *CSCFormatter) NextChunk(opts mmio.WriteOptions) mmio.ChunkProducer {
	// Number of columns per chunk is nnzPerColumn*ChunkSizeValues + 1
	// (truncated), clamped to the remaining columns. The expected record
	// count per chunk therefore grows with column density: it stays near
	// ChunkSizeValues only when columns average about one nonzero.
	numColumns := int64(f.nnzPerColumn*float64(opts.ChunkSizeValues)) + 1
	remaining := f.numColumns() - f.col
	if numColumns > remaining {
		numColumns = remaining
	}

	start, end := f.col, f.col+numColumns
	f.col = end

	indptr := f.Indptr
	indices := f.Indices
	values := f.Values
	field := f.Field
	transpose := f.Transpose
	precision := opts.Precision

	return func() (string, error) {
		var sb strings.Builder
		sb.Grow(int(numColumns) * 32)
		for c := start; c < end; c++ {
			colStr := codec.FormatInt(c + 1)
			rowStart, rowEnd := indptr[c], indptr[c+1]
			for k := rowStart; k < rowEnd; k++ {
				rowStr := codec.FormatInt(indices[k] + 1)
				if transpose {
					sb.WriteString(colStr)
					sb.WriteByte(' ')
					sb.WriteString(rowStr)
				} else {
					sb.WriteString(rowStr)
					sb.WriteByte(' ')
					sb.WriteString(colStr)
				}
				if len(values) != 0 {
					sb.WriteByte(' ')
					sb.WriteString(formatValue(values[k], field, precision))
				}
				sb.WriteByte('\n')
			}
		}
		return sb.String(), nil
	}
}
