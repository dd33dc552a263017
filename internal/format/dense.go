package format

import (
	"strings"

	"matrixmarket/pkg/mmio"
)

// DenseAccessor returns the value at (row, col), both 0-based.
type DenseAccessor func(row, col int64) mmio.Value

// Dense2DFormatter formats any (row, col) -> value accessor in
// column-major order. Values can wrap a caller's own dense 2-D array
// without requiring it be laid out as a Go slice at all.
type Dense2DFormatter struct {
	Values       DenseAccessor
	NRows, NCols int64
	Field        mmio.Field

	col int64
}

func NewDense2DFormatter(values DenseAccessor, nrows, ncols int64, field mmio.Field) (*Dense2DFormatter, error) {
	if nrows < 0 || ncols < 0 {
		return nil, mmio.ErrInvalidArgument
	}
	return &Dense2DFormatter{Values: values, NRows: nrows, NCols: ncols, Field: field}, nil
}

func (f *Dense2DFormatter) HasNext() bool { return f.col < f.NCols }

func (f *Dense2DFormatter) NextChunk(opts mmio.WriteOptions) mmio.ChunkProducer {
	numColumns := f.NRows*opts.ChunkSizeValues + 1
	remaining := f.NCols - f.col
	if numColumns > remaining {
		numColumns = remaining
	}

	start, end := f.col, f.col+numColumns
	f.col = end

	values := f.Values
	nrows := f.NRows
	field := f.Field
	precision := opts.Precision

	return func() (string, error) {
		var sb strings.Builder
		sb.Grow(int(end-start) * int(nrows) * 15)
		for c := start; c < end; c++ {
			for r := int64(0); r < nrows; r++ {
				sb.WriteString(formatValue(values(r, c), field, precision))
				sb.WriteByte('\n')
			}
		}
		return sb.String(), nil
	}
}
