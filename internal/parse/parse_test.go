package parse

import (
	"testing"

	"github.com/stretchr/testify/require"

	"matrixmarket/pkg/mmio"
)

type recordingMatrixHandler struct {
	rows, cols []int64
	values     []mmio.Value
}

func (h *recordingMatrixHandler) Handle(row, col int64, v mmio.Value) error {
	h.rows = append(h.rows, row)
	h.cols = append(h.cols, col)
	h.values = append(h.values, v)
	return nil
}

func TestMatrixCoordinateChunkDecodesOneBasedToZero(t *testing.T) {
	buf := []byte("1 1 5\n% a comment\n\n2 3 -1.5\n")
	h := mmio.Header{Field: mmio.FieldReal}
	handler := &recordingMatrixHandler{}
	err := MatrixCoordinateChunk(buf, h, 10, handler)
	require.NoError(t, err)
	require.Equal(t, []int64{0, 1}, handler.rows)
	require.Equal(t, []int64{0, 2}, handler.cols)
	require.Equal(t, 5.0, handler.values[0].Re)
	require.Equal(t, -1.5, handler.values[1].Re)
}

func TestMatrixCoordinateChunkPatternFieldHasNoValue(t *testing.T) {
	buf := []byte("1 1\n")
	h := mmio.Header{Field: mmio.FieldPattern}
	handler := &recordingMatrixHandler{}
	require.NoError(t, MatrixCoordinateChunk(buf, h, 0, handler))
	require.Equal(t, mmio.Value{}, handler.values[0])
}

func TestMatrixCoordinateChunkErrorReportsAbsoluteLine(t *testing.T) {
	// chunkLineStart=6 means this chunk's first line is absolute line 7.
	buf := []byte("not-a-number 1 5\n")
	h := mmio.Header{Field: mmio.FieldReal}
	handler := &recordingMatrixHandler{}
	err := MatrixCoordinateChunk(buf, h, 6, handler)
	require.Error(t, err)
	var perr *mmio.ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, int64(7), perr.Line)
}

type recordingVectorHandler struct {
	rows   []int64
	values []mmio.Value
}

func (h *recordingVectorHandler) Handle(row int64, v mmio.Value) error {
	h.rows = append(h.rows, row)
	h.values = append(h.values, v)
	return nil
}

func TestVectorCoordinateChunk(t *testing.T) {
	buf := []byte("3 7\n")
	h := mmio.Header{Field: mmio.FieldInteger}
	handler := &recordingVectorHandler{}
	require.NoError(t, VectorCoordinateChunk(buf, h, 0, handler))
	require.Equal(t, []int64{2}, handler.rows)
	require.Equal(t, int64(7), handler.values[0].Int)
}

type recordingArrayHandler struct {
	cells map[[2]int64]mmio.Value
}

func (h *recordingArrayHandler) Handle(row, col int64, v mmio.Value) error {
	if h.cells == nil {
		h.cells = map[[2]int64]mmio.Value{}
	}
	h.cells[[2]int64{row, col}] = v
	return nil
}

func TestArrayChunkColumnMajorRollover(t *testing.T) {
	// NRows=2: values 1,2,3,4 land at (0,0) (1,0) (0,1) (1,1).
	buf := []byte("1\n2\n3\n4\n")
	h := mmio.Header{Field: mmio.FieldReal, NRows: 2, NCols: 2}
	handler := &recordingArrayHandler{}
	require.NoError(t, ArrayChunk(buf, h, 0, 0, 0, handler))
	require.Equal(t, 1.0, handler.cells[[2]int64{0, 0}].Re)
	require.Equal(t, 2.0, handler.cells[[2]int64{1, 0}].Re)
	require.Equal(t, 3.0, handler.cells[[2]int64{0, 1}].Re)
	require.Equal(t, 4.0, handler.cells[[2]int64{1, 1}].Re)
}

func TestArrayChunkSkippedLineStillAdvancesCursor(t *testing.T) {
	// NRows=2: a blank line between values 1 and 2 still occupies the
	// (1,0) slot, so 2 must land at (0,1), not (1,0).
	buf := []byte("1\n\n2\n3\n4\n")
	h := mmio.Header{Field: mmio.FieldReal, NRows: 2, NCols: 3}
	handler := &recordingArrayHandler{}
	require.NoError(t, ArrayChunk(buf, h, 0, 0, 0, handler))
	require.Equal(t, 1.0, handler.cells[[2]int64{0, 0}].Re)
	require.Equal(t, 2.0, handler.cells[[2]int64{0, 1}].Re)
	require.Equal(t, 3.0, handler.cells[[2]int64{1, 1}].Re)
	require.Equal(t, 4.0, handler.cells[[2]int64{0, 2}].Re)
}
