package sink

import (
	"testing"

	"github.com/stretchr/testify/require"

	"matrixmarket/pkg/mmio"
)

func TestCOOMatrixHandlesOutOfOrderChunks(t *testing.T) {
	m := NewCOOMatrix(4, mmio.FieldReal)
	require.True(t, m.Flags().ParallelOK)

	// Chunk B (offset 2) is handled before chunk A (offset 0); both write
	// disjoint index ranges so this is race-free.
	hb := m.ChunkHandler(2)
	require.NoError(t, hb.Handle(9, 9, mmio.RealValue(9)))
	require.NoError(t, hb.Handle(8, 8, mmio.RealValue(8)))

	ha := m.ChunkHandler(0)
	require.NoError(t, ha.Handle(1, 1, mmio.RealValue(1)))
	require.NoError(t, ha.Handle(2, 2, mmio.RealValue(2)))

	require.Equal(t, []int64{1, 2, 9, 8}, m.Rows)
}

func TestCOOMatrixHandleOutOfBoundsErrors(t *testing.T) {
	m := NewCOOMatrix(1, mmio.FieldPattern)
	h := m.ChunkHandler(0)
	require.NoError(t, h.Handle(0, 0, mmio.Value{}))
	require.ErrorIs(t, h.Handle(0, 0, mmio.Value{}), mmio.ErrInvalidArgument)
}

func TestCOOMatrixPatternFieldHasNoValues(t *testing.T) {
	m := NewCOOMatrix(2, mmio.FieldPattern)
	require.Nil(t, m.Values)
}

func TestCOOVectorBasic(t *testing.T) {
	v := NewCOOVector(2, mmio.FieldInteger)
	h := v.ChunkHandler(0)
	require.NoError(t, h.Handle(0, mmio.IntValue(3)))
	require.NoError(t, h.Handle(1, mmio.IntValue(4)))
	require.Equal(t, []int64{0, 1}, v.Rows)
	require.Equal(t, int64(3), v.Values[0].Int)
}

func TestDenseArrayColumnMajorIndexing(t *testing.T) {
	d := NewDenseArray(2, 3, mmio.FieldReal)
	h := d.ChunkHandler(0)
	require.NoError(t, h.Handle(1, 2, mmio.RealValue(42)))
	require.Equal(t, 42.0, d.At(1, 2).Re)
	require.Equal(t, 42.0, d.Values[2*2+1].Re)
}

func TestDenseArrayOutOfBoundsErrors(t *testing.T) {
	d := NewDenseArray(1, 1, mmio.FieldReal)
	err := d.Handle(5, 5, mmio.RealValue(1))
	require.ErrorIs(t, err, mmio.ErrInvalidArgument)
}
