package mmio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldHasValue(t *testing.T) {
	require.True(t, FieldReal.HasValue())
	require.True(t, FieldInteger.HasValue())
	require.True(t, FieldComplex.HasValue())
	require.False(t, FieldPattern.HasValue())
}

func TestValueConstructors(t *testing.T) {
	require.Equal(t, Value{Int: 7}, IntValue(7))
	require.Equal(t, Value{Re: 1.5}, RealValue(1.5))
	require.Equal(t, Value{Re: 1, Im: -2}, ComplexValue(1, -2))
}

func TestEnumStringers(t *testing.T) {
	require.Equal(t, "matrix", ObjectMatrix.String())
	require.Equal(t, "vector", ObjectVector.String())
	require.Equal(t, "coordinate", FormatCoordinate.String())
	require.Equal(t, "array", FormatArray.String())
	require.Equal(t, "pattern", FieldPattern.String())
	require.Equal(t, "hermitian", SymmetryHermitian.String())
}
