package header

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"matrixmarket/pkg/mmio"
)

func TestParseCoordinateMatrixHeader(t *testing.T) {
	input := "%%MatrixMarket matrix coordinate real general\n% a comment\n3 4 2\n"
	h, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, mmio.ObjectMatrix, h.Object)
	require.Equal(t, mmio.FormatCoordinate, h.Format)
	require.Equal(t, mmio.FieldReal, h.Field)
	require.Equal(t, mmio.SymmetryGeneral, h.Symmetry)
	require.EqualValues(t, 3, h.NRows)
	require.EqualValues(t, 4, h.NCols)
	require.EqualValues(t, 2, h.NNZ)
	require.Equal(t, "a comment", h.Comment)
	require.EqualValues(t, 3, h.HeaderLineCount)
}

func TestParseArrayVectorHeader(t *testing.T) {
	h, err := Parse(strings.NewReader("%%MatrixMarket vector array real general\n5\n"))
	require.NoError(t, err)
	require.Equal(t, mmio.ObjectVector, h.Object)
	require.EqualValues(t, 5, h.NRows)
	require.EqualValues(t, 1, h.NCols)
}

func TestParseCoordinateVectorHeader(t *testing.T) {
	h, err := Parse(strings.NewReader("%%MatrixMarket vector coordinate integer general\n5 2\n"))
	require.NoError(t, err)
	require.EqualValues(t, 5, h.NRows)
	require.EqualValues(t, 2, h.NNZ)
}

func TestParseRejectsMalformedBanner(t *testing.T) {
	_, err := Parse(strings.NewReader("not a banner line\n1 1 1\n"))
	require.Error(t, err)
	require.ErrorIs(t, err, mmio.ErrParse)
}

func TestParseRejectsUnknownField(t *testing.T) {
	_, err := Parse(strings.NewReader("%%MatrixMarket matrix coordinate bogus general\n1 1 1\n"))
	require.Error(t, err)
	require.ErrorIs(t, err, mmio.ErrParse)
}

func TestParseRejectsMissingDimensionLine(t *testing.T) {
	_, err := Parse(strings.NewReader("%%MatrixMarket matrix coordinate real general\n"))
	require.Error(t, err)
}

func TestWriteRoundTrips(t *testing.T) {
	h := mmio.Header{
		Object: mmio.ObjectMatrix, Format: mmio.FormatCoordinate,
		Field: mmio.FieldReal, Symmetry: mmio.SymmetryGeneral,
		NRows: 3, NCols: 4, NNZ: 2, Comment: "hello",
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, h, mmio.DefaultWriteOptions()))

	got, err := Parse(&buf)
	require.NoError(t, err)
	require.Equal(t, h.Object, got.Object)
	require.Equal(t, h.Format, got.Format)
	require.Equal(t, h.Field, got.Field)
	require.Equal(t, h.Symmetry, got.Symmetry)
	require.Equal(t, h.NRows, got.NRows)
	require.Equal(t, h.NCols, got.NCols)
	require.Equal(t, h.NNZ, got.NNZ)
	require.Equal(t, h.Comment, got.Comment)
}

func TestWriteAlwaysCommentEmitsBlankCommentLine(t *testing.T) {
	h := mmio.Header{Object: mmio.ObjectMatrix, Format: mmio.FormatArray, Field: mmio.FieldReal, NRows: 1, NCols: 1}
	opts := mmio.DefaultWriteOptions()
	opts.AlwaysComment = true
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, h, opts))
	require.Contains(t, buf.String(), "\n%\n")
}
