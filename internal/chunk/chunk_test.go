package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlicerNeverSplitsALine(t *testing.T) {
	// Each line is longer than the tiny target, so every chunk must grow
	// past targetLen to include a whole line.
	input := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc\n"
	s := NewSlicer(strings.NewReader(input), 5)

	var got strings.Builder
	var chunks int
	for {
		buf, err := s.Next()
		require.NoError(t, err)
		if len(buf) == 0 {
			break
		}
		chunks++
		require.True(t, strings.HasSuffix(string(buf), "\n"))
		got.Write(buf)
	}
	require.Equal(t, input, got.String())
	require.Greater(t, chunks, 1)
}

func TestSlicerHandlesMissingTrailingNewline(t *testing.T) {
	s := NewSlicer(strings.NewReader("only line, no newline"), 1<<20)
	buf, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, "only line, no newline", string(buf))

	buf, err = s.Next()
	require.NoError(t, err)
	require.Empty(t, buf)
}

func TestSlicerEmptyInput(t *testing.T) {
	s := NewSlicer(strings.NewReader(""), 0)
	buf, err := s.Next()
	require.NoError(t, err)
	require.Empty(t, buf)
}

func TestCountLines(t *testing.T) {
	require.Equal(t, int64(3), CountLines([]byte("a\nb\nc\n")))
	require.Equal(t, int64(0), CountLines(nil))
	require.Equal(t, int64(1), CountLines([]byte("no trailing newline\n")))
}

func TestCountLinesCountsUnterminatedFinalLine(t *testing.T) {
	require.Equal(t, int64(3), CountLines([]byte("a\nb\nc")))
	require.Equal(t, int64(1), CountLines([]byte("only line, no newline")))
}
