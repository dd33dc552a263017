// Package header parses and writes the short line-oriented Matrix Market
// preamble: the "%%MatrixMarket ..." banner line and the dimension line
// that follows it.
package header

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"matrixmarket/pkg/mmio"
)

const banner = "%%MatrixMarket"

// Parse reads the banner line, any leading comment lines, and the
// dimension line from r, returning a Header with HeaderLineCount set to
// the number of lines consumed.
func Parse(r io.Reader) (mmio.Header, error) {
	var h mmio.Header
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	if !scanner.Scan() {
		return h, &mmio.ParseError{Line: 1, Msg: "empty input, expected a MatrixMarket banner line"}
	}
	h.HeaderLineCount++
	fields := strings.Fields(scanner.Text())
	if len(fields) != 5 || fields[0] != banner {
		return h, &mmio.ParseError{Line: 1, Msg: "malformed MatrixMarket banner line"}
	}
	var err error
	if h.Object, err = parseObject(fields[1]); err != nil {
		return h, err
	}
	if h.Format, err = parseFormat(fields[2]); err != nil {
		return h, err
	}
	if h.Field, err = parseField(fields[3]); err != nil {
		return h, err
	}
	if h.Symmetry, err = parseSymmetry(fields[4]); err != nil {
		return h, err
	}

	var comments []string
	for scanner.Scan() {
		h.HeaderLineCount++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "%") {
			comments = append(comments, strings.TrimSpace(strings.TrimPrefix(trimmed, "%")))
			continue
		}
		dims := strings.Fields(trimmed)
		if err := parseDimensions(&h, dims); err != nil {
			return h, err
		}
		h.Comment = strings.Join(comments, "\n")
		return h, nil
	}
	if err := scanner.Err(); err != nil {
		return h, mmio.ErrIO
	}
	return h, &mmio.ParseError{Line: h.HeaderLineCount + 1, Msg: "missing dimension line"}
}

func parseDimensions(h *mmio.Header, dims []string) error {
	toInt := func(s string) (int64, error) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, &mmio.ParseError{Token: s, Msg: "invalid dimension"}
		}
		return n, nil
	}
	switch {
	case h.Object == mmio.ObjectVector && h.Format == mmio.FormatArray:
		if len(dims) != 1 {
			return &mmio.ParseError{Msg: "expected a single dimension for an array vector"}
		}
		n, err := toInt(dims[0])
		if err != nil {
			return err
		}
		h.NRows, h.NCols = n, 1
	case h.Object == mmio.ObjectVector && h.Format == mmio.FormatCoordinate:
		if len(dims) != 2 {
			return &mmio.ParseError{Msg: "expected dimension and nnz for a coordinate vector"}
		}
		n, err := toInt(dims[0])
		if err != nil {
			return err
		}
		nnz, err := toInt(dims[1])
		if err != nil {
			return err
		}
		h.NRows, h.NCols, h.NNZ = n, 1, nnz
	case h.Format == mmio.FormatArray:
		if len(dims) != 2 {
			return &mmio.ParseError{Msg: "expected nrows and ncols for an array matrix"}
		}
		nr, err := toInt(dims[0])
		if err != nil {
			return err
		}
		nc, err := toInt(dims[1])
		if err != nil {
			return err
		}
		h.NRows, h.NCols = nr, nc
	default: // coordinate matrix
		if len(dims) != 3 {
			return &mmio.ParseError{Msg: "expected nrows, ncols, and nnz for a coordinate matrix"}
		}
		nr, err := toInt(dims[0])
		if err != nil {
			return err
		}
		nc, err := toInt(dims[1])
		if err != nil {
			return err
		}
		nnz, err := toInt(dims[2])
		if err != nil {
			return err
		}
		h.NRows, h.NCols, h.NNZ = nr, nc, nnz
	}
	return nil
}

func parseObject(s string) (mmio.Object, error) {
	switch s {
	case "matrix":
		return mmio.ObjectMatrix, nil
	case "vector":
		return mmio.ObjectVector, nil
	default:
		return 0, &mmio.ParseError{Token: s, Msg: "unknown object"}
	}
}

func parseFormat(s string) (mmio.Format, error) {
	switch s {
	case "coordinate":
		return mmio.FormatCoordinate, nil
	case "array":
		return mmio.FormatArray, nil
	default:
		return 0, &mmio.ParseError{Token: s, Msg: "unknown format"}
	}
}

func parseField(s string) (mmio.Field, error) {
	switch s {
	case "integer":
		return mmio.FieldInteger, nil
	case "real":
		return mmio.FieldReal, nil
	case "double":
		return mmio.FieldDouble, nil
	case "complex":
		return mmio.FieldComplex, nil
	case "pattern":
		return mmio.FieldPattern, nil
	default:
		return 0, &mmio.ParseError{Token: s, Msg: "unknown field"}
	}
}

func parseSymmetry(s string) (mmio.Symmetry, error) {
	switch s {
	case "general":
		return mmio.SymmetryGeneral, nil
	case "symmetric":
		return mmio.SymmetrySymmetric, nil
	case "skew-symmetric":
		return mmio.SymmetrySkewSymmetric, nil
	case "hermitian":
		return mmio.SymmetryHermitian, nil
	default:
		return 0, &mmio.ParseError{Token: s, Msg: "unknown symmetry"}
	}
}

// Write emits the banner line, an optional comment block, and the
// dimension line for h. opts.AlwaysComment forces at least one '%' line
// even when h.Comment is empty.
func Write(w io.Writer, h mmio.Header, opts mmio.WriteOptions) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %s %s %s %s\n", banner, h.Object, h.Format, h.Field, h.Symmetry)

	if h.Comment != "" {
		for _, line := range strings.Split(h.Comment, "\n") {
			fmt.Fprintf(&buf, "%%%s\n", line)
		}
	} else if opts.AlwaysComment {
		buf.WriteString("%\n")
	}

	switch {
	case h.Object == mmio.ObjectVector && h.Format == mmio.FormatArray:
		fmt.Fprintf(&buf, "%d\n", h.NRows)
	case h.Object == mmio.ObjectVector && h.Format == mmio.FormatCoordinate:
		fmt.Fprintf(&buf, "%d %d\n", h.NRows, h.NNZ)
	case h.Format == mmio.FormatArray:
		fmt.Fprintf(&buf, "%d %d\n", h.NRows, h.NCols)
	default:
		fmt.Fprintf(&buf, "%d %d %d\n", h.NRows, h.NCols, h.NNZ)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return mmio.ErrIO
	}
	return nil
}
