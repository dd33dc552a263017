// Command mmpipe drives the matrixmarket read/write pipelines end to
// end: a small flag-based CLI over the same library the tests exercise.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"matrixmarket/internal/config"
	"matrixmarket/internal/diag"
	"matrixmarket/internal/format"
	"matrixmarket/internal/pipeline"
	"matrixmarket/internal/sink"
	"matrixmarket/pkg/header"
	"matrixmarket/pkg/mmio"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: mmpipe <read|write> [flags] <file>")
		return 2
	}
	logger := diag.NewLogger(".", "info")

	switch args[0] {
	case "read":
		return cmdRead(logger, args[1:])
	case "write":
		return cmdWrite(logger, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", args[0])
		return 2
	}
}

func cmdRead(logger *diag.Logger, args []string) int {
	fs := flag.NewFlagSet("read", flag.ContinueOnError)
	configPath := fs.String("config", "", "JSON config file (options overrides)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: mmpipe read [-config file] <file>")
		return 2
	}
	path := fs.Arg(0)

	cfg, err := config.LoadJSON(*configPath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 3
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open: %v\n", err)
		return 1
	}
	defer f.Close()

	timer := logger.Start("chunk_parser", "read start", 0)

	h, err := header.Parse(f)
	if err != nil {
		logger.ErrorEvent("chunk_parser", string(diag.Classify(err)), err.Error(), 0)
		fmt.Fprintf(os.Stderr, "header: %v\n", err)
		return 1
	}

	// header.Parse may buffer past the dimension line: rewind and skip
	// exactly the header's lines so the pipeline starts at the body.
	body := bufio.NewReader(f)
	_, err = f.Seek(0, io.SeekStart)
	for i := int64(0); err == nil && i < h.HeaderLineCount; i++ {
		_, err = body.ReadBytes('\n')
	}
	if err != nil && err != io.EOF {
		fmt.Fprintf(os.Stderr, "header: %v\n", err)
		return 1
	}

	ctx := context.Background()
	ro := cfg.ReadOptions()
	var lines int64
	var records int64

	switch {
	case h.Object == mmio.ObjectMatrix && h.Format == mmio.FormatCoordinate:
		s := sink.NewCOOMatrix(h.NNZ, h.Field)
		lines, err = pipeline.ReadMatrixCoordinate(ctx, body, h, s, ro)
		records = int64(len(s.Rows))
	case h.Object == mmio.ObjectVector && h.Format == mmio.FormatCoordinate:
		s := sink.NewCOOVector(h.NNZ, h.Field)
		lines, err = pipeline.ReadVectorCoordinate(ctx, body, h, s, ro)
		records = int64(len(s.Rows))
	default:
		s := sink.NewDenseArray(h.NRows, h.NCols, h.Field)
		lines, err = pipeline.ReadArray(ctx, body, h, s, ro)
		records = int64(len(s.Values))
	}

	if err != nil {
		logger.ErrorEvent("chunk_parser", string(diag.Classify(err)), err.Error(), lines)
		fmt.Fprintf(os.Stderr, "read: %v\n", err)
		return 1
	}
	timer.Finish("read finish", records)

	out, _ := json.Marshal(struct {
		Records int64 `json:"records"`
		Lines   int64 `json:"lines"`
	}{Records: records, Lines: lines})
	fmt.Println(string(out))
	return 0
}

// wireCOO is the JSON shape mmpipe write reads from stdin.
type wireCOO struct {
	NRows  int64     `json:"nrows"`
	NCols  int64     `json:"ncols"`
	Field  string    `json:"field"`
	Rows   []int64   `json:"rows"`
	Cols   []int64   `json:"cols"`
	Values []wireVal `json:"values,omitempty"`
}

type wireVal struct {
	Int int64   `json:"int,omitempty"`
	Re  float64 `json:"re,omitempty"`
	Im  float64 `json:"im,omitempty"`
}

func cmdWrite(logger *diag.Logger, args []string) int {
	fs := flag.NewFlagSet("write", flag.ContinueOnError)
	configPath := fs.String("config", "", "JSON config file (options overrides)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: mmpipe write [-config file] <file>")
		return 2
	}
	path := fs.Arg(0)

	cfg, err := config.LoadJSON(*configPath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 3
	}

	var wire wireCOO
	if err := json.NewDecoder(os.Stdin).Decode(&wire); err != nil {
		fmt.Fprintf(os.Stderr, "stdin: %v\n", err)
		return 1
	}
	field, err := parseField(wire.Field)
	if err != nil {
		fmt.Fprintf(os.Stderr, "field: %v\n", err)
		return 2
	}
	values := make([]mmio.Value, len(wire.Values))
	for i, v := range wire.Values {
		switch field {
		case mmio.FieldInteger:
			values[i] = mmio.IntValue(v.Int)
		case mmio.FieldComplex:
			values[i] = mmio.ComplexValue(v.Re, v.Im)
		default:
			values[i] = mmio.RealValue(v.Re)
		}
	}

	nnz := int64(len(wire.Rows))
	h := mmio.Header{
		Object: mmio.ObjectMatrix, Format: mmio.FormatCoordinate,
		Field: field, Symmetry: mmio.SymmetryGeneral,
		NRows: wire.NRows, NCols: wire.NCols, NNZ: nnz,
	}

	out, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create: %v\n", err)
		return 1
	}
	defer out.Close()

	wo := cfg.WriteOptions()
	timer := logger.Start("writer", "write start", 0)
	if err := header.Write(out, h, wo); err != nil {
		logger.ErrorEvent("writer", string(diag.Classify(err)), err.Error(), 0)
		fmt.Fprintf(os.Stderr, "header: %v\n", err)
		return 1
	}

	formatter, err := format.NewTripletFormatter(wire.Rows, wire.Cols, values, field)
	if err != nil {
		fmt.Fprintf(os.Stderr, "formatter: %v\n", err)
		return 2
	}
	if err := pipeline.Write(context.Background(), out, formatter, wo); err != nil {
		logger.ErrorEvent("writer", string(diag.Classify(err)), err.Error(), 0)
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		return 1
	}
	timer.Finish("write finish", nnz)
	return 0
}

func parseField(s string) (mmio.Field, error) {
	switch s {
	case "", "real":
		return mmio.FieldReal, nil
	case "integer":
		return mmio.FieldInteger, nil
	case "double":
		return mmio.FieldDouble, nil
	case "complex":
		return mmio.FieldComplex, nil
	case "pattern":
		return mmio.FieldPattern, nil
	default:
		return 0, fmt.Errorf("%w: unknown field %q", mmio.ErrInvalidArgument, s)
	}
}
