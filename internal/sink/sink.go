// Package sink provides reference record-sink implementations: an
// in-memory coordinate (COO) accumulator for matrices and vectors, and a
// dense-array filler. They exist to make the library usable end to end
// (the CLI and most tests build on them) and to demonstrate the
// concurrency contract sinks must honor: every handler returned for a
// given chunk writes to a disjoint index range, so ParallelOK is safe to
// advertise even though chunks are delivered out of order.
package sink

import "matrixmarket/pkg/mmio"

// COOMatrix accumulates coordinate-matrix records into parallel slices
// pre-sized to the header's declared NNZ. Handle writes are positional
// (bodyLineOffset plus a per-handler running count), so out-of-order
// chunk delivery never races: each chunk owns a disjoint index range.
type COOMatrix struct {
	Rows, Cols []int64
	Values     []mmio.Value
	Field      mmio.Field
}

// NewCOOMatrix pre-allocates storage for nnz records of the given field.
func NewCOOMatrix(nnz int64, field mmio.Field) *COOMatrix {
	m := &COOMatrix{Rows: make([]int64, nnz), Cols: make([]int64, nnz), Field: field}
	if field.HasValue() {
		m.Values = make([]mmio.Value, nnz)
	}
	return m
}

func (m *COOMatrix) Flags() mmio.SinkFlags { return mmio.SinkFlags{ParallelOK: true} }

func (m *COOMatrix) ChunkHandler(bodyLineOffset int64) mmio.MatrixCoordinateHandler {
	return &cooMatrixHandler{m: m, next: bodyLineOffset}
}

type cooMatrixHandler struct {
	m    *COOMatrix
	next int64
}

func (h *cooMatrixHandler) Handle(row, col int64, v mmio.Value) error {
	if h.next < 0 || h.next >= int64(len(h.m.Rows)) {
		return mmio.ErrInvalidArgument
	}
	h.m.Rows[h.next] = row
	h.m.Cols[h.next] = col
	if h.m.Values != nil {
		h.m.Values[h.next] = v
	}
	h.next++
	return nil
}

// COOVector is the vector-body analog of COOMatrix.
type COOVector struct {
	Rows   []int64
	Values []mmio.Value
	Field  mmio.Field
}

func NewCOOVector(nnz int64, field mmio.Field) *COOVector {
	v := &COOVector{Rows: make([]int64, nnz), Field: field}
	if field.HasValue() {
		v.Values = make([]mmio.Value, nnz)
	}
	return v
}

func (v *COOVector) Flags() mmio.SinkFlags { return mmio.SinkFlags{ParallelOK: true} }

func (v *COOVector) ChunkHandler(bodyLineOffset int64) mmio.VectorCoordinateHandler {
	return &cooVectorHandler{v: v, next: bodyLineOffset}
}

type cooVectorHandler struct {
	v    *COOVector
	next int64
}

func (h *cooVectorHandler) Handle(row int64, v mmio.Value) error {
	if h.next < 0 || h.next >= int64(len(h.v.Rows)) {
		return mmio.ErrInvalidArgument
	}
	h.v.Rows[h.next] = row
	if h.v.Values != nil {
		h.v.Values[h.next] = v
	}
	h.next++
	return nil
}

// DenseArray fills a caller-sized, column-major value slice from an
// array body. Cell (row, col) lives at index col*NRows+row.
type DenseArray struct {
	Values       []mmio.Value
	NRows, NCols int64
	Field        mmio.Field
}

func NewDenseArray(nrows, ncols int64, field mmio.Field) *DenseArray {
	return &DenseArray{Values: make([]mmio.Value, nrows*ncols), NRows: nrows, NCols: ncols, Field: field}
}

func (d *DenseArray) Flags() mmio.SinkFlags { return mmio.SinkFlags{ParallelOK: true} }

func (d *DenseArray) ChunkHandler(int64) mmio.ArrayHandler { return d }

func (d *DenseArray) Handle(row, col int64, v mmio.Value) error {
	idx := col*d.NRows + row
	if idx < 0 || idx >= int64(len(d.Values)) {
		return mmio.ErrInvalidArgument
	}
	d.Values[idx] = v
	return nil
}

// At returns the value stored at (row, col).
func (d *DenseArray) At(row, col int64) mmio.Value { return d.Values[col*d.NRows+row] }
