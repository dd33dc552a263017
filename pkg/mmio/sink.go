package mmio

// SinkFlags advertise a sink's concurrency and delivery guarantees to the
// read pipeline. A sink that does not set ParallelOK forces the pipeline
// to serialize its parse submissions, since record delivery is otherwise
// unordered across chunks.
type SinkFlags struct {
	// ParallelOK reports that concurrent ChunkHandlers (one per in-flight
	// chunk) may call Handle without external synchronization racing
	// each other's writes.
	ParallelOK bool
	// AppendOnly reports that the sink requires records to arrive at
	// strictly increasing body-line offsets. Reference sinks that write
	// into pre-sized arrays (coordinate, dense) do not need this; a
	// sink that appends to a growable slice does.
	AppendOnly bool
}

// MatrixCoordinateHandler receives parsed (row, col, value) records from
// a single chunk of a coordinate matrix body. Row and col are 0-based.
// Value is the zero Value when the header field is FieldPattern.
type MatrixCoordinateHandler interface {
	Handle(row, col int64, value Value) error
}

// VectorCoordinateHandler receives parsed (row, value) records from a
// single chunk of a coordinate vector body.
type VectorCoordinateHandler interface {
	Handle(row int64, value Value) error
}

// ArrayHandler receives parsed (row, col, value) records from a single
// chunk of an array body, in column-major order.
type ArrayHandler interface {
	Handle(row, col int64, value Value) error
}

// MatrixCoordinateSink produces a fresh per-chunk handler for each chunk
// the read pipeline dispatches, positioned at bodyLineOffset (the 0-based
// index of the chunk's first body line).
type MatrixCoordinateSink interface {
	Flags() SinkFlags
	ChunkHandler(bodyLineOffset int64) MatrixCoordinateHandler
}

// VectorCoordinateSink is the vector-body analog of MatrixCoordinateSink.
type VectorCoordinateSink interface {
	Flags() SinkFlags
	ChunkHandler(bodyLineOffset int64) VectorCoordinateHandler
}

// ArraySink is the array-body analog of MatrixCoordinateSink.
type ArraySink interface {
	Flags() SinkFlags
	ChunkHandler(bodyLineOffset int64) ArrayHandler
}
