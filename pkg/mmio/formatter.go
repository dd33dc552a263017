package mmio

// ChunkProducer yields one fully-formed output chunk (one or more
// complete text lines) when invoked. It captures its window of the
// caller's arrays by reference at the time Formatter.NextChunk returns
// it, so it is safe to invoke on a worker goroutine after NextChunk has
// moved on to the following window.
type ChunkProducer func() (string, error)

// Formatter is a stateful generator over one of the sparse/dense input
// layouts (triplet, CSC, dense 2-D). HasNext/NextChunk are not safe for
// concurrent use; the ChunkProducers NextChunk returns are.
type Formatter interface {
	HasNext() bool
	NextChunk(opts WriteOptions) ChunkProducer
}
