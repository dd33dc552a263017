// Package config loads read/write pipeline options from JSON using a
// strict-decode-with-safe-defaults pattern: unknown fields are rejected
// outright rather than silently ignored, and every field has a documented
// zero-value fallback applied before decoding.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"

	"matrixmarket/pkg/mmio"
)

// Config is the on-disk shape for both pipelines' options. Zero values
// are treated as "use the default" for every field except the boolean
// flags, which default to false.
type Config struct {
	ChunkSizeBytes     int  `json:"chunk_size_bytes"`
	NumThreads         int  `json:"num_threads"`
	GeneralizeSymmetry bool `json:"generalize_symmetry"`

	ChunkSizeValues int64 `json:"chunk_size_values"`
	Precision       int   `json:"precision"`
	AlwaysComment   bool  `json:"always_comment"`
}

// Defaults returns a Config equal to mmio's documented option defaults.
func Defaults() Config {
	ro := mmio.DefaultReadOptions()
	wo := mmio.DefaultWriteOptions()
	return Config{
		ChunkSizeBytes:  ro.ChunkSizeBytes,
		NumThreads:      ro.NumThreads,
		ChunkSizeValues: wo.ChunkSizeValues,
		Precision:       wo.Precision,
	}
}

// LoadJSON decodes JSON overrides from path (if non-empty) or raw, on top
// of Defaults(). Unknown fields are rejected.
func LoadJSON(path string, raw []byte) (Config, error) {
	cfg := Defaults()
	var r io.Reader
	switch {
	case len(raw) > 0:
		r = bytes.NewReader(raw)
	case path != "":
		f, err := os.Open(path)
		if err != nil {
			return cfg, err
		}
		defer f.Close()
		r = f
	default:
		return cfg, nil
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return cfg, err
	}
	return cfg, nil
}

// ReadOptions projects the read-pipeline half of Config.
func (c Config) ReadOptions() mmio.ReadOptions {
	return mmio.ReadOptions{
		ChunkSizeBytes:     c.ChunkSizeBytes,
		NumThreads:         c.NumThreads,
		GeneralizeSymmetry: c.GeneralizeSymmetry,
	}
}

// WriteOptions projects the write-pipeline half of Config.
func (c Config) WriteOptions() mmio.WriteOptions {
	chunkSizeValues := c.ChunkSizeValues
	if chunkSizeValues <= 0 {
		chunkSizeValues = mmio.DefaultWriteOptions().ChunkSizeValues
	}
	return mmio.WriteOptions{
		ChunkSizeValues: chunkSizeValues,
		NumThreads:      c.NumThreads,
		Precision:       c.Precision,
		AlwaysComment:   c.AlwaysComment,
	}
}
