package diag

import (
	"context"
	"errors"
	"os"

	"matrixmarket/pkg/mmio"
)

// Code is a minimal error classification tag, used to summarize log
// events and metrics; it is independent of the process exit code.
type Code string

const (
	CodeUnknown   Code = "unknown"
	CodeArgument  Code = "argument"
	CodeParse     Code = "parse"
	CodeValue     Code = "value"
	CodeIO        Code = "io"
	CodeUnsupport Code = "unsupported"
	CodeCancel    Code = "cancel"
)

// Classify maps an error to a Code: context cancellation or deadline
// first, then the mmio sentinel-error taxonomy, then os.PathError as
// CodeIO, and finally CodeUnknown.
func Classify(err error) Code {
	if err == nil {
		return CodeUnknown
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return CodeCancel
	}
	switch {
	case errors.Is(err, mmio.ErrInvalidArgument):
		return CodeArgument
	case errors.Is(err, mmio.ErrParse):
		return CodeParse
	case errors.Is(err, mmio.ErrInvalidValue):
		return CodeValue
	case errors.Is(err, mmio.ErrUnsupportedFeature):
		return CodeUnsupport
	case errors.Is(err, mmio.ErrIO):
		return CodeIO
	}
	var perr *os.PathError
	if errors.As(err, &perr) {
		return CodeIO
	}
	return CodeUnknown
}
