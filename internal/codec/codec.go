// Package codec converts between Matrix Market body tokens and scalar
// field values. Every function here is pure and allocation-light: no
// locale lookups, no per-call heap churn beyond what strconv itself
// needs.
package codec

import (
	"strconv"

	"matrixmarket/pkg/mmio"
)

// ParseInt decodes a signed decimal integer token. Overflow is reported
// as an InvalidValueError rather than a ParseError: the token is
// syntactically a valid integer, just not representable in an int64.
func ParseInt(line int64, token string) (int64, error) {
	n, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, &mmio.InvalidValueError{Line: line, Token: token, Msg: "integer out of range"}
		}
		return 0, &mmio.ParseError{Line: line, Token: token, Msg: "invalid integer"}
	}
	return n, nil
}

// ParseFloat decodes a real-valued token: optional sign, digits, optional
// fractional part, optional scientific exponent. It accepts every form
// strconv.FormatFloat can produce, including the shortest-round-trip
// forms this package's own FormatFloat emits.
func ParseFloat(line int64, token string) (float64, error) {
	x, err := strconv.ParseFloat(token, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, &mmio.InvalidValueError{Line: line, Token: token, Msg: "float out of range"}
		}
		return 0, &mmio.ParseError{Line: line, Token: token, Msg: "invalid float"}
	}
	return x, nil
}

// ParseComplex decodes a "re im" token pair.
func ParseComplex(line int64, reToken, imToken string) (re, im float64, err error) {
	re, err = ParseFloat(line, reToken)
	if err != nil {
		return 0, 0, err
	}
	im, err = ParseFloat(line, imToken)
	if err != nil {
		return 0, 0, err
	}
	return re, im, nil
}

// FormatInt formats a signed integer the way the parser above expects to
// read it back: plain decimal, no thousands separators, no leading '+'.
func FormatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

// FormatFloat formats a float. precision <= 0 requests the shortest
// decimal representation that round-trips to the identical bit pattern
// (strconv's 'g' format with precision -1 guarantees exactly this);
// precision > 0 requests that many significant digits.
func FormatFloat(x float64, precision int) string {
	if precision <= 0 {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strconv.FormatFloat(x, 'g', precision, 64)
}

// FormatComplex formats a "re im" pair using the same precision rule as
// FormatFloat.
func FormatComplex(re, im float64, precision int) string {
	return FormatFloat(re, precision) + " " + FormatFloat(im, precision)
}
