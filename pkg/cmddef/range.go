// SPDX-License-Identifier: MPL-2.0

package cmddef

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidRange is the sentinel error wrapped by InvalidRangeError.
var ErrInvalidRange = errors.New("invalid range")

type (
	// Range is an inclusive [min, max] pair. A nil Range is unset.
	Range []float64

	// InvalidRangeError is returned when a Range does not hold exactly two
	// bounds in ascending order.
	InvalidRangeError struct {
		Value Range
	}
)

// Error implements the error interface.
func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range %v: expected [min, max] with min <= max", []float64(e.Value))
}

// Unwrap returns ErrInvalidRange for errors.Is() compatibility.
func (e *InvalidRangeError) Unwrap() error { return ErrInvalidRange }

// IsSet reports whether the range carries bounds.
func (r Range) IsSet() bool { return r != nil }

// IsValid returns whether the range is unset or a well-formed [min, max].
func (r Range) IsValid() (bool, []error) {
	if r == nil {
		return true, nil
	}
	if len(r) != 2 || r[0] > r[1] {
		return false, []error{&InvalidRangeError{Value: r}}
	}
	return true, nil
}

// Min returns the lower bound.
func (r Range) Min() float64 { return r[0] }

// Max returns the upper bound.
func (r Range) Max() float64 { return r[1] }

// Contains reports whether v lies within the inclusive bounds.
func (r Range) Contains(v float64) bool {
	return v >= r[0] && v <= r[1]
}

// String renders the bounds without trailing zeros, e.g. "[1, 12]".
func (r Range) String() string {
	if len(r) != 2 {
		return fmt.Sprint([]float64(r))
	}
	return "[" + FormatNumber(r[0]) + ", " + FormatNumber(r[1]) + "]"
}

// FormatNumber renders a float in its shortest decimal form.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
