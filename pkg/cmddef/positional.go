// SPDX-License-Identifier: MPL-2.0

package cmddef

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// PositionalTypeString is the default positional type.
	PositionalTypeString PositionalType = "string"
	// PositionalTypeNumber requires a numeric token.
	PositionalTypeNumber PositionalType = "number"
	// PositionalTypeStringOrEmpty accepts an empty token.
	PositionalTypeStringOrEmpty PositionalType = "stringOrEmpty"

	// VariadicMarker is the name suffix of a positional that consumes all
	// remaining tokens.
	VariadicMarker = "..."
)

// ErrInvalidPositionalType is returned when a PositionalType value is not one of the defined types.
var ErrInvalidPositionalType = errors.New("invalid positional type")

type (
	// PositionalType is the declared value type of a positional.
	PositionalType string

	// InvalidPositionalTypeError is returned when a PositionalType value is not recognized.
	// It wraps ErrInvalidPositionalType for errors.Is() compatibility.
	InvalidPositionalTypeError struct {
		Value PositionalType
	}

	// Positional is one positional argument slot of a command.
	Positional struct {
		// Name identifies the slot; a "..." suffix marks it variadic.
		Name        string         `json:"name" yaml:"name" toml:"name"`
		Description string         `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
		Type        PositionalType `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
		Required    bool           `json:"required,omitempty" yaml:"required,omitempty" toml:"required,omitempty"`
		// Regex must match the whole token when set.
		Regex             string `json:"regex,omitempty" yaml:"regex,omitempty" toml:"regex,omitempty"`
		StringLengthRange Range  `json:"stringLengthRange,omitempty" yaml:"stringLengthRange,omitempty" toml:"stringLengthRange,omitempty"`
	}
)

// Error implements the error interface for InvalidPositionalTypeError.
func (e *InvalidPositionalTypeError) Error() string {
	return fmt.Sprintf("invalid positional type %q (valid: string, number, stringOrEmpty)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidPositionalTypeError) Unwrap() error {
	return ErrInvalidPositionalType
}

// IsValid returns whether the PositionalType is one of the defined types,
// and a list of validation errors if it is not.
func (t PositionalType) IsValid() (bool, []error) {
	switch t {
	case PositionalTypeString, PositionalTypeNumber, PositionalTypeStringOrEmpty, "":
		return true, nil
	default:
		return false, []error{&InvalidPositionalTypeError{Value: t}}
	}
}

// GetType returns the effective type of the positional (defaults to "string").
func (p *Positional) GetType() PositionalType {
	if p.Type == "" {
		return PositionalTypeString
	}
	return p.Type
}

// IsVariadic reports whether the positional consumes all remaining tokens.
func (p *Positional) IsVariadic() bool {
	return strings.HasSuffix(p.Name, VariadicMarker)
}

// BaseName returns the name without the variadic marker.
func (p *Positional) BaseName() string {
	return strings.TrimSuffix(p.Name, VariadicMarker)
}
