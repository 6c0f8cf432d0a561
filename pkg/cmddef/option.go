// SPDX-License-Identifier: MPL-2.0

package cmddef

import (
	"errors"
	"fmt"
)

const (
	// OptionTypeString is the default option type.
	OptionTypeString OptionType = "string"
	// OptionTypeNumber accepts decimal numbers; values are coerced to float64.
	OptionTypeNumber OptionType = "number"
	// OptionTypeBoolean is a flag; presence without a value means true.
	OptionTypeBoolean OptionType = "boolean"
	// OptionTypeArray accumulates one or more string values.
	OptionTypeArray OptionType = "array"
	// OptionTypeExistingLocalFile is a path that must exist on the local filesystem.
	OptionTypeExistingLocalFile OptionType = "existingLocalFile"
	// OptionTypeStringOrEmpty is a string that may be given without a value.
	OptionTypeStringOrEmpty OptionType = "stringOrEmpty"
	// OptionTypeJSON is a string that must parse as a JSON document.
	OptionTypeJSON OptionType = "json"
)

// ErrInvalidOptionType is returned when an OptionType value is not one of the defined types.
var ErrInvalidOptionType = errors.New("invalid option type")

type (
	// OptionType is the declared value type of an option.
	OptionType string

	// InvalidOptionTypeError is returned when an OptionType value is not recognized.
	// It wraps ErrInvalidOptionType for errors.Is() compatibility.
	InvalidOptionTypeError struct {
		Value OptionType
	}

	// AllowableValues restricts an option to a set of literal values or
	// regular expressions.
	AllowableValues struct {
		Values        []string `json:"values" yaml:"values" toml:"values"`
		CaseSensitive bool     `json:"caseSensitive,omitempty" yaml:"caseSensitive,omitempty" toml:"caseSensitive,omitempty"`
	}

	// ValueImplication lists the options that become mandatory when an
	// option is given a particular value.
	ValueImplication struct {
		ImpliedOptionNames []string `json:"impliedOptionNames" yaml:"impliedOptionNames" toml:"impliedOptionNames"`
		IsCaseSensitive    bool     `json:"isCaseSensitive,omitempty" yaml:"isCaseSensitive,omitempty" toml:"isCaseSensitive,omitempty"`
	}

	// Option is one definable argument of a command.
	Option struct {
		// Name is the canonical kebab-case name, used as --name.
		Name string `json:"name" yaml:"name" toml:"name"`
		// Aliases are alternate spellings; single characters become -x.
		Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty" toml:"aliases,omitempty"`
		// Description is shown in diagnostics and help.
		Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
		// Type defaults to "string" (see GetType).
		Type OptionType `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
		// Required options must be present after defaults are applied.
		Required bool `json:"required,omitempty" yaml:"required,omitempty" toml:"required,omitempty"`
		// DefaultValue is applied by the parser when the option is not supplied.
		DefaultValue any `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty" toml:"defaultValue,omitempty"`
		// Group is used for display grouping only.
		Group string `json:"group,omitempty" yaml:"group,omitempty" toml:"group,omitempty"`
		// Hidden options are accepted but left out of help listings.
		Hidden bool `json:"hidden,omitempty" yaml:"hidden,omitempty" toml:"hidden,omitempty"`

		AllowableValues     *AllowableValues            `json:"allowableValues,omitempty" yaml:"allowableValues,omitempty" toml:"allowableValues,omitempty"`
		ConflictsWith       []string                    `json:"conflictsWith,omitempty" yaml:"conflictsWith,omitempty" toml:"conflictsWith,omitempty"`
		Implies             []string                    `json:"implies,omitempty" yaml:"implies,omitempty" toml:"implies,omitempty"`
		AbsenceImplications []string                    `json:"absenceImplications,omitempty" yaml:"absenceImplications,omitempty" toml:"absenceImplications,omitempty"`
		ImpliesOneOf        []string                    `json:"impliesOneOf,omitempty" yaml:"impliesOneOf,omitempty" toml:"impliesOneOf,omitempty"`
		ValueImplications   map[string]ValueImplication `json:"valueImplications,omitempty" yaml:"valueImplications,omitempty" toml:"valueImplications,omitempty"`
		StringLengthRange   Range                       `json:"stringLengthRange,omitempty" yaml:"stringLengthRange,omitempty" toml:"stringLengthRange,omitempty"`
		NumericValueRange   Range                       `json:"numericValueRange,omitempty" yaml:"numericValueRange,omitempty" toml:"numericValueRange,omitempty"`
		// ArrayAllowDuplicate is nil when unset, which allows duplicates.
		ArrayAllowDuplicate *bool `json:"arrayAllowDuplicate,omitempty" yaml:"arrayAllowDuplicate,omitempty" toml:"arrayAllowDuplicate,omitempty"`
	}
)

// Error implements the error interface for InvalidOptionTypeError.
func (e *InvalidOptionTypeError) Error() string {
	return fmt.Sprintf("invalid option type %q (valid: string, number, boolean, array, existingLocalFile, stringOrEmpty, json)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidOptionTypeError) Unwrap() error {
	return ErrInvalidOptionType
}

// IsValid returns whether the OptionType is one of the defined types,
// and a list of validation errors if it is not.
// The zero value ("") is valid; it is treated as "string" by GetType().
func (t OptionType) IsValid() (bool, []error) {
	switch t {
	case OptionTypeString, OptionTypeNumber, OptionTypeBoolean, OptionTypeArray,
		OptionTypeExistingLocalFile, OptionTypeStringOrEmpty, OptionTypeJSON, "":
		return true, nil
	default:
		return false, []error{&InvalidOptionTypeError{Value: t}}
	}
}

// String returns the string representation of the OptionType.
func (t OptionType) String() string { return string(t) }

// GetType returns the effective type of the option (defaults to "string").
func (o *Option) GetType() OptionType {
	if o.Type == "" {
		return OptionTypeString
	}
	return o.Type
}

// IsArray reports whether the option accumulates multiple values.
func (o *Option) IsArray() bool {
	return o.GetType() == OptionTypeArray
}

// IsBoolean reports whether the option is a flag.
func (o *Option) IsBoolean() bool {
	return o.GetType() == OptionTypeBoolean
}

// AllowsDuplicates reports whether an array option may repeat a value.
func (o *Option) AllowsDuplicates() bool {
	return o.ArrayAllowDuplicate == nil || *o.ArrayAllowDuplicate
}

// DashForm returns the option as typed on the command line, e.g. "--name".
func (o *Option) DashForm() string {
	return DashForm(o.Name)
}

// Display returns the dash form followed by the alias summary, for example
// "--should-be-number (--sbn)".
func (o *Option) Display() string {
	if summary := AliasSummary(o.Aliases); summary != "" {
		return o.DashForm() + " " + summary
	}
	return o.DashForm()
}

// Spellings returns every key under which the option may appear in a parsed
// argument map: the name, its camelCase form, each alias and its camelCase
// form. The canonical name is always first and the result has no repeats.
func (o *Option) Spellings() []string {
	spellings := make([]string, 0, 2+2*len(o.Aliases))
	seen := make(map[string]bool, cap(spellings))
	add := func(s string) {
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		spellings = append(spellings, s)
	}
	add(o.Name)
	add(CamelCase(o.Name))
	for _, alias := range o.Aliases {
		add(alias)
		add(CamelCase(alias))
	}
	return spellings
}
