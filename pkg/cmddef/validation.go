// SPDX-License-Identifier: MPL-2.0

package cmddef

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// SeverityError marks a definition the engine cannot interpret.
	SeverityError Severity = iota
	// SeverityWarning marks a suspicious but usable definition.
	SeverityWarning
)

var (
	// ErrInvalidDefinition is the sentinel wrapped by ValidationErrors.
	ErrInvalidDefinition = errors.New("invalid command definition")
	// ErrUnknownOptionReference is returned when a constraint names an option that is not defined.
	ErrUnknownOptionReference = errors.New("no such option was defined")
	// ErrInvalidRegex is returned when a pattern in a definition does not compile.
	ErrInvalidRegex = errors.New("invalid regular expression")

	optionNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)
)

type (
	// Severity is the level of a ValidationError.
	Severity int

	// ValidationError is one problem found in a definition tree.
	ValidationError struct {
		// Path locates the problem, e.g. "zos-jobs submit data-set option --volume".
		Path     string
		Message  string
		Severity Severity
		// Cause carries a typed error when one exists.
		Cause error
	}

	// ValidationErrors collects every problem found by Validate.
	ValidationErrors []ValidationError

	// UnknownOptionReferenceError reports a reference to an undefined option.
	UnknownOptionReferenceError struct {
		Command   string
		Option    string
		Attribute string
		Reference string
	}

	// InvalidRegexError reports a pattern that does not compile.
	InvalidRegexError struct {
		Pattern string
		Reason  string
	}
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// Unwrap returns the typed cause, if any.
func (e ValidationError) Unwrap() error { return e.Cause }

// Error implements the error interface.
func (v ValidationErrors) Error() string {
	if len(v) == 1 {
		return v[0].Error()
	}
	lines := make([]string, len(v))
	for i, e := range v {
		lines[i] = "  " + e.Error()
	}
	return fmt.Sprintf("%d definition problems:\n%s", len(v), strings.Join(lines, "\n"))
}

// Unwrap exposes the sentinel and each entry's cause to errors.Is/As.
func (v ValidationErrors) Unwrap() []error {
	errs := []error{ErrInvalidDefinition}
	for _, e := range v {
		if e.Cause != nil {
			errs = append(errs, e.Cause)
		}
	}
	return errs
}

// HasErrors reports whether any entry has SeverityError.
func (v ValidationErrors) HasErrors() bool {
	for _, e := range v {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Error implements the error interface.
func (e *UnknownOptionReferenceError) Error() string {
	return fmt.Sprintf("No such option was defined: %s (referenced by %s of %s)", e.Reference, e.Attribute, e.Option)
}

// Unwrap returns ErrUnknownOptionReference for errors.Is() compatibility.
func (e *UnknownOptionReferenceError) Unwrap() error { return ErrUnknownOptionReference }

// Error implements the error interface.
func (e *InvalidRegexError) Error() string {
	return fmt.Sprintf("invalid regular expression %q: %s", e.Pattern, e.Reason)
}

// Unwrap returns ErrInvalidRegex for errors.Is() compatibility.
func (e *InvalidRegexError) Unwrap() error { return ErrInvalidRegex }

// Validate checks the tree rooted at c and returns nil or ValidationErrors.
// Every node is checked; problems are collected rather than returned on the
// first hit.
func (c *Command) Validate() error {
	var errs ValidationErrors
	c.Walk(func(path []string, cmd *Command) {
		errs = append(errs, cmd.validateNode(strings.TrimSpace(strings.Join(path, " ")))...)
	})
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (c *Command) validateNode(path string) ValidationErrors {
	var errs ValidationErrors
	add := func(where, msg string, cause error) {
		errs = append(errs, ValidationError{Path: strings.TrimSpace(path + " " + where), Message: msg, Cause: cause})
	}

	if ok, typeErrs := c.Type.IsValid(); !ok {
		add("", typeErrs[0].Error(), typeErrs[0])
	}

	seenChildren := make(map[string]bool)
	for _, child := range c.Children {
		if child.Name == "" {
			add("", "child command has an empty name", nil)
			continue
		}
		for _, n := range append([]string{child.Name}, child.Aliases...) {
			if seenChildren[n] {
				add("", fmt.Sprintf("child command name or alias %q is used more than once", n), nil)
			}
			seenChildren[n] = true
		}
	}

	c.validateOptions(add)
	c.validatePositionals(add)

	for _, group := range []struct {
		attr  string
		names []string
	}{{"mustSpecifyOne", c.MustSpecifyOne}, {"onlyOneOf", c.OnlyOneOf}} {
		for _, name := range group.names {
			if c.Option(name) == nil {
				add("", fmt.Sprintf("%s references undefined option %q", group.attr, name),
					&UnknownOptionReferenceError{Command: path, Option: "command", Attribute: group.attr, Reference: name})
			}
		}
	}
	return errs
}

func (c *Command) validateOptions(add func(where, msg string, cause error)) {
	seen := make(map[string]string) // spelling -> owning option
	for _, opt := range c.Options {
		where := "option " + DashForm(opt.Name)
		if opt.Name == "" {
			add("", "option has an empty name", nil)
			continue
		}
		if !optionNamePattern.MatchString(opt.Name) {
			add(where, fmt.Sprintf("option name %q must start with a letter or digit and contain only letters, digits, '-' or '_'", opt.Name), nil)
		}
		if ok, typeErrs := opt.Type.IsValid(); !ok {
			add(where, typeErrs[0].Error(), typeErrs[0])
		}
		for _, s := range append([]string{opt.Name}, opt.Aliases...) {
			if owner, dup := seen[s]; dup {
				add(where, fmt.Sprintf("name or alias %q is already used by --%s", s, owner), nil)
				continue
			}
			seen[s] = opt.Name
		}
		if opt.AllowableValues != nil && len(opt.AllowableValues.Values) == 0 {
			add(where, "allowableValues must list at least one value", nil)
		}
		constraints, err := opt.Constraints()
		if err != nil {
			add(where, err.Error(), err)
			continue
		}
		for _, con := range constraints {
			for _, ref := range References(con) {
				if c.Option(ref) == nil {
					refErr := &UnknownOptionReferenceError{Command: c.Name, Option: opt.Name, Attribute: string(con.Kind()), Reference: ref}
					add(where, refErr.Error(), refErr)
				}
			}
		}
	}
}

func (c *Command) validatePositionals(add func(where, msg string, cause error)) {
	seen := make(map[string]bool)
	for i, pos := range c.Positionals {
		where := "positional " + pos.Name
		if pos.BaseName() == "" {
			add("", fmt.Sprintf("positional #%d has an empty name", i+1), nil)
			continue
		}
		if seen[pos.BaseName()] {
			add(where, "positional name is used more than once", nil)
		}
		seen[pos.BaseName()] = true
		if ok, typeErrs := pos.Type.IsValid(); !ok {
			add(where, typeErrs[0].Error(), typeErrs[0])
		}
		if pos.IsVariadic() && i != len(c.Positionals)-1 {
			add(where, "a variadic positional must be the last positional", nil)
		}
		if pos.Regex != "" {
			if _, err := regexp.Compile(pos.Regex); err != nil {
				reErr := &InvalidRegexError{Pattern: pos.Regex, Reason: err.Error()}
				add(where, reErr.Error(), reErr)
			}
		}
		if ok, rangeErrs := pos.StringLengthRange.IsValid(); !ok {
			add(where, rangeErrs[0].Error(), rangeErrs[0])
		}
	}
}
