// SPDX-License-Identifier: MPL-2.0

package cmddef

import (
	"strings"
	"unicode"
)

const (
	longDash  = "--"
	shortDash = "-"
)

// DashForm returns an option name as it is typed on the command line:
// "--name" for names longer than one character and "-n" otherwise.
func DashForm(name string) string {
	if len(name) > 1 {
		return longDash + name
	}
	return shortDash + name
}

// AliasSummary renders aliases in their dash forms, e.g. "(--sbn,-n)".
// It returns "" when there are no aliases.
func AliasSummary(aliases []string) string {
	if len(aliases) == 0 {
		return ""
	}
	forms := make([]string, len(aliases))
	for i, a := range aliases {
		forms[i] = DashForm(a)
	}
	return "(" + strings.Join(forms, ",") + ")"
}

// CamelCase converts a kebab-case name to camelCase: "should-be-number"
// becomes "shouldBeNumber". Names without dashes are returned unchanged.
func CamelCase(name string) string {
	if !strings.Contains(name, "-") {
		return name
	}
	var b strings.Builder
	b.Grow(len(name))
	upper := false
	for _, r := range name {
		if r == '-' {
			// leading dashes are kept, interior ones capitalize the next rune
			if b.Len() == 0 {
				b.WriteRune(r)
				continue
			}
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// KebabCase converts a camelCase name to kebab-case: "shouldBeNumber"
// becomes "should-be-number".
func KebabCase(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// PositionalSyntax renders a positional as shown in usage strings:
// "<name>" when required, "[name]" otherwise.
func PositionalSyntax(required bool, name string) string {
	if required {
		return "<" + name + ">"
	}
	return "[" + name + "]"
}
