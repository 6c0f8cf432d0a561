// SPDX-License-Identifier: MPL-2.0

package cmddef

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	// KindAbsenceImplies requires options when the owner is absent.
	KindAbsenceImplies ConstraintKind = "absenceImplications"
	// KindAllowableValues restricts values to literals or patterns.
	KindAllowableValues ConstraintKind = "allowableValues"
	// KindConflictsWith forbids options alongside the owner.
	KindConflictsWith ConstraintKind = "conflictsWith"
	// KindImplies requires options alongside the owner.
	KindImplies ConstraintKind = "implies"
	// KindImpliesOneOf requires at least one option alongside the owner.
	KindImpliesOneOf ConstraintKind = "impliesOneOf"
	// KindNumericRange bounds numeric values.
	KindNumericRange ConstraintKind = "numericValueRange"
	// KindLengthRange bounds string lengths.
	KindLengthRange ConstraintKind = "stringLengthRange"
	// KindNoDuplicates forbids repeated array values.
	KindNoDuplicates ConstraintKind = "arrayAllowDuplicate"
	// KindValueImplies requires options when the owner has a given value.
	KindValueImplies ConstraintKind = "valueImplications"
)

type (
	// ConstraintKind tags a Constraint variant.
	ConstraintKind string

	// Constraint is one compiled rule attached to an option. The set of
	// implementations is closed; evaluators switch on the concrete type.
	Constraint interface {
		Kind() ConstraintKind
		constraint()
	}

	// AbsenceImplies lists options that must be present when the owner is absent.
	AbsenceImplies struct{ Options []string }

	// AllowedPattern is one compiled allowable-value entry.
	AllowedPattern struct {
		// Literal is the entry as declared.
		Literal string
		// Pattern is the anchored expression matched against values.
		Pattern *regexp.Regexp
	}

	// AllowableValuesConstraint restricts values to the declared entries.
	AllowableValuesConstraint struct {
		Entries       []AllowedPattern
		CaseSensitive bool
	}

	// ConflictsWith lists options that must not accompany the owner.
	ConflictsWith struct{ Options []string }

	// Implies lists options that must accompany the owner.
	Implies struct{ Options []string }

	// ImpliesOneOf lists options of which at least one must accompany the owner.
	ImpliesOneOf struct{ Options []string }

	// NumericRange bounds a numeric value, inclusive.
	NumericRange struct{ Range Range }

	// LengthRange bounds the length of a string value, inclusive.
	LengthRange struct{ Range Range }

	// NoDuplicates forbids an array value from repeating an element.
	NoDuplicates struct{}

	// ValueTrigger is one entry of a ValueImplies constraint.
	ValueTrigger struct {
		Value         string
		Options       []string
		CaseSensitive bool
	}

	// ValueImplies requires options when the owner carries a trigger value.
	// Triggers are sorted by value so evaluation order is stable.
	ValueImplies struct{ Triggers []ValueTrigger }
)

func (AbsenceImplies) Kind() ConstraintKind            { return KindAbsenceImplies }
func (AllowableValuesConstraint) Kind() ConstraintKind { return KindAllowableValues }
func (ConflictsWith) Kind() ConstraintKind             { return KindConflictsWith }
func (Implies) Kind() ConstraintKind                   { return KindImplies }
func (ImpliesOneOf) Kind() ConstraintKind              { return KindImpliesOneOf }
func (NumericRange) Kind() ConstraintKind              { return KindNumericRange }
func (LengthRange) Kind() ConstraintKind               { return KindLengthRange }
func (NoDuplicates) Kind() ConstraintKind              { return KindNoDuplicates }
func (ValueImplies) Kind() ConstraintKind              { return KindValueImplies }

func (AbsenceImplies) constraint()            {}
func (AllowableValuesConstraint) constraint() {}
func (ConflictsWith) constraint()             {}
func (Implies) constraint()                   {}
func (ImpliesOneOf) constraint()              {}
func (NumericRange) constraint()              {}
func (LengthRange) constraint()               {}
func (NoDuplicates) constraint()              {}
func (ValueImplies) constraint()              {}

// Matches reports whether value equals a declared entry or fully matches
// its anchored pattern.
func (c AllowableValuesConstraint) Matches(value string) bool {
	for _, entry := range c.Entries {
		if c.CaseSensitive && value == entry.Literal {
			return true
		}
		if !c.CaseSensitive && strings.EqualFold(value, entry.Literal) {
			return true
		}
		if entry.Pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// Literals returns the declared entries.
func (c AllowableValuesConstraint) Literals() []string {
	out := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		out[i] = e.Literal
	}
	return out
}

// Constraints compiles the option's constraint attributes into variants in
// evaluation order: absence implications, allowable values, conflicts,
// implications, implies-one-of, numeric range, length range, duplicates,
// value implications.
func (o *Option) Constraints() ([]Constraint, error) {
	var out []Constraint
	if len(o.AbsenceImplications) > 0 {
		out = append(out, AbsenceImplies{Options: o.AbsenceImplications})
	}
	if o.AllowableValues != nil {
		c, err := compileAllowable(o.AllowableValues)
		if err != nil {
			return nil, fmt.Errorf("option %s: %w", o.DashForm(), err)
		}
		out = append(out, c)
	}
	if len(o.ConflictsWith) > 0 {
		out = append(out, ConflictsWith{Options: o.ConflictsWith})
	}
	if len(o.Implies) > 0 {
		out = append(out, Implies{Options: o.Implies})
	}
	if len(o.ImpliesOneOf) > 0 {
		out = append(out, ImpliesOneOf{Options: o.ImpliesOneOf})
	}
	if o.NumericValueRange.IsSet() {
		if ok, errs := o.NumericValueRange.IsValid(); !ok {
			return nil, fmt.Errorf("option %s numericValueRange: %w", o.DashForm(), errs[0])
		}
		out = append(out, NumericRange{Range: o.NumericValueRange})
	}
	if o.StringLengthRange.IsSet() {
		if ok, errs := o.StringLengthRange.IsValid(); !ok {
			return nil, fmt.Errorf("option %s stringLengthRange: %w", o.DashForm(), errs[0])
		}
		out = append(out, LengthRange{Range: o.StringLengthRange})
	}
	if o.IsArray() && !o.AllowsDuplicates() {
		out = append(out, NoDuplicates{})
	}
	if len(o.ValueImplications) > 0 {
		out = append(out, compileValueImplies(o.ValueImplications))
	}
	return out, nil
}

// AllowablePattern anchors an allowable-value entry so that it must match
// the whole value. One leading "^" and one trailing unescaped "$" are
// dropped before the entry is wrapped in "^(?:...)$", so alternations such
// as "red|blue" cannot match a prefix or a suffix.
func AllowablePattern(entry string) string {
	core := strings.TrimPrefix(entry, "^")
	if strings.HasSuffix(core, "$") && !strings.HasSuffix(core, `\$`) {
		core = strings.TrimSuffix(core, "$")
	}
	return "^(?:" + core + ")$"
}

func compileAllowable(av *AllowableValues) (AllowableValuesConstraint, error) {
	c := AllowableValuesConstraint{CaseSensitive: av.CaseSensitive}
	for _, v := range av.Values {
		pattern := AllowablePattern(v)
		if !av.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return c, &InvalidRegexError{Pattern: v, Reason: err.Error()}
		}
		c.Entries = append(c.Entries, AllowedPattern{Literal: v, Pattern: re})
	}
	return c, nil
}

func compileValueImplies(m map[string]ValueImplication) ValueImplies {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	c := ValueImplies{Triggers: make([]ValueTrigger, 0, len(keys))}
	for _, k := range keys {
		vi := m[k]
		c.Triggers = append(c.Triggers, ValueTrigger{
			Value:         k,
			Options:       vi.ImpliedOptionNames,
			CaseSensitive: vi.IsCaseSensitive,
		})
	}
	return c
}

// References returns every option name the constraint points at.
func References(c Constraint) []string {
	switch v := c.(type) {
	case AbsenceImplies:
		return v.Options
	case ConflictsWith:
		return v.Options
	case Implies:
		return v.Options
	case ImpliesOneOf:
		return v.Options
	case ValueImplies:
		var refs []string
		for _, t := range v.Triggers {
			refs = append(refs, t.Options...)
		}
		return refs
	default:
		return nil
	}
}
