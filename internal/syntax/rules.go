// SPDX-License-Identifier: MPL-2.0

package syntax

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/zowe/zowe-cli-sub019/pkg/cmddef"
)

type (
	// ruleInput is what every rule function sees: the option being checked,
	// its normalized value and the rest of the arguments.
	ruleInput struct {
		cmd   *cmddef.Command
		opt   *cmddef.Option
		value any
		args  *Normalized
		msg   messages
		state *evalState
	}

	// evalState is scratch space for one Validate call.
	evalState struct {
		// conflicts already reported, keyed by the sorted option pair
		conflicts map[string]bool
	}
)

func (in ruleInput) violation(rule Rule, message string) Violation {
	return Violation{Rule: rule, Subject: in.opt.DashForm(), Message: message, Definition: in.opt}
}

// evaluate dispatches one compiled constraint to its rule function.
func evaluate(in ruleInput, c cmddef.Constraint) []Violation {
	switch c := c.(type) {
	case cmddef.AllowableValuesConstraint:
		return checkAllowable(in, c)
	case cmddef.ConflictsWith:
		return checkConflicts(in, c)
	case cmddef.Implies:
		return checkImplies(in, c)
	case cmddef.ImpliesOneOf:
		return checkImpliesOneOf(in, c)
	case cmddef.NumericRange:
		return checkNumericRange(in, c)
	case cmddef.LengthRange:
		return checkLengthRange(in, c)
	case cmddef.NoDuplicates:
		return checkDuplicates(in)
	case cmddef.ValueImplies:
		return checkValueImplies(in, c)
	case cmddef.AbsenceImplies:
		// only meaningful while the owner is absent; see checkAbsence
		return nil
	default:
		return nil
	}
}

// checkAbsence runs while the owner is absent: every implied option must
// then be present.
func checkAbsence(in ruleInput, c cmddef.AbsenceImplies) []Violation {
	var missing []string
	for _, name := range c.Options {
		if !in.args.Specified(name) {
			missing = append(missing, canonicalName(in.cmd, name))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return []Violation{in.violation(RuleAbsenceImplies, in.msg.absence(in.opt, missing))}
}

func checkAllowable(in ruleInput, c cmddef.AllowableValuesConstraint) []Violation {
	var out []Violation
	for _, v := range valueStrings(in.value) {
		if !c.Matches(v) {
			out = append(out, in.violation(RuleAllowableValues, in.msg.notAllowed(in.opt, v, c.Literals())))
		}
	}
	return out
}

// checkConflicts reports each conflicting pair once, whichever side
// declared it.
func checkConflicts(in ruleInput, c cmddef.ConflictsWith) []Violation {
	var out []Violation
	for _, name := range c.Options {
		if !in.args.Specified(name) {
			continue
		}
		other := in.cmd.Option(name)
		key := pairKey(in.opt.Name, other.Name)
		if in.state.conflicts[key] {
			continue
		}
		in.state.conflicts[key] = true
		out = append(out, in.violation(RuleConflicts, in.msg.conflict(in.opt, other)))
	}
	return out
}

func checkImplies(in ruleInput, c cmddef.Implies) []Violation {
	var out []Violation
	for _, name := range c.Options {
		if !in.args.Specified(name) {
			out = append(out, in.violation(RuleImplies, in.msg.implies(in.opt, in.cmd.Option(name))))
		}
	}
	return out
}

func checkImpliesOneOf(in ruleInput, c cmddef.ImpliesOneOf) []Violation {
	for _, name := range c.Options {
		if in.args.Specified(name) {
			return nil
		}
	}
	names := make([]string, len(c.Options))
	for i, name := range c.Options {
		names[i] = canonicalName(in.cmd, name)
	}
	return []Violation{in.violation(RuleImpliesOneOf, in.msg.impliesOneOf(in.opt, names))}
}

func checkNumericRange(in ruleInput, c cmddef.NumericRange) []Violation {
	f, ok := in.value.(float64)
	if !ok || c.Range.Contains(f) {
		return nil
	}
	return []Violation{in.violation(RuleNumericRange, in.msg.numericRange(in.opt, f, c.Range))}
}

func checkLengthRange(in ruleInput, c cmddef.LengthRange) []Violation {
	s, ok := in.value.(string)
	if !ok || c.Range.Contains(float64(utf8.RuneCountInString(s))) {
		return nil
	}
	return []Violation{in.violation(RuleLengthRange, in.msg.lengthRange(in.opt.Display(), s, c.Range))}
}

// checkDuplicates reports every repeated value in a single violation, in the
// order the repeats were first seen.
func checkDuplicates(in ruleInput) []Violation {
	values, ok := in.value.([]string)
	if !ok {
		return nil
	}
	counts := make(map[string]int, len(values))
	var dups []string
	for _, v := range values {
		counts[v]++
		if counts[v] == 2 {
			dups = append(dups, v)
		}
	}
	if len(dups) == 0 {
		return nil
	}
	return []Violation{in.violation(RuleDuplicates, in.msg.duplicates(in.opt, dups))}
}

func checkValueImplies(in ruleInput, c cmddef.ValueImplies) []Violation {
	var out []Violation
	reported := make(map[string]bool)
	for _, v := range valueStrings(in.value) {
		for _, trigger := range c.Triggers {
			matched := v == trigger.Value
			if !trigger.CaseSensitive {
				matched = strings.EqualFold(v, trigger.Value)
			}
			if !matched {
				continue
			}
			for _, name := range trigger.Options {
				key := trigger.Value + "\x00" + name
				if reported[key] || in.args.Specified(name) {
					continue
				}
				reported[key] = true
				out = append(out, in.violation(RuleValueImplies, in.msg.valueImplies(in.opt, trigger.Value, in.cmd.Option(name))))
			}
		}
	}
	return out
}

// checkType reports values that do not fit the declared type. Number and
// boolean failures were found during coercion and are passed in.
func checkType(in ruleInput, coercion *Violation, stat StatFunc) []Violation {
	if coercion != nil {
		return []Violation{*coercion}
	}
	s, ok := in.value.(string)
	if !ok {
		return nil
	}
	switch in.opt.GetType() {
	case cmddef.OptionTypeExistingLocalFile:
		if _, err := stat(s); err != nil {
			return []Violation{in.violation(RuleType, in.msg.missingFile(in.opt, s))}
		}
	case cmddef.OptionTypeJSON:
		var doc any
		if err := json.Unmarshal([]byte(s), &doc); err != nil {
			return []Violation{in.violation(RuleType, in.msg.notJSON(in.opt, s, err))}
		}
	}
	return nil
}

// emptyValue reports "" for types that need a value and a bare true for
// non-boolean options.
func emptyValue(opt *cmddef.Option, value any) bool {
	switch v := value.(type) {
	case string:
		return v == "" && opt.GetType() != cmddef.OptionTypeStringOrEmpty
	case bool:
		return v && !opt.IsBoolean()
	default:
		return false
	}
}

// valueStrings returns the value as strings: each element of a list, or a
// single rendered scalar.
func valueStrings(v any) []string {
	if list, ok := v.([]string); ok {
		return list
	}
	if b, ok := v.(bool); ok {
		if b {
			return []string{"true"}
		}
		return []string{"false"}
	}
	return []string{scalarString(v)}
}

func canonicalName(cmd *cmddef.Command, spelling string) string {
	if opt := cmd.Option(spelling); opt != nil {
		return opt.Name
	}
	return spelling
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "\x00" + b
}
