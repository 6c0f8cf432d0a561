// SPDX-License-Identifier: MPL-2.0

package syntax

// SyntaxErrorHeader precedes every reported violation.
const SyntaxErrorHeader = "Syntax Error"

// Rules, listed in the order they are evaluated.
const (
	RuleEmptyValue        Rule = "emptyValue"
	RuleUnknownPositional Rule = "unknownPositional"
	RuleMustSpecifyOne    Rule = "mustSpecifyOne"
	RuleOnlyOneOf         Rule = "onlyOneOf"
	RuleMissingPositional Rule = "missingPositional"
	RulePositionalType    Rule = "positionalType"
	RulePositionalFormat  Rule = "positionalFormat"
	RulePositionalLength  Rule = "positionalLength"
	RuleRequired          Rule = "required"
	RuleAbsenceImplies    Rule = "absenceImplications"
	RuleMultiple          Rule = "multipleOccurrence"
	RuleAllowableValues   Rule = "allowableValues"
	RuleConflicts         Rule = "conflictsWith"
	RuleImplies           Rule = "implies"
	RuleImpliesOneOf      Rule = "impliesOneOf"
	RuleType              Rule = "type"
	RuleNumericRange      Rule = "numericValueRange"
	RuleLengthRange       Rule = "stringLengthRange"
	RuleDuplicates        Rule = "arrayAllowDuplicate"
	RuleValueImplies      Rule = "valueImplications"
)

type (
	// Rule names the check that produced a Violation.
	Rule string

	// Violation is one failed check.
	Violation struct {
		Rule Rule
		// Subject is the dash form of the offending option, or the
		// positional name.
		Subject string
		Message string
		// Definition is the *cmddef.Option or *cmddef.Positional involved,
		// or nil for command-level rules.
		Definition any
	}

	// Result is the outcome of one validation.
	Result struct {
		Valid      bool
		Violations []Violation
		// Args is the normalized argument view the rules ran against.
		Args *Normalized
	}

	// Sink receives rendered violations. response.Response implements it.
	Sink interface {
		ErrorHeader(header string)
		Error(message string) string
		AppendValidatorError(message, optionInError string, definition any)
	}
)

// Messages returns the violation messages in evaluation order.
func (r *Result) Messages() []string {
	msgs := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		msgs[i] = v.Message
	}
	return msgs
}

// Has reports whether any violation came from rule.
func (r *Result) Has(rule Rule) bool {
	for _, v := range r.Violations {
		if v.Rule == rule {
			return true
		}
	}
	return false
}

// Report writes every violation to sink, each under a syntax error header.
func (r *Result) Report(sink Sink) {
	for _, v := range r.Violations {
		sink.ErrorHeader(SyntaxErrorHeader)
		msg := sink.Error(v.Message)
		sink.AppendValidatorError(msg, v.Subject, v.Definition)
	}
}

func newResult(args *Normalized, violations []Violation) *Result {
	return &Result{Valid: len(violations) == 0, Violations: violations, Args: args}
}
