// SPDX-License-Identifier: MPL-2.0

package syntax

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/zowe/zowe-cli-sub019/pkg/cmddef"
)

// compiledPositional pairs a positional with its anchored regex, if any.
type compiledPositional struct {
	pos *cmddef.Positional
	re  *regexp.Regexp
}

func compilePositionals(positionals []*cmddef.Positional) ([]compiledPositional, error) {
	out := make([]compiledPositional, len(positionals))
	for i, pos := range positionals {
		out[i].pos = pos
		if pos.Regex == "" {
			continue
		}
		re, err := regexp.Compile("^(?:" + pos.Regex + ")$")
		if err != nil {
			return nil, fmt.Errorf("positional %q: %w", pos.Name, err)
		}
		out[i].re = re
	}
	return out, nil
}

// missingToken reports whether a slot was left without a usable token.
func missingToken(pos *cmddef.Positional, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	return !pos.IsVariadic() && tokens[0] == "" && pos.GetType() != cmddef.PositionalTypeStringOrEmpty
}

// checkPositionals reports missing required slots first, then the value
// checks of every supplied token.
func (v *Validator) checkPositionals(args *Normalized) []Violation {
	slots, _ := splitTokens(v.cmd.Positionals, args.Positionals())

	var out []Violation
	for i, cp := range v.positionals {
		if cp.pos.Required && missingToken(cp.pos, slots[i]) {
			out = append(out, positionalViolation(cp.pos, RuleMissingPositional, v.msg.missingPositional(cp.pos)))
		}
	}

	for i, cp := range v.positionals {
		if missingToken(cp.pos, slots[i]) {
			continue
		}
		for _, token := range slots[i] {
			out = append(out, v.checkToken(cp, token)...)
		}
	}
	return out
}

func (v *Validator) checkToken(cp compiledPositional, token string) []Violation {
	var out []Violation
	if cp.re != nil && !cp.re.MatchString(token) {
		out = append(out, positionalViolation(cp.pos, RulePositionalFormat, v.msg.positionalFormat(cp.pos, token)))
	}
	if cp.pos.GetType() == cmddef.PositionalTypeNumber {
		if _, ok := parseNumber(token); !ok {
			out = append(out, positionalViolation(cp.pos, RulePositionalType, v.msg.positionalNotNumber(cp.pos, token)))
		}
	}
	if r := cp.pos.StringLengthRange; r.IsSet() && !r.Contains(float64(utf8.RuneCountInString(token))) {
		subject := cmddef.PositionalSyntax(cp.pos.Required, cp.pos.BaseName())
		out = append(out, positionalViolation(cp.pos, RulePositionalLength, v.msg.lengthRange(subject, token, r)))
	}
	return out
}

func positionalViolation(pos *cmddef.Positional, rule Rule, message string) Violation {
	return Violation{Rule: rule, Subject: pos.BaseName(), Message: message, Definition: pos}
}
