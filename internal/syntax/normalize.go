// SPDX-License-Identifier: MPL-2.0

package syntax

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zowe/zowe-cli-sub019/pkg/cmddef"
)

// Normalize canonicalizes args for cmd, a node of tree. It never modifies
// args. Coercion failures are returned as violations and the offending value
// is kept as supplied.
func Normalize(cmd, tree *cmddef.Command, args Arguments) (*Normalized, []Violation) {
	n, issues := normalize(cmd, cmd.PathLength(tree), args, messages{width: defaultWrapWidth})
	var violations []Violation
	for _, opt := range cmd.Options {
		if v, ok := issues[opt.Name]; ok {
			violations = append(violations, v)
		}
	}
	return n, violations
}

// normalize returns the coercion failures keyed by canonical option name.
func normalize(cmd *cmddef.Command, pathLen int, args Arguments, msg messages) (*Normalized, map[string]Violation) {
	n := &Normalized{
		values:    make(map[string]any),
		index:     newIndex(cmd),
		pathLen:   pathLen,
		slots:     make(map[string]any),
		slotIndex: make(map[string]string),
		extras:    make(map[string]any),
	}
	for _, pos := range cmd.Positionals {
		n.slotIndex[pos.BaseName()] = pos.BaseName()
		n.slotIndex[cmddef.CamelCase(pos.BaseName())] = pos.BaseName()
	}

	for key, v := range args {
		_, isOption := n.index[key]
		_, isSlot := n.slotIndex[key]
		if key == PositionalsKey || isOption || isSlot {
			continue
		}
		n.extras[key] = cloneValue(v)
	}

	issues := make(map[string]Violation)
	for _, opt := range cmd.Options {
		raw, ok := lookup(args, opt)
		if !ok || raw == nil {
			continue
		}
		value, violation := coerce(opt, raw, msg)
		n.values[opt.Name] = value
		if violation != nil {
			issues[opt.Name] = *violation
		}
	}

	n.tokens = stringList(args[PositionalsKey])
	n.assignSlots(cmd)
	return n, issues
}

// lookup finds the first spelling of opt present in args.
func lookup(args Arguments, opt *cmddef.Option) (any, bool) {
	for _, s := range opt.Spellings() {
		if v, ok := args[s]; ok {
			return v, true
		}
	}
	return nil, false
}

// assignSlots hands positional tokens to declared slots in order; a variadic
// slot takes the rest. Leftover tokens are recorded as unknown.
func (n *Normalized) assignSlots(cmd *cmddef.Command) {
	slots, unknown := splitTokens(cmd.Positionals, n.Positionals())
	for i, pos := range cmd.Positionals {
		switch {
		case len(slots[i]) == 0:
		case pos.IsVariadic():
			n.slots[pos.BaseName()] = slots[i]
		case pos.GetType() == cmddef.PositionalTypeNumber:
			if f, ok := parseNumber(slots[i][0]); ok {
				n.slots[pos.BaseName()] = f
				continue
			}
			n.slots[pos.BaseName()] = slots[i][0]
		default:
			n.slots[pos.BaseName()] = slots[i][0]
		}
	}
	n.unknown = unknown
}

// splitTokens returns the tokens taken by each positional, in declaration
// order, and the tokens left over.
func splitTokens(positionals []*cmddef.Positional, tokens []string) ([][]string, []string) {
	slots := make([][]string, len(positionals))
	i := 0
	for p, pos := range positionals {
		if i >= len(tokens) {
			break
		}
		if pos.IsVariadic() {
			slots[p] = append([]string(nil), tokens[i:]...)
			i = len(tokens)
			break
		}
		slots[p] = []string{tokens[i]}
		i++
	}
	if i < len(tokens) {
		return slots, append([]string(nil), tokens[i:]...)
	}
	return slots, nil
}

// coerce converts raw into the type declared by opt.
func coerce(opt *cmddef.Option, raw any, msg messages) (any, *Violation) {
	if list, ok := asList(raw); ok {
		// a list for a scalar type is kept; the multiple rule reports it
		return list, nil
	}

	bad := func(text string) *Violation {
		return &Violation{Rule: RuleType, Subject: opt.DashForm(), Message: text, Definition: opt}
	}

	switch opt.GetType() {
	case cmddef.OptionTypeArray:
		if s, ok := raw.(string); ok && s == "" {
			return s, nil
		}
		if b, ok := raw.(bool); ok && b {
			return b, nil
		}
		return []string{scalarString(raw)}, nil

	case cmddef.OptionTypeBoolean:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "", "true":
				return true, nil
			case "false":
				return false, nil
			}
			return v, bad(msg.notBoolean(opt, v))
		default:
			return raw, bad(msg.notBoolean(opt, scalarString(raw)))
		}

	case cmddef.OptionTypeNumber:
		switch v := raw.(type) {
		case string:
			if v == "" {
				return v, nil
			}
			if f, ok := parseNumber(v); ok {
				return f, nil
			}
			return v, bad(msg.notNumber(opt, v))
		case bool:
			if v {
				return v, nil
			}
			return v, bad(msg.notNumber(opt, "false"))
		default:
			if f, ok := toFloat(raw); ok {
				return f, nil
			}
			return raw, bad(msg.notNumber(opt, scalarString(raw)))
		}

	default:
		switch v := raw.(type) {
		case string:
			return v, nil
		case bool:
			if v {
				return v, nil
			}
			return "false", nil
		default:
			return scalarString(raw), nil
		}
	}
}

// parseNumber accepts decimal numbers, surrounding whitespace allowed.
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// scalarString renders a non-list value the way it was most likely typed.
func scalarString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if f, ok := toFloat(v); ok {
		return cmddef.FormatNumber(f)
	}
	return fmt.Sprint(v)
}

// asList reports whether v is a list and returns it as strings.
func asList(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...), true
	case []any:
		out := make([]string, len(t))
		for i, e := range t {
			out[i] = scalarString(e)
		}
		return out, true
	default:
		return nil, false
	}
}

func stringList(v any) []string {
	if v == nil {
		return nil
	}
	if list, ok := asList(v); ok {
		return list
	}
	return []string{scalarString(v)}
}
