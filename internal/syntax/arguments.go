// SPDX-License-Identifier: MPL-2.0

package syntax

import (
	"maps"
	"slices"

	"github.com/zowe/zowe-cli-sub019/pkg/cmddef"
)

// PositionalsKey is the reserved argument key holding every positional
// token, command-path tokens first.
const PositionalsKey = "_"

type (
	// Arguments is the flat map produced by a command-line parser. Options
	// may appear under any of their spellings; PositionalsKey holds the
	// positional tokens.
	Arguments map[string]any

	// Normalized is the canonical, read-only view of an Arguments map.
	// Build it with Normalize.
	Normalized struct {
		// values maps canonical option names to coerced values. Options that
		// were not supplied have no entry.
		values map[string]any
		// index maps every accepted spelling to its canonical option name.
		index map[string]string
		// tokens is the full positional list, command path included.
		tokens []string
		// pathLen is the number of leading command-path tokens.
		pathLen int
		// slots maps positional base names to their values.
		slots map[string]any
		// spellings of positional names, mapped to their base names.
		slotIndex map[string]string
		// unknown holds tokens no positional slot could take.
		unknown []string
		// extras are keys that belong to no declared option or positional.
		extras map[string]any
	}
)

// Get returns the value stored under any spelling of an option or
// positional, or under an undeclared key.
func (n *Normalized) Get(key string) (any, bool) {
	if key == PositionalsKey {
		return slices.Clone(n.tokens), true
	}
	if name, ok := n.index[key]; ok {
		v, present := n.values[name]
		return cloneValue(v), present
	}
	if name, ok := n.slotIndex[key]; ok {
		v, present := n.slots[name]
		return cloneValue(v), present
	}
	v, ok := n.extras[key]
	return v, ok
}

// Has reports whether key resolves to a value, as Get does.
func (n *Normalized) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Specified reports whether the option known under spelling was supplied
// (or defaulted) with a non-nil value. Boolean false counts as specified.
// Unknown spellings are never specified.
func (n *Normalized) Specified(spelling string) bool {
	name, ok := n.index[spelling]
	if !ok {
		return false
	}
	v, present := n.values[name]
	return present && v != nil
}

// Canonical returns the canonical option name for a spelling.
func (n *Normalized) Canonical(spelling string) (string, bool) {
	name, ok := n.index[spelling]
	return name, ok
}

// Positionals returns the positional tokens after the command path.
func (n *Normalized) Positionals() []string {
	if len(n.tokens) <= n.pathLen {
		return nil
	}
	return slices.Clone(n.tokens[n.pathLen:])
}

// Unknown returns the positional tokens that no declared slot consumed.
func (n *Normalized) Unknown() []string {
	return slices.Clone(n.unknown)
}

// Map returns a fresh Arguments map holding every option value under all of
// its spellings, each positional value under its name and camelCase name,
// the positional tokens, and undeclared keys. Normalizing the result again
// yields the same values.
func (n *Normalized) Map() Arguments {
	out := make(Arguments, len(n.index)+len(n.extras)+len(n.slotIndex)+1)
	maps.Copy(out, n.extras)
	for spelling, name := range n.index {
		if v, ok := n.values[name]; ok {
			out[spelling] = cloneValue(v)
		}
	}
	for spelling, name := range n.slotIndex {
		if v, ok := n.slots[name]; ok {
			out[spelling] = cloneValue(v)
		}
	}
	out[PositionalsKey] = slices.Clone(n.tokens)
	return out
}

// Canonicalize returns a map keyed by canonical option names only, plus
// positional base names. Handlers use it when alias spellings are noise.
func (n *Normalized) Canonicalize() map[string]any {
	out := make(map[string]any, len(n.values)+len(n.slots))
	for name, v := range n.values {
		out[name] = cloneValue(v)
	}
	for name, v := range n.slots {
		out[name] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case []string:
		return slices.Clone(t)
	case []any:
		return slices.Clone(t)
	default:
		return v
	}
}

// newIndex maps each spelling of each option to its canonical name.
// Earlier options win when two options share a spelling; structure
// validation rejects such definitions.
func newIndex(cmd *cmddef.Command) map[string]string {
	index := make(map[string]string)
	for _, opt := range cmd.Options {
		for _, s := range opt.Spellings() {
			if _, taken := index[s]; !taken {
				index[s] = opt.Name
			}
		}
	}
	return index
}
