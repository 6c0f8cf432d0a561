// SPDX-License-Identifier: MPL-2.0

// Package syntax validates parsed command-line arguments against a command
// definition.
//
// Validation runs in two steps. Normalize canonicalizes the parser's flat
// argument map: every spelling of an option (name, camelCase, aliases)
// resolves to one canonical key and values are coerced to the declared
// type. The Validator then evaluates the intrinsic rules (required, empty
// value, multiple occurrence, type) and each compiled constraint of every
// option, plus the positional rules, and collects all violations into a
// Result. Violations are never returned as errors; only a definition that
// cannot be interpreted makes New fail.
package syntax
