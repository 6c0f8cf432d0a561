// SPDX-License-Identifier: MPL-2.0

// Package cmddef describes declarative command definitions: commands,
// their options and positionals, and the constraint attributes attached to
// each option.
//
// Definitions are pure data. They are loaded once (from CUE, YAML, TOML or
// JSONC documents, or built in Go) and treated as read-only afterwards, so a
// single tree may be shared by concurrent validations.
//
// # Constraints
//
// The optional constraint attributes of an Option (AllowableValues,
// ConflictsWith, Implies, ...) are compiled by Option.Constraints into an
// ordered list of Constraint variants. Evaluators switch on the concrete
// variant instead of probing the option for optional fields.
//
// # Structure validation
//
// Command.Validate reports definitions the engine cannot interpret, such as
// a conflict referencing an option that does not exist. These are schema
// errors and are kept apart from ordinary syntax violations.
package cmddef
