// SPDX-License-Identifier: MPL-2.0

// Package parser turns the argv of a leaf command into the flat argument
// map consumed by the syntax validator. Every option is registered on a
// pflag.FlagSet under all of its spellings, values missing from argv are
// taken from the environment and then from the option's default.
package parser
