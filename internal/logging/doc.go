// SPDX-License-Identifier: MPL-2.0

// Package logging builds the charmbracelet/log logger of a CLI invocation.
// Records go to stderr, or to a lumberjack-rotated file when log.file is
// configured, and every record carries the invocation ID.
package logging
