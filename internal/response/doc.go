// SPDX-License-Identifier: MPL-2.0

// Package response collects what a command prints and reports: buffered
// stdout and stderr, syntax validator errors, structured data, and the
// success verdict. It renders either as plain text or as the JSON response
// document selected with --response-format-json.
package response
