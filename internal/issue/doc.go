// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors for the zowe CLI.
//
// An ActionableError says which operation failed, on which resource, and
// what the user can try next. Errors may point at an Issue from the
// catalog, a Markdown page rendered with glamour that explains the failure
// class in more depth (definition files that do not parse, syntax errors,
// configuration problems).
package issue
