// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the zowe CLI.
//
// The root command carries the built-in config and definitions commands and
// one cobra command per node of the loaded definition tree: the embedded
// zos-jobs group plus every file listed under the config's definitions key.
// Leaf commands disable cobra flag parsing; their argv goes through
// internal/parser and the syntax validator before a handler runs.
package cmd
