// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers that fail the test on error: file
// writing (MustWriteFile), working directory and environment changes
// (MustChdir, MustSetenv, SetHomeDir) and resource cleanup (MustClose).
//
// Command-tree fixtures live in the cmddeftest subpackage.
package testutil
