// SPDX-License-Identifier: MPL-2.0

// Package cmddeftest provides builders and shared fixtures for tests that
// need cmddef command trees.
//
// This package is separate from testutil so that pkg/cmddef tests can use
// testutil without importing their own package.
//
// # Usage
//
//	tree := cmddeftest.ValidationTree()
//	cmd := tree.Find(cmddeftest.ValidationTestName)
//
//	cmd := cmddeftest.NewTestCommand("hello",
//	    cmddeftest.WithOption("name", cmddef.OptionTypeString, cmddeftest.OptionRequired()),
//	)
package cmddeftest
