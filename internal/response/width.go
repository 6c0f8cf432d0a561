// SPDX-License-Identifier: MPL-2.0

package response

import (
	"os"

	"golang.org/x/term"

	"github.com/zowe/zowe-cli-sub019/internal/syntax"
)

var _ syntax.Sink = (*Response)(nil)

// TerminalWidth returns the column count of f when it is a terminal, and
// fallback otherwise.
func TerminalWidth(f *os.File, fallback int) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return fallback
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
