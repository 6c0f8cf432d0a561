// SPDX-License-Identifier: MPL-2.0

package cmddef

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// CommandTypeGroup is a node that only holds children.
	CommandTypeGroup CommandType = "group"
	// CommandTypeCommand is a leaf that runs a handler.
	CommandTypeCommand CommandType = "command"
)

// ErrInvalidCommandType is returned when a CommandType value is not one of the defined types.
var ErrInvalidCommandType = errors.New("invalid command type")

type (
	// CommandType distinguishes groups from runnable commands.
	CommandType string

	// InvalidCommandTypeError is returned when a CommandType value is not recognized.
	InvalidCommandTypeError struct {
		Value CommandType
	}

	// Example is a sample invocation shown in help.
	Example struct {
		Description string `json:"description" yaml:"description" toml:"description"`
		Options     string `json:"options" yaml:"options" toml:"options"`
	}

	// Command is a node of the command definition tree.
	Command struct {
		Name        string      `json:"name" yaml:"name" toml:"name"`
		Aliases     []string    `json:"aliases,omitempty" yaml:"aliases,omitempty" toml:"aliases,omitempty"`
		Summary     string      `json:"summary,omitempty" yaml:"summary,omitempty" toml:"summary,omitempty"`
		Description string      `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
		Type        CommandType `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
		// Handler names the handler that runs the command once its
		// arguments validate.
		Handler     string        `json:"handler,omitempty" yaml:"handler,omitempty" toml:"handler,omitempty"`
		Options     []*Option     `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
		Positionals []*Positional `json:"positionals,omitempty" yaml:"positionals,omitempty" toml:"positionals,omitempty"`
		// MustSpecifyOne requires at least one of the named options.
		MustSpecifyOne []string `json:"mustSpecifyOne,omitempty" yaml:"mustSpecifyOne,omitempty" toml:"mustSpecifyOne,omitempty"`
		// OnlyOneOf allows at most one of the named options.
		OnlyOneOf []string   `json:"onlyOneOf,omitempty" yaml:"onlyOneOf,omitempty" toml:"onlyOneOf,omitempty"`
		Children  []*Command `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
		Examples  []Example  `json:"examples,omitempty" yaml:"examples,omitempty" toml:"examples,omitempty"`
	}
)

// Error implements the error interface for InvalidCommandTypeError.
func (e *InvalidCommandTypeError) Error() string {
	return fmt.Sprintf("invalid command type %q (valid: group, command)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidCommandTypeError) Unwrap() error {
	return ErrInvalidCommandType
}

// IsValid returns whether the CommandType is one of the defined types.
// The zero value is valid; GetType infers it from the children.
func (t CommandType) IsValid() (bool, []error) {
	switch t {
	case CommandTypeGroup, CommandTypeCommand, "":
		return true, nil
	default:
		return false, []error{&InvalidCommandTypeError{Value: t}}
	}
}

// GetType returns the declared type, or "group" for nodes with children and
// "command" otherwise.
func (c *Command) GetType() CommandType {
	if c.Type != "" {
		return c.Type
	}
	if len(c.Children) > 0 {
		return CommandTypeGroup
	}
	return CommandTypeCommand
}

// IsGroup reports whether the node only holds children.
func (c *Command) IsGroup() bool {
	return c.GetType() == CommandTypeGroup
}

// Option returns the option reachable under the given spelling (canonical
// name, alias, or camelCase form of either), or nil.
func (c *Command) Option(spelling string) *Option {
	for _, opt := range c.Options {
		for _, s := range opt.Spellings() {
			if s == spelling {
				return opt
			}
		}
	}
	return nil
}

// Child returns the direct child matching name or one of its aliases.
func (c *Command) Child(name string) *Command {
	for _, child := range c.Children {
		if child.Name == name {
			return child
		}
		for _, alias := range child.Aliases {
			if alias == name {
				return child
			}
		}
	}
	return nil
}

// Find walks the tree along path and returns the node reached, or nil.
func (c *Command) Find(path ...string) *Command {
	node := c
	for _, name := range path {
		node = node.Child(name)
		if node == nil {
			return nil
		}
	}
	return node
}

// Walk calls fn for c and every descendant in depth-first order with the
// names leading to each node (the root name included).
func (c *Command) Walk(fn func(path []string, cmd *Command)) {
	c.walk(nil, fn)
}

func (c *Command) walk(prefix []string, fn func([]string, *Command)) {
	path := append(append([]string(nil), prefix...), c.Name)
	fn(path, c)
	for _, child := range c.Children {
		child.walk(path, fn)
	}
}

// FullName returns the space-joined command path of c inside tree, the
// root name included when it is non-empty. When c is not part of tree its
// own name is returned.
func (c *Command) FullName(tree *Command) string {
	if tree == nil {
		return c.Name
	}
	full := ""
	found := false
	tree.Walk(func(path []string, cmd *Command) {
		if found || cmd != c {
			return
		}
		found = true
		full = strings.TrimSpace(strings.Join(path, " "))
	})
	if !found {
		return c.Name
	}
	return full
}

// PathLength returns the number of command-path tokens that precede the
// positional tokens of c when invoked from tree.
func (c *Command) PathLength(tree *Command) int {
	return len(strings.Fields(c.FullName(tree)))
}
