// SPDX-License-Identifier: MPL-2.0

package cmddeftest

import (
	"github.com/zowe/zowe-cli-sub019/pkg/cmddef"
)

type (
	// CommandOption configures a test command.
	CommandOption func(*cmddef.Command)

	// OptionOption configures a test command option.
	OptionOption func(*cmddef.Option)

	// PositionalOption configures a test command positional.
	PositionalOption func(*cmddef.Positional)
)

// NewTestCommand creates a leaf command with the given name and options.
// By default the command has no options, no positionals and the "echo"
// handler.
func NewTestCommand(name string, opts ...CommandOption) *cmddef.Command {
	cmd := &cmddef.Command{
		Name:    name,
		Type:    cmddef.CommandTypeCommand,
		Handler: "echo",
	}
	for _, opt := range opts {
		opt(cmd)
	}
	return cmd
}

// NewTestTree wraps children in a nameless group, the shape
// cmddef.Definitions.Tree produces.
func NewTestTree(children ...*cmddef.Command) *cmddef.Command {
	return &cmddef.Command{Type: cmddef.CommandTypeGroup, Children: children}
}

// --- Command Options ---

// WithDescription sets the command description.
func WithDescription(desc string) CommandOption {
	return func(c *cmddef.Command) {
		c.Description = desc
	}
}

// WithHandler sets the handler key.
func WithHandler(handler string) CommandOption {
	return func(c *cmddef.Command) {
		c.Handler = handler
	}
}

// WithMustSpecifyOne sets the options of which at least one is required.
func WithMustSpecifyOne(names ...string) CommandOption {
	return func(c *cmddef.Command) {
		c.MustSpecifyOne = names
	}
}

// WithOnlyOneOf sets the options of which at most one is allowed.
func WithOnlyOneOf(names ...string) CommandOption {
	return func(c *cmddef.Command) {
		c.OnlyOneOf = names
	}
}

// WithChildren turns the command into a group holding children.
func WithChildren(children ...*cmddef.Command) CommandOption {
	return func(c *cmddef.Command) {
		c.Type = cmddef.CommandTypeGroup
		c.Handler = ""
		c.Children = append(c.Children, children...)
	}
}

// --- Option Options ---

// WithOption adds an option to the command.
func WithOption(name string, typ cmddef.OptionType, opts ...OptionOption) CommandOption {
	return func(c *cmddef.Command) {
		o := &cmddef.Option{Name: name, Type: typ}
		for _, opt := range opts {
			opt(o)
		}
		c.Options = append(c.Options, o)
	}
}

// OptionRequired marks the option as required.
func OptionRequired() OptionOption {
	return func(o *cmddef.Option) {
		o.Required = true
	}
}

// OptionAliases sets the option aliases.
func OptionAliases(aliases ...string) OptionOption {
	return func(o *cmddef.Option) {
		o.Aliases = aliases
	}
}

// OptionDescription sets the option description.
func OptionDescription(desc string) OptionOption {
	return func(o *cmddef.Option) {
		o.Description = desc
	}
}

// OptionDefault sets the option's default value.
func OptionDefault(v any) OptionOption {
	return func(o *cmddef.Option) {
		o.DefaultValue = v
	}
}

// OptionAllowable restricts the option to values.
func OptionAllowable(caseSensitive bool, values ...string) OptionOption {
	return func(o *cmddef.Option) {
		o.AllowableValues = &cmddef.AllowableValues{Values: values, CaseSensitive: caseSensitive}
	}
}

// OptionConflicts sets the options that conflict with this one.
func OptionConflicts(names ...string) OptionOption {
	return func(o *cmddef.Option) {
		o.ConflictsWith = names
	}
}

// OptionImplies sets the options this one requires.
func OptionImplies(names ...string) OptionOption {
	return func(o *cmddef.Option) {
		o.Implies = names
	}
}

// OptionImpliesOneOf sets the options of which this one requires at least one.
func OptionImpliesOneOf(names ...string) OptionOption {
	return func(o *cmddef.Option) {
		o.ImpliesOneOf = names
	}
}

// OptionAbsenceImplies sets the options required while this one is absent.
func OptionAbsenceImplies(names ...string) OptionOption {
	return func(o *cmddef.Option) {
		o.AbsenceImplications = names
	}
}

// OptionValueImplies requires names when the option carries value.
func OptionValueImplies(value string, caseSensitive bool, names ...string) OptionOption {
	return func(o *cmddef.Option) {
		if o.ValueImplications == nil {
			o.ValueImplications = make(map[string]cmddef.ValueImplication)
		}
		o.ValueImplications[value] = cmddef.ValueImplication{ImpliedOptionNames: names, IsCaseSensitive: caseSensitive}
	}
}

// OptionLengthRange bounds the length of the option value.
func OptionLengthRange(lo, hi float64) OptionOption {
	return func(o *cmddef.Option) {
		o.StringLengthRange = cmddef.Range{lo, hi}
	}
}

// OptionNumericRange bounds the numeric option value.
func OptionNumericRange(lo, hi float64) OptionOption {
	return func(o *cmddef.Option) {
		o.NumericValueRange = cmddef.Range{lo, hi}
	}
}

// OptionAllowDuplicates sets whether an array option may repeat values.
func OptionAllowDuplicates(allow bool) OptionOption {
	return func(o *cmddef.Option) {
		o.ArrayAllowDuplicate = &allow
	}
}

// --- Positional Options ---

// WithPositional adds a positional to the command.
func WithPositional(name string, opts ...PositionalOption) CommandOption {
	return func(c *cmddef.Command) {
		p := &cmddef.Positional{Name: name}
		for _, opt := range opts {
			opt(p)
		}
		c.Positionals = append(c.Positionals, p)
	}
}

// PositionalRequired marks the positional as required.
func PositionalRequired() PositionalOption {
	return func(p *cmddef.Positional) {
		p.Required = true
	}
}

// PositionalType sets the positional type.
func PositionalType(t cmddef.PositionalType) PositionalOption {
	return func(p *cmddef.Positional) {
		p.Type = t
	}
}

// PositionalRegex sets the pattern the whole token must match.
func PositionalRegex(re string) PositionalOption {
	return func(p *cmddef.Positional) {
		p.Regex = re
	}
}

// PositionalLengthRange bounds the token length.
func PositionalLengthRange(lo, hi float64) PositionalOption {
	return func(p *cmddef.Positional) {
		p.StringLengthRange = cmddef.Range{lo, hi}
	}
}

// PositionalDescription sets the positional description.
func PositionalDescription(desc string) PositionalOption {
	return func(p *cmddef.Positional) {
		p.Description = desc
	}
}
