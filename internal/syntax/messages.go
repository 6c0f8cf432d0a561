// SPDX-License-Identifier: MPL-2.0

package syntax

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/muesli/reflow/wordwrap"

	"github.com/zowe/zowe-cli-sub019/pkg/cmddef"
)

// messages renders violation text. Descriptions are wrapped to width.
type messages struct {
	width int
}

func (m messages) describe(label, description string) string {
	if strings.TrimSpace(description) == "" {
		return ""
	}
	return "\n\n" + label + ":\n" + wordwrap.String(description, m.width)
}

func dashList(names []string) string {
	forms := make([]string, len(names))
	for i, n := range names {
		forms[i] = cmddef.DashForm(n)
	}
	return "[" + strings.Join(forms, ", ") + "]"
}

func quotedList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}

func (m messages) required(opt *cmddef.Option) string {
	return "Missing Required Option:\n" + opt.Display() +
		"\n\nYou must specify this option." +
		m.describe("Option Description", opt.Description)
}

func (m messages) emptyValue(opt *cmddef.Option) string {
	return "No value specified for option:\n" + opt.Display() +
		"\n\nThis option requires a value of type:\n" + string(opt.GetType()) +
		m.describe("Option Description", opt.Description)
}

func (m messages) multiple(opt *cmddef.Option, values []string) string {
	return "You cannot specify the following option multiple times:\n" + opt.Display() +
		"\n\nYou specified:\n" + strings.Join(values, ", ")
}

func (m messages) mustSpecifyOne(names []string) string {
	return "You must specify one of the following options for this command:\n" + dashList(names)
}

func (m messages) onlyOneOf(names, specified []string) string {
	return "You may specify only one of the following options:\n" + dashList(names) +
		"\n\nYou specified:\n" + dashList(specified)
}

func (m messages) absence(opt *cmddef.Option, missing []string) string {
	return "If you do not specify the following option:\n" + opt.Display() +
		"\n\nYou must specify one of these options (implied by absence):\n" + dashList(missing)
}

func (m messages) conflict(a, b *cmddef.Option) string {
	return "The following options conflict (mutually exclusive):\n" + a.Display() + "\n" + b.Display()
}

func (m messages) implies(opt, implied *cmddef.Option) string {
	return "If you specify the following option:\n" + opt.Display() +
		"\n\nYou must also specify the following option:\n" + implied.Display()
}

func (m messages) impliesOneOf(opt *cmddef.Option, names []string) string {
	return "If you specify the following option:\n" + opt.Display() +
		"\n\nYou must also specify at least one of the following options:\n" + dashList(names)
}

func (m messages) valueImplies(opt *cmddef.Option, value string, implied *cmddef.Option) string {
	return fmt.Sprintf("If you specify the value %s for option %s, you must also specify a value for the option %s",
		value, opt.DashForm(), implied.DashForm())
}

func (m messages) notAllowed(opt *cmddef.Option, value string, allowed []string) string {
	return "Invalid value specified for option:\n" + opt.Display() +
		"\n\nYou specified:\n" + value +
		"\n\nThe value must match one of the following options:\n[" + strings.Join(allowed, ", ") + "]."
}

func (m messages) notNumber(opt *cmddef.Option, value string) string {
	return "Invalid value specified for option:\n" + opt.Display() +
		"\n\nYou specified:\n" + value +
		"\n\nThe value must be a number"
}

func (m messages) notBoolean(opt *cmddef.Option, value string) string {
	return "Invalid value specified for option:\n" + opt.Display() +
		"\n\nYou specified:\n" + value +
		"\n\nThe value must be a boolean (true or false)."
}

func (m messages) notJSON(opt *cmddef.Option, value string, err error) string {
	return "Invalid JSON string specified for option:\n" + opt.Display() +
		"\n\nYou specified:\n" + value +
		"\n\nThe value could not be parsed as JSON:\n" + err.Error()
}

func (m messages) missingFile(opt *cmddef.Option, path string) string {
	return "Invalid file path specified for option:\n" + opt.Display() +
		"\n\nYou specified:\n\"" + path + "\"" +
		"\n\nThe file does not exist"
}

func (m messages) numericRange(opt *cmddef.Option, value float64, r cmddef.Range) string {
	return "Invalid numeric value specified for option:\n" + opt.Display() +
		"\n\nYou specified:\n" + cmddef.FormatNumber(value) +
		"\n\nValue must be between " + cmddef.FormatNumber(r.Min()) + " and " + cmddef.FormatNumber(r.Max()) + " (inclusive)"
}

func (m messages) lengthRange(subject, value string, r cmddef.Range) string {
	return "Invalid value length for option:\n" + subject +
		fmt.Sprintf("\n\nYou specified a string of length %d:\n", utf8.RuneCountInString(value)) + value +
		"\n\nThe length must be between " + cmddef.FormatNumber(r.Min()) + " and " + cmddef.FormatNumber(r.Max()) + " (inclusive)"
}

func (m messages) duplicates(opt *cmddef.Option, dups []string) string {
	return "Duplicate value specified for option:\n" + opt.Display() +
		"\n\nYou specified the following values more than once:\n" + strings.Join(dups, ", ") +
		"\n\nDuplicate values are not allowed."
}

func (m messages) missingPositional(pos *cmddef.Positional) string {
	msg := "Missing Positional Argument: " + pos.BaseName()
	if pos.Description != "" {
		msg += "\nArgument Description: " + wordwrap.String(pos.Description, m.width)
	}
	return msg
}

func (m messages) positionalNotNumber(pos *cmddef.Positional, value string) string {
	return "Invalid value specified for positional option:\n" + cmddef.PositionalSyntax(pos.Required, pos.BaseName()) +
		"\n\nYou specified:\n" + value +
		"\n\nThe value must be a number"
}

func (m messages) positionalFormat(pos *cmddef.Positional, value string) string {
	return "Invalid format specified for positional option:\n" + pos.BaseName() +
		"\n\nYou specified:\n" + value +
		"\n\nOption must match the following regular expression:\n" + pos.Regex
}

func (m messages) unknownPositionals(tokens []string) string {
	return "You specified the following unknown values: " + quotedList(tokens) + ".\n\n" +
		"Could not interpret them as a group, command name, or positional option."
}
