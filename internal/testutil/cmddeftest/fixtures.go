// SPDX-License-Identifier: MPL-2.0

package cmddeftest

import (
	"github.com/zowe/zowe-cli-sub019/pkg/cmddef"
)

// Names of the commands in ValidationTree.
const (
	ValidationTestName  = "validation-test"
	GimmeNumberName     = "gimme-number"
	ArrayPositionalName = "array-positional"
	MemberName          = "member-name"
)

// AllowableTestValues are the allowable entries of option-to-specify-3 and
// option-to-specify-4. The last one ends in an explicit anchor.
var AllowableTestValues = []string{"allowableA", "allowableB", "allowableC$"}

// ValidationTestCommand returns a fresh command that exercises every
// option rule. Four options form its mustSpecifyOne set; two options are
// always required.
func ValidationTestCommand() *cmddef.Command {
	b := cmddef.OptionTypeBoolean
	s := cmddef.OptionTypeString
	return NewTestCommand(ValidationTestName,
		WithDescription("Exercises the syntax validation rules."),
		WithMustSpecifyOne("option-to-specify-1", "option-to-specify-2", "option-to-specify-3", "option-to-specify-4"),
		WithOption("option-to-specify-1", b),
		WithOption("option-to-specify-2", b),
		WithOption("option-to-specify-3", s, OptionAllowable(false, AllowableTestValues...)),
		WithOption("option-to-specify-4", cmddef.OptionTypeArray, OptionAllowable(false, AllowableTestValues...)),
		WithOption("always-required-boolean", b, OptionRequired(),
			OptionDescription("A boolean that must always be given.")),
		WithOption("always-required-string", s, OptionRequired()),
		WithOption("absence-implies", b, OptionAbsenceImplies("implied-by-absence")),
		WithOption("implied-by-absence", b),
		WithOption("conflicts-with-multiple", b, OptionConflicts("conflicted-1", "conflicted-2", "conflicted-3")),
		WithOption("conflicted-1", b),
		WithOption("conflicted-2", b),
		WithOption("conflicted-3", b),
		WithOption("implies-option", b, OptionImplies("implied-by-2")),
		WithOption("implied-by-2", b),
		WithOption("implies-one-of", b, OptionImpliesOneOf("conflicted-1", "implied-by-2")),
		WithOption("should-be-number", cmddef.OptionTypeNumber, OptionAliases("sbn")),
		WithOption("dog-type", s, OptionValueImplies("Great Pyrenees", false, "fluffy")),
		WithOption("fluffy", b),
		WithOption("length-range", s, OptionLengthRange(2, 8)),
		WithOption("eggs-to-eat", cmddef.OptionTypeNumber, OptionNumericRange(1, 12)),
		WithOption("array-allow-duplicate", cmddef.OptionTypeArray, OptionAllowDuplicates(true)),
		WithOption("array-not-allow-duplicate", cmddef.OptionTypeArray, OptionAllowDuplicates(false)),
		WithOption("input-file", cmddef.OptionTypeExistingLocalFile),
		WithOption("json-body", cmddef.OptionTypeJSON),
		WithOption("maybe-empty", cmddef.OptionTypeStringOrEmpty),
	)
}

// GimmeNumberCommand returns a command with one required number positional.
func GimmeNumberCommand() *cmddef.Command {
	return NewTestCommand(GimmeNumberName,
		WithPositional("my-number", PositionalRequired(), PositionalType(cmddef.PositionalTypeNumber),
			PositionalDescription("Any number.")),
	)
}

// ArrayPositionalCommand returns a command whose only positional is a
// required variadic.
func ArrayPositionalCommand() *cmddef.Command {
	return NewTestCommand(ArrayPositionalName,
		WithPositional("my-array"+cmddef.VariadicMarker, PositionalRequired()),
	)
}

// MemberNameCommand returns a command with a regex-checked positional and an
// optional length-checked one.
func MemberNameCommand() *cmddef.Command {
	return NewTestCommand(MemberName,
		WithPositional("member", PositionalRequired(), PositionalRegex("[A-Z][A-Z0-9]{0,7}")),
		WithPositional("suffix", PositionalLengthRange(1, 3)),
	)
}

// ValidationTree returns a nameless root holding every fixture command.
func ValidationTree() *cmddef.Command {
	return NewTestTree(
		ValidationTestCommand(),
		GimmeNumberCommand(),
		ArrayPositionalCommand(),
		MemberNameCommand(),
	)
}

// ValidArgs returns arguments that satisfy ValidationTestCommand, with the
// command path already in the positional list.
func ValidArgs() map[string]any {
	return map[string]any{
		"_":                       []string{ValidationTestName},
		"option-to-specify-1":     true,
		"implied-by-absence":      true,
		"always-required-boolean": true,
		"always-required-string":  "blah",
	}
}
