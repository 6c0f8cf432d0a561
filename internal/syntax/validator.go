// SPDX-License-Identifier: MPL-2.0

package syntax

import (
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"

	"github.com/zowe/zowe-cli-sub019/internal/issue"
	"github.com/zowe/zowe-cli-sub019/pkg/cmddef"
)

// defaultWrapWidth is the column at which option descriptions wrap inside
// violation messages.
const defaultWrapWidth = 80

type (
	// StatFunc reports on a local file; os.Stat by default.
	StatFunc func(name string) (fs.FileInfo, error)

	// Option configures a Validator.
	Option func(*Validator)

	// Validator checks parsed arguments against one command definition.
	// Build it with New. A Validator is read-only after construction and
	// safe for concurrent use.
	Validator struct {
		cmd         *cmddef.Command
		tree        *cmddef.Command
		pathLen     int
		options     []compiledOption
		positionals []compiledPositional
		stat        StatFunc
		logger      *log.Logger
		msg         messages
	}

	// compiledOption holds an option's constraints split around the type
	// check: pre runs before it, post after it.
	compiledOption struct {
		opt     *cmddef.Option
		absence *cmddef.AbsenceImplies
		pre     []cmddef.Constraint
		post    []cmddef.Constraint
	}
)

// WithLogger routes rule evaluation logs to logger.
func WithLogger(logger *log.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithFS resolves existingLocalFile values against fsys instead of the
// host file system.
func WithFS(fsys fs.StatFS) Option {
	return func(v *Validator) {
		v.stat = fsys.Stat
	}
}

// WithStat replaces the file lookup used by existingLocalFile checks.
func WithStat(stat StatFunc) Option {
	return func(v *Validator) {
		if stat != nil {
			v.stat = stat
		}
	}
}

// WithWrapWidth sets the column at which descriptions wrap in messages.
// Zero or less disables wrapping.
func WithWrapWidth(width int) Option {
	return func(v *Validator) {
		v.msg.width = max(width, 0)
	}
}

// New compiles cmd, a node of tree, for validation. Definition problems are
// returned as an *issue.ActionableError wrapping cmddef.ValidationErrors.
func New(cmd, tree *cmddef.Command, opts ...Option) (*Validator, error) {
	if cmd == nil {
		return nil, issue.NewErrorContext().
			WithOperation("compile command definition").
			Wrap(cmddef.ErrInvalidDefinition).
			BuildError()
	}
	if err := cmd.Validate(); err != nil {
		return nil, compileError(cmd, err)
	}

	v := &Validator{
		cmd:     cmd,
		tree:    tree,
		pathLen: cmd.PathLength(tree),
		stat:    os.Stat,
		logger:  log.New(io.Discard),
		msg:     messages{width: defaultWrapWidth},
	}
	for _, opt := range opts {
		opt(v)
	}

	for _, opt := range cmd.Options {
		constraints, err := opt.Constraints()
		if err != nil {
			return nil, compileError(cmd, err)
		}
		v.options = append(v.options, splitConstraints(opt, constraints))
	}
	positionals, err := compilePositionals(cmd.Positionals)
	if err != nil {
		return nil, compileError(cmd, err)
	}
	v.positionals = positionals
	return v, nil
}

// Validate builds a Validator for cmd and runs it once.
func Validate(cmd, tree *cmddef.Command, args Arguments) (*Result, error) {
	v, err := New(cmd, tree)
	if err != nil {
		return nil, err
	}
	return v.Validate(args), nil
}

// Command returns the definition the validator checks against.
func (v *Validator) Command() *cmddef.Command {
	return v.cmd
}

// Validate checks args and returns every violation found. It never fails:
// nonsensical input yields violations, not errors.
func (v *Validator) Validate(args Arguments) *Result {
	n, coercion := normalize(v.cmd, v.pathLen, args, v.msg)
	state := &evalState{conflicts: make(map[string]bool)}

	var out []Violation
	empty := make(map[string]bool)
	for _, co := range v.options {
		value := n.values[co.opt.Name]
		if value != nil && emptyValue(co.opt, value) {
			empty[co.opt.Name] = true
			out = append(out, Violation{
				Rule: RuleEmptyValue, Subject: co.opt.DashForm(),
				Message: v.msg.emptyValue(co.opt), Definition: co.opt,
			})
		}
	}

	if unknown := n.Unknown(); len(unknown) > 0 && !v.cmd.IsGroup() {
		out = append(out, Violation{Rule: RuleUnknownPositional, Subject: PositionalsKey, Message: v.msg.unknownPositionals(unknown)})
	}
	out = append(out, v.checkMustSpecifyOne(n)...)
	out = append(out, v.checkOnlyOneOf(n)...)
	out = append(out, v.checkPositionals(n)...)

	for _, co := range v.options {
		var failed *Violation
		if c, ok := coercion[co.opt.Name]; ok {
			failed = &c
		}
		out = append(out, v.checkOption(co, n, state, empty[co.opt.Name], failed)...)
	}

	v.logger.Debug("validated arguments",
		"command", v.cmd.FullName(v.tree),
		"violations", len(out))
	return newResult(n, out)
}

// checkOption runs the per-option rules in evaluation order.
func (v *Validator) checkOption(co compiledOption, n *Normalized, state *evalState, empty bool, coercion *Violation) []Violation {
	in := ruleInput{cmd: v.cmd, opt: co.opt, args: n, msg: v.msg, state: state}
	var out []Violation

	if !n.Specified(co.opt.Name) {
		if co.opt.Required {
			out = append(out, in.violation(RuleRequired, v.msg.required(co.opt)))
		}
		if co.absence != nil {
			out = append(out, checkAbsence(in, *co.absence)...)
		}
		return out
	}
	if empty {
		return out
	}
	in.value = n.values[co.opt.Name]

	list, multiple := in.value.([]string)
	multiple = multiple && !co.opt.IsArray()
	if multiple {
		out = append(out, in.violation(RuleMultiple, v.msg.multiple(co.opt, list)))
	}

	for _, c := range co.pre {
		out = append(out, evaluate(in, c)...)
	}
	if multiple {
		// type and scalar bounds do not apply to a list of scalars
		for _, c := range co.post {
			if c.Kind() == cmddef.KindValueImplies {
				out = append(out, evaluate(in, c)...)
			}
		}
		return out
	}
	out = append(out, checkType(in, coercion, v.stat)...)
	for _, c := range co.post {
		violations := evaluate(in, c)
		if len(violations) > 0 {
			v.logger.Debug("constraint failed", "option", co.opt.Name, "kind", c.Kind())
		}
		out = append(out, violations...)
	}
	return out
}

func (v *Validator) checkMustSpecifyOne(n *Normalized) []Violation {
	if len(v.cmd.MustSpecifyOne) == 0 {
		return nil
	}
	for _, name := range v.cmd.MustSpecifyOne {
		if n.Specified(name) {
			return nil
		}
	}
	return []Violation{{Rule: RuleMustSpecifyOne, Message: v.msg.mustSpecifyOne(canonicalNames(v.cmd, v.cmd.MustSpecifyOne))}}
}

func (v *Validator) checkOnlyOneOf(n *Normalized) []Violation {
	if len(v.cmd.OnlyOneOf) < 2 {
		return nil
	}
	var specified []string
	for _, name := range v.cmd.OnlyOneOf {
		if n.Specified(name) {
			specified = append(specified, canonicalName(v.cmd, name))
		}
	}
	if len(specified) < 2 {
		return nil
	}
	return []Violation{{Rule: RuleOnlyOneOf, Message: v.msg.onlyOneOf(canonicalNames(v.cmd, v.cmd.OnlyOneOf), specified)}}
}

func splitConstraints(opt *cmddef.Option, constraints []cmddef.Constraint) compiledOption {
	co := compiledOption{opt: opt}
	for _, c := range constraints {
		switch c := c.(type) {
		case cmddef.AbsenceImplies:
			co.absence = &c
		case cmddef.AllowableValuesConstraint, cmddef.ConflictsWith, cmddef.Implies, cmddef.ImpliesOneOf:
			co.pre = append(co.pre, c)
		default:
			co.post = append(co.post, c)
		}
	}
	return co
}

func canonicalNames(cmd *cmddef.Command, spellings []string) []string {
	out := make([]string, len(spellings))
	for i, s := range spellings {
		out[i] = canonicalName(cmd, s)
	}
	return out
}

func compileError(cmd *cmddef.Command, err error) error {
	return issue.NewErrorContext().
		WithOperation("compile command definition").
		WithResource(cmd.Name).
		WithSuggestion("Run 'zowe definitions validate <file>' to list every definition problem").
		Wrap(err).
		BuildError()
}
