// SPDX-License-Identifier: MPL-2.0

package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"mvdan.cc/sh/v3/shell"

	"github.com/zowe/zowe-cli-sub019/internal/config"
	"github.com/zowe/zowe-cli-sub019/internal/syntax"
	"github.com/zowe/zowe-cli-sub019/pkg/cmddef"
)

const (
	envOptionInfix = "_OPT_"
	endOfOptions   = "--"
)

var (
	// ErrParse is the sentinel wrapped by ParseError.
	ErrParse = errors.New("invalid command line")

	// ErrHelp is returned when argv asks for help.
	ErrHelp = pflag.ErrHelp
)

type (
	// ParseError reports argv that pflag rejected, such as an unknown flag.
	ParseError struct {
		Command string
		Err     error
	}

	// EnvValueError reports an environment value that cannot be split into
	// array elements.
	EnvValueError struct {
		Variable string
		Err      error
	}

	// Option configures Parse.
	Option func(*settings)

	settings struct {
		envPrefix string
		lookupEnv func(string) (string, bool)
		logger    *log.Logger
	}

	// optionValue collects every occurrence of one option, whichever
	// spelling was used.
	optionValue struct {
		opt    *cmddef.Option
		values []string
	}
)

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

// Unwrap returns ErrParse and the pflag error.
func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

func (e *EnvValueError) Error() string {
	return fmt.Sprintf("environment variable %s: %v", e.Variable, e.Err)
}

func (e *EnvValueError) Unwrap() error {
	return e.Err
}

// WithEnvPrefix sets the prefix of option environment variables
// (default config.DefaultEnvPrefix).
func WithEnvPrefix(prefix string) Option {
	return func(s *settings) { s.envPrefix = prefix }
}

// WithLookupEnv replaces os.LookupEnv.
func WithLookupEnv(lookup func(string) (string, bool)) Option {
	return func(s *settings) { s.lookupEnv = lookup }
}

// WithLogger sets the logger that receives debug records.
func WithLogger(logger *log.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

func (v *optionValue) String() string { return strings.Join(v.values, ",") }

func (v *optionValue) Set(s string) error {
	v.values = append(v.values, s)
	return nil
}

func (v *optionValue) Type() string {
	if v.opt.IsBoolean() {
		return "bool"
	}
	return string(v.opt.GetType())
}

// EnvVar returns the environment variable that supplies opt, e.g.
// ZOWE_OPT_MAX_CONCURRENT_REQUESTS.
func EnvVar(prefix string, opt *cmddef.Option) string {
	return prefix + envOptionInfix + strings.ToUpper(strings.ReplaceAll(opt.Name, "-", "_"))
}

// Parse tokenizes argv for cmd. argv holds only what follows the command
// path; the path tokens of cmd within tree are prepended to the reserved
// positional key.
func Parse(cmd, tree *cmddef.Command, argv []string, opts ...Option) (syntax.Arguments, error) {
	s := settings{envPrefix: config.DefaultEnvPrefix, lookupEnv: os.LookupEnv}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	fullName := cmd.FullName(tree)
	fs := pflag.NewFlagSet(fullName, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SetInterspersed(true)

	values := make([]*optionValue, len(cmd.Options))
	for i := range cmd.Options {
		values[i] = &optionValue{opt: cmd.Options[i]}
		register(fs, values[i])
	}

	if err := fs.Parse(expand(cmd, argv)); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, &ParseError{Command: fullName, Err: err}
	}

	args := syntax.Arguments{}
	positionals := append(strings.Fields(fullName), fs.Args()...)
	args[syntax.PositionalsKey] = positionals

	for _, val := range values {
		raw, source, err := s.resolve(val)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			continue
		}
		for _, spelling := range val.opt.Spellings() {
			args[spelling] = raw
		}
		s.logger.Debug("option value", "option", val.opt.Name, "source", source)
	}
	return args, nil
}

// resolve picks the value of one option: argv, then the environment, then
// the declared default. A nil value means the option stays unspecified.
func (s *settings) resolve(val *optionValue) (any, string, error) {
	opt := val.opt
	switch {
	case len(val.values) == 0:
	case opt.IsArray():
		return append([]string(nil), val.values...), "argv", nil
	case len(val.values) == 1:
		return val.values[0], "argv", nil
	default:
		return append([]string(nil), val.values...), "argv", nil
	}

	name := EnvVar(s.envPrefix, opt)
	if env, ok := s.lookupEnv(name); ok {
		if !opt.IsArray() {
			return env, "env", nil
		}
		fields, err := shell.Fields(env, func(key string) string {
			v, _ := s.lookupEnv(key)
			return v
		})
		if err != nil {
			return nil, "", &EnvValueError{Variable: name, Err: err}
		}
		return fields, "env", nil
	}

	if opt.DefaultValue != nil {
		return opt.DefaultValue, "default", nil
	}
	return nil, "", nil
}

// register adds every spelling of val's option to fs. Spellings already taken
// by an earlier option are skipped.
func register(fs *pflag.FlagSet, val *optionValue) {
	opt := val.opt
	names := []string{opt.Name}
	if camel := cmddef.CamelCase(opt.Name); camel != opt.Name {
		names = append(names, camel)
	}
	for _, alias := range opt.Aliases {
		names = append(names, alias)
		if camel := cmddef.CamelCase(alias); camel != alias {
			names = append(names, camel)
		}
	}

	for _, name := range names {
		if fs.Lookup(name) != nil {
			continue
		}
		shorthand := ""
		if len(name) == 1 && fs.ShorthandLookup(name) == nil {
			shorthand = name
		}
		fs.VarP(val, name, shorthand, opt.Description)
		flag := fs.Lookup(name)
		flag.Hidden = name != opt.Name || opt.Hidden
		if opt.IsBoolean() {
			flag.NoOptDefVal = "true"
		}
	}
}

// expand rewrites argv so that every option occurrence carries its value
// inline (--name=value), which pflag then applies one occurrence at a time:
//   - array options take every following token up to the next flag;
//   - other non-boolean options take the next token unless it is a flag,
//     and get "" when there is none;
//   - boolean options take a following "true" or "false".
//
// Tokens after "--" are left alone.
func expand(cmd *cmddef.Command, argv []string) []string {
	out := make([]string, 0, len(argv))
	for i := 0; i < len(argv); i++ {
		tok := argv[i]
		if tok == endOfOptions {
			out = append(out, argv[i:]...)
			break
		}
		opt, dash, inline := lookupFlag(cmd, tok)
		if opt == nil || inline {
			out = append(out, tok)
			continue
		}

		switch {
		case opt.IsBoolean():
			if i+1 < len(argv) && isBoolLiteral(argv[i+1]) {
				i++
				out = append(out, dash+"="+argv[i])
				continue
			}
			out = append(out, tok)
		case opt.IsArray():
			consumed := false
			for i+1 < len(argv) && !isFlag(argv[i+1]) {
				i++
				consumed = true
				out = append(out, dash+"="+argv[i])
			}
			if !consumed {
				out = append(out, dash+"=")
			}
		default:
			if i+1 < len(argv) && !isFlag(argv[i+1]) {
				i++
				out = append(out, dash+"="+argv[i])
				continue
			}
			out = append(out, dash+"=")
		}
	}
	return out
}

// lookupFlag resolves tok to an option of cmd. dash is the long form of the
// spelling that was typed, without any value. inline
// reports whether tok already carries "=value".
func lookupFlag(cmd *cmddef.Command, tok string) (opt *cmddef.Option, dash string, inline bool) {
	if !isFlag(tok) {
		return nil, "", false
	}
	name := strings.TrimLeft(tok, "-")
	prefix := tok[:len(tok)-len(name)]
	if idx := strings.IndexByte(name, '='); idx >= 0 {
		name = name[:idx]
		inline = true
	}
	if prefix == "-" && len(name) != 1 {
		// combined shorthands (-abc) are left to pflag
		return nil, "", false
	}
	opt = cmd.Option(name)
	if opt == nil {
		return nil, "", false
	}
	// one-character spellings are also registered as long flags, and
	// pflag misreads "-x=" as the value "="
	return opt, "--" + name, inline
}

// isFlag reports whether tok is an option rather than a value. Negative
// numbers are values.
func isFlag(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' || tok == endOfOptions {
		return false
	}
	if _, err := strconv.ParseFloat(tok, 64); err == nil {
		return false
	}
	return true
}

func isBoolLiteral(tok string) bool {
	return strings.EqualFold(tok, "true") || strings.EqualFold(tok, "false")
}
