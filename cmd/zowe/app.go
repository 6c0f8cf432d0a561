// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/zowe/zowe-cli-sub019/internal/config"
	"github.com/zowe/zowe-cli-sub019/internal/issue"
	"github.com/zowe/zowe-cli-sub019/internal/jobs"
	"github.com/zowe/zowe-cli-sub019/internal/logging"
	"github.com/zowe/zowe-cli-sub019/pkg/cmddef"
)

type (
	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// App is the composition root of the CLI. It holds the configuration,
	// log session and definition tree of one invocation.
	App struct {
		Config    ConfigProvider
		Handlers  map[string]Handler
		LookupEnv func(string) (string, bool)
		stdout    io.Writer
		stderr    io.Writer

		flags   globalFlags
		cfg     *config.Config
		session *logging.Session
		tree    *cmddef.Command
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config    ConfigProvider
		Handlers  map[string]Handler
		LookupEnv func(string) (string, bool)
		Stdout    io.Writer
		Stderr    io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Handlers == nil {
		deps.Handlers = DefaultHandlers()
	}
	if deps.LookupEnv == nil {
		deps.LookupEnv = os.LookupEnv
	}
	return &App{
		Config:    deps.Config,
		Handlers:  deps.Handlers,
		LookupEnv: deps.LookupEnv,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
		cfg:       config.DefaultConfig(),
		session:   logging.Discard(),
		tree:      &cmddef.Command{Type: cmddef.CommandTypeGroup},
	}
}

// setup loads the configuration, opens the log session and builds the
// definition tree. Problems are surfaced as warnings; the CLI keeps running
// with defaults and whatever definitions did load.
func (app *App) setup(ctx context.Context, flags globalFlags) {
	app.flags = flags

	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configFile})
	if err != nil {
		app.warn(err)
	} else {
		app.cfg = cfg
	}

	session, err := logging.New(app.cfg.Log, app.stderr)
	if err != nil {
		app.warn(err)
	} else {
		app.session = session
	}

	tree, errs := loadDefinitions(app.cfg.Definitions)
	for _, err := range errs {
		app.warn(err)
	}
	app.tree = tree
	app.session.For("cli").Debug("definitions loaded", "groups", len(tree.Children), "files", len(app.cfg.Definitions))
}

// Close releases the log session.
func (app *App) Close() error {
	return app.session.Close()
}

func (app *App) verbose() bool {
	return app.flags.verbose || app.cfg.UI.Verbose
}

func (app *App) warn(err error) {
	fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, app.verbose()))
	if !app.verbose() {
		return
	}
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		if guidance, gErr := ae.Guidance(app.glamourStyle()); gErr == nil && guidance != "" {
			fmt.Fprint(app.stderr, guidance)
		}
	}
}

// glamourStyle maps the configured color scheme onto a glamour style.
func (app *App) glamourStyle() string {
	switch app.cfg.UI.ColorScheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// loadDefinitions merges the embedded zos-jobs definitions with every
// configured file under a nameless root group. A file that fails to load
// is skipped, as is a top-level command whose name is already taken.
func loadDefinitions(paths []string) (*cmddef.Command, []error) {
	root := &cmddef.Command{Type: cmddef.CommandTypeGroup}
	var errs []error

	taken := map[string]string{}
	add := func(source string, commands []*cmddef.Command) {
		for _, c := range commands {
			if prev, dup := taken[c.Name]; dup {
				errs = append(errs, issue.NewErrorContext().
					WithOperation("load command definitions").
					WithResource(source).
					WithSuggestion("Rename the group or remove one of the files from the definitions list").
					WithIssue(issue.DefinitionInvalidId).
					Wrap(fmt.Errorf("command %q is already defined by %s", c.Name, prev)).
					BuildError())
				continue
			}
			taken[c.Name] = source
			root.Children = append(root.Children, c)
		}
	}

	builtin, err := jobs.Definitions()
	if err != nil {
		errs = append(errs, err)
	} else {
		add("built-in "+jobs.GroupName, builtin.Commands)
	}

	for _, path := range paths {
		defs, err := loadDefinitionFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		add(path, defs.Commands)
	}
	return root, errs
}

// loadDefinitionFile parses and structure-validates one definition file,
// classifying failures by catalog issue.
func loadDefinitionFile(path string) (*cmddef.Definitions, error) {
	defs, err := cmddef.ParseFile(path)
	if err == nil {
		return defs, nil
	}

	ctx := issue.NewErrorContext().
		WithOperation("load command definitions").
		WithResource(path).
		Wrap(err)
	var verrs cmddef.ValidationErrors
	switch {
	case errors.Is(err, os.ErrNotExist):
		ctx.WithIssue(issue.DefinitionsNotFoundId).
			WithSuggestion("Check the definitions list in your config file")
	case errors.As(err, &verrs):
		ctx.WithIssue(issue.DefinitionInvalidId).
			WithSuggestion("Run 'zowe definitions validate " + path + "' to list every problem")
	default:
		ctx.WithIssue(issue.DefinitionParseErrorId).
			WithSuggestion("Check that the file extension matches its format")
	}
	return nil, ctx.BuildError()
}
