// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zowe/zowe-cli-sub019/internal/config"
	"github.com/zowe/zowe-cli-sub019/internal/issue"
	"github.com/zowe/zowe-cli-sub019/internal/parser"
	"github.com/zowe/zowe-cli-sub019/internal/response"
	"github.com/zowe/zowe-cli-sub019/internal/syntax"
	"github.com/zowe/zowe-cli-sub019/pkg/cmddef"
)

// defaultWidth is used when stdout is not a terminal.
const defaultWidth = 80

// runDefinition parses, validates and handles one leaf command invocation.
// argv is everything after the command path, global flags included.
func (app *App) runDefinition(cmd *cobra.Command, node *cmddef.Command, argv []string) error {
	ctx := cmd.Context()
	flags, rest := splitGlobalFlags(argv, func(spelling string) bool {
		return node.Option(spelling) != nil
	})
	verbose := flags.verbose || app.verbose()
	name := node.FullName(app.tree)
	logger := app.session.For("cli").With("command", name)

	resp := app.newResponse(cmd, flags.json)

	args, err := parser.Parse(node, app.tree, rest,
		parser.WithEnvPrefix(app.cfg.EnvPrefix),
		parser.WithLookupEnv(app.LookupEnv),
		parser.WithLogger(app.session.For("parser")))
	if errors.Is(err, parser.ErrHelp) {
		return cmd.Help()
	}
	if err != nil {
		return app.failCommand(cmd, resp, err, verbose)
	}

	validator, err := syntax.New(node, app.tree,
		syntax.WithLogger(app.session.For("syntax")),
		syntax.WithWrapWidth(app.width(cmd)))
	if err != nil {
		return app.failCommand(cmd, resp, err, verbose)
	}

	result := validator.Validate(args)
	if !result.Valid {
		logger.Debug("syntax validation failed", "violations", len(result.Violations))
		result.Report(resp)
		if verbose && resp.Format() != response.FormatJSON {
			app.printGuidance(cmd, issue.SyntaxErrorId)
		}
		return app.finish(cmd, resp)
	}

	handlerName := node.Handler
	if handlerName == "" {
		handlerName = HandlerEcho
	}
	handler, ok := app.Handlers[handlerName]
	if !ok {
		return app.failCommand(cmd, resp, fmt.Errorf("command %q: no handler named %q", name, handlerName), verbose)
	}

	logger.Debug("running handler", "handler", handlerName)
	if err := handler(ctx, HandlerParams{
		Command:  node,
		Name:     name,
		Args:     result.Args,
		Response: resp,
		Logger:   app.session.For(handlerName),
	}); err != nil {
		return app.failCommand(cmd, resp, err, verbose)
	}
	return app.finish(cmd, resp)
}

// newResponse builds the response for one invocation. jsonFlag forces JSON
// over the configured format.
func (app *App) newResponse(cmd *cobra.Command, jsonFlag bool) *response.Response {
	format := response.FormatDefault
	if jsonFlag || app.flags.json || app.cfg.UI.ResponseFormat == config.ResponseFormatJSON {
		format = response.FormatJSON
	}
	return response.New(
		response.WithFormat(format),
		response.WithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr()),
		response.WithColor(app.colorEnabled(cmd)),
	)
}

// failCommand records err on the response and prints it in text mode.
func (app *App) failCommand(cmd *cobra.Command, resp *response.Response, err error, verbose bool) error {
	resp.SetError(err)
	if resp.Format() != response.FormatJSON {
		resp.Console().Error(formatErrorForDisplay(err, verbose))
		var ae *issue.ActionableError
		if verbose && errors.As(err, &ae) && ae.Issue != 0 {
			app.printGuidance(cmd, ae.Issue)
		}
	}
	return app.finish(cmd, resp)
}

// finish prints the JSON document when requested and converts a failed
// response into an ExitError.
func (app *App) finish(cmd *cobra.Command, resp *response.Response) error {
	if resp.Format() == response.FormatJSON {
		if err := resp.WriteJSON(cmd.OutOrStdout()); err != nil {
			return err
		}
	}
	if code := resp.ExitCode(); code != 0 {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: code}
	}
	return nil
}

// warnGuidance prints the catalog issue attached to err in verbose mode.
func (app *App) warnGuidance(cmd *cobra.Command, err error) {
	var ae *issue.ActionableError
	if app.verbose() && errors.As(err, &ae) && ae.Issue != 0 {
		app.printGuidance(cmd, ae.Issue)
	}
}

func (app *App) printGuidance(cmd *cobra.Command, id issue.Id) {
	iss := issue.Get(id)
	if iss == nil {
		return
	}
	rendered, err := iss.Render(app.glamourStyle())
	if err != nil {
		app.session.For("cli").Warn("failed to render issue guidance", "issue", id, "error", err)
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), rendered)
}

// width is the terminal width of stdout, or defaultWidth.
func (app *App) width(cmd *cobra.Command) int {
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return response.TerminalWidth(f, defaultWidth)
	}
	return defaultWidth
}

// colorEnabled reports whether stderr is a terminal.
func (app *App) colorEnabled(cmd *cobra.Command) bool {
	f, ok := cmd.ErrOrStderr().(*os.File)
	return ok && response.IsTerminal(f)
}
