// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/zowe/zowe-cli-sub019/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand sets app up for argv and builds the command tree. argv is
// scanned for global flags first because the config decides which
// definition files contribute commands.
func newRootCommand(ctx context.Context, app *App, argv []string) *cobra.Command {
	flags, _ := splitGlobalFlags(argv, nil)
	app.setup(ctx, flags)

	rootCmd := &cobra.Command{
		Use:   "zowe",
		Short: "Validate and plan z/OS commands",
		Long: TitleStyle.Render("zowe") + SubtitleStyle.Render(" - command syntax validation for z/OS") + `

Every command is described by a definition tree: the built-in zos-jobs
group plus any files listed under 'definitions' in your config. Options
and positional arguments are validated against their definitions before
a handler runs.

` + SubtitleStyle.Render("Examples:") + `
  zowe zos-jobs submit data-set "IBMUSER.JCL(IEFBR14)" --wfo
  zowe jobs list jobs --owner IBMUSER --rfj
  zowe definitions validate ./my-commands.yaml
  zowe config show`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolP(flagVerbose, flagVerboseShort, false, "show error chains and troubleshooting guidance")
	rootCmd.PersistentFlags().String(flagConfig, "", "config file (default is $HOME/.config/zowe/config.cue)")
	rootCmd.PersistentFlags().Bool(flagJSON, false, "print the response as a JSON document")
	rootCmd.PersistentFlags().Bool(flagJSONAlias, false, "alias of --"+flagJSON)
	_ = rootCmd.PersistentFlags().MarkHidden(flagJSONAlias)

	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newDefinitionsCommand(app))
	app.addDefinitionCommands(rootCmd, app.tree)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	ctx := context.Background()
	app := NewApp(Dependencies{})
	rootCmd := newRootCommand(ctx, app, os.Args[1:])

	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			var exitErr *ExitError
			if errors.As(err, &exitErr) && exitErr.Err == nil {
				return
			}
			fang.DefaultErrorHandler(w, styles, err)
		}),
	)
	_ = app.Close()
	os.Exit(exitCode(err))
}

// exitCode maps an Execute error onto the process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// use their Format method; verbose adds the error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
