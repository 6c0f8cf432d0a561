// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zowe/zowe-cli-sub019/pkg/cmddef"
)

// newDefinitionsCommand creates the `zowe definitions` command tree.
func newDefinitionsCommand(app *App) *cobra.Command {
	defsCmd := &cobra.Command{
		Use:     "definitions",
		Aliases: []string{"defs"},
		Short:   "Inspect command definition files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	defsCmd.AddCommand(&cobra.Command{
		Use:   "validate <file>",
		Short: "Check a definition file and report every problem",
		Long: `Check a definition file and report every problem.

The format follows the extension: .cue, .yaml, .yml, .toml, .json or .jsonc.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDefinitionsValidate(cmd, app, args[0])
		},
	})

	defsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every loaded command",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listDefinitions(cmd.OutOrStdout(), app.tree)
			return nil
		},
	})

	defsCmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the CUE schema definition files are checked against",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(cmddef.Schema())
			return err
		},
	})

	return defsCmd
}

func runDefinitionsValidate(cmd *cobra.Command, app *App, path string) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	fmt.Fprintln(stdout, TitleStyle.Render("Definition Validation"))
	fmt.Fprintf(stdout, "Path: %s\n\n", CmdStyle.Render(path))

	defs, err := loadDefinitionFile(path)
	if err == nil {
		count := 0
		defs.Tree().Walk(func(_ []string, c *cmddef.Command) {
			if c.Name != "" && !c.IsGroup() {
				count++
			}
		})
		fmt.Fprintf(stdout, "%s %d command(s) defined, definitions are valid\n", successIcon, count)
		return nil
	}

	var verrs cmddef.ValidationErrors
	if errors.As(err, &verrs) {
		fmt.Fprintf(stderr, "%s %d issue(s) found:\n\n", warningIcon, len(verrs))
		for i, ve := range verrs {
			fmt.Fprintf(stderr, "  %d. [%s] %s\n", i+1, ve.Severity, SubtitleStyle.Render(ve.Path))
			fmt.Fprintf(stderr, "     %s\n", ve.Message)
		}
		fmt.Fprintln(stderr)
	} else {
		fmt.Fprintf(stderr, "%s %s\n\n", errorIcon, formatErrorForDisplay(err, app.verbose()))
	}
	fmt.Fprintf(stderr, "%s Validation failed\n", errorIcon)
	app.warnGuidance(cmd, err)

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return &ExitError{Code: 1}
}

// listDefinitions prints one line per node: indented name, aliases and
// summary.
func listDefinitions(w io.Writer, tree *cmddef.Command) {
	tree.Walk(func(path []string, c *cmddef.Command) {
		if c.Name == "" {
			return
		}
		depth := len(path) - 1
		if tree.Name == "" {
			depth--
		}
		line := strings.Repeat("  ", depth) + CmdStyle.Render(c.Name)
		if len(c.Aliases) > 0 {
			line += " " + SubtitleStyle.Render("("+strings.Join(c.Aliases, ", ")+")")
		}
		if c.Summary != "" {
			line += " - " + c.Summary
		}
		fmt.Fprintln(w, line)
	})
}
