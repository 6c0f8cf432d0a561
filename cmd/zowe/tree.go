// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zowe/zowe-cli-sub019/internal/issue"
	"github.com/zowe/zowe-cli-sub019/pkg/cmddef"
)

// addDefinitionCommands registers one cobra command per child of node.
func (app *App) addDefinitionCommands(parent *cobra.Command, node *cmddef.Command) {
	for _, child := range node.Children {
		parent.AddCommand(app.newDefinitionCommand(child))
	}
}

func (app *App) newDefinitionCommand(node *cmddef.Command) *cobra.Command {
	c := &cobra.Command{
		Use:     node.Name,
		Aliases: node.Aliases,
		Short:   node.Summary,
		Long:    node.Description,
	}
	if c.Short == "" {
		c.Short = firstLine(node.Description)
	}

	if node.IsGroup() {
		c.Args = cobra.ArbitraryArgs
		c.RunE = func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return commandNotFound(node.FullName(app.tree), args[0])
		}
		app.addDefinitionCommands(c, node)
		return c
	}

	c.Use = commandUsage(node)
	if help := optionsHelp(node); help != "" {
		c.Long = strings.TrimSpace(c.Long + "\n\n" + help)
	}
	c.Example = commandExamples(node.FullName(app.tree), node.Examples)
	c.DisableFlagParsing = true
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return app.runDefinition(cmd, node, args)
	}
	return c
}

// commandNotFound is returned when a group receives an unknown child name.
func commandNotFound(group, name string) error {
	return issue.NewErrorContext().
		WithOperation("find command").
		WithResource(group).
		WithSuggestion("Run 'zowe " + group + " --help' to list its commands").
		WithIssue(issue.CommandNotFoundId).
		Wrap(fmt.Errorf("unknown command %q", name)).
		BuildError()
}

// commandUsage renders the usage line: name, positionals, then options.
func commandUsage(node *cmddef.Command) string {
	parts := []string{node.Name}
	for _, p := range node.Positionals {
		parts = append(parts, cmddef.PositionalSyntax(p.Required, p.Name))
	}
	if len(node.Options) > 0 {
		parts = append(parts, "[options]")
	}
	return strings.Join(parts, " ")
}

// optionsHelp lists the command's visible options. Cobra cannot show them
// because leaf commands do not register flags with it.
func optionsHelp(node *cmddef.Command) string {
	var sb strings.Builder
	for _, opt := range node.Options {
		if opt.Hidden {
			continue
		}
		if sb.Len() == 0 {
			sb.WriteString(SubtitleStyle.Render("Options:") + "\n")
		}
		fmt.Fprintf(&sb, "  %s (%s)", CmdStyle.Render(opt.Display()), opt.GetType())
		if opt.Required {
			sb.WriteString(" required")
		}
		sb.WriteString("\n")
		if opt.Description != "" {
			fmt.Fprintf(&sb, "      %s\n", firstLine(opt.Description))
		}
		if opt.DefaultValue != nil {
			fmt.Fprintf(&sb, "      default: %v\n", opt.DefaultValue)
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// commandExamples renders definition examples in cobra's Example layout.
func commandExamples(fullName string, examples []cmddef.Example) string {
	var sb strings.Builder
	for i, ex := range examples {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		if ex.Description != "" {
			fmt.Fprintf(&sb, "  # %s\n", ex.Description)
		}
		fmt.Fprintf(&sb, "  zowe %s %s", fullName, ex.Options)
	}
	return sb.String()
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
