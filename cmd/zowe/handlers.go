// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/zowe/zowe-cli-sub019/internal/jobs"
	"github.com/zowe/zowe-cli-sub019/internal/response"
	"github.com/zowe/zowe-cli-sub019/internal/syntax"
	"github.com/zowe/zowe-cli-sub019/pkg/cmddef"
)

const (
	// HandlerEcho prints the normalized arguments as YAML. Leaf commands
	// without a handler use it.
	HandlerEcho = "echo"
)

type (
	// HandlerParams is what a handler receives once the arguments of its
	// command validate.
	HandlerParams struct {
		Command *cmddef.Command
		// Name is the full command path, e.g. "zos-jobs submit data-set".
		Name     string
		Args     *syntax.Normalized
		Response *response.Response
		Logger   *log.Logger
	}

	// Handler runs a validated command. Output goes through the response.
	Handler func(ctx context.Context, params HandlerParams) error
)

// DefaultHandlers returns the built-in handler table.
func DefaultHandlers() map[string]Handler {
	return map[string]Handler{
		jobs.HandlerName: planJobs,
		HandlerEcho:      echoArguments,
	}
}

// planJobs prints the z/OSMF requests a zos-jobs command would issue.
func planJobs(_ context.Context, p HandlerParams) error {
	plan, err := jobs.BuildPlan(p.Name, p.Args)
	if err != nil {
		return err
	}
	p.Logger.Debug("plan built", "command", plan.Command, "requests", len(plan.Requests))
	p.Response.SetData(plan)
	p.Response.SetMessage("%d request(s) planned for %s", len(plan.Requests), plan.Command)
	p.Response.Console().Log(strings.TrimSuffix(plan.Text(), "\n"))
	return nil
}

// echoArguments prints the canonical argument map.
func echoArguments(_ context.Context, p HandlerParams) error {
	values := p.Args.Canonicalize()
	out, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to render arguments: %w", err)
	}
	p.Response.SetData(values)
	p.Response.SetMessage("%s: arguments are valid", p.Name)
	p.Response.Console().Log(strings.TrimSuffix(string(out), "\n"))
	return nil
}
