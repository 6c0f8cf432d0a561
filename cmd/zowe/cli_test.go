// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zowe/zowe-cli-sub019/internal/config"
	"github.com/zowe/zowe-cli-sub019/internal/issue"
	"github.com/zowe/zowe-cli-sub019/internal/testutil"
)

type staticConfig struct {
	cfg *config.Config
	err error
}

func (s staticConfig) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	return s.cfg, s.err
}

type cliRun struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes argv against a fresh App built from cfg and env.
func runCLI(t *testing.T, cfg *config.Config, env map[string]string, argv ...string) cliRun {
	t.Helper()

	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config: staticConfig{cfg: cfg},
		LookupEnv: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
		Stdout: &stdout,
		Stderr: &stderr,
	})
	root := newRootCommand(context.Background(), app, argv)
	root.SetArgs(argv)
	err := root.ExecuteContext(context.Background())
	if closeErr := app.Close(); closeErr != nil {
		t.Errorf("Close() returned error: %v", closeErr)
	}
	return cliRun{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func requireExitCode(t *testing.T, err error, want int) {
	t.Helper()
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %v", err)
	}
	if exitErr.Code != want {
		t.Errorf("exit code = %d, want %d", exitErr.Code, want)
	}
}

func decodeResponse(t *testing.T, out string) map[string]any {
	t.Helper()
	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("stdout is not a JSON document: %v\n%s", err, out)
	}
	return doc
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	return testutil.MustWriteFile(t, filepath.Join(t.TempDir(), name), content)
}

func TestCLI_ZosJobsPlans(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		argv []string
		want []string
	}{
		{
			name: "submit data set",
			argv: []string{"zos-jobs", "submit", "data-set", "IBMUSER.JCL(IEFBR14)"},
			want: []string{"PUT /zosmf/restjobs/jobs", `IBMUSER.JCL(IEFBR14)`},
		},
		{
			name: "aliases",
			argv: []string{"jobs", "sub", "ds", "IBMUSER.JCL", "--wfo"},
			want: []string{"PUT /zosmf/restjobs/jobs", "GET /zosmf/restjobs/jobs"},
		},
		{
			name: "list jobs",
			argv: []string{"zos-jobs", "list", "jobs", "--owner", "ibmuser"},
			want: []string{"GET /zosmf/restjobs/jobs?owner=IBMUSER"},
		},
		{
			name: "cancel job",
			argv: []string{"zos-jobs", "cancel", "job", "JOB00123", "--mv", "1.0"},
			want: []string{"PUT /zosmf/restjobs/jobs", `"version":"1.0"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			run := runCLI(t, nil, nil, tt.argv...)
			if run.err != nil {
				t.Fatalf("Execute() returned error: %v\nstderr: %s", run.err, run.stderr)
			}
			for _, w := range tt.want {
				if !strings.Contains(run.stdout, w) {
					t.Errorf("stdout missing %q:\n%s", w, run.stdout)
				}
			}
		})
	}
}

func TestCLI_SyntaxErrorText(t *testing.T) {
	t.Parallel()

	run := runCLI(t, nil, nil, "zos-jobs", "submit", "data-set", "IBMUSER.JCL", "--wfa", "--wfo")
	requireExitCode(t, run.err, 1)

	if !strings.Contains(run.stderr, "Syntax Error:") {
		t.Errorf("stderr missing the syntax error header:\n%s", run.stderr)
	}
	if !strings.Contains(run.stderr, "The following options conflict (mutually exclusive):") {
		t.Errorf("stderr missing the conflict message:\n%s", run.stderr)
	}
	if run.stdout != "" {
		t.Errorf("expected no stdout, got %q", run.stdout)
	}
}

func TestCLI_SyntaxErrorJSON(t *testing.T) {
	t.Parallel()

	run := runCLI(t, nil, nil, "zos-jobs", "list", "jobs", "--max-jobs", "0", "--rfj")
	requireExitCode(t, run.err, 1)

	doc := decodeResponse(t, run.stdout)
	if doc["success"] != false {
		t.Errorf("success = %v, want false", doc["success"])
	}
	if doc["exitCode"] != float64(1) {
		t.Errorf("exitCode = %v, want 1", doc["exitCode"])
	}
	data, ok := doc["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("data = %v, want one validator error", doc["data"])
	}
	entry, _ := data[0].(map[string]any)
	if entry["optionInError"] != "--max-jobs" {
		t.Errorf("optionInError = %v, want --max-jobs", entry["optionInError"])
	}
	if msg, _ := entry["message"].(string); !strings.Contains(msg, "Value must be between 1 and 10000") {
		t.Errorf("message = %q", msg)
	}
	if stderr, _ := doc["stderr"].(string); !strings.Contains(stderr, "Syntax Error:") {
		t.Errorf("buffered stderr = %q", stderr)
	}
}

func TestCLI_SuccessJSON(t *testing.T) {
	t.Parallel()

	run := runCLI(t, nil, nil, "--rfj", "zos-jobs", "view", "js", "JOB00123")
	if run.err != nil {
		t.Fatalf("Execute() returned error: %v", run.err)
	}
	doc := decodeResponse(t, run.stdout)
	if doc["success"] != true {
		t.Errorf("success = %v, want true", doc["success"])
	}
	data, _ := doc["data"].(map[string]any)
	requests, _ := data["requests"].([]any)
	if len(requests) != 2 {
		t.Fatalf("requests = %v", data["requests"])
	}
	lookup, _ := requests[0].(map[string]any)
	if path, _ := lookup["path"].(string); lookup["method"] != "GET" || !strings.Contains(path, "jobid=JOB00123") {
		t.Errorf("lookup request = %v", lookup)
	}
}

func TestCLI_ConfiguredJSONFormat(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.UI.ResponseFormat = config.ResponseFormatJSON

	run := runCLI(t, cfg, nil, "zos-jobs", "delete", "old-jobs")
	if run.err != nil {
		t.Fatalf("Execute() returned error: %v", run.err)
	}
	doc := decodeResponse(t, run.stdout)
	if doc["success"] != true {
		t.Errorf("success = %v", doc["success"])
	}
}

func TestCLI_EnvironmentValues(t *testing.T) {
	t.Parallel()

	env := map[string]string{"ZOWE_OPT_OWNER": "ENVUSER"}
	run := runCLI(t, nil, env, "zos-jobs", "list", "jobs")
	if run.err != nil {
		t.Fatalf("Execute() returned error: %v", run.err)
	}
	if !strings.Contains(run.stdout, "owner=ENVUSER") {
		t.Errorf("stdout missing the environment owner:\n%s", run.stdout)
	}

	cfg := config.DefaultConfig()
	cfg.EnvPrefix = "MYZOWE"
	env = map[string]string{"MYZOWE_OPT_OWNER": "PREFIXED", "ZOWE_OPT_OWNER": "IGNORED"}
	run = runCLI(t, cfg, env, "zos-jobs", "list", "jobs")
	if run.err != nil {
		t.Fatalf("Execute() returned error: %v", run.err)
	}
	if !strings.Contains(run.stdout, "owner=PREFIXED") || strings.Contains(run.stdout, "IGNORED") {
		t.Errorf("configured env prefix not honoured:\n%s", run.stdout)
	}
}

const greetDefinitions = `commands:
  - name: demo
    summary: Demo commands
    children:
      - name: greet
        summary: Say hello
        options:
          - name: name
            aliases: [n]
            type: string
            required: true
          - name: times
            type: number
            numericValueRange: [1, 3]
`

func TestCLI_ConfiguredDefinitions(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Definitions = []string{writeFile(t, "demo.yaml", greetDefinitions)}

	t.Run("echo handler", func(t *testing.T) {
		t.Parallel()

		run := runCLI(t, cfg, nil, "demo", "greet", "-n", "Ada", "--times", "2")
		if run.err != nil {
			t.Fatalf("Execute() returned error: %v\nstderr: %s", run.err, run.stderr)
		}
		for _, want := range []string{"name: Ada", "times: 2"} {
			if !strings.Contains(run.stdout, want) {
				t.Errorf("stdout missing %q:\n%s", want, run.stdout)
			}
		}
	})

	t.Run("missing required option", func(t *testing.T) {
		t.Parallel()

		run := runCLI(t, cfg, nil, "demo", "greet")
		requireExitCode(t, run.err, 1)
		if !strings.Contains(run.stderr, "Missing Required Option:\n--name (-n)") {
			t.Errorf("stderr:\n%s", run.stderr)
		}
	})

	t.Run("built-in group still present", func(t *testing.T) {
		t.Parallel()

		run := runCLI(t, cfg, nil, "zos-jobs", "view", "job-status-by-jobid", "JOB1")
		if run.err != nil {
			t.Fatalf("Execute() returned error: %v", run.err)
		}
	})
}

func TestCLI_BrokenDefinitionsWarn(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Definitions = []string{
		filepath.Join(t.TempDir(), "missing.yaml"),
		writeFile(t, "clash.yaml", "commands:\n  - name: zos-jobs\n    children:\n      - name: x\n"),
	}

	run := runCLI(t, cfg, nil, "zos-jobs", "list", "jobs")
	if run.err != nil {
		t.Fatalf("Execute() returned error: %v", run.err)
	}
	if strings.Count(run.stderr, "Warning:") != 2 {
		t.Errorf("expected two warnings, got:\n%s", run.stderr)
	}
	if !strings.Contains(run.stderr, "already defined") {
		t.Errorf("stderr missing the name clash:\n%s", run.stderr)
	}
}

func TestCLI_UnknownSubcommand(t *testing.T) {
	t.Parallel()

	run := runCLI(t, nil, nil, "zos-jobs", "frobnicate")
	var ae *issue.ActionableError
	if !errors.As(run.err, &ae) {
		t.Fatalf("expected *issue.ActionableError, got %v", run.err)
	}
	if ae.Issue != issue.CommandNotFoundId {
		t.Errorf("issue = %d, want CommandNotFoundId", ae.Issue)
	}
}

func TestCLI_LeafHelp(t *testing.T) {
	t.Parallel()

	run := runCLI(t, nil, nil, "zos-jobs", "list", "jobs", "--help")
	if run.err != nil {
		t.Fatalf("Execute() returned error: %v", run.err)
	}
	for _, want := range []string{"Options:", "--owner", "--max-jobs"} {
		if !strings.Contains(run.stdout, want) {
			t.Errorf("help missing %q:\n%s", want, run.stdout)
		}
	}
}

func TestCLI_DefinitionsValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		run := runCLI(t, nil, nil, "definitions", "validate", writeFile(t, "demo.yaml", greetDefinitions))
		if run.err != nil {
			t.Fatalf("Execute() returned error: %v\nstderr: %s", run.err, run.stderr)
		}
		if !strings.Contains(run.stdout, "1 command(s) defined") {
			t.Errorf("stdout:\n%s", run.stdout)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		bad := `commands:
  - name: broken
    options:
      - name: a
        implies: [nope]
`
		run := runCLI(t, nil, nil, "definitions", "validate", writeFile(t, "bad.yaml", bad))
		requireExitCode(t, run.err, 1)
		if !strings.Contains(run.stderr, "issue(s) found") || !strings.Contains(run.stderr, "nope") {
			t.Errorf("stderr:\n%s", run.stderr)
		}
	})

	t.Run("unparsable", func(t *testing.T) {
		t.Parallel()

		run := runCLI(t, nil, nil, "definitions", "validate", writeFile(t, "bad.ini", "x"))
		requireExitCode(t, run.err, 1)
		if !strings.Contains(run.stderr, "Validation failed") {
			t.Errorf("stderr:\n%s", run.stderr)
		}
	})
}

func TestCLI_DefinitionsList(t *testing.T) {
	t.Parallel()

	run := runCLI(t, nil, nil, "definitions", "list")
	if run.err != nil {
		t.Fatalf("Execute() returned error: %v", run.err)
	}
	for _, want := range []string{"zos-jobs", "  submit", "    data-set", "old-jobs"} {
		if !strings.Contains(run.stdout, want) {
			t.Errorf("list missing %q:\n%s", want, run.stdout)
		}
	}
}

func TestCLI_ConfigShow(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.EnvPrefix = "SHOWN"
	run := runCLI(t, cfg, nil, "config", "show")
	if run.err != nil {
		t.Fatalf("Execute() returned error: %v", run.err)
	}
	if !strings.Contains(run.stdout, `env_prefix: "SHOWN"`) {
		t.Errorf("stdout:\n%s", run.stdout)
	}
}

func TestCLI_ConfigLoadFailureFallsBack(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	loadErr := issue.NewErrorContext().
		WithOperation("load configuration").
		WithIssue(issue.ConfigLoadFailedId).
		Wrap(errors.New("bad field")).
		BuildError()
	app := NewApp(Dependencies{
		Config:    staticConfig{err: loadErr},
		LookupEnv: func(string) (string, bool) { return "", false },
		Stdout:    &stdout,
		Stderr:    &stderr,
	})
	root := newRootCommand(context.Background(), app, nil)
	root.SetArgs([]string{"zos-jobs", "list", "jobs"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}
	if !strings.Contains(stderr.String(), "failed to load configuration: bad field") {
		t.Errorf("stderr:\n%s", stderr.String())
	}
	if !strings.Contains(stdout.String(), "GET /zosmf/restjobs/jobs") {
		t.Errorf("stdout:\n%s", stdout.String())
	}
}
