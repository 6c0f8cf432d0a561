// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "load command definitions"},
			expected: "failed to load command definitions",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "load command definitions", Resource: "./zosjobs.cue"},
			expected: "failed to load command definitions: ./zosjobs.cue",
		},
		{
			name:     "operation with cause",
			err:      &ActionableError{Operation: "load configuration", Cause: errors.New("ui.verbose: conflicting values")},
			expected: "failed to load configuration: ui.verbose: conflicting values",
		},
		{
			name: "all parts",
			err: &ActionableError{
				Operation: "compile command definition",
				Resource:  "list jobs",
				Cause:     errors.New("No such option was defined: owner"),
			},
			expected: "failed to compile command definition: list jobs: No such option was defined: owner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("not found")
	err := WrapWithContext(fmt.Errorf("open: %w", sentinel), "load command definitions", "a.yaml")
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is() did not reach the wrapped sentinel")
	}
	if WrapWithOperation(nil, "x") != nil || WrapWithContext(nil, "x", "y") != nil {
		t.Error("wrapping nil must return nil")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("decode: %w", errors.New("unknown field \"conflicts\""))
	err := NewErrorContext().
		WithOperation("load command definitions").
		WithResource("jobs.yaml").
		WithSuggestion("Field names are camelCase").
		WithSuggestions("Run 'zowe definitions validate jobs.yaml'").
		Wrap(cause).
		Build()

	if !err.HasSuggestions() {
		t.Fatal("HasSuggestions() = false")
	}

	short := err.Format(false)
	for _, want := range []string{
		"failed to load command definitions: jobs.yaml",
		"  • Field names are camelCase",
		"  • Run 'zowe definitions validate jobs.yaml'",
	} {
		if !strings.Contains(short, want) {
			t.Errorf("Format(false) missing %q:\n%s", want, short)
		}
	}
	if strings.Contains(short, "Error chain") {
		t.Error("Format(false) included the error chain")
	}

	long := err.Format(true)
	if !strings.Contains(long, "Error chain:") || !strings.Contains(long, "  2. unknown field \"conflicts\"") {
		t.Errorf("Format(true) missing the numbered chain:\n%s", long)
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithResource("x").Wrap(errors.New("boom"))
	if ctx.Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if err := ctx.BuildError(); err != nil {
		t.Errorf("BuildError() = %v, want nil interface", err)
	}
}
