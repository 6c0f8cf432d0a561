// SPDX-License-Identifier: MPL-2.0

package syntax

import (
	"slices"
	"testing"

	"github.com/zowe/zowe-cli-sub019/internal/testutil/cmddeftest"
)

type recordingSink struct {
	headers  []string
	messages []string
	options  []string
}

func (s *recordingSink) ErrorHeader(header string) { s.headers = append(s.headers, header) }

func (s *recordingSink) Error(message string) string {
	s.messages = append(s.messages, message)
	return message
}

func (s *recordingSink) AppendValidatorError(_, option string, _ any) {
	s.options = append(s.options, option)
}

func TestResult_Report(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t, cmddeftest.ValidationTestName)
	res := v.Validate(withValid(map[string]any{
		"always-required-string": nil,
		"eggs-to-eat":            "0",
	}))

	sink := &recordingSink{}
	res.Report(sink)

	if !slices.Equal(sink.options, []string{"--always-required-string", "--eggs-to-eat"}) {
		t.Errorf("options = %v", sink.options)
	}
	if !slices.Equal(sink.messages, res.Messages()) {
		t.Errorf("messages = %v, want %v", sink.messages, res.Messages())
	}
	for _, h := range sink.headers {
		if h != SyntaxErrorHeader {
			t.Errorf("header = %q, want %q", h, SyntaxErrorHeader)
		}
	}
	if len(sink.headers) != 2 {
		t.Errorf("headers = %d, want 2", len(sink.headers))
	}
}

func TestResult_ValidReportsNothing(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t, cmddeftest.ValidationTestName)
	res := v.Validate(withValid(nil))
	sink := &recordingSink{}
	res.Report(sink)
	if len(sink.headers)+len(sink.messages)+len(sink.options) != 0 {
		t.Errorf("valid result reported %v", sink.messages)
	}
}
