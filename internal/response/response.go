// SPDX-License-Identifier: MPL-2.0

package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const (
	// FormatDefault writes output as it is produced.
	FormatDefault Format = "default"
	// FormatJSON buffers output and prints one JSON document at the end.
	FormatJSON Format = "json"

	// ErrorExitCode is the exit code of a failed command.
	ErrorExitCode = 1
)

// headerStyle renders error headers (bold red).
var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))

type (
	// Format selects how a Response is presented.
	Format string

	// ValidatorError is one syntax violation attached to the response data.
	ValidatorError struct {
		Message       string `json:"message"`
		OptionInError string `json:"optionInError"`
		Definition    any    `json:"definition,omitempty"`
	}

	// ErrorInfo is the error block of the JSON document.
	ErrorInfo struct {
		Message string `json:"msg"`
		Details string `json:"additionalDetails,omitempty"`
	}

	// JSONResponse is the document printed in JSON mode.
	JSONResponse struct {
		Success  bool       `json:"success"`
		ExitCode int        `json:"exitCode"`
		Message  string     `json:"message"`
		Stdout   string     `json:"stdout"`
		Stderr   string     `json:"stderr"`
		Data     any        `json:"data"`
		Error    *ErrorInfo `json:"error,omitempty"`
	}

	// Option configures a Response.
	Option func(*Response)

	// Response is owned by one command invocation. Methods are safe to call
	// from the handler's goroutines.
	Response struct {
		mu sync.Mutex

		format Format
		out    io.Writer
		errOut io.Writer
		silent bool
		color  bool
		width  int

		stdout bytes.Buffer
		stderr bytes.Buffer

		succeeded       bool
		exitCode        *int
		message         string
		data            any
		validatorErrors []ValidatorError
		err             error

		console *Console
	}

	// Console writes to the response streams.
	Console struct {
		r *Response
	}
)

// WithFormat selects the presentation format.
func WithFormat(f Format) Option {
	return func(r *Response) { r.format = f }
}

// WithWriters streams output to stdout and stderr as it is produced, in
// addition to buffering it. JSON mode only buffers.
func WithWriters(stdout, stderr io.Writer) Option {
	return func(r *Response) {
		r.out = stdout
		r.errOut = stderr
	}
}

// WithColor enables lipgloss styling of error headers.
func WithColor(enabled bool) Option {
	return func(r *Response) { r.color = enabled }
}

// WithWidth wraps console lines at width columns. Zero disables wrapping.
func WithWidth(width int) Option {
	return func(r *Response) { r.width = width }
}

// Silent suppresses streaming; output is still buffered.
func Silent() Option {
	return func(r *Response) { r.silent = true }
}

// New creates a response that starts out successful.
func New(opts ...Option) *Response {
	r := &Response{format: FormatDefault, succeeded: true}
	for _, opt := range opts {
		opt(r)
	}
	r.console = &Console{r: r}
	return r
}

// Console returns the console writer.
func (r *Response) Console() *Console {
	return r.console
}

// Format returns the presentation format.
func (r *Response) Format() Format {
	return r.format
}

// ErrorHeader writes header followed by ':' to stderr.
func (r *Response) ErrorHeader(header string) {
	r.console.ErrorHeader(header)
}

// Error writes message to stderr and returns what was written.
func (r *Response) Error(message string) string {
	return r.console.Error(message)
}

// AppendValidatorError records a syntax violation and fails the response.
// The accumulated list becomes the response data.
func (r *Response) AppendValidatorError(message, optionInError string, definition any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.validatorErrors = append(r.validatorErrors, ValidatorError{
		Message:       message,
		OptionInError: optionInError,
		Definition:    definition,
	})
	r.data = append([]ValidatorError(nil), r.validatorErrors...)
	r.succeeded = false
}

// ValidatorErrors returns the recorded syntax violations.
func (r *Response) ValidatorErrors() []ValidatorError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ValidatorError(nil), r.validatorErrors...)
}

// Valid reports whether no violation was recorded and the command did not
// fail.
func (r *Response) Valid() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.succeeded && len(r.validatorErrors) == 0
}

// Failed marks the command as failed.
func (r *Response) Failed() {
	r.mu.Lock()
	r.succeeded = false
	r.mu.Unlock()
}

// SetExitCode overrides the exit code derived from success.
func (r *Response) SetExitCode(code int) {
	r.mu.Lock()
	r.exitCode = &code
	r.mu.Unlock()
}

// ExitCode returns the explicit exit code, or 0/ErrorExitCode from success.
func (r *Response) ExitCode() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.exitCodeLocked()
}

func (r *Response) exitCodeLocked() int {
	if r.exitCode != nil {
		return *r.exitCode
	}
	if r.succeeded {
		return 0
	}
	return ErrorExitCode
}

// SetError records err and fails the command.
func (r *Response) SetError(err error) {
	r.mu.Lock()
	r.err = err
	r.succeeded = false
	r.mu.Unlock()
}

// SetData replaces the structured data.
func (r *Response) SetData(data any) {
	r.mu.Lock()
	r.data = data
	r.mu.Unlock()
}

// SetMessage sets the summary message of the JSON document.
func (r *Response) SetMessage(format string, args ...any) string {
	msg := formatMessage(format, args...)
	r.mu.Lock()
	r.message = msg
	r.mu.Unlock()
	return msg
}

// Stdout returns the buffered standard output.
func (r *Response) Stdout() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stdout.String()
}

// Stderr returns the buffered standard error.
func (r *Response) Stderr() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stderr.String()
}

// Text returns stdout followed by stderr.
func (r *Response) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stdout.String() + r.stderr.String()
}

// BuildJSON returns the JSON response document.
func (r *Response) BuildJSON() JSONResponse {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := JSONResponse{
		Success:  r.succeeded && len(r.validatorErrors) == 0,
		ExitCode: r.exitCodeLocked(),
		Message:  r.message,
		Stdout:   r.stdout.String(),
		Stderr:   r.stderr.String(),
		Data:     r.data,
	}
	if r.err != nil {
		doc.Error = &ErrorInfo{Message: r.err.Error()}
		if cause := unwrapOnce(r.err); cause != nil {
			doc.Error.Details = cause.Error()
		}
	}
	return doc
}

// WriteJSON writes the indented JSON document to w.
func (r *Response) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(r.BuildJSON(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

func (r *Response) streaming() bool {
	return !r.silent && r.format != FormatJSON
}

func (r *Response) writeStdout(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stdout.WriteString(s)
	if r.out != nil && r.streaming() {
		_, _ = io.WriteString(r.out, s)
	}
}

func (r *Response) writeStderr(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stderr.WriteString(s)
	if r.errOut != nil && r.streaming() {
		_, _ = io.WriteString(r.errOut, s)
	}
}

func (r *Response) wrap(s string) string {
	if r.width <= 0 {
		return s
	}
	return wordwrap.String(s, r.width)
}

// Log writes msg as a line to stdout.
func (c *Console) Log(msg string) string {
	line := c.r.wrap(msg) + "\n"
	c.r.writeStdout(line)
	return line
}

// Logf formats according to a format specifier and writes the line to
// stdout.
func (c *Console) Logf(format string, args ...any) string {
	return c.Log(fmt.Sprintf(format, args...))
}

// Error writes msg as a line to stderr.
func (c *Console) Error(msg string) string {
	line := c.r.wrap(msg) + "\n"
	c.r.writeStderr(line)
	return line
}

// Errorf formats according to a format specifier and writes the line to
// stderr.
func (c *Console) Errorf(format string, args ...any) string {
	return c.Error(fmt.Sprintf(format, args...))
}

// ErrorHeader writes "header:" on its own line to stderr, styled when
// color is enabled.
func (c *Console) ErrorHeader(header string) string {
	msg := header + ":"
	if c.r.color {
		msg = headerStyle.Render(msg)
	}
	msg += "\n"
	c.r.writeStderr(msg)
	return msg
}

func formatMessage(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

func unwrapOnce(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}
