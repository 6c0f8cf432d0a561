// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/zowe/zowe-cli-sub019/internal/config"
	"github.com/zowe/zowe-cli-sub019/internal/issue"
)

// InvocationKey is the key of the invocation ID attached to every record.
const InvocationKey = "invocation"

// ErrInvalidLogLevel is returned for a level charmbracelet/log cannot parse.
var ErrInvalidLogLevel = errors.New("invalid log level")

var newInvocationID = uuid.NewString

// Session is the logger of one invocation.
type Session struct {
	logger       *log.Logger
	invocationID string
	closer       io.Closer
}

// New creates the invocation logger. stderr receives records unless
// cfg.File is set.
func New(cfg config.LogConfig, stderr io.Writer) (*Session, error) {
	level, err := log.ParseLevel(string(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.Level)
	}

	var (
		out    = stderr
		closer io.Closer
	)
	if cfg.File != "" {
		dir := filepath.Dir(cfg.File)
		if info, statErr := os.Stat(dir); statErr != nil || !info.IsDir() {
			if statErr == nil {
				statErr = fmt.Errorf("%s is not a directory", dir)
			}
			return nil, issue.NewErrorContext().
				WithOperation("open log file").
				WithResource(cfg.File).
				WithSuggestion("Create the directory or change log.file in your config").
				WithIssue(issue.LogFileFailedId).
				Wrap(statErr).
				BuildError()
		}
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
		out, closer = rotating, rotating
	}

	id := newInvocationID()
	logger := log.NewWithOptions(out, log.Options{
		Prefix:          config.AppName,
		Level:           level,
		ReportTimestamp: cfg.File != "",
	}).With(InvocationKey, id)

	return &Session{logger: logger, invocationID: id, closer: closer}, nil
}

// Discard returns a session that drops every record.
func Discard() *Session {
	return &Session{
		logger:       log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel + 1}),
		invocationID: newInvocationID(),
	}
}

// Logger returns the invocation logger.
func (s *Session) Logger() *log.Logger {
	return s.logger
}

// For returns a logger whose records are prefixed with component.
func (s *Session) For(component string) *log.Logger {
	return s.logger.WithPrefix(config.AppName + "/" + component)
}

// InvocationID returns the ID attached to every record.
func (s *Session) InvocationID() string {
	return s.invocationID
}

// Close flushes and closes the log file, if any.
func (s *Session) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
