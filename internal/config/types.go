// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// ResponseFormatText prints command output for people.
	ResponseFormatText ResponseFormat = "text"
	// ResponseFormatJSON prints the response document, as --rfj does.
	ResponseFormatJSON ResponseFormat = "json"

	// LogLevelDebug logs rule evaluation.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is the default level.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs warnings and errors.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs errors only.
	LogLevelError LogLevel = "error"

	// DefaultEnvPrefix prefixes environment variables that supply option
	// values, e.g. ZOWE_OPT_OWNER.
	DefaultEnvPrefix = "ZOWE"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidResponseFormat is returned when a ResponseFormat value is not recognized.
	ErrInvalidResponseFormat = errors.New("invalid response format")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidEnvPrefix is returned when an env prefix is not an upper-case identifier.
	ErrInvalidEnvPrefix = errors.New("invalid env prefix")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")

	envPrefixPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// ResponseFormat selects how command responses are printed.
	ResponseFormat string

	// LogLevel is the minimum level written to the log.
	LogLevel string

	// InvalidValueError is returned when an enum-like config value is not
	// recognized. It wraps the field's sentinel.
	InvalidValueError struct {
		Field    string
		Value    string
		Allowed  []string
		Sentinel error
	}

	// InvalidConfigError collects field-level validation errors.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Log configures the diagnostic log
		Log LogConfig `json:"log" mapstructure:"log"`
		// EnvPrefix prefixes option environment variables (default "ZOWE")
		EnvPrefix string `json:"env_prefix" mapstructure:"env_prefix"`
		// Definitions lists extra command definition files to load
		Definitions []string `json:"definitions" mapstructure:"definitions"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose prints error chains and catalog guidance
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// ResponseFormat sets the default output format
		ResponseFormat ResponseFormat `json:"response_format" mapstructure:"response_format"`
	}

	// LogConfig configures logging.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
		// File, when set, receives the log instead of stderr and is rotated
		File       string `json:"file" mapstructure:"file"`
		MaxSizeMB  int    `json:"max_size_mb" mapstructure:"max_size_mb"`
		MaxBackups int    `json:"max_backups" mapstructure:"max_backups"`
	}
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			ColorScheme:    ColorSchemeAuto,
			ResponseFormat: ResponseFormatText,
		},
		Log: LogConfig{
			Level:      LogLevelInfo,
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		EnvPrefix:   DefaultEnvPrefix,
		Definitions: []string{},
	}
}

// Error implements the error interface.
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s: invalid value %q (valid: %s)", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

// Unwrap returns the field sentinel for errors.Is() compatibility.
func (e *InvalidValueError) Unwrap() error { return e.Sentinel }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap exposes ErrInvalidConfig and every field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// IsValid returns whether the ColorScheme is one of the defined schemes.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidValueError{
			Field: "ui.color_scheme", Value: string(c),
			Allowed: []string{"auto", "dark", "light"}, Sentinel: ErrInvalidColorScheme,
		}}
	}
}

// IsValid returns whether the ResponseFormat is text or json.
func (f ResponseFormat) IsValid() (bool, []error) {
	switch f {
	case ResponseFormatText, ResponseFormatJSON:
		return true, nil
	default:
		return false, []error{&InvalidValueError{
			Field: "ui.response_format", Value: string(f),
			Allowed: []string{"text", "json"}, Sentinel: ErrInvalidResponseFormat,
		}}
	}
}

// IsValid returns whether the LogLevel is one of the defined levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidValueError{
			Field: "log.level", Value: string(l),
			Allowed: []string{"debug", "info", "warn", "error"}, Sentinel: ErrInvalidLogLevel,
		}}
	}
}

// IsValid checks every field that CUE does not already constrain when the
// config came from defaults or the environment.
func (c *Config) IsValid() (bool, []error) {
	var errs []error
	for _, check := range []func() (bool, []error){
		c.UI.ColorScheme.IsValid,
		c.UI.ResponseFormat.IsValid,
		c.Log.Level.IsValid,
	} {
		if ok, fieldErrs := check(); !ok {
			errs = append(errs, fieldErrs...)
		}
	}
	if !envPrefixPattern.MatchString(c.EnvPrefix) {
		errs = append(errs, &InvalidValueError{
			Field: "env_prefix", Value: c.EnvPrefix,
			Allowed: []string{"an upper-case identifier"}, Sentinel: ErrInvalidEnvPrefix,
		})
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}
