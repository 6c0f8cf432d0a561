// SPDX-License-Identifier: MPL-2.0

// Package config handles zowe CLI configuration using Viper with CUE as the
// file format.
//
// Configuration is read from config.cue in the user config directory
// ($XDG_CONFIG_HOME/zowe on Linux, ~/Library/Application Support/zowe on
// macOS, %APPDATA%\zowe on Windows) or from the current directory. The file
// is checked against the embedded #Config schema before Viper merges it over
// the defaults; ZOWE_CLI_* environment variables override both.
package config
