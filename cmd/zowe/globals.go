// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strconv"
	"strings"
)

const (
	flagConfig       = "config"
	flagVerbose      = "verbose"
	flagVerboseShort = "v"
	flagJSON         = "response-format-json"
	flagJSONAlias    = "rfj"
)

// globalFlags are the root's persistent flags.
type globalFlags struct {
	configFile string
	verbose    bool
	json       bool
}

// splitGlobalFlags removes the persistent flags from argv and returns them
// with the remaining tokens. Leaf commands disable cobra flag parsing, so
// these tokens reach them verbatim. Spellings for which defines reports true
// belong to the command and are left in place. Scanning stops at "--".
func splitGlobalFlags(argv []string, defines func(spelling string) bool) (globalFlags, []string) {
	var g globalFlags
	rest := make([]string, 0, len(argv))

	for i := 0; i < len(argv); i++ {
		tok := argv[i]
		if tok == "--" {
			rest = append(rest, argv[i:]...)
			break
		}
		name, value, inline, ok := splitFlagToken(tok)
		if !ok || (defines != nil && defines(name)) {
			rest = append(rest, tok)
			continue
		}

		switch name {
		case flagConfig:
			if inline {
				g.configFile = value
			} else if i+1 < len(argv) {
				i++
				g.configFile = argv[i]
			}
		case flagVerbose, flagVerboseShort:
			g.verbose = boolToken(value, inline)
		case flagJSON, flagJSONAlias:
			g.json = boolToken(value, inline)
		default:
			rest = append(rest, tok)
		}
	}
	return g, rest
}

// splitFlagToken splits "--name=value", "--name" and "-n". Only the short
// verbose spelling is recognized with a single dash.
func splitFlagToken(tok string) (name, value string, inline, ok bool) {
	switch {
	case strings.HasPrefix(tok, "--") && len(tok) > 2:
		name = tok[2:]
	case tok == "-"+flagVerboseShort:
		return flagVerboseShort, "", false, true
	default:
		return "", "", false, false
	}
	if before, after, found := strings.Cut(name, "="); found {
		return before, after, true, true
	}
	return name, "", false, true
}

func boolToken(value string, inline bool) bool {
	if !inline {
		return true
	}
	b, err := strconv.ParseBool(value)
	return err == nil && b
}
