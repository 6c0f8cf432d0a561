// SPDX-License-Identifier: MPL-2.0

package jobs

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/zowe/zowe-cli-sub019/pkg/cmddef"
)

// GroupName is the top-level group declared by the embedded definitions.
const GroupName = "zos-jobs"

//go:embed zosjobs.cue
var definitionsSource []byte

// Source returns the embedded CUE definitions.
func Source() []byte {
	return bytes.Clone(definitionsSource)
}

// Definitions decodes and structure-validates the embedded definitions.
// Each call returns a fresh document the caller may modify.
func Definitions() (*cmddef.Definitions, error) {
	defs, err := cmddef.Parse(definitionsSource, "zosjobs.cue")
	if err != nil {
		return nil, fmt.Errorf("embedded zos-jobs definitions: %w", err)
	}
	if err := defs.Validate(); err != nil {
		return nil, fmt.Errorf("embedded zos-jobs definitions: %w", err)
	}
	return defs, nil
}
