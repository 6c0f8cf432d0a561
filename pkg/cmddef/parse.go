// SPDX-License-Identifier: MPL-2.0

package cmddef

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zowe/zowe-cli-sub019/pkg/cueutil"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for definition files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported definition format")

//go:embed cmddef_schema.cue
var schema []byte

// Definitions is a definition document: a list of top-level commands.
type Definitions struct {
	Commands []*Command `json:"commands" yaml:"commands" toml:"commands"`
}

// Schema returns the embedded CUE schema for definition documents.
func Schema() []byte {
	return bytes.Clone(schema)
}

// Parse decodes a definition document; the decoder is chosen by the
// extension of filename (.cue, .yaml, .yml, .toml, .json, .jsonc).
// The result is not structure-validated; see ParseFile.
func Parse(data []byte, filename string) (*Definitions, error) {
	var defs Definitions
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".cue":
		parsed, err := cueutil.Decode[Definitions](schema, data, "#Definitions", cueutil.WithFilename(filename))
		if err != nil {
			return nil, err
		}
		defs = *parsed
	case ".yaml", ".yml":
		if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, filename); err != nil {
			return nil, err
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&defs); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	case ".toml":
		if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, filename); err != nil {
			return nil, err
		}
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&defs); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	case ".json", ".jsonc":
		if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, filename); err != nil {
			return nil, err
		}
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&defs); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	default:
		return nil, fmt.Errorf("%s: %w %q (valid: .cue, .yaml, .yml, .toml, .json, .jsonc)", filename, ErrUnsupportedFormat, ext)
	}
	return &defs, nil
}

// ParseFile reads, decodes and structure-validates a definition document.
func ParseFile(path string) (*Definitions, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > cueutil.DefaultMaxFileSize {
		return nil, &cueutil.FileTooLargeError{Filename: path, Size: info.Size(), Max: cueutil.DefaultMaxFileSize}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	defs, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	if err := defs.Validate(); err != nil {
		return nil, err
	}
	return defs, nil
}

// Tree returns a nameless root group holding the document's commands.
func (d *Definitions) Tree() *Command {
	return &Command{Type: CommandTypeGroup, Children: d.Commands}
}

// Validate structure-validates every command of the document.
func (d *Definitions) Validate() error {
	return d.Tree().Validate()
}
