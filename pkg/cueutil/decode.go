// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize caps the size of documents accepted by Decode (5MB).
const DefaultMaxFileSize int64 = 5 << 20

type (
	decodeOptions struct {
		filename    string
		maxFileSize int64
		concrete    bool
	}

	// Option adjusts Decode.
	Option func(*decodeOptions)
)

// WithFilename names the document in error messages.
func WithFilename(name string) Option {
	return func(o *decodeOptions) { o.filename = name }
}

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(size int64) Option {
	return func(o *decodeOptions) { o.maxFileSize = size }
}

// WithConcrete controls whether every field must be concrete after
// unification. It defaults to true; config documents, where most fields are
// optional, turn it off.
func WithConcrete(concrete bool) Option {
	return func(o *decodeOptions) { o.concrete = concrete }
}

// Unify compiles schema and data, unifies data with the schema definition
// at defPath and validates the result.
func Unify(schema, data []byte, defPath string, opts ...Option) (cue.Value, error) {
	o := decodeOptions{filename: "<input>", maxFileSize: DefaultMaxFileSize, concrete: true}
	for _, opt := range opts {
		opt(&o)
	}

	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return cue.Value{}, err
	}

	ctx := cuecontext.New()
	schemaValue := ctx.CompileBytes(schema)
	if err := schemaValue.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("internal error: compile schema: %w", err)
	}
	def := schemaValue.LookupPath(cue.ParsePath(defPath))
	if err := def.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema has no %s: %w", defPath, err)
	}

	doc := ctx.CompileBytes(data, cue.Filename(o.filename))
	if err := doc.Err(); err != nil {
		return cue.Value{}, FormatError(err, o.filename)
	}

	unified := def.Unify(doc)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return cue.Value{}, FormatError(err, o.filename)
	}
	return unified, nil
}

// Decode unifies data with the schema definition at defPath and decodes the
// result into a T.
func Decode[T any](schema, data []byte, defPath string, opts ...Option) (*T, error) {
	unified, err := Unify(schema, data, defPath, opts...)
	if err != nil {
		return nil, err
	}
	o := decodeOptions{filename: "<input>"}
	for _, opt := range opts {
		opt(&o)
	}
	var out T
	if err := unified.Decode(&out); err != nil {
		return nil, FormatError(err, o.filename)
	}
	return &out, nil
}
