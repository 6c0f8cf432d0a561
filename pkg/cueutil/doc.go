// SPDX-License-Identifier: MPL-2.0

// Package cueutil decodes CUE documents against an embedded schema.
//
// Definition files and the application config share the same flow: the
// schema is compiled, the document is compiled and unified with a schema
// definition, the result is validated and then decoded into a Go value.
// Errors carry the document name and the CUE path of the offending field,
// for example "zosjobs.cue: commands[0].options[2].type: ...".
//
//	//go:embed cmddef_schema.cue
//	var schema []byte
//
//	doc, err := cueutil.Decode[Definitions](schema, data, "#Definitions",
//	    cueutil.WithFilename("zosjobs.cue"))
package cueutil
