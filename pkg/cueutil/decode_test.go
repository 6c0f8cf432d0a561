// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#Doc: {
	name:   string
	count:  int & >=0
	tags?:  [...string]
}
`

type testDoc struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags,omitempty"`
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		want    testDoc
		wantErr string
	}{
		{
			name: "all fields",
			data: `name: "a", count: 2, tags: ["x", "y"]`,
			want: testDoc{Name: "a", Count: 2, Tags: []string{"x", "y"}},
		},
		{
			name: "optional field omitted",
			data: `name: "b", count: 0`,
			want: testDoc{Name: "b"},
		},
		{
			name:    "constraint violated",
			data:    `name: "c", count: -1`,
			wantErr: "count",
		},
		{
			name:    "closed definition rejects unknown field",
			data:    `name: "d", count: 1, extra: true`,
			wantErr: "extra",
		},
		{
			name:    "syntax error",
			data:    `name: "e", count: `,
			wantErr: "doc.cue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode[testDoc]([]byte(testSchema), []byte(tt.data), "#Doc", WithFilename("doc.cue"))
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Decode() error = nil, want error containing %q", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Decode() error = %q, want it to contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got.Name != tt.want.Name || got.Count != tt.want.Count || strings.Join(got.Tags, ",") != strings.Join(tt.want.Tags, ",") {
				t.Errorf("Decode() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestDecode_MissingDefinition(t *testing.T) {
	t.Parallel()

	_, err := Decode[testDoc]([]byte(testSchema), []byte(`name: "a", count: 1`), "#Nope")
	if err == nil || !strings.Contains(err.Error(), "#Nope") {
		t.Errorf("Decode() error = %v, want mention of #Nope", err)
	}
}

func TestDecode_NotConcrete(t *testing.T) {
	t.Parallel()

	if _, err := Unify([]byte(testSchema), []byte(`name: "a"`), "#Doc"); err == nil {
		t.Error("Unify() with missing required field should fail when concrete")
	}
	if _, err := Unify([]byte(testSchema), []byte(`name: "a"`), "#Doc", WithConcrete(false)); err != nil {
		t.Errorf("Unify(WithConcrete(false)) error = %v", err)
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize(make([]byte, 10), 10, "f"); err != nil {
		t.Errorf("CheckFileSize(10, 10) = %v, want nil", err)
	}
	err := CheckFileSize(make([]byte, 11), 10, "f")
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("CheckFileSize(11, 10) = %v, want ErrFileTooLarge", err)
	}

	_, err = Decode[testDoc]([]byte(testSchema), []byte(`name: "a", count: 1`), "#Doc", WithMaxFileSize(4))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("Decode(WithMaxFileSize(4)) = %v, want ErrFileTooLarge", err)
	}
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	if err := FormatError(nil, "x.cue"); err != nil {
		t.Errorf("FormatError(nil) = %v, want nil", err)
	}
	err := FormatError(errors.New("boom"), "x.cue")
	if err == nil || err.Error() != "x.cue: boom" {
		t.Errorf("FormatError(plain) = %v, want %q", err, "x.cue: boom")
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"name"}, "name"},
		{[]string{"commands", "0", "name"}, "commands[0].name"},
		{[]string{"commands", "1", "options", "12", "type"}, "commands[1].options[12].type"},
		{[]string{"0"}, "0"},
	}
	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
