// SPDX-License-Identifier: MPL-2.0

package cmddef

import (
	"errors"
	"slices"
	"testing"
)

func TestOptionType_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value OptionType
		want  bool
	}{
		{OptionTypeString, true},
		{OptionTypeNumber, true},
		{OptionTypeBoolean, true},
		{OptionTypeArray, true},
		{OptionTypeExistingLocalFile, true},
		{OptionTypeStringOrEmpty, true},
		{OptionTypeJSON, true},
		{"", true},
		{"int", false},
		{"Boolean", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			t.Parallel()
			ok, errs := tt.value.IsValid()
			if ok != tt.want {
				t.Errorf("OptionType(%q).IsValid() = %v, want %v", tt.value, ok, tt.want)
			}
			if !ok {
				if len(errs) == 0 || !errors.Is(errs[0], ErrInvalidOptionType) {
					t.Errorf("OptionType(%q).IsValid() errors = %v, want ErrInvalidOptionType", tt.value, errs)
				}
			}
		})
	}
}

func TestOption_GetType(t *testing.T) {
	t.Parallel()

	if got := (&Option{}).GetType(); got != OptionTypeString {
		t.Errorf("GetType() = %q, want %q", got, OptionTypeString)
	}
	if got := (&Option{Type: OptionTypeArray}).GetType(); got != OptionTypeArray {
		t.Errorf("GetType() = %q, want %q", got, OptionTypeArray)
	}
}

func TestOption_AllowsDuplicates(t *testing.T) {
	t.Parallel()

	no := false
	yes := true
	tests := []struct {
		name string
		opt  Option
		want bool
	}{
		{"unset", Option{Type: OptionTypeArray}, true},
		{"true", Option{Type: OptionTypeArray, ArrayAllowDuplicate: &yes}, true},
		{"false", Option{Type: OptionTypeArray, ArrayAllowDuplicate: &no}, false},
	}
	for _, tt := range tests {
		if got := tt.opt.AllowsDuplicates(); got != tt.want {
			t.Errorf("%s: AllowsDuplicates() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestOption_Spellings(t *testing.T) {
	t.Parallel()

	opt := &Option{Name: "should-be-number", Aliases: []string{"sbn", "be-number"}}
	want := []string{"should-be-number", "shouldBeNumber", "sbn", "be-number", "beNumber"}
	if got := opt.Spellings(); !slices.Equal(got, want) {
		t.Errorf("Spellings() = %q, want %q", got, want)
	}
}

func TestOption_Display(t *testing.T) {
	t.Parallel()

	if got := (&Option{Name: "prefix", Aliases: []string{"p"}}).Display(); got != "--prefix (-p)" {
		t.Errorf("Display() = %q, want %q", got, "--prefix (-p)")
	}
	if got := (&Option{Name: "owner"}).Display(); got != "--owner" {
		t.Errorf("Display() = %q, want %q", got, "--owner")
	}
}

func TestPositional(t *testing.T) {
	t.Parallel()

	p := &Positional{Name: "my-array..."}
	if !p.IsVariadic() || p.BaseName() != "my-array" {
		t.Errorf("Positional(%q) IsVariadic=%v BaseName=%q", p.Name, p.IsVariadic(), p.BaseName())
	}
	if p.GetType() != PositionalTypeString {
		t.Errorf("GetType() = %q, want string", p.GetType())
	}
	if ok, errs := PositionalType("array").IsValid(); ok || !errors.Is(errs[0], ErrInvalidPositionalType) {
		t.Errorf("PositionalType(array).IsValid() = %v, %v", ok, errs)
	}
}

func TestRange(t *testing.T) {
	t.Parallel()

	r := Range{1, 12}
	for _, v := range []float64{1, 6.5, 12} {
		if !r.Contains(v) {
			t.Errorf("Range%v.Contains(%v) = false", r, v)
		}
	}
	for _, v := range []float64{0, 13, 15} {
		if r.Contains(v) {
			t.Errorf("Range%v.Contains(%v) = true", r, v)
		}
	}
	if r.String() != "[1, 12]" {
		t.Errorf("String() = %q", r.String())
	}
	if ok, errs := (Range{5, 1}).IsValid(); ok || !errors.Is(errs[0], ErrInvalidRange) {
		t.Errorf("Range{5,1}.IsValid() = %v, %v", ok, errs)
	}
	if ok, _ := (Range{1}).IsValid(); ok {
		t.Error("Range{1}.IsValid() = true, want false")
	}
	if ok, _ := Range(nil).IsValid(); !ok {
		t.Error("nil Range should be valid")
	}
}
