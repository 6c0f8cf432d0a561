// SPDX-License-Identifier: MPL-2.0

package cmddef

import (
	"errors"
	"testing"
)

func TestAllowablePattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		entry string
		want  string
	}{
		{"allowableA", "^(?:allowableA)$"},
		{"^allowableA", "^(?:allowableA)$"},
		{"allowableA$", "^(?:allowableA)$"},
		{`allowableC\$`, `^(?:allowableC\$)$`},
		{"^full$", "^(?:full)$"},
		{"red|blue", "^(?:red|blue)$"},
		{"^red|blue$", "^(?:red|blue)$"},
	}
	for _, tt := range tests {
		if got := AllowablePattern(tt.entry); got != tt.want {
			t.Errorf("AllowablePattern(%q) = %q, want %q", tt.entry, got, tt.want)
		}
	}
}

func TestAllowableValues_Matches(t *testing.T) {
	t.Parallel()

	opt := &Option{
		Name: "option-to-specify-3",
		AllowableValues: &AllowableValues{
			Values: []string{"allowableA", "allowableB", "allowableC$", `allowableD\$`, "num-[0-9]+"},
		},
	}
	constraints, err := opt.Constraints()
	if err != nil {
		t.Fatalf("Constraints() error = %v", err)
	}
	if len(constraints) != 1 {
		t.Fatalf("Constraints() = %d entries, want 1", len(constraints))
	}
	av, ok := constraints[0].(AllowableValuesConstraint)
	if !ok {
		t.Fatalf("constraint is %T, want AllowableValuesConstraint", constraints[0])
	}

	tests := []struct {
		value string
		want  bool
	}{
		{"allowableA", true},
		{"ALLOWABLEB", true},
		{"allowableC$", true},
		{"allowableD$", true},
		{"num-42", true},
		{"allowableC$C", false},
		{"^allowableA$", false},
		{"aallowableAA", false},
		{"allowableAA", false},
		{"num-", false},
	}
	for _, tt := range tests {
		if got := av.Matches(tt.value); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestAllowableValues_CaseSensitive(t *testing.T) {
	t.Parallel()

	opt := &Option{Name: "mode", AllowableValues: &AllowableValues{Values: []string{"Fast"}, CaseSensitive: true}}
	constraints, err := opt.Constraints()
	if err != nil {
		t.Fatal(err)
	}
	av := constraints[0].(AllowableValuesConstraint)
	if !av.Matches("Fast") {
		t.Error(`Matches("Fast") = false`)
	}
	if av.Matches("fast") {
		t.Error(`Matches("fast") = true with caseSensitive`)
	}
}

func TestOption_Constraints_Order(t *testing.T) {
	t.Parallel()

	no := false
	opt := &Option{
		Name:                "x",
		Type:                OptionTypeArray,
		ValueImplications:   map[string]ValueImplication{"b": {ImpliedOptionNames: []string{"y"}}, "a": {ImpliedOptionNames: []string{"z"}}},
		ArrayAllowDuplicate: &no,
		StringLengthRange:   Range{1, 2},
		NumericValueRange:   Range{1, 2},
		ImpliesOneOf:        []string{"y"},
		Implies:             []string{"y"},
		ConflictsWith:       []string{"z"},
		AllowableValues:     &AllowableValues{Values: []string{"a"}},
		AbsenceImplications: []string{"y"},
	}
	constraints, err := opt.Constraints()
	if err != nil {
		t.Fatal(err)
	}
	want := []ConstraintKind{
		KindAbsenceImplies, KindAllowableValues, KindConflictsWith, KindImplies, KindImpliesOneOf,
		KindNumericRange, KindLengthRange, KindNoDuplicates, KindValueImplies,
	}
	if len(constraints) != len(want) {
		t.Fatalf("Constraints() returned %d, want %d", len(constraints), len(want))
	}
	for i, c := range constraints {
		if c.Kind() != want[i] {
			t.Errorf("constraint[%d].Kind() = %q, want %q", i, c.Kind(), want[i])
		}
	}
	vi := constraints[len(constraints)-1].(ValueImplies)
	if vi.Triggers[0].Value != "a" || vi.Triggers[1].Value != "b" {
		t.Errorf("value triggers not sorted: %+v", vi.Triggers)
	}
	if refs := References(vi); len(refs) != 2 || refs[0] != "z" || refs[1] != "y" {
		t.Errorf("References(ValueImplies) = %q", refs)
	}
}

func TestOption_Constraints_Errors(t *testing.T) {
	t.Parallel()

	bad := &Option{Name: "x", AllowableValues: &AllowableValues{Values: []string{"(unclosed"}}}
	if _, err := bad.Constraints(); !errors.Is(err, ErrInvalidRegex) {
		t.Errorf("Constraints() error = %v, want ErrInvalidRegex", err)
	}
	inverted := &Option{Name: "x", NumericValueRange: Range{10, 1}}
	if _, err := inverted.Constraints(); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("Constraints() error = %v, want ErrInvalidRange", err)
	}
}

func TestOption_Constraints_DuplicatesOnlyForArrays(t *testing.T) {
	t.Parallel()

	no := false
	opt := &Option{Name: "x", ArrayAllowDuplicate: &no}
	constraints, err := opt.Constraints()
	if err != nil {
		t.Fatal(err)
	}
	if len(constraints) != 0 {
		t.Errorf("scalar option got %d constraints, want 0", len(constraints))
	}
}
