package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/tinoosan/merchants/internal/errs"
)

func strPtr(s string) *string { return &s }

func TestInputValidate_Limits(t *testing.T) {
	cases := []struct {
		name string
		in   Input
		ok   bool
	}{
		{"min name", Input{Name: "A"}, true},
		{"max name", Input{Name: strings.Repeat("a", MaxNameLen)}, true},
		{"empty name", Input{Name: ""}, false},
		{"name too long", Input{Name: strings.Repeat("a", MaxNameLen+1)}, false},
		{"empty description", Input{Name: "Acme", Description: strPtr("")}, true},
		{"max description", Input{Name: "Acme", Description: strPtr(strings.Repeat("d", MaxDescriptionLen))}, true},
		{"description too long", Input{Name: "Acme", Description: strPtr(strings.Repeat("d", MaxDescriptionLen+1))}, false},
		{"whitespace name kept", Input{Name: " "}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if tc.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatalf("expected validation error")
				}
				if !errors.Is(err, errs.ErrUnprocessable) {
					t.Fatalf("expected ErrUnprocessable, got %v", err)
				}
			}
		})
	}
}

func TestInputValidate_CountsCharactersNotBytes(t *testing.T) {
	// 100 two-byte runes is still within the limit
	in := Input{Name: strings.Repeat("é", MaxNameLen)}
	if err := in.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	in.Name += "é"
	if err := in.Validate(); err == nil {
		t.Fatalf("expected too long")
	}
}

func TestValidateID(t *testing.T) {
	if err := ValidateID(0); !errors.Is(err, errs.ErrUnprocessable) {
		t.Fatalf("expected 0 to be rejected, got %v", err)
	}
	if err := ValidateID(-3); err == nil {
		t.Fatalf("expected negative id to be rejected")
	}
	if err := ValidateID(1); err != nil {
		t.Fatalf("expected 1 to be accepted, got %v", err)
	}
}

func TestValidationMessagesAreClientFacing(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{ValidateID(0), "id must be >= 1"},
		{Input{}.Validate(), "name is required"},
		{Input{Name: strings.Repeat("n", 101)}.Validate(), "name must be at most 100 characters"},
		{Input{Name: "a", Description: strPtr(strings.Repeat("d", 501))}.Validate(), "description must be at most 500 characters"},
	}
	for _, tc := range cases {
		if tc.err == nil || tc.err.Error() != tc.want {
			t.Fatalf("expected %q, got %v", tc.want, tc.err)
		}
		if !errors.Is(tc.err, errs.ErrUnprocessable) {
			t.Fatalf("%q should match ErrUnprocessable", tc.want)
		}
	}
}

func TestFromInputDoesNotAlias(t *testing.T) {
	desc := "original"
	m := FromInput(7, Input{Name: "Acme", Description: &desc})
	desc = "changed"
	if m.ID != 7 || *m.Description != "original" {
		t.Fatalf("unexpected merchant: %+v", m)
	}
	c := m.Clone()
	*c.Description = "clone"
	if *m.Description != "original" {
		t.Fatalf("clone aliases original")
	}
}
