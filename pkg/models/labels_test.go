package models

import (
	"errors"
	"testing"
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "DRAFT", "draft"},
		{"trim spaces", "  draft  ", "draft"},
		{"replace spaces", "act one", "act-one"},
		{"remove invalid chars", "draft!v2?", "draftv2"},
		{"keep hyphens", "act-one", "act-one"},
		{"numbers allowed", "rev-3", "rev-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLabel(tt.input); got != tt.expected {
				t.Errorf("NormalizeLabel(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid simple", "draft", nil},
		{"valid with space", "act one", nil},
		{"empty", "", ErrEmptyLabel},
		{"too long", "abcdefghijklmnopqrstuvwxyz-abcde", ErrLabelTooLong},
		{"invalid char", "draft!", ErrInvalidLabelChars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateLabel(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestLabelColorIsStable(t *testing.T) {
	a := LabelColor("draft")
	b := LabelColor("DRAFT")
	if a != b {
		t.Errorf("case-insensitive labels should share a color: %s vs %s", a, b)
	}
	if a == "" || a[0] != '#' {
		t.Errorf("LabelColor returned %q, want a hex color", a)
	}
}

func TestLabelColorAlwaysFromPalette(t *testing.T) {
	inPalette := func(color string) bool {
		for _, c := range LabelPalette {
			if c == color {
				return true
			}
		}
		return false
	}
	for _, label := range []string{"draft", "act-one", "rev-3", "polish", "final", "cold-open"} {
		if color := LabelColor(label); !inPalette(color) {
			t.Errorf("LabelColor(%q) = %q, not a palette color", label, color)
		}
	}
}

func TestHasLabel(t *testing.T) {
	f := &File{Labels: []string{"draft", "act-one"}}
	if !f.HasLabel("draft") {
		t.Error("expected draft label")
	}
	if f.HasLabel("final") {
		t.Error("unexpected final label")
	}
}
