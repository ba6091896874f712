package models

import (
	"errors"
	"hash/fnv"
	"strings"
)

// Label-related errors
var (
	ErrEmptyLabel        = errors.New("label cannot be empty")
	ErrLabelTooLong      = errors.New("label cannot exceed 30 characters")
	ErrInvalidLabelChars = errors.New("label contains invalid characters")
)

// LabelPalette provides a curated set of colors for script labels,
// chosen for good contrast and accessibility.
var LabelPalette = []string{
	"#e74c3c", // red
	"#3498db", // blue
	"#2ecc71", // green
	"#f39c12", // orange
	"#9b59b6", // purple
	"#1abc9c", // turquoise
	"#e67e22", // dark orange
	"#16a085", // dark turquoise
	"#f1c40f", // yellow
	"#27ae60", // nephritis
	"#2980b9", // belize hole
	"#c0392b", // pomegranate
}

// LabelColor generates a consistent color from the label text, so the
// same label renders the same color everywhere without a registry.
func LabelColor(label string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(label)))
	// Reduce in uint32 space; a plain int conversion can go negative on
	// 32-bit platforms.
	return LabelPalette[h.Sum32()%uint32(len(LabelPalette))]
}

// NormalizeLabel lowercases, trims, and hyphenates a label so that
// "Act One" and "act-one" refer to the same thing.
func NormalizeLabel(label string) string {
	normalized := strings.ToLower(strings.TrimSpace(label))
	normalized = strings.ReplaceAll(normalized, " ", "-")

	var result strings.Builder
	for _, r := range normalized {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// ValidateLabel checks a label before normalization.
func ValidateLabel(label string) error {
	if label == "" {
		return ErrEmptyLabel
	}
	if len(label) > 30 {
		return ErrLabelTooLong
	}
	for _, r := range label {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == ' ') {
			return ErrInvalidLabelChars
		}
	}
	return nil
}

// HasLabel reports whether label (already normalized) is present.
func (f *File) HasLabel(label string) bool {
	for _, l := range f.Labels {
		if l == label {
			return true
		}
	}
	return false
}
