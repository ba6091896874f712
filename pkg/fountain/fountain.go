package fountain

import (
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// LineType classifies a script line for display purposes.
type LineType int

const (
	LineEmpty LineType = iota
	LineTitlePage
	LineSceneHeading
	LineCharacter
	LineParenthetical
	LineDialogue
	LineTransition
	LineAction
)

// Line is one classified line of script text.
type Line struct {
	Type LineType
	Text string
}

var sceneHeadingPrefixes = []string{"INT.", "EXT.", "EST.", "INT/EXT", "I/E"}

// Parse classifies text line by line. The grammar is intentionally small:
// enough structure for a readable preview, nothing more.
func Parse(text string) []Line {
	raw := strings.Split(text, "\n")
	lines := make([]Line, len(raw))

	inTitlePage := true
	inDialogue := false

	for i, s := range raw {
		trimmed := strings.TrimSpace(s)

		if trimmed == "" {
			lines[i] = Line{Type: LineEmpty}
			inTitlePage = false
			inDialogue = false
			continue
		}

		if inTitlePage && strings.Contains(trimmed, ":") && !strings.HasSuffix(trimmed, "TO:") {
			lines[i] = Line{Type: LineTitlePage, Text: trimmed}
			continue
		}
		inTitlePage = false

		switch {
		case isSceneHeading(trimmed):
			lines[i] = Line{Type: LineSceneHeading, Text: strings.TrimPrefix(trimmed, ".")}
			inDialogue = false
		case isTransition(trimmed):
			lines[i] = Line{Type: LineTransition, Text: trimmed}
			inDialogue = false
		case inDialogue && strings.HasPrefix(trimmed, "("):
			lines[i] = Line{Type: LineParenthetical, Text: trimmed}
		case inDialogue:
			lines[i] = Line{Type: LineDialogue, Text: trimmed}
		case isCharacter(trimmed, nextNonEmpty(raw, i)):
			lines[i] = Line{Type: LineCharacter, Text: trimmed}
			inDialogue = true
		default:
			lines[i] = Line{Type: LineAction, Text: trimmed}
		}
	}

	return lines
}

func isSceneHeading(s string) bool {
	if strings.HasPrefix(s, ".") && len(s) > 1 {
		return true
	}
	upper := strings.ToUpper(s)
	if upper != s {
		return false
	}
	for _, prefix := range sceneHeadingPrefixes {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}

func isTransition(s string) bool {
	return strings.ToUpper(s) == s && strings.HasSuffix(s, "TO:")
}

func isCharacter(s string, next string) bool {
	if next == "" {
		return false
	}
	if strings.ToUpper(s) != s {
		return false
	}
	// Needs at least one letter, so numbers and punctuation don't read
	// as character cues.
	return strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
}

func nextNonEmpty(raw []string, i int) string {
	if i+1 >= len(raw) {
		return ""
	}
	return strings.TrimSpace(raw[i+1])
}

// Render lays out classified lines in screenplay margins, wrapped to
// width columns.
func Render(lines []Line, width int) string {
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	for _, line := range lines {
		switch line.Type {
		case LineEmpty:
			b.WriteString("\n")
		case LineTitlePage:
			b.WriteString(line.Text + "\n")
		case LineSceneHeading:
			b.WriteString(strings.ToUpper(line.Text) + "\n")
		case LineCharacter:
			b.WriteString(indent.String(line.Text, uint(width/3)) + "\n")
		case LineParenthetical:
			b.WriteString(indent.String(line.Text, uint(width/4)) + "\n")
		case LineDialogue:
			wrapped := wordwrap.String(line.Text, width/2)
			b.WriteString(indent.String(wrapped, uint(width/6)) + "\n")
		case LineTransition:
			b.WriteString(indent.String(line.Text, uint(width/2)) + "\n")
		default:
			b.WriteString(wordwrap.String(line.Text, width) + "\n")
		}
	}
	return b.String()
}
