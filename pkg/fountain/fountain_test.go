package fountain

import (
	"strings"
	"testing"
)

const sampleScript = `Title: Cold Open
Author: R. Marlow

INT. KITCHEN - NIGHT

A kettle whistles. MARA ignores it.

MARA
(not looking up)
It can wait.

CUT TO:

EXT. STREET - DAY

.underpass
`

func TestParseClassifiesLines(t *testing.T) {
	lines := Parse(sampleScript)

	want := []struct {
		text string
		typ  LineType
	}{
		{"Title: Cold Open", LineTitlePage},
		{"Author: R. Marlow", LineTitlePage},
		{"", LineEmpty},
		{"INT. KITCHEN - NIGHT", LineSceneHeading},
		{"", LineEmpty},
		{"A kettle whistles. MARA ignores it.", LineAction},
		{"", LineEmpty},
		{"MARA", LineCharacter},
		{"(not looking up)", LineParenthetical},
		{"It can wait.", LineDialogue},
		{"", LineEmpty},
		{"CUT TO:", LineTransition},
		{"", LineEmpty},
		{"EXT. STREET - DAY", LineSceneHeading},
		{"", LineEmpty},
		{"underpass", LineSceneHeading},
	}

	if len(lines) < len(want) {
		t.Fatalf("got %d lines, want at least %d", len(lines), len(want))
	}
	for i, w := range want {
		if lines[i].Type != w.typ {
			t.Errorf("line %d %q: type = %d, want %d", i, w.text, lines[i].Type, w.typ)
		}
		if w.typ != LineEmpty && lines[i].Text != w.text {
			t.Errorf("line %d: text = %q, want %q", i, lines[i].Text, w.text)
		}
	}
}

func TestCharacterCueNeedsFollowingLine(t *testing.T) {
	// An all-caps line at the end of the script is a shout in action, not
	// a character cue with nothing to say.
	lines := Parse("INT. ROOM - DAY\n\nSILENCE.")
	last := lines[len(lines)-1]
	if last.Type != LineAction {
		t.Errorf("trailing all-caps line: type = %d, want action", last.Type)
	}
}

func TestTransitionNotTitlePage(t *testing.T) {
	// "CUT TO:" contains a colon but must never be read as title metadata
	// even on the first line.
	lines := Parse("CUT TO:\n\nINT. ROOM - DAY")
	if lines[0].Type != LineTransition {
		t.Errorf("first line: type = %d, want transition", lines[0].Type)
	}
}

func TestRenderIndentsDialogue(t *testing.T) {
	lines := Parse("MARA\nIt can wait.\n")
	out := Render(lines, 60)

	rendered := strings.Split(out, "\n")
	if !strings.HasPrefix(rendered[0], strings.Repeat(" ", 20)) {
		t.Errorf("character cue not centered: %q", rendered[0])
	}
	if !strings.HasPrefix(rendered[1], strings.Repeat(" ", 10)) {
		t.Errorf("dialogue not indented: %q", rendered[1])
	}
	if strings.TrimSpace(rendered[1]) != "It can wait." {
		t.Errorf("dialogue text mangled: %q", rendered[1])
	}
}

func TestRenderClampsNarrowWidth(t *testing.T) {
	lines := Parse("A very long action line that should wrap rather than overflow the pane.")
	out := Render(lines, 5)
	for _, l := range strings.Split(out, "\n") {
		if len(l) > 20 {
			t.Errorf("line exceeds clamped width: %q", l)
		}
	}
}
