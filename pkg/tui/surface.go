package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/scripthub/scripthub-cli/pkg/lifecycle"
)

// Surface adapts a bubbles textarea to the lifecycle.EditorSurface
// contract. Pushes from the core arrive tagged with their origin so they
// never read as user edits; keystrokes routed through UpdateKeys are the
// only source of editor-origin changes.
type Surface struct {
	area   textarea.Model
	scroll int
	events lifecycle.Events
}

func NewSurface(events lifecycle.Events) *Surface {
	area := textarea.New()
	area.Placeholder = "INT. SOMEWHERE - DAY"
	area.ShowLineNumbers = false
	area.CharLimit = 0
	if events == nil {
		events = lifecycle.NopEvents{}
	}
	return &Surface{area: area, events: events}
}

func (s *Surface) Text() string {
	return s.area.Value()
}

// SetText replaces the buffer programmatically and announces the change
// with its origin tag.
func (s *Surface) SetText(text string, origin lifecycle.ChangeOrigin) {
	s.area.SetValue(text)
	s.events.TextChanged(text, origin)
}

// Cursor reports the current line index. Line granularity is enough for
// session restore.
func (s *Surface) Cursor() int {
	return s.area.Line()
}

// SetCursor moves to the start of the given line.
func (s *Surface) SetCursor(pos int) {
	for s.area.Line() > 0 {
		s.area.CursorUp()
	}
	s.area.CursorStart()
	for i := 0; i < pos && s.area.Line() < s.area.LineCount()-1; i++ {
		s.area.CursorDown()
	}
}

func (s *Surface) Scroll() int {
	return s.scroll
}

// SetScroll records the restored scroll offset. The textarea manages its
// own viewport; the value is carried for the session snapshot contract.
func (s *Surface) SetScroll(offset int) {
	s.scroll = offset
}

// Focus gives the textarea keyboard focus.
func (s *Surface) Focus() tea.Cmd {
	return s.area.Focus()
}

func (s *Surface) Blur() {
	s.area.Blur()
}

func (s *Surface) SetSize(width, height int) {
	s.area.SetWidth(width)
	s.area.SetHeight(height)
}

// UpdateKeys feeds a key event into the textarea and reports whether the
// buffer changed, i.e. whether a genuine edit happened.
func (s *Surface) UpdateKeys(msg tea.Msg) (tea.Cmd, bool) {
	before := s.area.Value()
	var cmd tea.Cmd
	s.area, cmd = s.area.Update(msg)
	after := s.area.Value()
	if after != before {
		s.events.TextChanged(after, lifecycle.OriginEditor)
		return cmd, true
	}
	return cmd, false
}

func (s *Surface) View() string {
	return s.area.View()
}
