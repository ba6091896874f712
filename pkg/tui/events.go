package tui

import (
	"sync"

	"github.com/scripthub/scripthub-cli/pkg/lifecycle"
)

// uiEvents collects core notifications for the view layer. Guarded saves
// run off the event loop, so access is mutex-protected.
type uiEvents struct {
	mu          sync.Mutex
	title       string
	dirty       bool
	highlighted string
}

func newUIEvents() *uiEvents {
	return &uiEvents{title: lifecycle.UntitledName}
}

func (e *uiEvents) TitleChanged(title string, dirty bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.title = title
	e.dirty = dirty
}

func (e *uiEvents) TextChanged(string, lifecycle.ChangeOrigin) {
	// The surface already holds the text; nothing to mirror here.
}

func (e *uiEvents) FileHighlighted(fileID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.highlighted = fileID
}

// DisplayTitle returns the title with the modified marker when dirty.
func (e *uiEvents) DisplayTitle() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dirty {
		return e.title + " *"
	}
	return e.title
}

func (e *uiEvents) Highlighted() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.highlighted
}
