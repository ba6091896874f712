package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/scripthub/scripthub-cli/pkg/store"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	kv := store.NewMemoryStore()
	app, err := NewApp(kv, store.NewContentStore(kv), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app
}

func TestTitleBarRendersFromEventMirror(t *testing.T) {
	app := newTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	// Title changes land in the mirror; the view must pick them up from
	// there, not from the lifecycle collaborators a background save may
	// be mutating.
	app.events.TitleChanged("scene1", true)

	if view := app.View(); !strings.Contains(view, "scene1 *") {
		t.Errorf("view does not show the mirrored title:\n%s", view)
	}
}

func TestEditorKeystrokeMarksDirty(t *testing.T) {
	app := newTestApp(t)
	app.state = editorView
	app.surface.Focus()
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})

	if !app.controller.Dirty().IsDirty() {
		t.Error("a keystroke in the editor must mark the document dirty")
	}
}

func TestEventMirrorConcurrentAccess(t *testing.T) {
	// The guard goroutine publishes title and highlight updates while the
	// render loop reads; the mirror must tolerate that interleaving.
	e := newUIEvents()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			e.TitleChanged("scene1", i%2 == 0)
			e.FileHighlighted("f1")
		}
	}()

	for i := 0; i < 1000; i++ {
		_ = e.DisplayTitle()
		_ = e.Highlighted()
	}
	<-done

	if got := e.Highlighted(); got != "f1" {
		t.Errorf("highlighted = %q, want f1", got)
	}
}
