package lifecycle

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/scripthub/scripthub-cli/pkg/project"
	"github.com/scripthub/scripthub-cli/pkg/store"
)

// fakeSurface is an in-memory EditorSurface recording the origin of the
// last programmatic push.
type fakeSurface struct {
	text       string
	cursor     int
	scroll     int
	lastOrigin ChangeOrigin
}

func (s *fakeSurface) Text() string { return s.text }

func (s *fakeSurface) SetText(text string, origin ChangeOrigin) {
	s.text = text
	s.lastOrigin = origin
}

func (s *fakeSurface) Cursor() int        { return s.cursor }
func (s *fakeSurface) SetCursor(pos int)  { s.cursor = pos }
func (s *fakeSurface) Scroll() int        { return s.scroll }
func (s *fakeSurface) SetScroll(off int)  { s.scroll = off }

// type assertion
var _ EditorSurface = (*fakeSurface)(nil)

var errContentIO = errors.New("content store unavailable")

// flakyContent wraps a real content store with switchable failures and a
// save counter.
type flakyContent struct {
	inner    store.ContentStore
	failSave bool
	failLoad bool
	saves    int
}

func (c *flakyContent) SaveText(fileID, text string) error {
	if c.failSave {
		return errContentIO
	}
	c.saves++
	return c.inner.SaveText(fileID, text)
}

func (c *flakyContent) LoadText(fileID string) (string, error) {
	if c.failLoad {
		return "", errContentIO
	}
	return c.inner.LoadText(fileID)
}

type rig struct {
	kv         *store.MemoryStore
	index      *project.Index
	content    *flakyContent
	session    *store.SessionStore
	surface    *fakeSurface
	title      *TitleState
	dirty      *DirtyTracker
	controller *Controller
}

func newRig(t *testing.T) *rig {
	t.Helper()

	kv := store.NewMemoryStore()
	index, err := project.NewIndex(kv, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}

	content := &flakyContent{inner: store.NewContentStore(kv)}
	session := store.NewSessionStore(kv)
	surface := &fakeSurface{}
	title := NewTitleState(nil)
	dirty := NewDirtyTracker(title, zerolog.Nop())

	controller, err := NewController(index, content, session, surface, dirty, title, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}

	return &rig{
		kv:         kv,
		index:      index,
		content:    content,
		session:    session,
		surface:    surface,
		title:      title,
		dirty:      dirty,
		controller: controller,
	}
}

// withProject creates and opens a project named "Demo".
func (r *rig) withProject(t *testing.T) {
	t.Helper()
	if _, err := r.index.CreateProject("Demo"); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
}

// withFile creates a file with content through the privileged path.
func (r *rig) withFile(t *testing.T, name, text string) string {
	t.Helper()
	id, err := r.index.Privileged().CreateFile(name)
	if err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}
	if err := r.content.SaveText(id, text); err != nil {
		t.Fatalf("SaveText failed: %v", err)
	}
	return id
}

func TestControllerRequiresCollaborators(t *testing.T) {
	if _, err := NewController(nil, nil, nil, nil, nil, nil, zerolog.Nop()); err == nil {
		t.Error("expected construction to fail with missing collaborators")
	}
}
