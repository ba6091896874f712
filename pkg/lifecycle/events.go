package lifecycle

// ChangeOrigin tags where a text change came from. Only OriginEditor
// counts as a genuine user edit; everything else is programmatic and must
// never trip dirty tracking.
type ChangeOrigin string

const (
	OriginEditor  ChangeOrigin = "editor"
	OriginOpen    ChangeOrigin = "open"
	OriginRestore ChangeOrigin = "restore"
	OriginNew     ChangeOrigin = "new"
)

// Programmatic reports whether the change did not originate from the user
// typing in the editor surface.
func (o ChangeOrigin) Programmatic() bool {
	return o != OriginEditor
}

// Events is the typed observer surface between the core and the UI layer.
// All notifications are fire-and-forget.
type Events interface {
	TitleChanged(title string, dirty bool)
	TextChanged(text string, origin ChangeOrigin)
}

// NopEvents discards all notifications.
type NopEvents struct{}

func (NopEvents) TitleChanged(string, bool)        {}
func (NopEvents) TextChanged(string, ChangeOrigin) {}

// EditorSurface is the text-editing widget as the core sees it. The
// surface is the only legitimate origin of non-programmatic changes; the
// UI adapter is responsible for tagging SetText pushes so they do not
// register as edits.
type EditorSurface interface {
	Text() string
	SetText(text string, origin ChangeOrigin)
	Cursor() int
	SetCursor(pos int)
	Scroll() int
	SetScroll(offset int)
}
