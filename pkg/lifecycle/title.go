package lifecycle

// UntitledName is the display title for a document with no identity.
const UntitledName = "Untitled"

// TitleState is the single source of truth for the current document title
// and its modified marker. Every change is pushed to the Events listener.
type TitleState struct {
	title  string
	dirty  bool
	events Events
}

func NewTitleState(events Events) *TitleState {
	if events == nil {
		events = NopEvents{}
	}
	return &TitleState{title: UntitledName, events: events}
}

func (t *TitleState) emit() {
	t.events.TitleChanged(t.title, t.dirty)
}

// SetTitle replaces the title, e.g. after an open or save-as.
func (t *TitleState) SetTitle(title string, dirty bool) {
	if title == "" {
		title = UntitledName
	}
	t.title = title
	t.dirty = dirty
	t.emit()
}

// MarkDirty flips the modified marker on.
func (t *TitleState) MarkDirty() {
	if !t.dirty {
		t.dirty = true
		t.emit()
	}
}

// MarkClean flips the modified marker off after a successful save.
func (t *TitleState) MarkClean() {
	if t.dirty {
		t.dirty = false
		t.emit()
	}
}

// Reset returns to a brand new untitled document.
func (t *TitleState) Reset() {
	t.title = UntitledName
	t.dirty = false
	t.emit()
}

func (t *TitleState) Title() string {
	return t.title
}

func (t *TitleState) Dirty() bool {
	return t.dirty
}

// DisplayTitle is the title with the modified marker appended when dirty.
func (t *TitleState) DisplayTitle() string {
	if t.dirty {
		return t.title + " *"
	}
	return t.title
}
