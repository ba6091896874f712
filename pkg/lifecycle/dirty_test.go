package lifecycle

import (
	"testing"

	"github.com/rs/zerolog"
)

func newTracker() (*DirtyTracker, *TitleState) {
	title := NewTitleState(nil)
	return NewDirtyTracker(title, zerolog.Nop()), title
}

func TestDirtyCleanRoundTrip(t *testing.T) {
	d, _ := newTracker()

	d.MarkDirty("f1", "edit")
	if !d.IsDirty() || !d.IsFileDirty("f1") {
		t.Fatal("expected f1 to be dirty")
	}

	d.OnFileSaved("f1")
	if d.IsFileDirty("f1") {
		t.Error("saving the dirty file must clear the flag")
	}
}

func TestSaveOfDifferentFileLeavesFlag(t *testing.T) {
	d, _ := newTracker()

	d.MarkDirty("f1", "edit")
	d.OnFileSaved("f2")

	if !d.IsFileDirty("f1") {
		t.Error("saving a different file must not clear f1's dirty flag")
	}
}

func TestMarkDirtyIdempotent(t *testing.T) {
	d, _ := newTracker()

	d.MarkDirty("f1", "edit")
	d.MarkDirty("f1", "edit again")

	if !d.IsFileDirty("f1") {
		t.Error("repeated marks must keep the flag set")
	}
}

func TestUntitledDocumentCanBeDirty(t *testing.T) {
	d, _ := newTracker()

	d.MarkDirty("", "edit before first save")
	if !d.IsDirty() {
		t.Error("an untitled document must be able to go dirty")
	}
	if d.IsFileDirty("f1") {
		t.Error("no specific file should read as dirty")
	}
}

func TestLifecycleHooksClear(t *testing.T) {
	d, _ := newTracker()

	d.MarkDirty("f1", "edit")
	d.OnFileOpened("f2")
	if d.IsDirty() {
		t.Error("opening a file must clear the flag")
	}

	d.MarkDirty("f2", "edit")
	d.OnFileClosed()
	if d.IsDirty() {
		t.Error("closing must clear the flag")
	}
}

func TestDirtyTransitionsDriveTitleMarker(t *testing.T) {
	d, title := newTracker()

	d.MarkDirty("f1", "edit")
	if title.DisplayTitle() != UntitledName+" *" {
		t.Errorf("display title = %q, want dirty marker", title.DisplayTitle())
	}

	d.MarkClean("test")
	if title.DisplayTitle() != UntitledName {
		t.Errorf("display title = %q, want clean", title.DisplayTitle())
	}
}
