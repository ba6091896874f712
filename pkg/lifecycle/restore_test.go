package lifecycle

import (
	"testing"

	"github.com/scripthub/scripthub-cli/pkg/models"
)

func TestRestoreNothingToRestore(t *testing.T) {
	r := newRig(t)

	restored, err := r.controller.RestoreSession()
	if err != nil {
		t.Fatalf("RestoreSession failed: %v", err)
	}
	if restored {
		t.Error("restored = true with no snapshot present")
	}
	if r.controller.State() != StateEphemeral {
		t.Errorf("state = %v, want ephemeral", r.controller.State())
	}
}

func TestRestoreBindsExistingFile(t *testing.T) {
	r := newRig(t)
	r.withProject(t)
	id := r.withFile(t, "scene1", "INT. ROOM - DAY")

	snap := models.SessionSnapshot{
		FileID: id,
		Text:   "INT. ROOM - DAY\n\nNew unsaved line.",
		Cursor: 12,
		Scroll: 3,
		Dirty:  true,
	}
	if err := r.session.SaveSnapshot(snap); err != nil {
		t.Fatal(err)
	}

	restored, err := r.controller.RestoreSession()
	if err != nil {
		t.Fatalf("RestoreSession failed: %v", err)
	}
	if !restored {
		t.Fatal("restored = false, want true")
	}

	if r.controller.State() != StateIdentified {
		t.Errorf("state = %v, want identified", r.controller.State())
	}
	if r.controller.CurrentFileID() != id {
		t.Errorf("bound id = %q, want %q", r.controller.CurrentFileID(), id)
	}
	if r.surface.text != snap.Text {
		t.Errorf("editor text = %q, want the snapshot text", r.surface.text)
	}
	if r.surface.cursor != 12 || r.surface.scroll != 3 {
		t.Errorf("cursor/scroll = %d/%d, want 12/3", r.surface.cursor, r.surface.scroll)
	}
	if !r.dirty.IsDirty() {
		t.Error("a dirty snapshot must restore as dirty")
	}
	if got := r.title.DisplayTitle(); got != "scene1 *" {
		t.Errorf("title = %q, want %q", got, "scene1 *")
	}
}

func TestRestoreMissingFileFallsBackToUntitled(t *testing.T) {
	// The snapshot references an id that no longer resolves. The text must
	// survive into an untitled ephemeral document, and no file entry may
	// be created for the dead id.
	r := newRig(t)
	r.withProject(t)

	snap := models.SessionSnapshot{
		FileID: "gone",
		Text:   "orphaned draft",
		Dirty:  true,
	}
	if err := r.session.SaveSnapshot(snap); err != nil {
		t.Fatal(err)
	}

	restored, err := r.controller.RestoreSession()
	if err != nil {
		t.Fatalf("RestoreSession failed: %v", err)
	}
	if !restored {
		t.Fatal("restored = false, want true")
	}

	if r.controller.State() != StateEphemeral {
		t.Errorf("state = %v, want ephemeral fallback", r.controller.State())
	}
	if r.controller.CurrentFileID() != "" {
		t.Errorf("bound id = %q, want none", r.controller.CurrentFileID())
	}
	if r.surface.text != "orphaned draft" {
		t.Errorf("editor text = %q, the draft must not be lost", r.surface.text)
	}
	if r.index.FileCount() != 0 {
		t.Error("restore must never fabricate a file entry")
	}
	if !r.dirty.IsDirty() {
		t.Error("the recovered draft is unsaved and must read as dirty")
	}
	if got := r.title.DisplayTitle(); got != UntitledName+" *" {
		t.Errorf("title = %q, want %q", got, UntitledName+" *")
	}
}

func TestRestoreCleanSnapshot(t *testing.T) {
	r := newRig(t)
	r.withProject(t)
	id := r.withFile(t, "scene1", "INT. ROOM - DAY")

	snap := models.SessionSnapshot{FileID: id, Text: "INT. ROOM - DAY", Dirty: false}
	if err := r.session.SaveSnapshot(snap); err != nil {
		t.Fatal(err)
	}

	if _, err := r.controller.RestoreSession(); err != nil {
		t.Fatalf("RestoreSession failed: %v", err)
	}
	if r.dirty.IsDirty() {
		t.Error("a clean snapshot must restore as clean")
	}
}

func TestRestoreNeverRegistersAsEdit(t *testing.T) {
	// Restoring writes text through a programmatic origin; the snapshot it
	// came from must not be immediately rewritten by the change handler.
	r := newRig(t)
	r.withProject(t)

	snap := models.SessionSnapshot{Text: "draft", Dirty: true}
	if err := r.session.SaveSnapshot(snap); err != nil {
		t.Fatal(err)
	}

	before := r.content.saves
	if _, err := r.controller.RestoreSession(); err != nil {
		t.Fatalf("RestoreSession failed: %v", err)
	}
	if r.content.saves != before {
		t.Error("restore must not write content")
	}
}
