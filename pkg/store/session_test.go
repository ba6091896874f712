package store

import (
	"testing"

	"github.com/scripthub/scripthub-cli/pkg/models"
)

func TestSessionSnapshotRoundTrip(t *testing.T) {
	s := NewSessionStore(NewMemoryStore())

	snap, err := s.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot on a fresh store")
	}

	in := models.SessionSnapshot{
		FileID: "f1",
		Text:   "INT. ROOM - NIGHT",
		Cursor: 3,
		Scroll: 12,
		Dirty:  true,
	}
	if err := s.SaveSnapshot(in); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	out, err := s.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if out == nil {
		t.Fatal("expected a snapshot")
	}
	if *out != in {
		t.Errorf("snapshot = %+v, want %+v", *out, in)
	}

	if err := s.ClearSnapshot(); err != nil {
		t.Fatalf("ClearSnapshot failed: %v", err)
	}
	if snap, _ := s.LoadSnapshot(); snap != nil {
		t.Error("expected snapshot to be gone after clear")
	}
}

func TestCorruptSnapshotTreatedAsAbsent(t *testing.T) {
	kv := NewMemoryStore()
	if err := kv.Set(SessionKey, "{not json"); err != nil {
		t.Fatal(err)
	}

	s := NewSessionStore(kv)
	snap, err := s.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if snap != nil {
		t.Error("corrupt snapshot should read as absent")
	}
}

func TestSettingsDefaults(t *testing.T) {
	kv := NewMemoryStore()

	settings, err := ReadSettings(kv)
	if err != nil {
		t.Fatalf("ReadSettings failed: %v", err)
	}
	if settings.Editor.Mode != "screenplay" {
		t.Errorf("default mode = %q, want screenplay", settings.Editor.Mode)
	}

	settings.Editor.Mode = "stageplay"
	if err := WriteSettings(kv, settings); err != nil {
		t.Fatalf("WriteSettings failed: %v", err)
	}

	reread, err := ReadSettings(kv)
	if err != nil {
		t.Fatalf("ReadSettings failed: %v", err)
	}
	if reread.Editor.Mode != "stageplay" {
		t.Errorf("mode = %q after round trip, want stageplay", reread.Editor.Mode)
	}
}
