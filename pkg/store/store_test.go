package store

import (
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	if _, ok, _ := s.Get("missing"); ok {
		t.Error("expected missing key to report ok=false")
	}

	if err := s.Set("k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, ok, err := s.Get("k")
	if err != nil || !ok || v != "v" {
		t.Errorf("Get = (%q, %v, %v), want (v, true, nil)", v, ok, err)
	}

	if err := s.Remove("k"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Error("expected removed key to be gone")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if _, ok, _ := s.Get(ProjectsKey); ok {
		t.Error("expected empty store to report ok=false")
	}

	if err := s.Set(ProjectsKey, `{"a":1}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, ok, err := s.Get(ProjectsKey)
	if err != nil || !ok || v != `{"a":1}` {
		t.Errorf("Get = (%q, %v, %v)", v, ok, err)
	}

	if err := s.Remove(ProjectsKey); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	// Removing twice must not fail.
	if err := s.Remove(ProjectsKey); err != nil {
		t.Errorf("Remove of absent key failed: %v", err)
	}
}

func TestContentStoreEmptyForAbsent(t *testing.T) {
	c := NewContentStore(NewMemoryStore())

	text, err := c.LoadText("nope")
	if err != nil {
		t.Fatalf("LoadText failed: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty text for absent file, got %q", text)
	}
}

func TestContentStoreSaveRequiresID(t *testing.T) {
	c := NewContentStore(NewMemoryStore())

	if err := c.SaveText("", "text"); err == nil {
		t.Error("expected error saving without a file id")
	}
}

func TestContentStoreRoundTrip(t *testing.T) {
	c := NewContentStore(NewMemoryStore())

	if err := c.SaveText("f1", "INT. ROOM"); err != nil {
		t.Fatalf("SaveText failed: %v", err)
	}
	text, err := c.LoadText("f1")
	if err != nil {
		t.Fatalf("LoadText failed: %v", err)
	}
	if text != "INT. ROOM" {
		t.Errorf("LoadText = %q, want INT. ROOM", text)
	}
}
