package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// ScriptHubDir is the per-directory storage root, one file per key.
	ScriptHubDir = ".scripthub"

	keyPrefix = "scripthub."

	// ProjectsKey holds the whole project table as one JSON document.
	ProjectsKey = keyPrefix + "projects"
	// CurrentProjectKey holds the id of the last opened project.
	CurrentProjectKey = keyPrefix + "currentProject"
	// SessionKey holds the crash-recovery session snapshot.
	SessionKey = keyPrefix + "lastSession"
	// SettingsKey holds the YAML settings document.
	SettingsKey = keyPrefix + "settings"

	fileKeyPrefix = keyPrefix + "file."
)

// KeyValueStore is the persistence contract the rest of the app builds on.
// Single-key writes only; no transactions.
type KeyValueStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// FileContentKey returns the storage key for a file's text content.
func FileContentKey(fileID string) string {
	return fileKeyPrefix + fileID
}

// MemoryStore is an in-process KeyValueStore, used in tests and as a
// scratch backend.
type MemoryStore struct {
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	delete(s.values, key)
	return nil
}

// Len reports the number of stored keys.
func (s *MemoryStore) Len() int {
	return len(s.values)
}

// FileStore persists each key as a file under a .scripthub directory.
type FileStore struct {
	dir string
}

// NewFileStore opens (or creates) the storage directory rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	root := filepath.Join(dir, ScriptHubDir)
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", root, err)
	}
	return &FileStore{dir: root}, nil
}

func (s *FileStore) path(key string) string {
	// Keys are dotted identifiers; keep them flat on disk.
	name := strings.ReplaceAll(key, string(filepath.Separator), "_")
	return filepath.Join(s.dir, name)
}

func (s *FileStore) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return string(data), true, nil
}

func (s *FileStore) Set(key, value string) error {
	if err := os.WriteFile(s.path(key), []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Remove(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove key %s: %w", key, err)
	}
	return nil
}
