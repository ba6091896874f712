package store

import (
	"encoding/json"
	"fmt"

	"github.com/scripthub/scripthub-cli/pkg/models"
)

// SessionStore persists the crash-recovery snapshot. The snapshot is an
// opportunistic record: it is overwritten on every genuine edit and only
// consulted once at startup.
type SessionStore struct {
	kv KeyValueStore
}

func NewSessionStore(kv KeyValueStore) *SessionStore {
	return &SessionStore{kv: kv}
}

func (s *SessionStore) SaveSnapshot(snap models.SessionSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode session snapshot: %w", err)
	}
	if err := s.kv.Set(SessionKey, string(data)); err != nil {
		return fmt.Errorf("failed to save session snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns nil when no snapshot exists or when the stored
// record is unreadable. A corrupt snapshot is not worth failing startup
// over, so it is treated as absent.
func (s *SessionStore) LoadSnapshot() (*models.SessionSnapshot, error) {
	raw, ok, err := s.kv.Get(SessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load session snapshot: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var snap models.SessionSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, nil
	}
	return &snap, nil
}

func (s *SessionStore) ClearSnapshot() error {
	return s.kv.Remove(SessionKey)
}
