package store

import "fmt"

// ContentStore persists and retrieves the text associated with a file id.
// It is deliberately decoupled from the project index: the index never
// holds text, and the content store never holds metadata.
type ContentStore interface {
	SaveText(fileID, text string) error
	// LoadText returns the stored text, or an empty string when no
	// content exists for the id. Absent and empty are not distinguished.
	LoadText(fileID string) (string, error)
}

// KVContentStore keeps file text in a KeyValueStore, one key per file id.
type KVContentStore struct {
	kv KeyValueStore
}

func NewContentStore(kv KeyValueStore) *KVContentStore {
	return &KVContentStore{kv: kv}
}

func (c *KVContentStore) SaveText(fileID, text string) error {
	if fileID == "" {
		return fmt.Errorf("cannot save content without a file id")
	}
	if err := c.kv.Set(FileContentKey(fileID), text); err != nil {
		return fmt.Errorf("failed to save content for %s: %w", fileID, err)
	}
	return nil
}

func (c *KVContentStore) LoadText(fileID string) (string, error) {
	if fileID == "" {
		return "", nil
	}
	text, _, err := c.kv.Get(FileContentKey(fileID))
	if err != nil {
		return "", fmt.Errorf("failed to load content for %s: %w", fileID, err)
	}
	return text, nil
}
