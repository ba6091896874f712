package store

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/scripthub/scripthub-cli/pkg/models"
)

// ReadSettings loads the settings document, falling back to defaults when
// none has been written yet. Unknown or missing fields keep their default.
func ReadSettings(kv KeyValueStore) (*models.Settings, error) {
	settings := models.DefaultSettings()

	raw, ok, err := kv.Get(SettingsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if !ok {
		return settings, nil
	}

	if err := yaml.Unmarshal([]byte(raw), settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}
	return settings, nil
}

// WriteSettings persists the settings document as YAML.
func WriteSettings(kv KeyValueStore, settings *models.Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}
	if err := kv.Set(SettingsKey, string(data)); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
