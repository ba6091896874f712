package models

// Settings represents the application configuration
type Settings struct {
	Editor EditorSettings `yaml:"editor"`
	UI     UISettings     `yaml:"ui"`
	Remote RemoteSettings `yaml:"remote"`
}

// EditorSettings controls the writing surface
type EditorSettings struct {
	Mode     string  `yaml:"mode"` // "screenplay", "stageplay" or "tv"
	FontSize float64 `yaml:"font_size"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowPreview     bool   `yaml:"show_preview"`
	ShowPageNumbers bool   `yaml:"show_page_numbers"`
	Theme           string `yaml:"theme"` // "light" or "dark"
}

// RemoteSettings configures the optional remote content backend.
// When URL is empty, content is stored locally.
type RemoteSettings struct {
	URL string `yaml:"url"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Editor: EditorSettings{
			Mode:     "screenplay",
			FontSize: 1.25,
		},
		UI: UISettings{
			ShowPreview:     true,
			ShowPageNumbers: true,
			Theme:           "light",
		},
		Remote: RemoteSettings{
			URL: "",
		},
	}
}
