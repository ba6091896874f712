package models

import "time"

// Project is registry metadata only. File contents never live here; they
// are keyed by file id in the content store.
type Project struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Created    time.Time        `json:"created"`
	LastOpened time.Time        `json:"lastOpened"`
	Files      map[string]*File `json:"files"`
}

// File is the metadata record for a script inside a project. Its presence
// in the project index is the sole source of truth for "this file exists".
type File struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
	Labels   []string  `json:"labels,omitempty"`
}

// ProjectSummary is the listing shape returned by Index.ListProjects.
type ProjectSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Created    time.Time `json:"created"`
	LastOpened time.Time `json:"lastOpened"`
}

// SessionSnapshot is the crash-recovery record. FileID is empty for an
// untitled document. Written on genuine edits, read once at startup,
// cleared by a successful save.
type SessionSnapshot struct {
	FileID string `json:"fileId"`
	Text   string `json:"text"`
	Cursor int    `json:"cursor"`
	Scroll int    `json:"scroll"`
	Dirty  bool   `json:"dirty"`
}
