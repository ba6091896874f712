package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/n2code/ndocid"
	"github.com/rs/zerolog"

	"github.com/scripthub/scripthub-cli/pkg/models"
	"github.com/scripthub/scripthub-cli/pkg/store"
)

var (
	ErrEmptyName      = errors.New("name must not be empty")
	ErrNoProject      = errors.New("no project is open")
	ErrUnknownProject = errors.New("unknown project id")
	ErrNotPrivileged  = errors.New("file creation requires the privileged entry point")
)

// Notifier receives registry-level UI signals. Notifications are
// fire-and-forget; the index never waits on a listener.
type Notifier interface {
	FileHighlighted(fileID string)
}

// Index is the authoritative registry of projects and their files.
// It holds metadata only; file contents live in the content store.
// The whole project table is persisted as one document on every mutation,
// before control returns to the caller.
type Index struct {
	kv       store.KeyValueStore
	logger   zerolog.Logger
	notifier Notifier

	projects         map[string]*models.Project
	currentProjectID string

	clock func() time.Time
	idSeq uint64
}

// NewIndex loads the project table from the store. A store failure here is
// fatal to the caller: the index must not run against half-loaded state.
func NewIndex(kv store.KeyValueStore, logger zerolog.Logger) (*Index, error) {
	ix := &Index{
		kv:       kv,
		logger:   logger,
		projects: make(map[string]*models.Project),
		clock:    time.Now,
	}

	raw, ok, err := kv.Get(store.ProjectsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load project table: %w", err)
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &ix.projects); err != nil {
			return nil, fmt.Errorf("failed to parse project table: %w", err)
		}
	}

	current, ok, err := kv.Get(store.CurrentProjectKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load current project pointer: %w", err)
	}
	if ok {
		if _, known := ix.projects[current]; known {
			ix.currentProjectID = current
		}
	}

	return ix, nil
}

// SetNotifier attaches the UI signal listener. A nil notifier is fine.
func (ix *Index) SetNotifier(n Notifier) {
	ix.notifier = n
}

func (ix *Index) newID() string {
	ix.idSeq++
	return ndocid.EncodeUint64(uint64(ix.clock().UnixNano()) + ix.idSeq)
}

func (ix *Index) persist() error {
	data, err := json.Marshal(ix.projects)
	if err != nil {
		return fmt.Errorf("failed to marshal project table: %w", err)
	}
	if err := ix.kv.Set(store.ProjectsKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist project table: %w", err)
	}
	return nil
}

func (ix *Index) persistCurrentProject() error {
	if ix.currentProjectID == "" {
		return ix.kv.Remove(store.CurrentProjectKey)
	}
	return ix.kv.Set(store.CurrentProjectKey, ix.currentProjectID)
}

// CreateProject registers a new project and makes it current.
func (ix *Index) CreateProject(name string) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}

	id := ix.newID()
	now := ix.clock()
	ix.projects[id] = &models.Project{
		ID:         id,
		Name:       name,
		Created:    now,
		LastOpened: now,
		// Files are created only through the privileged creator.
		Files: make(map[string]*models.File),
	}
	ix.currentProjectID = id

	if err := ix.persist(); err != nil {
		return "", err
	}
	if err := ix.persistCurrentProject(); err != nil {
		return "", err
	}

	ix.logger.Info().Str("project", id).Str("name", name).Msg("project created")
	return id, nil
}

// OpenProject makes an existing project current and stamps lastOpened.
func (ix *Index) OpenProject(projectID string) error {
	p, ok := ix.projects[projectID]
	if !ok {
		return ErrUnknownProject
	}

	ix.currentProjectID = projectID
	p.LastOpened = ix.clock()

	if err := ix.persist(); err != nil {
		return err
	}
	return ix.persistCurrentProject()
}

// GetCurrentProject returns a copy of the current project, or nil when no
// project is open. The copy keeps callers from mutating the file table
// behind the index's back.
func (ix *Index) GetCurrentProject() *models.Project {
	p, ok := ix.projects[ix.currentProjectID]
	if !ok {
		return nil
	}
	return copyProject(p)
}

// ListProjects returns summaries in map order.
func (ix *Index) ListProjects() []models.ProjectSummary {
	summaries := make([]models.ProjectSummary, 0, len(ix.projects))
	for _, p := range ix.projects {
		summaries = append(summaries, models.ProjectSummary{
			ID:         p.ID,
			Name:       p.Name,
			Created:    p.Created,
			LastOpened: p.LastOpened,
		})
	}
	return summaries
}

// CreateFile is the non-privileged form and always fails closed. File
// identities come into existence only through Privileged().CreateFile,
// which save-as flows hold the capability for. This keeps stray "ensure
// file exists" code paths from minting identities by accident.
func (ix *Index) CreateFile(name string) (string, error) {
	ix.logger.Warn().Str("name", name).Msg("createFile blocked: not privileged")
	return "", ErrNotPrivileged
}

// FileCreator is the capability that authorizes file creation. Holding a
// value of this type is the privilege; there is no toggle to leave on.
type FileCreator struct {
	ix *Index
}

// Privileged hands out the file-creation capability.
func (ix *Index) Privileged() FileCreator {
	return FileCreator{ix: ix}
}

// CreateFile registers a new file in the current project and persists the
// table. The content store entry is written by the caller.
func (c FileCreator) CreateFile(name string) (string, error) {
	ix := c.ix
	if ix == nil {
		return "", ErrNotPrivileged
	}
	p, ok := ix.projects[ix.currentProjectID]
	if !ok {
		return "", ErrNoProject
	}
	if name == "" {
		return "", ErrEmptyName
	}

	id := ix.newID()
	now := ix.clock()
	p.Files[id] = &models.File{
		ID:       id,
		Name:     name,
		Created:  now,
		Modified: now,
	}

	if err := ix.persist(); err != nil {
		delete(p.Files, id)
		return "", err
	}

	ix.logger.Info().Str("file", id).Str("name", name).Msg("file created")
	return id, nil
}

// GetFile returns a copy of the file's metadata, or nil. It never creates.
func (ix *Index) GetFile(fileID string) *models.File {
	p, ok := ix.projects[ix.currentProjectID]
	if !ok || fileID == "" {
		return nil
	}
	f, ok := p.Files[fileID]
	if !ok {
		return nil
	}
	return copyFile(f)
}

// RenameFile updates a file's display name. Returns false if the file
// does not exist in the current project.
func (ix *Index) RenameFile(fileID, newName string) bool {
	p, ok := ix.projects[ix.currentProjectID]
	if !ok {
		return false
	}
	f, ok := p.Files[fileID]
	if !ok {
		return false
	}

	f.Name = newName
	f.Modified = ix.clock()

	if err := ix.persist(); err != nil {
		ix.logger.Error().Err(err).Str("file", fileID).Msg("rename persisted nothing")
		return false
	}
	return true
}

// LabelFile attaches a normalized label to a file. Labeling never creates
// a file; an unknown id returns an error.
func (ix *Index) LabelFile(fileID, label string) error {
	if err := models.ValidateLabel(label); err != nil {
		return err
	}
	label = models.NormalizeLabel(label)
	if label == "" {
		return models.ErrEmptyLabel
	}

	p, ok := ix.projects[ix.currentProjectID]
	if !ok {
		return ErrNoProject
	}
	f, ok := p.Files[fileID]
	if !ok {
		return fmt.Errorf("cannot label %s: unknown file", fileID)
	}
	if f.HasLabel(label) {
		return nil
	}

	f.Labels = append(f.Labels, label)
	f.Modified = ix.clock()

	if err := ix.persist(); err != nil {
		f.Labels = f.Labels[:len(f.Labels)-1]
		return err
	}

	ix.logger.Info().Str("file", fileID).Str("label", label).Msg("file labeled")
	return nil
}

// UnlabelFile removes a label from a file. Removing an absent label is a
// no-op returning nil.
func (ix *Index) UnlabelFile(fileID, label string) error {
	label = models.NormalizeLabel(label)

	p, ok := ix.projects[ix.currentProjectID]
	if !ok {
		return ErrNoProject
	}
	f, ok := p.Files[fileID]
	if !ok {
		return fmt.Errorf("cannot unlabel %s: unknown file", fileID)
	}

	kept := f.Labels[:0:0]
	for _, l := range f.Labels {
		if l != label {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(f.Labels) {
		return nil
	}

	f.Labels = kept
	f.Modified = ix.clock()
	return ix.persist()
}

// TouchFile stamps a file's modified time, typically after a content save.
func (ix *Index) TouchFile(fileID string) bool {
	p, ok := ix.projects[ix.currentProjectID]
	if !ok {
		return false
	}
	f, ok := p.Files[fileID]
	if !ok {
		return false
	}

	f.Modified = ix.clock()

	if err := ix.persist(); err != nil {
		ix.logger.Error().Err(err).Str("file", fileID).Msg("touch persisted nothing")
		return false
	}
	return true
}

// ListFiles returns the current project's files in map order.
func (ix *Index) ListFiles() []models.File {
	p, ok := ix.projects[ix.currentProjectID]
	if !ok {
		return nil
	}
	files := make([]models.File, 0, len(p.Files))
	for _, f := range p.Files {
		files = append(files, *copyFile(f))
	}
	return files
}

// HighlightFile emits a selection signal for UI listeners. Highlighting
// never creates a file: an unknown id is a no-op returning false.
func (ix *Index) HighlightFile(fileID string) bool {
	p, ok := ix.projects[ix.currentProjectID]
	if !ok {
		return false
	}
	if _, ok := p.Files[fileID]; !ok {
		return false
	}

	if ix.notifier != nil {
		ix.notifier.FileHighlighted(fileID)
	}
	return true
}

// FileCount reports the number of files in the current project.
func (ix *Index) FileCount() int {
	p, ok := ix.projects[ix.currentProjectID]
	if !ok {
		return 0
	}
	return len(p.Files)
}

func copyProject(p *models.Project) *models.Project {
	cp := *p
	cp.Files = make(map[string]*models.File, len(p.Files))
	for id, f := range p.Files {
		cp.Files[id] = copyFile(f)
	}
	return &cp
}

func copyFile(f *models.File) *models.File {
	cp := *f
	cp.Labels = append([]string(nil), f.Labels...)
	return &cp
}
