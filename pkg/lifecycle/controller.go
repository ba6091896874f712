package lifecycle

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/scripthub/scripthub-cli/pkg/models"
	"github.com/scripthub/scripthub-cli/pkg/project"
	"github.com/scripthub/scripthub-cli/pkg/store"
)

var (
	// ErrNoTarget means save was called with no bound file; the caller
	// should redirect to save-as instead of retrying.
	ErrNoTarget = errors.New("no save target: use save-as to create one")
	// ErrUnknownFile means the referenced id does not resolve in the
	// project index.
	ErrUnknownFile = errors.New("unknown file id")
	// ErrBusy means another lifecycle operation is still in flight.
	ErrBusy = errors.New("another file operation is in progress")
)

// SaveState is the identity state of the open document.
type SaveState int

const (
	// StateEphemeral: the editor holds text with no bound file identity.
	// Plain save is disallowed; only save-as may proceed.
	StateEphemeral SaveState = iota
	// StateIdentified: the editor is bound to an existing file id and a
	// plain save overwrites it.
	StateIdentified
)

func (s SaveState) String() string {
	switch s {
	case StateEphemeral:
		return "ephemeral"
	case StateIdentified:
		return "identified"
	}
	return "unknown"
}

// Controller owns the save-state machine: the current file binding, the
// transitions between ephemeral and identified, and every
// persistence-affecting operation on the open document. Save-as is the
// only operation that creates a file identity; open and restore bind to
// existing ones.
//
// Operations are not re-entrant. One lifecycle operation runs at a time;
// an overlapping call fails with ErrBusy.
type Controller struct {
	index   *project.Index
	content store.ContentStore
	session *store.SessionStore
	editor  EditorSurface
	dirty   *DirtyTracker
	title   *TitleState
	logger  zerolog.Logger

	state         SaveState
	currentFileID string
	busy          bool
}

// NewController wires the state machine to its collaborators. All of them
// are required; a missing one is a programming error at startup, not a
// runtime condition to limp through.
func NewController(
	index *project.Index,
	content store.ContentStore,
	session *store.SessionStore,
	editor EditorSurface,
	dirty *DirtyTracker,
	title *TitleState,
	logger zerolog.Logger,
) (*Controller, error) {
	if index == nil || content == nil || session == nil || editor == nil || dirty == nil || title == nil {
		return nil, errors.New("lifecycle controller is missing a required collaborator")
	}
	return &Controller{
		index:   index,
		content: content,
		session: session,
		editor:  editor,
		dirty:   dirty,
		title:   title,
		logger:  logger,
		state:   StateEphemeral,
	}, nil
}

func (c *Controller) begin() error {
	if c.busy {
		return ErrBusy
	}
	c.busy = true
	return nil
}

func (c *Controller) end() {
	c.busy = false
}

// State returns the current save state.
func (c *Controller) State() SaveState {
	return c.state
}

// CurrentFileID returns the bound file id, or "" when ephemeral.
func (c *Controller) CurrentFileID() string {
	return c.currentFileID
}

// Title exposes the title collaborator for display layers.
func (c *Controller) Title() *TitleState {
	return c.title
}

// Dirty exposes the dirty tracker.
func (c *Controller) Dirty() *DirtyTracker {
	return c.dirty
}

// NewFile resets to an untitled ephemeral document. The text clear is
// programmatic, so it never registers as an edit. The project index is
// not touched.
func (c *Controller) NewFile() error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	c.currentFileID = ""
	c.state = StateEphemeral
	c.editor.SetText("", OriginNew)
	c.title.Reset()
	c.dirty.OnFileClosed()

	c.logger.Debug().Msg("new file")
	return nil
}

// AdoptOpenFile binds to an existing file identity without loading
// content. It is the pure binding primitive shared by Open and session
// restore. On failure nothing changes, not even partially.
func (c *Controller) AdoptOpenFile(fileID string) error {
	if c.index.GetCurrentProject() == nil {
		return project.ErrNoProject
	}
	if c.index.GetFile(fileID) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownFile, fileID)
	}

	c.currentFileID = fileID
	c.state = StateIdentified
	return nil
}

// Open binds to fileID and loads its content into the editor. Identity
// errors and content-load errors are distinct: a failed content load
// rolls the binding back so no identified-but-empty state survives.
func (c *Controller) Open(fileID string) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	prevState, prevFileID := c.state, c.currentFileID

	if err := c.AdoptOpenFile(fileID); err != nil {
		return err
	}

	text, err := c.content.LoadText(fileID)
	if err != nil {
		c.state, c.currentFileID = prevState, prevFileID
		return fmt.Errorf("failed to load content: %w", err)
	}

	c.editor.SetText(text, OriginOpen)
	c.editor.SetCursor(0)
	c.editor.SetScroll(0)

	c.index.HighlightFile(fileID)
	c.dirty.OnFileOpened(fileID)

	name := UntitledName
	if f := c.index.GetFile(fileID); f != nil {
		name = f.Name
	}
	c.title.SetTitle(name, false)

	c.logger.Debug().Str("file", fileID).Msg("opened")
	return nil
}

// Save overwrites the bound file's content. It requires an identified
// document; an ephemeral one fails with ErrNoTarget so the UI can
// redirect to save-as. A content write failure leaves the save state and
// dirty flag exactly as they were so the user can retry.
func (c *Controller) Save() error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if c.state != StateIdentified || c.currentFileID == "" {
		return ErrNoTarget
	}

	fileID := c.currentFileID
	if err := c.content.SaveText(fileID, c.editor.Text()); err != nil {
		return fmt.Errorf("failed to save content: %w", err)
	}

	c.index.TouchFile(fileID)
	c.dirty.OnFileSaved(fileID)
	c.title.MarkClean()

	// The canonical save supersedes any crash-recovery snapshot.
	if err := c.session.ClearSnapshot(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to clear session snapshot")
	}

	c.logger.Debug().Str("file", fileID).Msg("saved")
	return nil
}

// SaveAs creates a new file identity under name and writes the editor's
// text to it. This is the only path from the editor's side that may mint
// an identity; it goes through the index's privileged creator. If the
// content write fails after creation, the identity stays (metadata is not
// rolled back) and the document stays dirty: callers retry the write, not
// the creation.
func (c *Controller) SaveAs(name string) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if c.index.GetCurrentProject() == nil {
		return project.ErrNoProject
	}

	fileID, err := c.index.Privileged().CreateFile(name)
	if err != nil {
		// Creation failed: editor and dirty state are untouched.
		return err
	}

	c.currentFileID = fileID
	c.state = StateIdentified

	if err := c.content.SaveText(fileID, c.editor.Text()); err != nil {
		// The identity now exists and the editor holds its unpersisted
		// text. Re-key the dirty slot to the new id so the retry save
		// clears it.
		c.dirty.MarkDirty(fileID, "save as: content write failed")
		return fmt.Errorf("failed to save content: %w", err)
	}

	c.dirty.MarkClean("save as: " + fileID)
	c.title.SetTitle(name, false)

	if err := c.session.ClearSnapshot(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to clear session snapshot")
	}

	c.logger.Debug().Str("file", fileID).Str("name", name).Msg("saved as")
	return nil
}

// OnEditorChange feeds a text change into dirty tracking and the
// crash-recovery snapshot. Programmatic origins are ignored entirely.
func (c *Controller) OnEditorChange(origin ChangeOrigin) {
	if origin.Programmatic() {
		return
	}

	c.dirty.MarkDirty(c.currentFileID, "edit")

	snap := models.SessionSnapshot{
		FileID: c.currentFileID,
		Text:   c.editor.Text(),
		Cursor: c.editor.Cursor(),
		Scroll: c.editor.Scroll(),
		Dirty:  true,
	}
	if err := c.session.SaveSnapshot(snap); err != nil {
		c.logger.Warn().Err(err).Msg("failed to write session snapshot")
	}
}

// RestoreSession consumes the crash-recovery snapshot, once, at startup.
// A snapshot referencing a file id binds to that existing identity; if
// the id no longer resolves, the text is restored into an untitled
// ephemeral document instead. Restore never fabricates a file entry.
// Returns false when there was nothing to restore.
func (c *Controller) RestoreSession() (bool, error) {
	if err := c.begin(); err != nil {
		return false, err
	}
	defer c.end()

	snap, err := c.session.LoadSnapshot()
	if err != nil {
		return false, err
	}
	if snap == nil {
		return false, nil
	}

	bound := false
	if snap.FileID != "" {
		if err := c.AdoptOpenFile(snap.FileID); err != nil {
			c.logger.Warn().Str("file", snap.FileID).Err(err).
				Msg("snapshot references a missing file, restoring as untitled")
		} else {
			bound = true
		}
	}

	c.editor.SetText(snap.Text, OriginRestore)
	c.editor.SetCursor(snap.Cursor)
	c.editor.SetScroll(snap.Scroll)

	name := UntitledName
	if bound {
		if f := c.index.GetFile(snap.FileID); f != nil {
			name = f.Name
		}
		c.index.HighlightFile(snap.FileID)
	} else {
		c.currentFileID = ""
		c.state = StateEphemeral
	}
	c.title.SetTitle(name, snap.Dirty)

	if snap.Dirty {
		c.dirty.MarkDirty(c.currentFileID, "session restore")
	} else {
		c.dirty.MarkClean("session restore")
	}

	c.logger.Debug().Bool("bound", bound).Msg("session restored")
	return true, nil
}
