package lifecycle

import "github.com/rs/zerolog"

// DirtyTracker is the single-slot unsaved-changes flag. The slot holds
// the dirty file's id, or an empty id for an untitled document. It is
// decoupled from persistence: only lifecycle hooks and genuine edits move
// it.
type DirtyTracker struct {
	dirty  bool
	fileID string

	title  *TitleState
	logger zerolog.Logger
}

// NewDirtyTracker wires the tracker to the title collaborator. The title
// notification is fire-and-forget; a nil title is tolerated.
func NewDirtyTracker(title *TitleState, logger zerolog.Logger) *DirtyTracker {
	return &DirtyTracker{title: title, logger: logger}
}

// MarkDirty records that fileID has unpersisted edits. An empty fileID
// stands for the current untitled document. Repeated calls are no-ops.
func (d *DirtyTracker) MarkDirty(fileID, reason string) {
	if d.dirty && d.fileID == fileID {
		return
	}
	d.dirty = true
	d.fileID = fileID
	d.logger.Debug().Str("file", fileID).Str("reason", reason).Msg("marked dirty")
	if d.title != nil {
		d.title.MarkDirty()
	}
}

// MarkClean clears the slot unconditionally.
func (d *DirtyTracker) MarkClean(reason string) {
	if !d.dirty {
		return
	}
	d.dirty = false
	d.fileID = ""
	d.logger.Debug().Str("reason", reason).Msg("marked clean")
	if d.title != nil {
		d.title.MarkClean()
	}
}

func (d *DirtyTracker) IsDirty() bool {
	return d.dirty
}

// IsFileDirty reports whether the slot holds this specific file.
func (d *DirtyTracker) IsFileDirty(fileID string) bool {
	return d.dirty && d.fileID == fileID
}

// OnFileOpened clears any stale flag left over from the previous document.
func (d *DirtyTracker) OnFileOpened(fileID string) {
	d.MarkClean("file opened: " + fileID)
}

// OnFileSaved clears the flag only when the saved file is the dirty one.
// A save of a different file must not launder the current document's
// unsaved edits.
func (d *DirtyTracker) OnFileSaved(fileID string) {
	if d.dirty && d.fileID != fileID {
		d.logger.Debug().Str("saved", fileID).Str("dirty", d.fileID).
			Msg("save of a different file leaves dirty flag in place")
		return
	}
	d.MarkClean("file saved: " + fileID)
}

// OnFileClosed clears the flag when the document is discarded or replaced.
func (d *DirtyTracker) OnFileClosed() {
	d.MarkClean("file closed")
}
