package lifecycle

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Decision is the outcome of the unsaved-changes prompt.
type Decision int

const (
	// DecisionSave: persist first, then continue.
	DecisionSave Decision = iota
	// DecisionDiscard: continue without persisting.
	DecisionDiscard
	// DecisionCancel: block the operation entirely.
	DecisionCancel
)

// DecisionProvider is the injected prompt capability. The core never
// talks to a terminal or a dialog directly, which keeps the guard
// testable without a UI.
type DecisionProvider interface {
	// ConfirmDiscard presents the three-way unsaved-changes choice.
	ConfirmDiscard(ctx context.Context) (Decision, error)
	// PromptSaveName solicits a file name for a first save. ok is false
	// when the user aborts the prompt.
	PromptSaveName(ctx context.Context) (name string, ok bool, err error)
}

// DiscardGuard gates destructive operations (new, open, quit) behind the
// unsaved-changes prompt.
type DiscardGuard struct {
	controller *Controller
	decisions  DecisionProvider
	logger     zerolog.Logger
}

func NewDiscardGuard(controller *Controller, decisions DecisionProvider, logger zerolog.Logger) *DiscardGuard {
	return &DiscardGuard{controller: controller, decisions: decisions, logger: logger}
}

// ConfirmDiscardIfDirty runs continuation if the document is clean or the
// user chooses to save or discard. It returns false, and never runs the
// continuation, when the user cancels, aborts the name prompt, or the
// save fails: a failed save must not silently fall through to a discard.
//
// User cancellation is a normal false outcome, not an error; the error
// return carries prompt or save failures only.
func (g *DiscardGuard) ConfirmDiscardIfDirty(ctx context.Context, continuation func() error) (bool, error) {
	if !g.controller.Dirty().IsDirty() {
		return true, g.runContinuation(continuation)
	}

	decision, err := g.decisions.ConfirmDiscard(ctx)
	if err != nil {
		return false, err
	}

	switch decision {
	case DecisionSave:
		if err := g.saveCurrent(ctx); err != nil {
			if errors.Is(err, errPromptAborted) {
				return false, nil
			}
			return false, err
		}
	case DecisionDiscard:
		g.logger.Debug().Msg("unsaved changes discarded")
	case DecisionCancel:
		return false, nil
	default:
		return false, nil
	}

	return true, g.runContinuation(continuation)
}

func (g *DiscardGuard) runContinuation(continuation func() error) error {
	if continuation == nil {
		return nil
	}
	return continuation()
}

// saveCurrent persists the open document, soliciting a name first when it
// has no identity yet.
func (g *DiscardGuard) saveCurrent(ctx context.Context) error {
	if g.controller.State() == StateIdentified {
		return g.controller.Save()
	}

	name, ok, err := g.decisions.PromptSaveName(ctx)
	if err != nil {
		return err
	}
	if !ok {
		// Aborting the name prompt blocks the operation without being
		// an error.
		return errPromptAborted
	}
	return g.controller.SaveAs(name)
}

// ShouldWarnOnExit is the degraded process-exit path: no rich prompt is
// possible, only a native yes/no keyed off the dirty flag.
func (g *DiscardGuard) ShouldWarnOnExit() bool {
	return g.controller.Dirty().IsDirty()
}

// errPromptAborted distinguishes "user backed out of the name prompt"
// from a real save failure. It stays package private; the guard maps it
// to a plain blocked outcome.
var errPromptAborted = promptAbortedError{}

type promptAbortedError struct{}

func (promptAbortedError) Error() string { return "save name prompt aborted" }
