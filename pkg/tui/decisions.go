package tui

import (
	"context"

	"github.com/scripthub/scripthub-cli/pkg/lifecycle"
)

// promptKind tells the app which prompt the guard is waiting on.
type promptKind int

const (
	promptConfirmDiscard promptKind = iota
	promptSaveName
)

type nameAnswer struct {
	name string
	ok   bool
}

// uiDecisions bridges the guard's blocking DecisionProvider calls to the
// bubbletea event loop. The guard goroutine parks on a channel; the app
// shows the dialog and feeds the user's choice back in. The event loop
// itself never blocks, which is the awaited-modal shape the lifecycle
// expects.
type uiDecisions struct {
	prompts   chan promptKind
	decisions chan lifecycle.Decision
	names     chan nameAnswer
}

func newUIDecisions() *uiDecisions {
	return &uiDecisions{
		prompts:   make(chan promptKind),
		decisions: make(chan lifecycle.Decision),
		names:     make(chan nameAnswer),
	}
}

func (d *uiDecisions) ConfirmDiscard(ctx context.Context) (lifecycle.Decision, error) {
	select {
	case d.prompts <- promptConfirmDiscard:
	case <-ctx.Done():
		return lifecycle.DecisionCancel, ctx.Err()
	}
	select {
	case decision := <-d.decisions:
		return decision, nil
	case <-ctx.Done():
		return lifecycle.DecisionCancel, ctx.Err()
	}
}

func (d *uiDecisions) PromptSaveName(ctx context.Context) (string, bool, error) {
	select {
	case d.prompts <- promptSaveName:
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
	select {
	case answer := <-d.names:
		return answer.name, answer.ok, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}
