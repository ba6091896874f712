package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/scripthub/scripthub-cli/pkg/fountain"
	"github.com/scripthub/scripthub-cli/pkg/lifecycle"
	"github.com/scripthub/scripthub-cli/pkg/models"
	"github.com/scripthub/scripthub-cli/pkg/project"
	"github.com/scripthub/scripthub-cli/pkg/store"
)

type sessionState int

const (
	browserView sessionState = iota
	editorView
)

// guardedAction identifies what a pending discard guard was protecting.
type guardedAction int

const (
	actionNone guardedAction = iota
	actionNewFile
	actionOpenFile
	actionLeaveEditor
	actionQuit
)

// namePurpose identifies what an active name prompt will be used for.
type namePurpose int

const (
	purposeNone namePurpose = iota
	purposeNewProject
	purposeProjectForSave
	purposeSaveAs
	purposeRenameFile
	purposeGuardSaveName
)

type promptMsg promptKind

type guardDoneMsg struct {
	ok  bool
	err error
}

// StatusMsg updates the status line.
type StatusMsg string

// App is the root bubbletea model: a project/file browser and a script
// editor sharing one save-state lifecycle.
type App struct {
	state  sessionState
	width  int
	height int

	index      *project.Index
	controller *lifecycle.Controller
	guard      *lifecycle.DiscardGuard
	surface    *Surface
	events     *uiEvents
	decisions  *uiDecisions
	settings   *models.Settings

	confirmation *ConfirmationModel
	nameInput    textinput.Model
	namePurpose  namePurpose

	projects         []models.ProjectSummary
	files            []models.File
	cursor           int
	browsingProjects bool

	pendingAction guardedAction
	pendingFileID string
	guardDone     chan struct{}

	showPreview bool
	statusMsg   string
}

// NewApp wires the whole core together on top of the given stores.
func NewApp(kv store.KeyValueStore, content store.ContentStore, logger zerolog.Logger) (*App, error) {
	index, err := project.NewIndex(kv, logger)
	if err != nil {
		return nil, err
	}

	settings, err := store.ReadSettings(kv)
	if err != nil {
		return nil, err
	}

	events := newUIEvents()
	index.SetNotifier(events)

	surface := NewSurface(events)
	title := lifecycle.NewTitleState(events)
	dirty := lifecycle.NewDirtyTracker(title, logger)
	session := store.NewSessionStore(kv)

	controller, err := lifecycle.NewController(index, content, session, surface, dirty, title, logger)
	if err != nil {
		return nil, err
	}

	decisions := newUIDecisions()
	guard := lifecycle.NewDiscardGuard(controller, decisions, logger)

	nameInput := textinput.New()
	nameInput.CharLimit = 120

	app := &App{
		index:            index,
		controller:       controller,
		guard:            guard,
		surface:          surface,
		events:           events,
		decisions:        decisions,
		settings:         settings,
		confirmation:     NewConfirmation(),
		nameInput:        nameInput,
		browsingProjects: index.GetCurrentProject() == nil,
		showPreview:      settings.UI.ShowPreview,
	}
	app.reloadLists()

	// Offer crash recovery before the first frame. A restored document
	// drops straight into the editor.
	if restored, err := controller.RestoreSession(); err == nil && restored {
		app.state = editorView
		app.statusMsg = "Recovered your last session"
	}

	return app, nil
}

func (a *App) Init() tea.Cmd {
	if a.state == editorView {
		return a.surface.Focus()
	}
	return nil
}

func (a *App) reloadLists() {
	a.projects = a.index.ListProjects()
	a.files = a.index.ListFiles()
	if a.cursor >= a.currentListLen() {
		a.cursor = 0
	}
}

func (a *App) currentListLen() int {
	if a.browsingProjects {
		return len(a.projects)
	}
	return len(a.files)
}

// runGuarded launches the discard guard off the event loop and arms the
// prompt listener. Input is modal until guardDoneMsg lands.
func (a *App) runGuarded(action guardedAction, fileID string) tea.Cmd {
	a.pendingAction = action
	a.pendingFileID = fileID
	done := make(chan struct{})
	a.guardDone = done

	guardCmd := func() tea.Msg {
		ok, err := a.guard.ConfirmDiscardIfDirty(context.Background(), nil)
		close(done)
		return guardDoneMsg{ok: ok, err: err}
	}
	return tea.Batch(guardCmd, a.waitForPrompt(done))
}

// waitForPrompt turns the guard's blocking prompt requests into messages.
// It retires silently once the guarded operation finishes.
func (a *App) waitForPrompt(done chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case kind := <-a.decisions.prompts:
			return promptMsg(kind)
		case <-done:
			return nil
		}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.confirmation.SetWidth(msg.Width)
		a.layoutEditor()
		return a, nil

	case StatusMsg:
		a.statusMsg = string(msg)
		return a, nil

	case promptMsg:
		switch promptKind(msg) {
		case promptConfirmDiscard:
			a.confirmation.Show(
				"You have unsaved changes.",
				"Discarded changes cannot be recovered.",
				func(decision lifecycle.Decision) tea.Cmd {
					done := a.guardDone
					return tea.Batch(
						func() tea.Msg {
							a.decisions.decisions <- decision
							return nil
						},
						a.waitForPrompt(done),
					)
				},
			)
		case promptSaveName:
			a.openNamePrompt("Save as:", purposeGuardSaveName)
		}
		return a, nil

	case guardDoneMsg:
		action, fileID := a.pendingAction, a.pendingFileID
		a.pendingAction, a.pendingFileID = actionNone, ""
		if msg.err != nil {
			a.statusMsg = errorStyle.Render("Save failed: " + msg.err.Error())
			return a, nil
		}
		if !msg.ok {
			a.statusMsg = "Cancelled"
			return a, nil
		}
		return a, a.completeGuarded(action, fileID)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.state == editorView && !a.modalActive() {
		cmd, edited := a.surface.UpdateKeys(msg)
		if edited {
			a.controller.OnEditorChange(lifecycle.OriginEditor)
		}
		return a, cmd
	}
	return a, nil
}

// completeGuarded runs the protected operation after the guard said go.
func (a *App) completeGuarded(action guardedAction, fileID string) tea.Cmd {
	switch action {
	case actionNewFile:
		if err := a.controller.NewFile(); err != nil {
			a.statusMsg = errorStyle.Render(err.Error())
			return nil
		}
		a.state = editorView
		a.statusMsg = "New script"
		return a.surface.Focus()

	case actionOpenFile:
		if err := a.controller.Open(fileID); err != nil {
			a.statusMsg = errorStyle.Render("Open failed: " + err.Error())
			return nil
		}
		a.state = editorView
		a.statusMsg = ""
		return a.surface.Focus()

	case actionLeaveEditor:
		a.state = browserView
		a.surface.Blur()
		a.reloadLists()
		return nil

	case actionQuit:
		return tea.Quit
	}
	return nil
}

func (a *App) modalActive() bool {
	return a.confirmation.Active() || a.namePurpose != purposeNone || a.pendingAction != actionNone
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.confirmation.Active() {
		return a, a.confirmation.Update(msg)
	}
	if a.namePurpose != purposeNone {
		return a.handleNamePromptKey(msg)
	}
	if a.pendingAction != actionNone {
		// A guarded operation is in flight; input stays modal.
		return a, nil
	}

	switch a.state {
	case browserView:
		return a.handleBrowserKey(msg)
	case editorView:
		return a.handleEditorKey(msg)
	}
	return a, nil
}

func (a *App) handleBrowserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return a, a.runGuarded(actionQuit, "")

	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < a.currentListLen()-1 {
			a.cursor++
		}

	case "enter":
		if a.browsingProjects {
			if a.cursor < len(a.projects) {
				if err := a.index.OpenProject(a.projects[a.cursor].ID); err != nil {
					a.statusMsg = errorStyle.Render(err.Error())
					return a, nil
				}
				a.browsingProjects = false
				a.cursor = 0
				a.reloadLists()
			}
		} else if a.cursor < len(a.files) {
			return a, a.runGuarded(actionOpenFile, a.files[a.cursor].ID)
		}

	case "p":
		a.browsingProjects = true
		a.cursor = 0

	case "n":
		a.openNamePrompt("New project name:", purposeNewProject)

	case "c":
		return a, a.runGuarded(actionNewFile, "")

	case "r":
		if !a.browsingProjects && a.cursor < len(a.files) {
			a.openNamePrompt("Rename to:", purposeRenameFile)
		}
	}
	return a, nil
}

func (a *App) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, a.runGuarded(actionQuit, "")

	case "esc":
		return a, a.runGuarded(actionLeaveEditor, "")

	case "ctrl+n":
		return a, a.runGuarded(actionNewFile, "")

	case "ctrl+s":
		return a, a.saveCurrent()

	case "ctrl+p":
		a.showPreview = !a.showPreview
		a.layoutEditor()
		return a, nil

	case "ctrl+y":
		if err := clipboard.WriteAll(a.surface.Text()); err != nil {
			a.statusMsg = errorStyle.Render("Copy failed: " + err.Error())
		} else {
			a.statusMsg = "Script copied to clipboard"
		}
		return a, nil
	}

	cmd, edited := a.surface.UpdateKeys(msg)
	if edited {
		a.controller.OnEditorChange(lifecycle.OriginEditor)
	}
	return a, cmd
}

// saveCurrent routes ctrl+s: plain save for an identified document,
// save-as (with project creation when needed) for an ephemeral one.
func (a *App) saveCurrent() tea.Cmd {
	err := a.controller.Save()
	if err == nil {
		a.statusMsg = "Saved"
		return nil
	}
	if !errors.Is(err, lifecycle.ErrNoTarget) {
		a.statusMsg = errorStyle.Render("Save failed: " + err.Error())
		return nil
	}

	// No identity yet: solicit one.
	if a.index.GetCurrentProject() == nil {
		a.openNamePrompt("New project name:", purposeProjectForSave)
	} else {
		a.openNamePrompt("Save as:", purposeSaveAs)
	}
	return nil
}

func (a *App) openNamePrompt(prompt string, purpose namePurpose) {
	a.namePurpose = purpose
	a.nameInput.Prompt = prompt + " "
	a.nameInput.SetValue("")
	a.nameInput.Focus()
}

func (a *App) closeNamePrompt() {
	a.namePurpose = purposeNone
	a.nameInput.Blur()
}

func (a *App) handleNamePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		purpose := a.namePurpose
		a.closeNamePrompt()
		if purpose == purposeGuardSaveName {
			done := a.guardDone
			return a, tea.Batch(
				func() tea.Msg {
					a.decisions.names <- nameAnswer{ok: false}
					return nil
				},
				a.waitForPrompt(done),
			)
		}
		a.statusMsg = "Cancelled"
		return a, nil

	case "enter":
		name := strings.TrimSpace(a.nameInput.Value())
		purpose := a.namePurpose
		a.closeNamePrompt()
		return a, a.submitName(purpose, name)
	}

	var cmd tea.Cmd
	a.nameInput, cmd = a.nameInput.Update(msg)
	return a, cmd
}

func (a *App) submitName(purpose namePurpose, name string) tea.Cmd {
	switch purpose {
	case purposeNewProject:
		if _, err := a.index.CreateProject(name); err != nil {
			a.statusMsg = errorStyle.Render(err.Error())
			return nil
		}
		a.browsingProjects = false
		a.cursor = 0
		a.reloadLists()
		a.statusMsg = fmt.Sprintf("Project %q created", name)

	case purposeProjectForSave:
		if _, err := a.index.CreateProject(name); err != nil {
			a.statusMsg = errorStyle.Render(err.Error())
			return nil
		}
		a.openNamePrompt("Save as:", purposeSaveAs)

	case purposeSaveAs:
		if err := a.controller.SaveAs(name); err != nil {
			a.statusMsg = errorStyle.Render("Save failed: " + err.Error())
			return nil
		}
		a.statusMsg = fmt.Sprintf("Saved as %q", name)

	case purposeRenameFile:
		if a.cursor < len(a.files) {
			if !a.index.RenameFile(a.files[a.cursor].ID, name) {
				a.statusMsg = errorStyle.Render("Rename failed")
				return nil
			}
			a.reloadLists()
			a.statusMsg = "Renamed"
		}

	case purposeGuardSaveName:
		done := a.guardDone
		return tea.Batch(
			func() tea.Msg {
				a.decisions.names <- nameAnswer{name: name, ok: name != ""}
				return nil
			},
			a.waitForPrompt(done),
		)
	}
	return nil
}

func (a *App) layoutEditor() {
	if a.width == 0 {
		return
	}
	editorWidth := a.width - 4
	if a.showPreview {
		editorWidth = a.width/2 - 4
	}
	a.surface.SetSize(editorWidth, a.height-4)
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	// The guard goroutine mutates TitleState during a guarded save, so
	// the render path reads the mutex-protected mirror instead.
	titleBar := titleStyle.Render(a.events.DisplayTitle())

	var content string
	switch a.state {
	case browserView:
		content = a.browserContent()
	case editorView:
		content = a.editorContent()
	}

	status := statusStyle.Render(a.statusMsg)
	view := lipgloss.JoinVertical(lipgloss.Left, titleBar, content, status)

	if a.namePurpose != purposeNone {
		view = lipgloss.JoinVertical(lipgloss.Left, view, a.nameInput.View())
	}
	if a.confirmation.Active() {
		view = lipgloss.JoinVertical(lipgloss.Left, view, a.confirmation.View())
	}
	return view
}

func (a *App) browserContent() string {
	var b strings.Builder

	if a.browsingProjects {
		b.WriteString(headerStyle.Render("Projects"))
		b.WriteString("\n\n")
		if len(a.projects) == 0 {
			b.WriteString(statusStyle.Render("No projects yet. Press n to create one."))
		}
		for i, p := range a.projects {
			line := p.Name
			if i == a.cursor {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString(listItemStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter open · n new project · c new script · q quit"))
		return b.String()
	}

	current := a.index.GetCurrentProject()
	projectName := ""
	if current != nil {
		projectName = current.Name
	}
	b.WriteString(headerStyle.Render("Scripts: " + projectName))
	b.WriteString("\n\n")
	if len(a.files) == 0 {
		b.WriteString(statusStyle.Render("No scripts yet. Press c to write one."))
	}
	highlighted := a.events.Highlighted()
	for i, f := range a.files {
		line := f.Name
		if f.ID == highlighted {
			line += "  ·"
		}
		if i == a.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = listItemStyle.Render("  " + line)
		}
		for _, label := range f.Labels {
			chip := lipgloss.NewStyle().Foreground(lipgloss.Color(models.LabelColor(label)))
			line += " " + chip.Render("#"+label)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter open · c new script · r rename · p projects · q quit"))
	return b.String()
}

func (a *App) editorContent() string {
	editor := a.surface.View()
	if !a.showPreview {
		return editor
	}

	previewWidth := a.width/2 - 4
	preview := fountain.Render(fountain.Parse(a.surface.Text()), previewWidth)
	previewPane := previewBorderStyle.Width(previewWidth).Render(preview)
	return lipgloss.JoinHorizontal(lipgloss.Top, editor, previewPane)
}
