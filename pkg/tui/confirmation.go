package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/scripthub/scripthub-cli/pkg/lifecycle"
)

// ConfirmationModel renders the three-way unsaved-changes dialog:
// save, discard, or cancel.
type ConfirmationModel struct {
	active   bool
	message  string
	warning  string
	onChoice func(lifecycle.Decision) tea.Cmd
	width    int
}

func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the dialog. onChoice receives exactly one decision.
func (m *ConfirmationModel) Show(message, warning string, onChoice func(lifecycle.Decision) tea.Cmd) {
	m.active = true
	m.message = message
	m.warning = warning
	m.onChoice = onChoice
}

func (m *ConfirmationModel) Hide() {
	m.active = false
}

func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update handles key events while the dialog is up.
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	var decision lifecycle.Decision
	switch msg.String() {
	case "s", "S":
		decision = lifecycle.DecisionSave
	case "d", "D":
		decision = lifecycle.DecisionDiscard
	case "esc", "c", "C":
		decision = lifecycle.DecisionCancel
	default:
		return nil
	}

	m.active = false
	if m.onChoice != nil {
		return m.onChoice(decision)
	}
	return nil
}

// SetWidth sets the width used for centering.
func (m *ConfirmationModel) SetWidth(width int) {
	m.width = width
}

func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}

	var content strings.Builder
	content.WriteString(headerStyle.Render("Unsaved Changes"))
	content.WriteString("\n\n")
	content.WriteString(m.message)
	content.WriteString("\n")
	if m.warning != "" {
		content.WriteString("\n")
		content.WriteString(dirtyMarkerStyle.Render(m.warning))
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(helpStyle.Render("(s)ave first  ·  (d)iscard  ·  (c)ancel"))

	dialog := dialogBorderStyle.Render(content.String())
	if m.width > 0 {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(dialog)
	}
	return dialog
}
