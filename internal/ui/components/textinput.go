package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// DefaultAnswerLimit bounds how much a student can type for one answer.
const DefaultAnswerLimit = 200

// AnswerInput wraps bubbles/textinput for free-form expression answers.
type AnswerInput struct {
	Model textinput.Model
}

// NewAnswerInput creates a focused answer input.
func NewAnswerInput(placeholder string, width int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.CharLimit = DefaultAnswerLimit
	if width > 0 {
		ti.SetWidth(width)
	}
	ti.Focus()
	return AnswerInput{Model: ti}
}

// Init returns the initial command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update handles messages.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// View renders the input.
func (a AnswerInput) View() string {
	return a.Model.View()
}

// Value returns the typed answer without surrounding blanks.
func (a AnswerInput) Value() string {
	return strings.TrimSpace(a.Model.Value())
}

// Reset clears the input for the next question.
func (a *AnswerInput) Reset() {
	a.Model.Reset()
}
