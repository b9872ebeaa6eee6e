package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ideaboard/internal/ui/theme"
)

// MaxCardText bounds the text of a single card.
const MaxCardText = 200

// CardInput wraps bubbles/textinput for writing card text.
type CardInput struct {
	Model  textinput.Model
	Prompt string
}

// NewCardInput creates a focused input. value pre-fills it for edits.
func NewCardInput(prompt, placeholder, value string) CardInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = MaxCardText
	ti.SetValue(value)
	ti.Focus()

	return CardInput{
		Model:  ti,
		Prompt: prompt,
	}
}

// Init returns the initial command.
func (c CardInput) Init() tea.Cmd {
	return c.Model.Focus()
}

// Update handles messages.
func (c CardInput) Update(msg tea.Msg) (CardInput, tea.Cmd) {
	var cmd tea.Cmd
	c.Model, cmd = c.Model.Update(msg)
	return c, cmd
}

// View renders the input with its prompt.
func (c CardInput) View() string {
	prompt := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(c.Prompt)
	return prompt + " " + c.Model.View()
}

// Value returns the current text.
func (c CardInput) Value() string {
	return c.Model.Value()
}
