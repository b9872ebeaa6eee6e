package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ideaboard/internal/ui/theme"
)

// Button is a key-bound action in the navigation bar.
type Button struct {
	Key     string
	Label   string
	Enabled bool
}

// NewButton creates a new button.
func NewButton(key, label string, enabled bool) Button {
	return Button{
		Key:     key,
		Label:   label,
		Enabled: enabled,
	}
}

// View renders the button. Disabled buttons stay in place, dimmed.
func (b Button) View() string {
	label := b.Key
	if b.Label != "" {
		label += " " + b.Label
	}
	if b.Enabled {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.
		Foreground(theme.TextDim).
		Render(label)
}

// Width returns the rendered width.
func (b Button) Width() int {
	return lipgloss.Width(b.View())
}
