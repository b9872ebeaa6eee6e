package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ideaboard/internal/ui/theme"
)

// ConfirmDialog asks a yes/no question.
type ConfirmDialog struct {
	Header  string
	Text    string
	Confirm string
	Cancel  string
}

// View renders the dialog centered in width.
func (d ConfirmDialog) View(width int) string {
	inner := min(width-8, 60)
	if inner < 20 {
		inner = 20
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(d.Header))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(inner - 4).Render(d.Text))
	b.WriteString("\n\n")
	b.WriteString(NewButton("Y", d.Confirm, true).View())
	b.WriteString("  ")
	b.WriteString(NewButton("N", d.Cancel, false).View())

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 2).
		Width(inner).
		Render(b.String())

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}
