package ideaboard

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ideaboard/internal/ui/theme"
)

const minCardWidth = 14

// View lays the cards out in rows that fit width. The selected card is
// highlighted while the board holds focus.
func (b *Board) View(width, height int) string {
	if len(b.elements) == 0 {
		return theme.Hint.Render("No cards yet. Press a to add one.")
	}

	cols := gridColumns
	cardW := width/cols - 2
	for cols > 1 && cardW < minCardWidth {
		cols--
		cardW = width/cols - 2
	}
	if cardW < minCardWidth {
		cardW = minCardWidth
	}

	var rows []string
	var row []string
	for i, e := range b.elements {
		style := theme.Card.Width(cardW)
		switch {
		case b.focused && i == b.selected:
			style = theme.CardSelected.Width(cardW)
		case e.BackgroundColor != "":
			style = style.Background(lipgloss.Color(e.BackgroundColor))
		}

		text := e.ContentType.Params.Text
		if strings.TrimSpace(text) == "" {
			text = theme.Hint.Render("(empty)")
		}
		row = append(row, style.Render(text))

		if len(row) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	out := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if height > 0 {
		lines := strings.Split(out, "\n")
		if len(lines) > height {
			out = strings.Join(lines[:height], "\n")
		}
	}
	return out
}
