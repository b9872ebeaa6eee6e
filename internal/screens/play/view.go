package play

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ideaboard/internal/ui/components"
	"github.com/abhisek/ideaboard/internal/ui/layout"
	"github.com/abhisek/ideaboard/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.confirm != nil {
		return s.renderConfirm(width, height)
	}

	ctrl := s.ex.Controller()
	dict := ctrl.Dictionary()

	var top strings.Builder
	if b := ctrl.CurrentBoard(); b != nil {
		top.WriteString(lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true).
			Render("  " + b.Title()))
		top.WriteString("\n")
	}
	if s.task.Text != "" {
		top.WriteString(theme.Body.Width(max(0, width-4)).Render("  " + s.task.Text))
		top.WriteString("\n")
	}
	for _, note := range s.task.Notes {
		top.WriteString(theme.Hint.Render("  • " + note))
		top.WriteString("\n")
	}

	var bottom strings.Builder
	if s.mode != modeBoard {
		bottom.WriteString("  " + s.input.View())
		bottom.WriteString("\n")
	}
	if s.warning != "" {
		bottom.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  ! " + s.warning))
		bottom.WriteString("\n")
	}
	bottom.WriteString(theme.Status.Render("  " + s.status))
	bottom.WriteString("\n")

	prev, next, clone := dict.Get("l10n.previousBoard"), dict.Get("l10n.nextBoard"), dict.Get("l10n.clonePreviousBoard")
	if layout.IsCompactWidth(width) {
		prev, next, clone = "", "", "copy"
	}
	nav := components.NavBar{
		Previous:  components.NewButton("←", prev, s.nav.Backward),
		Next:      components.NewButton("→", next, s.nav.Forward),
		Clone:     components.NewButton("c", clone, s.nav.ClonePrevious),
		ShowClone: s.nav.ClonePrevious,
		Page: components.PageIndicator{
			Now:      s.nav.Now,
			Max:      s.nav.Max,
			Text:     s.nav.Text,
			TextMode: s.nav.TextMode,
		},
	}
	bottom.WriteString(nav.View(width))

	topStr := strings.TrimSuffix(top.String(), "\n")
	bottomStr := bottom.String()
	boardHeight := height - lipgloss.Height(topStr) - lipgloss.Height(bottomStr) - 3
	boardWidth := width - 4

	boardView := ""
	if b := ctrl.CurrentBoard(); b != nil && boardHeight > 0 {
		inner := b.View(boardWidth-4, boardHeight)
		if ctrl.IsTransitioning() {
			inner = lipgloss.NewStyle().Faint(true).Render(inner)
		}
		boardView = theme.Board.
			Width(boardWidth).
			Height(boardHeight).
			Render(inner)
	}

	return topStr + "\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, boardView) + "\n" +
		bottomStr
}

func (s *PlayScreen) renderConfirm(width, height int) string {
	d := components.ConfirmDialog{
		Header:  s.confirm.req.Header,
		Text:    s.confirm.req.Dialog,
		Confirm: s.confirm.req.Confirm,
		Cancel:  s.confirm.req.Cancel,
	}
	return lipgloss.PlaceVertical(height, lipgloss.Center, d.View(width))
}

func renderError(width, height int, msg string) string {
	body := lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true).
		Render("Something went wrong") + "\n\n" +
		theme.Body.Width(min(width-8, 70)).Render(msg) + "\n\n" +
		theme.Hint.Render("Press Ctrl+C to quit.")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
