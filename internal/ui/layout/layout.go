package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ideaboard/internal/ui/theme"
)

// Terminal size limits. Below CompactWidthThreshold labels are shortened.
const (
	MinWidth  = 60
	MinHeight = 18

	CompactWidthThreshold = 100
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth reports whether labels should be shortened.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsTooSmall reports whether the board can not be drawn at all.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks for a bigger terminal, centered in the
// available space.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("The board needs at least %d x %d.\nThis terminal is %d x %d.", MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

// RenderHeader renders the header bar: the app name, the exercise title
// centered, and the score on the right. A negative maxScore hides the
// score.
func RenderHeader(title string, score, maxScore int, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Ideaboard")

	var scoreText string
	if maxScore >= 0 {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if maxScore > 0 && score == maxScore {
			style = style.Foreground(theme.Success).Bold(true)
		}
		scoreText = style.Render(fmt.Sprintf("✓ %d / %d", score, maxScore))
	}

	inner := max(0, width-4)
	title = truncate(title, inner-lipgloss.Width(name)-lipgloss.Width(scoreText)-2)
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	leftGap := max(1, (inner-lipgloss.Width(center))/2-lipgloss.Width(name))
	rightGap := max(1, inner-lipgloss.Width(name)-leftGap-lipgloss.Width(center)-lipgloss.Width(scoreText))

	return theme.Header.Width(width).Render(name + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + scoreText)
}

// truncate shortens s to n cells with an ellipsis.
func truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	if n <= 1 {
		return ""
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

// RenderFooter renders the key hints. Hints that do not fit in width are
// dropped from the end.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	line := " "
	for _, h := range hints {
		part := "  " + keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		if lipgloss.Width(line+part) > width-4 {
			break
		}
		line += part
	}
	return theme.Footer.Width(width).Render(line)
}

// RenderFrame stacks header, content and footer, giving the content the
// height left between them. Content taller than that is cut at the bottom.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(0, height-lipgloss.Height(header)-lipgloss.Height(footer))
	content = lipgloss.NewStyle().
		Width(width).
		Height(body).
		MaxHeight(body).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}
