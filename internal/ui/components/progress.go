package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ideaboard/internal/ui/theme"
)

// PageIndicator shows the position within the boards as a segmented bar
// and an "n / max" counter. In text mode the counter is replaced by Text.
type PageIndicator struct {
	Now      int
	Max      int
	Text     string
	TextMode bool
	Width    int
}

// NewPageIndicator creates a new page indicator.
func NewPageIndicator(now, max, width int) PageIndicator {
	return PageIndicator{Now: now, Max: max, Width: width}
}

// View renders the indicator.
func (p PageIndicator) View() string {
	label := fmt.Sprintf("%d / %d", p.Now, p.Max)
	if p.TextMode {
		label = p.Text
	}
	label = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(label)

	barWidth := p.Width - lipgloss.Width(label) - 2
	if barWidth < 4 || p.Max <= 0 {
		return label
	}

	filled := barWidth * p.Now / p.Max
	if p.TextMode {
		filled = barWidth
	}
	filled = max(0, min(filled, barWidth))

	bar := theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	return bar + "  " + label
}
