package components

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// NavBar is the row below the board: previous, page indicator, clone and
// next.
type NavBar struct {
	Previous  Button
	Next      Button
	Clone     Button
	ShowClone bool
	Page      PageIndicator
}

// View renders the bar across width.
func (n NavBar) View(width int) string {
	left := n.Previous.View()
	right := n.Next.View()
	if n.ShowClone {
		right = n.Clone.View() + "  " + right
	}

	n.Page.Width = width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	middle := n.Page.View()

	gap := width - lipgloss.Width(left) - lipgloss.Width(middle) - lipgloss.Width(right)
	leftGap := max(1, gap/2)
	rightGap := max(1, gap-leftGap)

	return left + strings.Repeat(" ", leftGap) + middle + strings.Repeat(" ", rightGap) + right
}
