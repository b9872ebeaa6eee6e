package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestPageIndicator(t *testing.T) {
	p := NewPageIndicator(2, 5, 40)
	assert.Contains(t, p.View(), "2 / 5")
	assert.Equal(t, 40, lipgloss.Width(p.View()))

	p.TextMode = true
	p.Text = "Summary"
	assert.Contains(t, p.View(), "Summary")
	assert.NotContains(t, p.View(), "/ 5")
}

func TestPageIndicator_NarrowShowsLabelOnly(t *testing.T) {
	p := NewPageIndicator(1, 3, 6)
	assert.Equal(t, lipgloss.Width("1 / 3"), lipgloss.Width(p.View()))
}

func TestButton_Label(t *testing.T) {
	assert.Contains(t, NewButton("→", "Next board", true).View(), "→ Next board")
	assert.Contains(t, NewButton("←", "", false).View(), "←")
}

func TestNavBar_CloneOnlyWhenShown(t *testing.T) {
	bar := NavBar{
		Previous: NewButton("←", "Back", false),
		Next:     NewButton("→", "Next", true),
		Clone:    NewButton("c", "Copy previous board", true),
		Page:     NewPageIndicator(1, 2, 0),
	}
	assert.NotContains(t, bar.View(80), "Copy previous board")

	bar.ShowClone = true
	view := bar.View(80)
	assert.Contains(t, view, "Copy previous board")
	assert.Contains(t, view, "1 / 2")
}

func TestConfirmDialog(t *testing.T) {
	view := ConfirmDialog{
		Header:  "Copy previous board?",
		Text:    "This replaces the board.",
		Confirm: "Copy",
		Cancel:  "Cancel",
	}.View(80)

	assert.Contains(t, view, "Copy previous board?")
	assert.Contains(t, view, "Y Copy")
	assert.Contains(t, view, "N Cancel")
}

func TestCardInput_LimitsText(t *testing.T) {
	in := NewCardInput("New card", "Your idea", strings.Repeat("x", MaxCardText+50))
	assert.Len(t, in.Value(), MaxCardText)
	assert.Contains(t, in.View(), "New card")
}
