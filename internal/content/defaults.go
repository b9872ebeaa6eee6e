package content

// Defaults returns the default exercise parameters: every user-facing text
// with its English wording.
func Defaults() map[string]any {
	return map[string]any{
		"header":           "",
		"boards":           []any{},
		"addSummaryScreen": false,
		"l10n": map[string]any{
			"noTitle":                 "Untitled board",
			"summary":                 "Summary",
			"previousBoard":           "Previous board",
			"nextBoard":               "Next board",
			"clonePreviousBoard":      "Copy previous board",
			"cloneSlideDialogHeader":  "Copy previous board?",
			"cloneSlideDialog":        "This replaces the contents of this board with a copy of the previous board.",
			"cloneSlideDialogConfirm": "Copy",
			"cloneSlideDialogCancel":  "Cancel",
			"numberCardsCreatedNote":  "Add at least @count cards.",
			"numberCardsEditedNote":   "Edit at least @count cards.",
			"enterFullscreen":         "Enter fullscreen",
			"exitFullscreen":          "Exit fullscreen",
		},
		"a11y": map[string]any{
			"currentPage":       "Page @current of @total",
			"boardCompleted":    "Board completed.",
			"summaryShown":      "Summary",
			"completeToProceed": "Complete this board to continue.",
		},
	}
}
