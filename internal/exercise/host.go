package exercise

// Host is everything the exercise needs from its surroundings: a screen to
// draw on, a screen reader, focus and a way to ask the learner.
type Host interface {
	// Announce reads text to screen reader users.
	Announce(text string)

	// Resize asks the host to lay the exercise out again.
	Resize()

	// Refocus re-issues focus to the focused element.
	Refocus()

	// UsingMouse reports whether the last input came from a pointer.
	UsingMouse() bool

	// SetSummaryVisible switches between the board area and the summary.
	SetSummaryVisible(visible bool)

	// SetTaskDescription shows the task of the active board.
	SetTaskDescription(task TaskDescription)

	// SetFullscreen toggles fullscreen presentation.
	SetFullscreen(on bool)

	// Confirm asks the learner to confirm req and calls onConfirmed if they
	// do. The call may return before the learner answers.
	Confirm(req ConfirmRequest, onConfirmed func() error)
}

// TaskDescription is the task text of a board plus notes derived from its
// completion rules.
type TaskDescription struct {
	Text  string
	Notes []string
}

// ConfirmRequest holds the texts of a confirmation dialog.
type ConfirmRequest struct {
	Header  string
	Dialog  string
	Confirm string
	Cancel  string
}

// NopHost implements Host with no-ops. Embed it to implement only the
// methods you need.
type NopHost struct{}

var _ Host = NopHost{}

func (NopHost) Announce(string) {}
func (NopHost) Resize() {}
func (NopHost) Refocus() {}
func (NopHost) UsingMouse() bool { return false }
func (NopHost) SetSummaryVisible(bool) {}
func (NopHost) SetTaskDescription(TaskDescription) {}
func (NopHost) SetFullscreen(bool) {}
func (NopHost) Confirm(ConfirmRequest, func() error) {}
