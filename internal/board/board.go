// Package board wraps one embedded idea board with its completion
// bookkeeping and score.
//
// A board is complete when it does not require completion, or when the
// embedded instance has emitted at least the configured number of "added"
// and "edited" events since it was last built or reset. Scoring is binary:
// zero until complete, then the configured completion score.
package board

import "github.com/abhisek/ideaboard/internal/xapi"

// CompletionEvent is one recorded add or edit.
type CompletionEvent struct {
	Type         string
	SubContentID string
	MachineName  string
}

// Options configure a Board.
type Options struct {
	Params    Params
	ContentID string
	Factory   Factory

	// NoTitle is the title used when neither the instance nor the content
	// metadata provide one.
	NoTitle string

	// PreviousState seeds the first instance.
	PreviousState *State

	// OnCompleted is called every time a completion check finds the board
	// complete. It may be called more than once.
	OnCompleted func()

	// OnResize is called when the instance asks for a new layout.
	OnResize func()
}

// Board is one page's embedded instance plus its completion state.
type Board struct {
	params    Params
	contentID string
	factory   Factory
	noTitle   string

	onCompleted func()
	onResize    func()

	inst       capabilities
	generation int

	score              int
	requiresCompletion bool
	events             []CompletionEvent
	restored           bool
	visibleChecked     bool
}

// New builds the board and its instance. A failing instance is returned as
// *ErrInstanceCreation.
func New(opts Options) (*Board, error) {
	b := &Board{
		params:      opts.Params,
		contentID:   opts.ContentID,
		factory:     opts.Factory,
		noTitle:     opts.NoTitle,
		onCompleted: opts.OnCompleted,
		onResize:    opts.OnResize,
	}
	if b.onCompleted == nil {
		b.onCompleted = func() {}
	}
	if b.onResize == nil {
		b.onResize = func() {}
	}

	if err := b.build(opts.PreviousState); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Board) build(prev *State) error {
	def := b.params.BoardGroup.IdeaBoard
	if b.factory == nil {
		return &ErrInstanceCreation{Library: def.Library, Err: errNoInstance}
	}

	inst, err := b.factory.Create(def, b.contentID, prev)
	if err != nil {
		return &ErrInstanceCreation{Library: def.Library, Err: err}
	}
	if inst == nil {
		return &ErrInstanceCreation{Library: def.Library, Err: errNoInstance}
	}

	b.generation++
	gen := b.generation
	b.inst = capabilities{inst}

	b.requiresCompletion = b.params.RequiresCompletion()
	b.events = nil
	b.restored = false
	b.visibleChecked = false

	if b.requiresCompletion {
		for _, name := range []string{EventEdited, EventAdded} {
			inst.On(name, func(e Event) {
				if gen != b.generation {
					return
				}
				b.events = append(b.events, CompletionEvent{
					Type:         e.Type,
					SubContentID: e.SubContentID,
					MachineName:  e.MachineName,
				})
				b.CheckCompletion()
			})
		}
	}

	inst.On(EventResize, func(Event) {
		if gen == b.generation {
			b.onResize()
		}
	})

	return nil
}

// Rebuild replaces the instance with a fresh one seeded with prev. The
// completion record starts over and the visibility check is re-armed.
func (b *Board) Rebuild(prev *State) error {
	if err := b.build(prev); err != nil {
		return err
	}
	b.score = 0
	b.onResize()
	return nil
}

// NotifyVisible tells the board it is on screen. Only the first call after
// each build runs a completion check, so boards without completion rules
// complete on first view.
func (b *Board) NotifyVisible() {
	if b.visibleChecked {
		return
	}
	b.visibleChecked = true
	b.CheckCompletion()
}

// CheckCompletion awards the score and fires OnCompleted if the board is
// complete. Repeated calls after completion fire again.
func (b *Board) CheckCompletion() {
	if !b.IsCompleted() {
		return
	}
	b.score = b.MaxScore()
	b.onCompleted()
}

// IsCompleted reports whether the completion rules are met.
func (b *Board) IsCompleted() bool {
	if !b.requiresCompletion || b.restored {
		return true
	}
	created, edited := b.Progress()
	rules := b.params.CompletionRules
	return created >= rules.NumberCardsCreated && edited >= rules.NumberCardsEdited
}

// Progress counts recorded "added" and "edited" events.
func (b *Board) Progress() (created, edited int) {
	for _, e := range b.events {
		switch e.Type {
		case EventAdded:
			created++
		case EventEdited:
			edited++
		}
	}
	return created, edited
}

// Events returns a copy of the recorded completion events.
func (b *Board) Events() []CompletionEvent {
	out := make([]CompletionEvent, len(b.events))
	copy(out, b.events)
	return out
}

// RequiresCompletion reports whether the board has to be worked on before
// it counts as complete.
func (b *Board) RequiresCompletion() bool {
	return b.requiresCompletion
}

// RestoreCompleted marks a board recorded as completed in a saved state:
// it counts as complete and carries its score again.
func (b *Board) RestoreCompleted() {
	b.restored = true
	b.score = b.MaxScore()
}

// Score is 0 or MaxScore.
func (b *Board) Score() int {
	return b.score
}

// MaxScore is the configured completion score.
func (b *Board) MaxScore() int {
	if b.params.ScoreForCompletion < 0 {
		return 0
	}
	return b.params.ScoreForCompletion
}

// AnswerGiven reports whether the learner has answered, false if the
// instance cannot tell.
func (b *Board) AnswerGiven() bool {
	return b.inst.AnswerGiven()
}

// Title returns the instance title, then the content title, then the
// no-title text.
func (b *Board) Title() string {
	if t, ok := b.inst.Title(); ok {
		return t
	}
	if t := b.params.BoardGroup.IdeaBoard.Metadata.Title; t != "" {
		return t
	}
	return b.noTitle
}

// TaskDescription returns the board's task text.
func (b *Board) TaskDescription() string {
	return b.params.TaskDescription
}

// CompletionRules returns the configured rules.
func (b *Board) CompletionRules() CompletionRules {
	return b.params.CompletionRules
}

// UsesPreviousBoardContents reports whether the board starts from a copy of
// the board before it.
func (b *Board) UsesPreviousBoardContents() bool {
	return b.params.UsePreviousBoardContents
}

// CurrentState returns the instance state without answer markers, which is
// what cloning copies.
func (b *Board) CurrentState() State {
	return b.inst.CurrentStateWhenNoAnswerGiven()
}

// XAPIData returns the instance's xAPI data.
func (b *Board) XAPIData() xapi.Data {
	return b.inst.XAPIData()
}

// Instance returns the embedded instance.
func (b *Board) Instance() Instance {
	return b.inst.Instance
}

// Resize passes a layout change down to the instance.
func (b *Board) Resize() {
	b.inst.Resize()
}

// FocusFirstChild focuses the first interactive element and reports whether
// there was one.
func (b *Board) FocusFirstChild() bool {
	return b.inst.FocusFirst()
}

// View renders the instance.
func (b *Board) View(width, height int) string {
	return b.inst.View(width, height)
}

// Reset zeroes the score, forgets completion events and asks the instance
// to reset its task.
func (b *Board) Reset() {
	b.score = 0
	b.events = nil
	b.restored = false
	b.visibleChecked = false
	b.inst.ResetTask()
}
