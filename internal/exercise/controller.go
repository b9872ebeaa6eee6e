// Package exercise drives an idea board exercise: a row of boards shown one
// page at a time, an optional summary after the last page, completion
// gating of forward navigation and cloning of board contents between pages.
//
// All methods, and every callback they trigger, run on the caller's
// goroutine. Hosts with a concurrent event loop must serialise calls, for
// example by routing scheduler callbacks back through their own loop.
package exercise

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/ideaboard/internal/board"
	"github.com/abhisek/ideaboard/internal/clock"
	"github.com/abhisek/ideaboard/internal/content"
	"github.com/abhisek/ideaboard/internal/pages"
)

// Affordances is what the navigation bar may offer right now.
type Affordances struct {
	Backward      bool
	Forward       bool
	ClonePrevious bool

	// Now is the 1-based page number and Max the page count.
	Now int
	Max int

	// Text replaces the page counter while TextMode is set.
	Text     string
	TextMode bool
}

// Callbacks report controller events. Nil members are ignored.
type Callbacks struct {
	// OnProgressed is called with the new page index on every navigation.
	OnProgressed func(index int)

	// OnCompleted is called once when every board has been completed.
	OnCompleted func()

	// OnNavigationUpdated is called whenever the affordances are recomputed.
	OnNavigationUpdated func(Affordances)

	// OnSettled is called when a navigation has come to rest.
	OnSettled func()
}

// ControllerOptions configure a Controller.
type ControllerOptions struct {
	ContentID  string
	Boards     []board.Params
	Summary    *content.SummaryScreen
	Dictionary content.Dictionary
	Factory    board.Factory

	// Host defaults to NopHost.
	Host Host

	// Scheduler bounds and follows up transitions. Without one, navigation
	// settles immediately.
	Scheduler         clock.Scheduler
	TransitionTimeout time.Duration

	// DisableSlide keeps navigation unanimated.
	DisableSlide bool

	// NewID generates ids for cloned elements. Defaults to UUIDs.
	NewID func() string

	PreviousState *State
	Callbacks     Callbacks
}

// Controller owns the page sequence, the boards and the navigation state.
type Controller struct {
	boards  *board.Collection
	pages   *pages.Sequence
	summary *content.SummaryScreen
	dict    content.Dictionary
	host    Host
	sched   clock.Scheduler
	newID   func() string
	cb      Callbacks

	slideAllowed bool

	showingSummary bool
	allCompleted   bool
	completed      map[int]bool
	nav            Affordances
}

// NewController builds every board and restores the navigation position
// from opts.PreviousState. A board whose instance cannot be created fails
// the whole controller.
func NewController(opts ControllerOptions) (*Controller, error) {
	c, err := newController(opts)
	if err != nil {
		return nil, err
	}
	if err := c.start(opts.PreviousState); err != nil {
		return nil, err
	}
	return c, nil
}

// newController builds the boards and pages without navigating, so owners
// can hold on to the controller before the first callbacks run.
func newController(opts ControllerOptions) (*Controller, error) {
	c := &Controller{
		summary:      opts.Summary,
		dict:         opts.Dictionary,
		host:         opts.Host,
		sched:        opts.Scheduler,
		newID:        opts.NewID,
		cb:           opts.Callbacks,
		slideAllowed: !opts.DisableSlide,
		completed:    map[int]bool{},
	}
	if c.host == nil {
		c.host = NopHost{}
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}

	prev := opts.PreviousState
	n := len(opts.Boards)

	boards := make([]*board.Board, n)
	for i, params := range opts.Boards {
		var prevBoard *board.State
		if prev != nil && i < len(prev.Boards) {
			st := prev.Boards[i]
			prevBoard = &st
		}
		b, err := board.New(board.Options{
			Params:        params,
			ContentID:     opts.ContentID,
			Factory:       opts.Factory,
			NoTitle:       c.dict.Get("l10n.noTitle"),
			PreviousState: prevBoard,
			OnCompleted:   func() { c.handleBoardCompleted(i) },
			OnResize:      c.host.Resize,
		})
		if err != nil {
			return nil, fmt.Errorf("create board %d: %w", i, err)
		}
		boards[i] = b
	}
	c.boards = board.NewCollection(boards)

	var prevPages *pages.State
	if prev != nil {
		prevPages = &prev.Pages
	}
	c.pages = pages.New(n, prevPages, pages.Config{
		Scheduler:           c.sched,
		TransitionTimeout:   opts.TransitionTimeout,
		CurrentPageTemplate: c.dict.Get("a11y.currentPage"),
	}, pages.Callbacks{
		OnProgressed:      c.onProgressed,
		OnTransitionEnded: c.onTransitionEnded,
		Title: func(i int) string {
			if b := c.boards.Board(i); b != nil {
				return b.Title()
			}
			return ""
		},
		FocusFirstChild: func(i int) bool {
			if b := c.boards.Board(i); b != nil {
				return b.FocusFirstChild()
			}
			return false
		},
		Refocus:    c.host.Refocus,
		Announce:   c.host.Announce,
		Resize:     c.host.Resize,
		UsingMouse: c.host.UsingMouse,
	})

	return c, nil
}

// start restores the navigation position from prev, or opens the first
// page.
func (c *Controller) start(prev *State) error {
	if c.pages.Len() == 0 {
		c.updateNavigation()
		return nil
	}

	index := 0
	showSummary := false
	if prev != nil {
		index = max(0, min(prev.CurrentPageIndex, c.pages.Len()-1))
		showSummary = prev.IsShowingSummary && c.summary != nil
		c.allCompleted = prev.WereAllBoardsCompleted
		for _, i := range prev.CompletedBoardIndices {
			if b := c.boards.Board(i); b != nil {
				c.completed[i] = true
				if !slices.Contains(prev.ClearedBoardIndices, i) {
					b.RestoreCompleted()
				}
			}
		}
	}

	if showSummary {
		c.pages.GoTo(index, pages.NavOptions{SkipFocus: true})
		c.updateTaskDescription()
		c.enterSummary()
		return nil
	}

	// No slide-in on first render.
	c.pages.SetSlideEffect(false)
	for range index + 1 {
		if err := c.GoForward(); err != nil {
			return err
		}
	}
	c.updateNavigation()
	return nil
}

// GoForward moves to the next page, or into the summary from the last page.
// Entering a page for the first time clones the previous board into it when
// the board is configured to start from its predecessor. Requests while a
// transition is running are ignored.
func (c *Controller) GoForward() error {
	if c.pages.IsTransitioning() || c.showingSummary {
		return nil
	}

	current := c.pages.CurrentIndex()
	next := current + 1
	if next >= c.pages.Len() {
		if c.summary != nil {
			c.enterSummary()
		}
		return nil
	}

	page := c.pages.PageAt(next)
	if b := c.boards.Board(next); b != nil && !page.HasBeenVisible() && b.UsesPreviousBoardContents() {
		if err := c.CloneBoardFromTo(current, next); err != nil {
			return err
		}
	}

	c.pages.SwipeRight()
	c.updateTaskDescription()
	return nil
}

// GoBackward leaves the summary, or moves to the previous page.
func (c *Controller) GoBackward() {
	if c.pages.IsTransitioning() {
		return
	}
	if c.showingSummary {
		c.exitSummary()
		return
	}
	c.pages.SwipeLeft()
	c.updateTaskDescription()
}

// EndTransition passes the host's animation-end signal to the sequence.
func (c *Controller) EndTransition() {
	c.pages.EndTransition()
}

// CloneBoardFromTo replaces the contents of board to with a copy of board
// from. Every copied element gets a fresh id. Missing boards are ignored.
func (c *Controller) CloneBoardFromTo(from, to int) error {
	src, dst := c.boards.Board(from), c.boards.Board(to)
	if src == nil || dst == nil {
		return nil
	}

	st := src.CurrentState().WithFreshIDs(c.newID)
	if err := dst.Rebuild(&st); err != nil {
		return fmt.Errorf("clone board %d to %d: %w", from, to, err)
	}

	if to == c.pages.CurrentIndex() && !c.showingSummary {
		dst.NotifyVisible()
	}
	c.updateNavigation()
	return nil
}

// RequestClonePrevious asks the host to confirm overwriting the current
// board with the previous one. It does nothing when cloning is not offered.
func (c *Controller) RequestClonePrevious() {
	if !c.nav.ClonePrevious {
		return
	}

	current := c.pages.CurrentIndex()
	c.host.Confirm(ConfirmRequest{
		Header:  c.dict.Get("l10n.cloneSlideDialogHeader"),
		Dialog:  c.dict.Get("l10n.cloneSlideDialog"),
		Confirm: c.dict.Get("l10n.cloneSlideDialogConfirm"),
		Cancel:  c.dict.Get("l10n.cloneSlideDialogCancel"),
	}, func() error {
		return c.CloneBoardFromTo(current-1, current)
	})
}

func (c *Controller) handleBoardCompleted(index int) {
	first := !c.completed[index]
	c.completed[index] = true
	if first && index == c.pages.CurrentIndex() && c.boards.Board(index).RequiresCompletion() {
		c.host.Announce(c.dict.Get("a11y.boardCompleted"))
	}
	c.updateNavigation()

	if c.allCompleted || len(c.completed) < c.boards.Len() {
		return
	}
	c.allCompleted = true
	if c.cb.OnCompleted != nil {
		c.cb.OnCompleted()
	}
}

func (c *Controller) onProgressed(index int) {
	if b := c.boards.Board(index); b != nil {
		b.NotifyVisible()
	}
	// Gating follows the logical index while the slide is still running.
	c.updateNavigation()
	if c.cb.OnProgressed != nil {
		c.cb.OnProgressed(index)
	}
}

func (c *Controller) onTransitionEnded() {
	if c.sched != nil && c.slideAllowed {
		c.sched.AfterFunc(0, func() { c.pages.SetSlideEffect(true) })
	}
	c.updateNavigation()
	if c.cb.OnSettled != nil {
		c.cb.OnSettled()
	}
}

func (c *Controller) enterSummary() {
	c.showingSummary = true
	c.host.SetSummaryVisible(true)
	c.host.Announce(c.dict.Get("a11y.summaryShown"))
	c.updateNavigation()
	c.host.Resize()
}

func (c *Controller) exitSummary() {
	c.showingSummary = false
	c.host.SetSummaryVisible(false)
	c.updateNavigation()
	c.host.Resize()
}

func (c *Controller) updateNavigation() {
	current := c.pages.CurrentIndex()
	n := c.pages.Len()

	hasMore := current < n-1
	if c.summary != nil {
		hasMore = current < n
	}

	a := Affordances{
		Backward: c.showingSummary || current > 0,
		Forward:  c.completed[current] && !c.showingSummary && hasMore,
		Now:      current + 1,
		Max:      n,
		TextMode: c.showingSummary,
	}
	if b := c.boards.Board(current); b != nil {
		a.ClonePrevious = b.UsesPreviousBoardContents() && !c.showingSummary
	}
	if c.showingSummary {
		a.Text = c.dict.Get("l10n.summary")
	}

	c.nav = a
	if c.cb.OnNavigationUpdated != nil {
		c.cb.OnNavigationUpdated(a)
	}
}

// TaskDescription returns the task of board index with notes for its
// completion rules.
func (c *Controller) TaskDescription(index int) TaskDescription {
	b := c.boards.Board(index)
	if b == nil {
		return TaskDescription{}
	}

	task := TaskDescription{Text: b.TaskDescription()}
	if !b.RequiresCompletion() {
		return task
	}
	rules := b.CompletionRules()
	if rules.NumberCardsCreated > 0 {
		task.Notes = append(task.Notes, c.dict.Count("l10n.numberCardsCreatedNote", rules.NumberCardsCreated))
	}
	if rules.NumberCardsEdited > 0 {
		task.Notes = append(task.Notes, c.dict.Count("l10n.numberCardsEditedNote", rules.NumberCardsEdited))
	}
	return task
}

func (c *Controller) updateTaskDescription() {
	c.host.SetTaskDescription(c.TaskDescription(c.pages.CurrentIndex()))
}

// CurrentState snapshots navigation, completion and every board.
func (c *Controller) CurrentState() State {
	indices := c.CompletedBoardIndices()
	var cleared []int
	for _, i := range indices {
		b := c.boards.Board(i)
		if !b.IsCompleted() || b.Score() != b.MaxScore() {
			cleared = append(cleared, i)
		}
	}
	return State{
		CurrentPageIndex:       c.pages.CurrentIndex(),
		IsShowingSummary:       c.showingSummary,
		WereAllBoardsCompleted: c.allCompleted,
		CompletedBoardIndices:  indices,
		ClearedBoardIndices:    cleared,
		Pages:                  c.pages.CurrentState(),
		Boards:                 c.boards.CurrentState(),
	}
}

// CompletedBoardIndices returns the completed board indices in order.
func (c *Controller) CompletedBoardIndices() []int {
	out := make([]int, 0, len(c.completed))
	for i := range c.completed {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Reset leaves the summary, resets every board and returns to the first
// page with all completion bookkeeping cleared.
func (c *Controller) Reset() {
	if c.showingSummary {
		c.exitSummary()
	}
	c.completed = map[int]bool{}
	c.allCompleted = false

	c.boards.Reset()
	c.pages.Reset()
	c.updateTaskDescription()
	c.updateNavigation()
}

// Resize passes a layout change down to every board.
func (c *Controller) Resize() {
	c.boards.Resize()
}

// Affordances returns the last computed navigation affordances.
func (c *Controller) Affordances() Affordances {
	return c.nav
}

// Boards returns the board collection.
func (c *Controller) Boards() *board.Collection {
	return c.boards
}

// Pages returns the page sequence.
func (c *Controller) Pages() *pages.Sequence {
	return c.pages
}

// CurrentIndex returns the active page index.
func (c *Controller) CurrentIndex() int {
	return c.pages.CurrentIndex()
}

// CurrentBoard returns the board on the active page.
func (c *Controller) CurrentBoard() *board.Board {
	return c.boards.Board(c.pages.CurrentIndex())
}

// IsShowingSummary reports whether the summary is shown.
func (c *Controller) IsShowingSummary() bool {
	return c.showingSummary
}

// IsTransitioning reports whether a navigation is still sliding.
func (c *Controller) IsTransitioning() bool {
	return c.pages.IsTransitioning()
}

// WereAllBoardsCompleted reports whether every board has been completed.
func (c *Controller) WereAllBoardsCompleted() bool {
	return c.allCompleted
}

// Summary returns the configured summary screen, or nil.
func (c *Controller) Summary() *content.SummaryScreen {
	return c.summary
}

// Dictionary returns the texts the controller uses.
func (c *Controller) Dictionary() content.Dictionary {
	return c.dict
}
