// Package pages implements the sliding page sequence that presents one board
// at a time.
//
// A Sequence owns the active index. Navigation updates the logical index
// immediately and settles the visual side later, when the host reports that
// the slide animation ended or when the transition timeout expires.
package pages

import (
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/ideaboard/internal/clock"
)

// DefaultTransitionTimeout bounds how long a slide may wait for its
// animation-end signal before it is settled anyway.
const DefaultTransitionTimeout = 2 * time.Second

// NoPage is the active index before the first navigation.
const NoPage = -1

// State is the persisted state of a sequence.
type State struct {
	Pages []PageState `json:"pages"`
}

// Config configures a Sequence.
type Config struct {
	// Scheduler runs transition timeouts. Without one, the slide effect
	// stays off and every transition settles immediately.
	Scheduler clock.Scheduler

	// TransitionTimeout defaults to DefaultTransitionTimeout.
	TransitionTimeout time.Duration

	// CurrentPageTemplate is the screen reader text for page changes.
	// "@current" and "@total" are replaced by the 1-based page number and
	// the page count.
	CurrentPageTemplate string
}

// Callbacks connect the sequence to its surroundings. Nil members are
// replaced by no-ops.
type Callbacks struct {
	// OnProgressed is called with the new active index on every navigation.
	OnProgressed func(index int)

	// OnTransitionEnded is called when a navigation has settled.
	OnTransitionEnded func()

	// Title returns the title of the board on page index.
	Title func(index int) string

	// FocusFirstChild focuses the first focusable element on page index and
	// reports whether there was one.
	FocusFirstChild func(index int) bool

	// Refocus re-issues focus to the focused element so assistive
	// technology announces the new context.
	Refocus func()

	// Announce reads text to screen reader users.
	Announce func(text string)

	// Resize asks the host to lay out again.
	Resize func()

	// UsingMouse reports whether the last user input came from a pointer.
	UsingMouse func() bool
}

// NavOptions tune a single navigation.
type NavOptions struct {
	// SkipFocus leaves focus where it is after settling.
	SkipFocus bool
}

// Sequence is the ordered set of pages with a single active page.
type Sequence struct {
	pages       []*Page
	current     int
	slideEffect bool
	cfg         Config
	cb          Callbacks

	transition *Transition
	nextID     int
}

// New creates a sequence of n pages, restoring per-page state from prev
// when given.
func New(n int, prev *State, cfg Config, cb Callbacks) *Sequence {
	if cfg.TransitionTimeout <= 0 {
		cfg.TransitionTimeout = DefaultTransitionTimeout
	}

	s := &Sequence{
		current:     NoPage,
		slideEffect: cfg.Scheduler != nil,
		cfg:         cfg,
		cb:          withDefaults(cb),
	}

	s.pages = make([]*Page, n)
	for i := range s.pages {
		var ps PageState
		if prev != nil && i < len(prev.Pages) {
			ps = prev.Pages[i]
		}
		s.pages[i] = NewPage(ps)
	}

	return s
}

func withDefaults(cb Callbacks) Callbacks {
	if cb.OnProgressed == nil {
		cb.OnProgressed = func(int) {}
	}
	if cb.OnTransitionEnded == nil {
		cb.OnTransitionEnded = func() {}
	}
	if cb.Title == nil {
		cb.Title = func(int) string { return "" }
	}
	if cb.FocusFirstChild == nil {
		cb.FocusFirstChild = func(int) bool { return false }
	}
	if cb.Refocus == nil {
		cb.Refocus = func() {}
	}
	if cb.Announce == nil {
		cb.Announce = func(string) {}
	}
	if cb.Resize == nil {
		cb.Resize = func() {}
	}
	if cb.UsingMouse == nil {
		cb.UsingMouse = func() bool { return false }
	}
	return cb
}

// Len returns the number of pages.
func (s *Sequence) Len() int {
	return len(s.pages)
}

// CurrentIndex returns the active index, or NoPage before the first
// navigation.
func (s *Sequence) CurrentIndex() int {
	return s.current
}

// PageAt returns the page at index, or nil if index is out of range.
func (s *Sequence) PageAt(index int) *Page {
	if index < 0 || index >= len(s.pages) {
		return nil
	}
	return s.pages[index]
}

// IsTransitioning reports whether a navigation is waiting to settle.
func (s *Sequence) IsTransitioning() bool {
	return s.transition != nil
}

// Transition returns the in-flight transition, if any.
func (s *Sequence) Transition() *Transition {
	return s.transition
}

// SlideEffect reports whether navigation is animated.
func (s *Sequence) SlideEffect() bool {
	return s.slideEffect
}

// ToggleSlideEffect flips the slide effect.
func (s *Sequence) ToggleSlideEffect() {
	s.SetSlideEffect(!s.slideEffect)
}

// SetSlideEffect turns animated navigation on or off. It cannot be turned on
// without a scheduler to bound the wait.
func (s *Sequence) SetSlideEffect(on bool) {
	s.slideEffect = on && s.cfg.Scheduler != nil
}

// GoTo jumps to index without animation and announces the landing page.
// Every page up to and including index is made visible. Out-of-range
// indices are ignored.
func (s *Sequence) GoTo(index int, opts NavOptions) {
	if index < 0 || index >= len(s.pages) {
		return
	}

	// A jump supersedes whatever slide was pending.
	if s.transition != nil {
		s.transition.finish(false)
		s.transition = nil
	}

	s.current = index
	s.announceCurrentPage()
	s.finalize(opts.SkipFocus)

	for i, p := range s.pages {
		p.UpdateVisibility(i <= index)
	}
	s.cb.Resize()

	s.updatePositions()
	s.cb.OnProgressed(s.current)
}

// SwipeTo starts an animated navigation to index. It returns nil when the
// request is ignored: while another transition is in flight, or when index
// is already active. Targets outside the sequence wrap around.
func (s *Sequence) SwipeTo(index int, opts NavOptions) *Transition {
	n := len(s.pages)
	if n == 0 {
		return nil
	}
	if s.transition != nil {
		// Repeated requests while sliding must not touch the index.
		return nil
	}

	index = ((index % n) + n) % n
	from := s.current
	if from == index {
		return nil
	}

	t := newTransition(s.nextID, from, index, opts.SkipFocus)
	s.nextID++
	s.transition = t
	s.current = index

	lo, hi := from, index
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 {
		lo = 0
	}

	s.announceCurrentPage()

	for i, p := range s.pages {
		p.UpdateVisibility(i >= lo && i <= hi)
	}
	s.cb.Resize()
	s.updatePositions()
	s.cb.OnProgressed(s.current)

	if s.slideEffect {
		id := t.id
		s.pages[hi].RegisterTransitionEnd(func() { s.settle(id, false) })
		t.cancel = s.cfg.Scheduler.AfterFunc(s.cfg.TransitionTimeout, func() { s.settle(id, true) })
	} else {
		s.settle(t.id, false)
	}

	return t
}

// SwipeLeft moves to the previous page. It does nothing on the first page
// or while a transition is in flight.
func (s *Sequence) SwipeLeft() *Transition {
	if s.transition != nil || s.current <= 0 {
		return nil
	}
	return s.SwipeTo(s.current-1, NavOptions{SkipFocus: s.cb.UsingMouse()})
}

// SwipeRight moves to the next page. It does nothing on the last page or
// while a transition is in flight.
func (s *Sequence) SwipeRight() *Transition {
	if s.transition != nil || s.current == len(s.pages)-1 {
		return nil
	}
	return s.SwipeTo(s.current+1, NavOptions{SkipFocus: s.cb.UsingMouse()})
}

// EndTransition is the host's animation-end signal for the running slide.
func (s *Sequence) EndTransition() {
	t := s.transition
	if t == nil {
		return
	}
	hi := t.from
	if t.target > hi {
		hi = t.target
	}
	if p := s.PageAt(hi); p != nil {
		p.EndTransition()
	}
}

// settle finishes transition id. Signals for any other transition are
// stale and ignored.
func (s *Sequence) settle(id int, timedOut bool) {
	t := s.transition
	if t == nil || t.id != id {
		return
	}
	s.transition = nil

	// Drop the animation-end listener if the timeout won the race.
	hi := t.from
	if t.target > hi {
		hi = t.target
	}
	if p := s.PageAt(hi); p != nil {
		p.onEnd = nil
	}

	t.finish(timedOut)
	s.finalize(t.skipFocus)
}

// finalize hides every page but the active one, hands focus over, and
// reports that navigation has ended.
func (s *Sequence) finalize(skipFocus bool) {
	for i, p := range s.pages {
		if i != s.current {
			p.UpdateVisibility(false)
		}
	}

	if !skipFocus && s.current >= 0 {
		if !s.cb.FocusFirstChild(s.current) {
			s.cb.Refocus()
		}
	}

	s.cb.OnTransitionEnded()
	s.cb.Resize()
}

func (s *Sequence) updatePositions() {
	for i, p := range s.pages {
		p.SetPosition(i - s.current)
	}
}

func (s *Sequence) announceCurrentPage() {
	title := s.cb.Title(s.current)

	text := s.cfg.CurrentPageTemplate
	text = strings.ReplaceAll(text, "@current", strconv.Itoa(s.current+1))
	text = strings.ReplaceAll(text, "@total", strconv.Itoa(len(s.pages)))
	if text != "" {
		text = text + ". " + title
	} else {
		text = title
	}

	s.cb.Announce(text)
}

// CurrentState returns the persisted state of all pages.
func (s *Sequence) CurrentState() State {
	st := State{Pages: make([]PageState, len(s.pages))}
	for i, p := range s.pages {
		st.Pages[i] = p.CurrentState()
	}
	return st
}

// Reset forgets page visits and jumps back to the first page without
// moving focus.
func (s *Sequence) Reset() {
	for _, p := range s.pages {
		p.Reset()
	}
	s.GoTo(0, NavOptions{SkipFocus: true})
}
