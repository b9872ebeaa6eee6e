// Package play is the terminal host of an idea board exercise.
package play

import (
	"context"
	"fmt"
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/ideaboard/internal/board"
	"github.com/abhisek/ideaboard/internal/config"
	"github.com/abhisek/ideaboard/internal/content"
	"github.com/abhisek/ideaboard/internal/exercise"
	"github.com/abhisek/ideaboard/internal/ideaboard"
	"github.com/abhisek/ideaboard/internal/router"
	"github.com/abhisek/ideaboard/internal/screen"
	"github.com/abhisek/ideaboard/internal/store"
	"github.com/abhisek/ideaboard/internal/ui/components"
	"github.com/abhisek/ideaboard/internal/ui/layout"
	"github.com/abhisek/ideaboard/internal/xapi"
)

// Options configure a PlayScreen.
type Options struct {
	Content *content.Content
	Config  config.Config

	// States and Statements persist progress and the xAPI log. Either may
	// be nil, which disables that part.
	States     store.StateRepo
	Statements store.StatementRepo

	PreviousState *exercise.State

	// NewID generates card and clone ids. Defaults to UUIDs.
	NewID func() string

	// Now defaults to time.Now.
	Now func() time.Time
}

type inputMode int

const (
	modeBoard inputMode = iota
	modeAdd
	modeEdit
)

// cardBoard is the part of an idea board the screen edits.
type cardBoard interface {
	AddCard(text string) string
	EditCard(id, text string) bool
	RemoveCard(id string) bool
	Select(index int)
	SelectNext()
	SelectPrev()
	Selected() (board.Element, bool)
	FocusFirst() bool
	Len() int
}

var _ cardBoard = (*ideaboard.Board)(nil)

// PlayScreen runs an exercise in the terminal and implements its Host.
type PlayScreen struct {
	opts  Options
	ex    *exercise.Exercise
	sched *teaScheduler

	nav        exercise.Affordances
	task       exercise.TaskDescription
	status     string
	warning    string
	errMsg     string
	fullscreen bool
	usingMouse bool

	confirm *pendingConfirm
	mode    inputMode
	input   components.CardInput
	editID  string

	showingSummary bool
	summaryPending bool
	summaryReplace bool

	// Slide animation of the running transition.
	sliding  bool
	slideGen int

	width  int
	height int
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.ScoreProvider = (*PlayScreen)(nil)
var _ screen.FullscreenProvider = (*PlayScreen)(nil)

// New starts the exercise for opts.Content.
func New(opts Options) (*PlayScreen, error) {
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &PlayScreen{
		opts:  opts,
		sched: newTeaScheduler(),
	}
	ex, err := s.build(opts.Content, opts.PreviousState)
	if err != nil {
		return nil, err
	}
	s.ex = ex
	return s, nil
}

func (s *PlayScreen) build(c *content.Content, prev *exercise.State) (*exercise.Exercise, error) {
	cfg := s.opts.Config
	language := c.Language
	if language == "" {
		language = cfg.Language
	}
	runtime := &ideaboard.Runtime{
		NewID:       s.opts.NewID,
		Actor:       xapi.NewActor(cfg.UserID),
		LanguageTag: exercise.LanguageTag(language),
		Now:         s.opts.Now,
	}

	ex, err := exercise.New(exercise.Config{
		Content:              c,
		Factory:              runtime,
		Host:                 s,
		Scheduler:            s.sched,
		TransitionTimeout:    cfg.TransitionTimeout,
		DisableSlide:         cfg.SlideDuration <= 0,
		FullscreenDelaySmall: cfg.FullscreenDelaySmall,
		FullscreenDelayLarge: cfg.FullscreenDelayLarge,
		UserID:               cfg.UserID,
		PreviousState:        prev,
		NewID:                s.opts.NewID,
		Now:                  s.opts.Now,
		OnStatement:          s.record,
		OnNavigationUpdated:  func(a exercise.Affordances) { s.nav = a },
		OnSettled:            s.settled,
	})
	if err != nil {
		return nil, fmt.Errorf("start exercise: %w", err)
	}
	return ex, nil
}

// Exercise returns the running exercise.
func (s *PlayScreen) Exercise() *exercise.Exercise {
	return s.ex
}

// Save persists the current exercise state.
func (s *PlayScreen) Save(ctx context.Context) error {
	if s.opts.States == nil {
		return nil
	}
	data, err := exercise.MarshalState(s.ex.CurrentState())
	if err != nil {
		return err
	}
	if err := s.opts.States.Save(ctx, s.opts.Content.ID, s.opts.Config.UserID, data); err != nil {
		return err
	}
	return nil
}

func (s *PlayScreen) settled() {
	// The first settle happens while the exercise is still being built.
	if s.ex == nil {
		return
	}
	if err := s.Save(context.Background()); err != nil {
		s.warning = err.Error()
	}
}

// record validates and logs a statement. A failure to record never stops
// the exercise.
func (s *PlayScreen) record(st xapi.Statement) {
	if err := xapi.Validate(st); err != nil {
		s.warning = err.Error()
		return
	}
	if s.opts.Statements == nil {
		return
	}
	if _, err := s.opts.Statements.Append(context.Background(), s.opts.Content.ID, st); err != nil {
		s.warning = err.Error()
	}
}

func (s *PlayScreen) Init() tea.Cmd {
	s.Refocus()
	return s.flush(nil)
}

func (s *PlayScreen) Title() string {
	return s.ex.Title()
}

func (s *PlayScreen) Score() (int, int) {
	return s.ex.Score(), s.ex.MaxScore()
}

func (s *PlayScreen) IsFullscreen() bool {
	return s.fullscreen
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	case s.confirm != nil:
		return []layout.KeyHint{
			{Key: "Y", Description: s.confirm.req.Confirm},
			{Key: "N", Description: s.confirm.req.Cancel},
		}
	case s.mode != modeBoard:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save card"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "←→", Description: "Boards"},
		{Key: "↑↓", Description: "Cards"},
		{Key: "a", Description: "Add"},
		{Key: "e", Description: "Edit"},
		{Key: "x", Description: "Remove"},
	}
	if s.nav.ClonePrevious {
		hints = append(hints, layout.KeyHint{Key: "c", Description: "Copy previous"})
	}
	return append(hints,
		layout.KeyHint{Key: "f", Description: "Fullscreen"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case scheduledMsg:
		s.sched.run(msg)

	case slideEndMsg:
		if s.sliding && msg.gen == s.slideGen {
			s.sliding = false
			s.ex.Controller().EndTransition()
		}

	case router.ResumedMsg:
		// The summary screen was left.
		if s.ex.Controller().IsShowingSummary() {
			s.ex.Controller().GoBackward()
		}

	case ContentChangedMsg:
		cmd = s.reload(msg)

	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		s.ex.Resize()

	case tea.MouseClickMsg:
		s.usingMouse = true
		s.handleClick(msg.Mouse())

	case tea.KeyMsg:
		s.usingMouse = false
		cmd = s.handleKey(msg)

	default:
		if s.mode != modeBoard {
			s.input, cmd = s.input.Update(msg)
		}
	}

	return s, s.flush(cmd)
}

// flush collects cmd with everything the exercise asked for during the
// last call.
func (s *PlayScreen) flush(cmd tea.Cmd) tea.Cmd {
	cmds := append([]tea.Cmd{cmd}, s.sched.drain()...)

	if s.ex.Controller().IsTransitioning() && !s.sliding {
		s.sliding = true
		s.slideGen++
		gen := s.slideGen
		cmds = append(cmds, tick(s.opts.Config.SlideDuration, func(time.Time) tea.Msg {
			return slideEndMsg{gen: gen}
		}))
	}
	if !s.ex.Controller().IsTransitioning() {
		s.sliding = false
	}

	cmds = append(cmds, s.summaryCmd())
	return tea.Batch(cmds...)
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if s.errMsg != "" {
		return nil
	}

	if s.confirm != nil {
		switch key {
		case "y", "Y", "enter":
			c := s.confirm
			s.confirm = nil
			if err := c.fn(); err != nil {
				s.errMsg = err.Error()
			}
		case "n", "N", "esc":
			s.confirm = nil
		}
		return nil
	}

	if s.mode != modeBoard {
		switch key {
		case "enter":
			s.commitInput()
			return nil
		case "esc":
			s.mode = modeBoard
			return nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return cmd
	}

	ctrl := s.ex.Controller()
	switch key {
	case "right", "l", "pgdown":
		s.forward()
	case "left", "h", "pgup":
		if s.nav.Backward {
			ctrl.GoBackward()
		}
	case "a":
		if s.cards() != nil {
			s.mode = modeAdd
			s.input = components.NewCardInput("New card:", "Write an idea...", "")
			return s.input.Init()
		}
	case "e", "enter":
		if cb := s.cards(); cb != nil {
			if card, ok := cb.Selected(); ok {
				s.mode = modeEdit
				s.editID = card.ID
				s.input = components.NewCardInput("Edit card:", "", card.ContentType.Params.Text)
				return s.input.Init()
			}
		}
	case "x", "delete", "backspace":
		if cb := s.cards(); cb != nil {
			if card, ok := cb.Selected(); ok {
				cb.RemoveCard(card.ID)
			}
		}
	case "tab", "down", "j":
		if cb := s.cards(); cb != nil {
			cb.SelectNext()
		}
	case "shift+tab", "up", "k":
		if cb := s.cards(); cb != nil {
			cb.SelectPrev()
		}
	case "c":
		ctrl.RequestClonePrevious()
	case "r":
		s.ex.Reset()
		s.status = ""
	case "f":
		s.ex.SetFullscreen(!s.ex.IsFullscreen())
	case "esc":
		if s.ex.IsFullscreen() {
			s.ex.SetFullscreen(false)
		}
	}
	return nil
}

func (s *PlayScreen) forward() {
	ctrl := s.ex.Controller()
	if ctrl.IsTransitioning() {
		return
	}
	if !s.nav.Forward {
		if !slices.Contains(ctrl.CompletedBoardIndices(), ctrl.CurrentIndex()) {
			s.Announce(ctrl.Dictionary().Get("a11y.completeToProceed"))
		}
		return
	}
	if err := ctrl.GoForward(); err != nil {
		s.errMsg = err.Error()
	}
}

// handleClick treats clicks on the outer sixths of the screen as the
// previous and next buttons.
func (s *PlayScreen) handleClick(m tea.Mouse) {
	if s.width == 0 || s.confirm != nil || s.mode != modeBoard {
		return
	}
	switch {
	case m.X < s.width/6:
		if s.nav.Backward {
			s.ex.Controller().GoBackward()
		}
	case m.X >= s.width-s.width/6:
		s.forward()
	}
}

// cards returns the idea board on the current page, or nil.
func (s *PlayScreen) cards() cardBoard {
	b := s.ex.Controller().CurrentBoard()
	if b == nil {
		return nil
	}
	cb, _ := b.Instance().(cardBoard)
	return cb
}

func (s *PlayScreen) commitInput() {
	mode, text := s.mode, s.input.Value()
	s.mode = modeBoard

	cb := s.cards()
	if cb == nil {
		return
	}
	switch mode {
	case modeAdd:
		cb.AddCard(text)
		cb.FocusFirst()
		cb.Select(cb.Len() - 1)
	case modeEdit:
		cb.EditCard(s.editID, text)
	}
}

// reload rebuilds the exercise from changed content, carrying the
// current state over.
func (s *PlayScreen) reload(msg ContentChangedMsg) tea.Cmd {
	if msg.Err != nil {
		s.warning = msg.Err.Error()
		return nil
	}

	prev := s.ex.CurrentState()
	wasSummary := s.showingSummary
	nav, task := s.nav, s.task
	ex, err := s.build(msg.Content, &prev)
	if err != nil {
		// Keep playing the old content.
		s.nav, s.task = nav, task
		s.showingSummary = wasSummary
		s.summaryPending, s.summaryReplace = false, false
		s.warning = err.Error()
		return nil
	}

	s.opts.Content = msg.Content
	s.ex = ex
	s.warning = ""
	s.confirm = nil
	s.mode = modeBoard
	s.sliding = false
	s.Refocus()

	if wasSummary && !ex.Controller().IsShowingSummary() {
		s.showingSummary = false
		s.summaryReplace = false
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	return nil
}
