package exercise

import (
	"errors"
	"time"

	"github.com/abhisek/ideaboard/internal/board"
	"github.com/abhisek/ideaboard/internal/clock"
	"github.com/abhisek/ideaboard/internal/content"
	"github.com/abhisek/ideaboard/internal/xapi"
)

// LibraryTitle names the exercise where the content gives no title.
const LibraryTitle = "Idea Board Exercise"

// Default fullscreen layout delays.
const (
	DefaultFullscreenDelaySmall = 200 * time.Millisecond
	DefaultFullscreenDelayLarge = 300 * time.Millisecond
)

// Config configures an Exercise.
type Config struct {
	Content *content.Content
	Factory board.Factory

	// Host defaults to NopHost.
	Host      Host
	Scheduler clock.Scheduler

	TransitionTimeout time.Duration
	DisableSlide      bool

	FullscreenDelaySmall time.Duration
	FullscreenDelayLarge time.Duration

	// UserID identifies the learner in statements.
	UserID string

	PreviousState *State

	// NewID generates ids for cloned elements.
	NewID func() string

	// Now stamps statements. Defaults to time.Now.
	Now func() time.Time

	// OnStatement receives every xAPI statement the exercise emits.
	OnStatement func(xapi.Statement)

	// OnNavigationUpdated receives the navigation affordances.
	OnNavigationUpdated func(Affordances)

	// OnSettled is called whenever a navigation comes to rest.
	OnSettled func()
}

// Exercise is the root of a running idea board exercise.
type Exercise struct {
	ctrl *Controller

	content     *content.Content
	languageTag string
	actor       xapi.Actor
	host        Host
	sched       clock.Scheduler
	now         func() time.Time
	emit        func(xapi.Statement)

	delaySmall time.Duration
	delayLarge time.Duration
	fullscreen bool
}

// New starts an exercise for cfg.Content, restoring cfg.PreviousState when
// given.
func New(cfg Config) (*Exercise, error) {
	if cfg.Content == nil {
		return nil, errors.New("exercise needs content")
	}
	if len(cfg.Content.Params.Boards) == 0 {
		return nil, content.ErrNoBoards
	}

	e := &Exercise{
		content:     cfg.Content,
		languageTag: LanguageTag(cfg.Content.Language),
		actor:       xapi.NewActor(cfg.UserID),
		host:        cfg.Host,
		sched:       cfg.Scheduler,
		now:         cfg.Now,
		emit:        cfg.OnStatement,
		delaySmall:  cfg.FullscreenDelaySmall,
		delayLarge:  cfg.FullscreenDelayLarge,
	}
	if e.host == nil {
		e.host = NopHost{}
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.emit == nil {
		e.emit = func(xapi.Statement) {}
	}
	if e.delaySmall <= 0 {
		e.delaySmall = DefaultFullscreenDelaySmall
	}
	if e.delayLarge <= 0 {
		e.delayLarge = DefaultFullscreenDelayLarge
	}

	// The first board has nothing before it to start from.
	boards := make([]board.Params, len(cfg.Content.Params.Boards))
	copy(boards, cfg.Content.Params.Boards)
	boards[0].UsePreviousBoardContents = false

	ctrl, err := newController(ControllerOptions{
		ContentID:         cfg.Content.ID,
		Boards:            boards,
		Summary:           cfg.Content.Params.Summary(),
		Dictionary:        cfg.Content.Dictionary(),
		Factory:           cfg.Factory,
		Host:              e.host,
		Scheduler:         cfg.Scheduler,
		TransitionTimeout: cfg.TransitionTimeout,
		DisableSlide:      cfg.DisableSlide,
		NewID:             cfg.NewID,
		PreviousState:     cfg.PreviousState,
		Callbacks: Callbacks{
			OnProgressed:        e.progressed,
			OnCompleted:         e.completed,
			OnNavigationUpdated: cfg.OnNavigationUpdated,
			OnSettled:           cfg.OnSettled,
		},
	})
	if err != nil {
		return nil, err
	}
	e.ctrl = ctrl
	if err := ctrl.start(cfg.PreviousState); err != nil {
		return nil, err
	}
	return e, nil
}

// LanguageTag formats a content language for xAPI, defaulting to English.
func LanguageTag(language string) string {
	if language == "" {
		language = "en"
	}
	return xapi.FormatLanguageCode(language)
}

// Controller returns the navigation controller.
func (e *Exercise) Controller() *Controller {
	return e.ctrl
}

// Content returns the content the exercise runs.
func (e *Exercise) Content() *content.Content {
	return e.content
}

// Title returns the content title.
func (e *Exercise) Title() string {
	if e.content.Title != "" {
		return e.content.Title
	}
	return LibraryTitle
}

// Score sums the board scores.
func (e *Exercise) Score() int {
	return e.ctrl.boards.TotalScore()
}

// MaxScore sums the board maximum scores.
func (e *Exercise) MaxScore() int {
	return e.ctrl.boards.TotalMaxScore()
}

// AnswerGiven reports whether any board has been answered.
func (e *Exercise) AnswerGiven() bool {
	return e.ctrl.boards.AnswerGiven()
}

// CurrentState snapshots the exercise for a later restore.
func (e *Exercise) CurrentState() State {
	return e.ctrl.CurrentState()
}

// Reset returns the exercise to its initial state.
func (e *Exercise) Reset() {
	e.ctrl.Reset()
}

// Resize passes a layout change down to every board.
func (e *Exercise) Resize() {
	e.ctrl.Resize()
}

// IsFullscreen reports the fullscreen state last requested.
func (e *Exercise) IsFullscreen() bool {
	return e.fullscreen
}

// SetFullscreen enters or leaves fullscreen and lays the exercise out again
// once the host has had time to resize: after the large delay, twice, when
// entering and after the small delay when leaving.
func (e *Exercise) SetFullscreen(on bool) {
	e.fullscreen = on
	e.host.SetFullscreen(on)

	relayout := func() {
		e.host.Resize()
		e.ctrl.Resize()
	}
	if e.sched == nil {
		relayout()
		return
	}
	if !on {
		e.sched.AfterFunc(e.delaySmall, relayout)
		return
	}
	e.sched.AfterFunc(e.delayLarge, func() {
		relayout()
		e.sched.AfterFunc(e.delayLarge, relayout)
	})
}

// object is the xAPI object describing the whole exercise.
func (e *Exercise) object() xapi.Object {
	description := e.content.Params.Header
	if description == "" {
		description = LibraryTitle
	}
	return xapi.Object{
		ID:         xapi.ActivityID(e.content.ID, ""),
		ObjectType: "Activity",
		Definition: xapi.NewDefinition(e.languageTag, e.Title(), description),
	}
}

func (e *Exercise) statement(verb string) xapi.Statement {
	return xapi.New(verb, e.actor, e.object(), e.now())
}

func (e *Exercise) scored(verb string) xapi.Statement {
	st := e.statement(verb)
	score, maxScore := e.Score(), e.MaxScore()
	st.Result = xapi.ScoredResult(score, maxScore, score == maxScore)
	return st
}

func (e *Exercise) progressed(index int) {
	st := e.statement(xapi.VerbProgressed)
	st.SetExtension(xapi.EndingPointExtension, index)
	e.emit(st)
}

func (e *Exercise) completed() {
	e.emit(e.scored(xapi.VerbCompleted))
}

// XAPIData returns an "answered" statement for the exercise with the data
// of every board as children.
func (e *Exercise) XAPIData() xapi.Data {
	data := xapi.Data{Statement: e.scored(xapi.VerbAnswered)}
	parent := e.object()
	for _, child := range e.ctrl.boards.XAPIData() {
		child.Statement.SetParent(parent)
		data.Children = append(data.Children, child)
	}
	return data
}
