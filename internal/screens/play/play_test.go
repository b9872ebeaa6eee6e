package play

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ideaboard/internal/board"
	"github.com/abhisek/ideaboard/internal/config"
	"github.com/abhisek/ideaboard/internal/content"
	"github.com/abhisek/ideaboard/internal/exercise"
	"github.com/abhisek/ideaboard/internal/ideaboard"
	"github.com/abhisek/ideaboard/internal/router"
	"github.com/abhisek/ideaboard/internal/screens/summary"
	"github.com/abhisek/ideaboard/internal/store"
	"github.com/abhisek/ideaboard/internal/xapi"
)

// memStates implements store.StateRepo for testing.
type memStates struct {
	saved map[string][]byte
	saves int
}

func (m *memStates) Save(_ context.Context, contentID, userID string, data []byte) error {
	if m.saved == nil {
		m.saved = map[string][]byte{}
	}
	m.saved[contentID+"/"+userID] = data
	m.saves++
	return nil
}

func (m *memStates) Latest(_ context.Context, contentID, userID string) (*store.SavedState, error) {
	data, ok := m.saved[contentID+"/"+userID]
	if !ok {
		return nil, nil
	}
	return &store.SavedState{ContentID: contentID, UserID: userID, Data: data}, nil
}

func (m *memStates) Delete(_ context.Context, contentID, userID string) (bool, error) {
	_, ok := m.saved[contentID+"/"+userID]
	delete(m.saved, contentID+"/"+userID)
	return ok, nil
}

// memStatements implements store.StatementRepo for testing.
type memStatements struct {
	verbs []string
}

func (m *memStatements) Append(_ context.Context, _ string, st xapi.Statement) (int64, error) {
	m.verbs = append(m.verbs, st.Verb.Short())
	return int64(len(m.verbs)), nil
}

func (m *memStatements) List(context.Context, string, store.QueryOpts) ([]store.LoggedStatement, error) {
	return nil, nil
}

// delayedMsg stands in for a timer that has not fired yet.
type delayedMsg struct {
	d   time.Duration
	msg tea.Msg
}

func fakeTimers(t *testing.T) {
	orig := tick
	tick = func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
		return func() tea.Msg { return delayedMsg{d: d, msg: fn(time.Time{})} }
	}
	t.Cleanup(func() { tick = orig })
}

type harness struct {
	t          *testing.T
	s          *PlayScreen
	states     *memStates
	statements *memStatements
	delayed    []delayedMsg
	out        []tea.Msg
}

func boardParams(created, edited int, usePrevious bool) board.Params {
	return board.Params{
		TaskDescription: "Collect ideas",
		BoardGroup: board.Group{IdeaBoard: board.ContentDefinition{
			Library:      "H5P.IdeaBoard 1.0",
			SubContentID: "board-sc",
			Params:       []byte(`{"cards":[]}`),
			Metadata:     board.Metadata{Title: "Ideas"},
		}},
		RequiresCompletionToProgress: created+edited > 0,
		CompletionRules:              board.CompletionRules{NumberCardsCreated: created, NumberCardsEdited: edited},
		ScoreForCompletion:           1,
		UsePreviousBoardContents:     usePrevious,
	}
}

func testContent(summaryScreen bool, boards ...board.Params) *content.Content {
	return &content.Content{
		ID:      "7",
		Library: content.Library + " 1.3",
		Title:   "Brainstorm",
		Params: content.Params{
			Boards:           boards,
			AddSummaryScreen: summaryScreen,
			SummaryScreenGroup: content.SummaryScreenGroup{
				SummaryScreen: content.SummaryScreen{Title: "All done", Text: "Thanks."},
			},
		},
	}
}

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.UserID = "alice"
	return cfg
}

func newHarness(t *testing.T, c *content.Content, prev *exercise.State) *harness {
	t.Helper()
	fakeTimers(t)

	n := 0
	h := &harness{t: t, states: &memStates{}, statements: &memStatements{}}
	s, err := New(Options{
		Content:       c,
		Config:        testConfig(),
		States:        h.states,
		Statements:    h.statements,
		PreviousState: prev,
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
		Now: func() time.Time { return time.Unix(1700000000, 0) },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.s = s
	h.run(s.Init())
	return h
}

// run executes cmd and everything it batches. Commands that block, such as
// the cursor blink, are dropped.
func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(100 * time.Millisecond):
		return
	}

	switch msg := msg.(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			h.run(c)
		}
	case delayedMsg:
		h.delayed = append(h.delayed, msg)
	case scheduledMsg:
		h.send(msg)
	default:
		h.out = append(h.out, msg)
	}
}

func (h *harness) send(msg tea.Msg) {
	_, cmd := h.s.Update(msg)
	h.run(cmd)
}

func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	}
	r := []rune(key)[0]
	return tea.KeyPressMsg{Code: r, Text: key}
}

func (h *harness) press(keys ...string) {
	for _, k := range keys {
		h.send(keyPress(k))
	}
}

// typeText types every rune of text.
func (h *harness) typeText(text string) {
	for _, r := range text {
		h.send(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// fire delivers the pending timer messages matching keep.
func (h *harness) fire(keep func(tea.Msg) bool) {
	var rest, due []delayedMsg
	for _, d := range h.delayed {
		if keep(d.msg) {
			due = append(due, d)
		} else {
			rest = append(rest, d)
		}
	}
	h.delayed = rest
	for _, d := range due {
		h.send(d.msg)
	}
}

func (h *harness) endSlides() {
	h.fire(func(msg tea.Msg) bool {
		_, ok := msg.(slideEndMsg)
		return ok
	})
}

func (h *harness) fireTimers() {
	h.fire(func(msg tea.Msg) bool {
		_, ok := msg.(scheduledMsg)
		return ok
	})
}

func (h *harness) cards() []board.Element {
	return h.s.Exercise().Controller().CurrentBoard().Instance().(*ideaboard.Board).Cards()
}

func (h *harness) savedState() exercise.State {
	h.t.Helper()
	data, ok := h.states.saved["7/alice"]
	if !ok {
		h.t.Fatal("expected a saved state")
	}
	st, err := exercise.UnmarshalState(data)
	if err != nil {
		h.t.Fatalf("UnmarshalState: %v", err)
	}
	return *st
}

func TestPlay_ForwardSlidesAndSaves(t *testing.T) {
	h := newHarness(t, testContent(false, boardParams(0, 0, false), boardParams(0, 0, false)), nil)
	ctrl := h.s.Exercise().Controller()

	if !h.s.nav.Forward {
		t.Fatal("expected forward to be offered on an open board")
	}

	h.press("right")
	if !ctrl.IsTransitioning() {
		t.Fatal("expected a transition after pressing right")
	}

	h.endSlides()
	if ctrl.IsTransitioning() {
		t.Error("expected the transition to end with the slide")
	}
	if ctrl.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex = %d, want 1", ctrl.CurrentIndex())
	}
	if got := h.savedState().CurrentPageIndex; got != 1 {
		t.Errorf("saved CurrentPageIndex = %d, want 1", got)
	}

	progressed := 0
	for _, v := range h.statements.verbs {
		if v == xapi.VerbProgressed {
			progressed++
		}
	}
	if progressed != 2 {
		t.Errorf("progressed statements = %d, want 2 (%v)", progressed, h.statements.verbs)
	}
}

func TestPlay_TransitionTimeout(t *testing.T) {
	h := newHarness(t, testContent(false, boardParams(0, 0, false), boardParams(0, 0, false)), nil)
	ctrl := h.s.Exercise().Controller()

	h.press("right")
	h.fireTimers()
	if ctrl.IsTransitioning() {
		t.Fatal("expected the timeout to settle the transition")
	}

	// The slide end arrives late and is ignored.
	h.endSlides()
	if ctrl.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex = %d, want 1", ctrl.CurrentIndex())
	}
}

func TestPlay_ForwardBlockedAnnounces(t *testing.T) {
	h := newHarness(t, testContent(false, boardParams(1, 1, false), boardParams(0, 0, false)), nil)

	h.press("right")
	if h.s.Exercise().Controller().CurrentIndex() != 0 {
		t.Error("expected to stay on the incomplete board")
	}
	if h.s.status != "Complete this board to continue." {
		t.Errorf("status = %q", h.s.status)
	}
}

func TestPlay_AddEditRemoveCards(t *testing.T) {
	h := newHarness(t, testContent(false, boardParams(1, 1, false)), nil)

	h.press("a")
	if h.s.mode != modeAdd {
		t.Fatal("expected add mode")
	}
	h.typeText("idea")
	h.press("enter")

	cards := h.cards()
	if len(cards) != 1 || cards[0].ContentType.Params.Text != "idea" {
		t.Fatalf("cards = %+v, want one card 'idea'", cards)
	}

	h.press("e")
	if h.s.mode != modeEdit {
		t.Fatal("expected edit mode")
	}
	if h.s.input.Value() != "idea" {
		t.Errorf("input = %q, want prefilled 'idea'", h.s.input.Value())
	}
	h.s.input.Model.SetValue("better idea")
	h.press("enter")

	if got := h.cards()[0].ContentType.Params.Text; got != "better idea" {
		t.Errorf("card text = %q, want 'better idea'", got)
	}
	if score, _ := h.s.Score(); score != 1 {
		t.Errorf("score = %d, want 1 after completing the board", score)
	}

	h.press("x")
	if len(h.cards()) != 0 {
		t.Errorf("expected the card to be removed, got %d", len(h.cards()))
	}
}

func TestPlay_InputEscapeCancels(t *testing.T) {
	h := newHarness(t, testContent(false, boardParams(0, 0, false)), nil)

	h.press("a")
	h.typeText("draft")
	h.press("esc")

	if h.s.mode != modeBoard {
		t.Error("expected board mode after esc")
	}
	if len(h.cards()) != 0 {
		t.Error("expected no card to be added")
	}
}

func TestPlay_ClonePreviousWithConfirmation(t *testing.T) {
	h := newHarness(t, testContent(false, boardParams(0, 0, false), boardParams(0, 0, true)), nil)

	h.press("a")
	h.typeText("seed")
	h.press("enter")
	h.press("right")
	h.endSlides()

	if got := h.cards(); len(got) != 1 || got[0].ContentType.Params.Text != "seed" {
		t.Fatalf("expected the second board to start from the first, got %+v", got)
	}
	if !h.s.nav.ClonePrevious {
		t.Fatal("expected copying the previous board to be offered")
	}

	h.press("a")
	h.typeText("extra")
	h.press("enter")

	h.press("c")
	if h.s.confirm == nil {
		t.Fatal("expected a confirmation dialog")
	}
	if !strings.Contains(h.s.View(80, 24), "Copy previous board?") {
		t.Error("expected the dialog header in the view")
	}

	h.press("n")
	if h.s.confirm != nil || len(h.cards()) != 2 {
		t.Fatalf("expected cancel to keep both cards, got %d", len(h.cards()))
	}

	h.press("c", "y")
	if got := h.cards(); len(got) != 1 || got[0].ContentType.Params.Text != "seed" {
		t.Errorf("expected a fresh copy of the first board, got %+v", got)
	}
}

func TestPlay_SummaryPushedAndLeft(t *testing.T) {
	h := newHarness(t, testContent(true, boardParams(0, 0, false)), nil)

	h.press("right")

	var pushed *summary.SummaryScreen
	for _, msg := range h.out {
		if push, ok := msg.(router.PushScreenMsg); ok {
			pushed, _ = push.Screen.(*summary.SummaryScreen)
		}
	}
	if pushed == nil {
		t.Fatalf("expected the summary screen to be pushed, got %v", h.out)
	}
	if !strings.Contains(pushed.View(80, 24), "All done") {
		t.Error("expected the summary title in the summary view")
	}

	h.send(router.ResumedMsg{})
	if h.s.Exercise().Controller().IsShowingSummary() {
		t.Error("expected leaving the summary screen to leave the summary")
	}
	if h.s.showingSummary {
		t.Error("expected the screen to know the summary is gone")
	}
}

func TestPlay_RestoresPreviousState(t *testing.T) {
	prev := &exercise.State{
		CurrentPageIndex:      1,
		CompletedBoardIndices: []int{0},
	}
	h := newHarness(t, testContent(false, boardParams(0, 0, false), boardParams(1, 0, false)), prev)
	ctrl := h.s.Exercise().Controller()

	if ctrl.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex = %d, want 1", ctrl.CurrentIndex())
	}
	if ctrl.IsTransitioning() {
		t.Error("expected restore to settle without a slide")
	}

	// The slide effect is back on for the next navigation.
	h.press("left")
	if !ctrl.IsTransitioning() {
		t.Error("expected going back to slide")
	}
}

func TestPlay_ContentReloadKeepsProgress(t *testing.T) {
	c := testContent(false, boardParams(0, 0, false), boardParams(0, 0, false))
	h := newHarness(t, c, nil)
	h.press("right")
	h.endSlides()

	changed := testContent(false, boardParams(0, 0, false), boardParams(0, 0, false))
	changed.Title = "Brainstorm v2"
	h.send(ContentChangedMsg{Content: changed})

	if h.s.Title() != "Brainstorm v2" {
		t.Errorf("Title = %q, want the reloaded title", h.s.Title())
	}
	if got := h.s.Exercise().Controller().CurrentIndex(); got != 1 {
		t.Errorf("CurrentIndex = %d, want 1 after reload", got)
	}

	h.send(ContentChangedMsg{Err: fmt.Errorf("parse content: bad yaml")})
	if !strings.Contains(h.s.View(100, 30), "bad yaml") {
		t.Error("expected the reload error as a warning")
	}
	if h.s.Title() != "Brainstorm v2" {
		t.Error("expected the last good content to keep running")
	}
}

func TestPlay_FullscreenToggle(t *testing.T) {
	h := newHarness(t, testContent(false, boardParams(0, 0, false)), nil)

	h.press("f")
	if !h.s.IsFullscreen() {
		t.Error("expected fullscreen after f")
	}
	h.press("esc")
	if h.s.IsFullscreen() {
		t.Error("expected esc to leave fullscreen")
	}
}

func TestPlay_MouseClickNavigates(t *testing.T) {
	h := newHarness(t, testContent(false, boardParams(0, 0, false), boardParams(0, 0, false)), nil)
	h.send(tea.WindowSizeMsg{Width: 90, Height: 30})

	h.send(tea.MouseClickMsg{X: 89, Y: 10, Button: tea.MouseLeft})
	if !h.s.UsingMouse() {
		t.Error("expected the click to switch to mouse modality")
	}
	h.endSlides()
	if got := h.s.Exercise().Controller().CurrentIndex(); got != 1 {
		t.Errorf("CurrentIndex = %d, want 1 after clicking the right edge", got)
	}

	h.press("left")
	if h.s.UsingMouse() {
		t.Error("expected a key press to switch back to keyboard modality")
	}
}

func TestPlay_ViewAndHints(t *testing.T) {
	h := newHarness(t, testContent(false, boardParams(2, 0, false)), nil)

	view := h.s.View(100, 30)
	for _, want := range []string{"Ideas", "Collect ideas", "Add at least 2 cards.", "1 / 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if len(h.s.KeyHints()) == 0 {
		t.Error("expected key hints")
	}

	h.press("a")
	hints := h.s.KeyHints()
	if len(hints) != 2 || hints[0].Key != "Enter" {
		t.Errorf("expected input hints, got %+v", hints)
	}
}

func TestPlay_Reset(t *testing.T) {
	h := newHarness(t, testContent(false, boardParams(1, 0, false), boardParams(0, 0, false)), nil)
	h.press("a")
	h.typeText("idea")
	h.press("enter", "right")
	h.endSlides()

	h.press("r")
	ctrl := h.s.Exercise().Controller()
	if ctrl.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex = %d, want 0 after reset", ctrl.CurrentIndex())
	}
	if len(h.cards()) != 0 {
		t.Errorf("expected reset to clear the cards, got %d", len(h.cards()))
	}
}
