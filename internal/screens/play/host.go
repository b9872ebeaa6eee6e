package play

import (
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ideaboard/internal/exercise"
	"github.com/abhisek/ideaboard/internal/router"
	"github.com/abhisek/ideaboard/internal/screens/summary"
)

var _ exercise.Host = (*PlayScreen)(nil)

// pendingConfirm is a confirmation the exercise is waiting on.
type pendingConfirm struct {
	req exercise.ConfirmRequest
	fn  func() error
}

func (s *PlayScreen) Announce(text string) {
	s.status = text
}

// Resize is a no-op: the frame is laid out again on every View.
func (s *PlayScreen) Resize() {}

func (s *PlayScreen) Refocus() {
	if s.ex == nil {
		return
	}
	if b := s.ex.Controller().CurrentBoard(); b != nil {
		b.FocusFirstChild()
	}
}

func (s *PlayScreen) UsingMouse() bool {
	return s.usingMouse
}

func (s *PlayScreen) SetSummaryVisible(visible bool) {
	if visible && !s.showingSummary {
		s.summaryPending = true
	}
	if visible && s.showingSummary {
		// Already on screen; refresh it in place after a reload.
		s.summaryReplace = true
	}
	s.showingSummary = visible
}

func (s *PlayScreen) SetTaskDescription(td exercise.TaskDescription) {
	s.task = td
}

func (s *PlayScreen) SetFullscreen(on bool) {
	s.fullscreen = on
}

func (s *PlayScreen) Confirm(req exercise.ConfirmRequest, onConfirmed func() error) {
	s.confirm = &pendingConfirm{req: req, fn: onConfirmed}
}

// summaryCmd turns a summary shown during the last exercise call into a
// router command. It runs once the exercise is fully built.
func (s *PlayScreen) summaryCmd() tea.Cmd {
	if !s.summaryPending && !s.summaryReplace {
		return nil
	}
	scr := summary.New(s.summaryData())
	push := s.summaryPending
	s.summaryPending, s.summaryReplace = false, false
	if push {
		return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
	}
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: scr} }
}

func (s *PlayScreen) summaryData() summary.Data {
	ctrl := s.ex.Controller()
	data := summary.Data{
		Header:   ctrl.Dictionary().Get("l10n.summary"),
		Score:    s.ex.Score(),
		MaxScore: s.ex.MaxScore(),
	}
	if sum := ctrl.Summary(); sum != nil {
		data.Title = sum.Title
		data.Text = sum.Text
	}

	completed := ctrl.CompletedBoardIndices()
	boards := ctrl.Boards()
	for i := range boards.Len() {
		b := boards.Board(i)
		data.Boards = append(data.Boards, summary.BoardResult{
			Title:     b.Title(),
			Completed: slices.Contains(completed, i),
			Score:     b.Score(),
			MaxScore:  b.MaxScore(),
		})
	}
	return data
}
