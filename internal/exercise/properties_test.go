package exercise

import (
	"slices"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/abhisek/ideaboard/internal/board"
	"github.com/abhisek/ideaboard/internal/clock"
	"github.com/abhisek/ideaboard/internal/content"
	"github.com/abhisek/ideaboard/internal/ideaboard"
)

type run struct {
	ctrl        *Controller
	host        *recordingHost
	sched       *clock.Manual
	completions int
}

func startRun(t *rapid.T, boards []board.Params, summary *content.SummaryScreen, prev *State) *run {
	r := &run{host: &recordingHost{}, sched: clock.NewManual()}
	ctrl, err := NewController(ControllerOptions{
		ContentID:         "42",
		Boards:            boards,
		Summary:           summary,
		Dictionary:        content.NewDictionary(nil, nil),
		Factory:           newRuntime(),
		Host:              r.host,
		Scheduler:         r.sched,
		TransitionTimeout: time.Second,
		NewID:             sequentialIDs("clone"),
		PreviousState:     prev,
		Callbacks:         Callbacks{OnCompleted: func() { r.completions++ }},
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	r.ctrl = ctrl
	return r
}

func drawBoards(t *rapid.T) []board.Params {
	n := rapid.IntRange(1, 5).Draw(t, "boards")
	out := make([]board.Params, n)
	for i := range out {
		out[i] = boardParams(
			rapid.IntRange(0, 2).Draw(t, "created"),
			rapid.IntRange(0, 2).Draw(t, "edited"),
			rapid.Bool().Draw(t, "usePrevious"),
		)
	}
	return out
}

func TestController_NavigationProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		boards := drawBoards(t)
		var summary *content.SummaryScreen
		if rapid.Bool().Draw(t, "summary") {
			summary = testSummary
		}
		r := startRun(t, boards, summary, nil)
		c := r.ctrl
		n := len(boards)

		completed := c.CompletedBoardIndices()
		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for range steps {
			reset := false
			switch rapid.IntRange(0, 8).Draw(t, "op") {
			case 0, 1:
				if err := c.GoForward(); err != nil {
					t.Fatalf("forward: %v", err)
				}
			case 2:
				c.GoBackward()
			case 3:
				c.CurrentBoard().Instance().(*ideaboard.Board).AddCard("idea")
			case 4:
				b := c.CurrentBoard().Instance().(*ideaboard.Board)
				if cards := b.Cards(); len(cards) > 0 {
					b.EditCard(cards[0].ID, rapid.StringMatching(`[a-z]{1,6}`).Draw(t, "text"))
				}
			case 5:
				c.EndTransition()
			case 6:
				r.sched.Advance(time.Duration(rapid.IntRange(0, 1500).Draw(t, "ms")) * time.Millisecond)
			case 7:
				before := len(r.host.confirms)
				c.RequestClonePrevious()
				if len(r.host.confirms) > before {
					if err := r.host.confirms[before].fn(); err != nil {
						t.Fatalf("clone: %v", err)
					}
				}
			case 8:
				if rapid.IntRange(0, 4).Draw(t, "reset") == 0 {
					c.Reset()
					r.completions = 0
					reset = true
				}
			}

			now := c.CompletedBoardIndices()
			if !reset {
				for _, i := range completed {
					if !slices.Contains(now, i) {
						t.Fatalf("board %d lost its completion: %v -> %v", i, completed, now)
					}
				}
			}
			completed = now

			index := c.CurrentIndex()
			if index < 0 || index >= n {
				t.Fatalf("index %d out of range", index)
			}
			if c.WereAllBoardsCompleted() != (len(now) == n) {
				t.Fatalf("all completed %v with %d of %d boards", c.WereAllBoardsCompleted(), len(now), n)
			}
			if r.completions > 1 {
				t.Fatalf("completion fired %d times", r.completions)
			}
			if c.IsShowingSummary() && (summary == nil || index != n-1) {
				t.Fatalf("summary shown at %d", index)
			}
			if a := c.Affordances(); a.Forward && !slices.Contains(now, index) {
				t.Fatalf("forward offered on incomplete board %d", index)
			}
		}

		st := c.CurrentState()
		restored := startRun(t, boards, summary, &st).ctrl
		got := restored.CurrentState()

		if got.CurrentPageIndex != st.CurrentPageIndex {
			t.Fatalf("index %d, want %d", got.CurrentPageIndex, st.CurrentPageIndex)
		}
		if got.IsShowingSummary != st.IsShowingSummary {
			t.Fatalf("summary %v, want %v", got.IsShowingSummary, st.IsShowingSummary)
		}
		if got.WereAllBoardsCompleted != st.WereAllBoardsCompleted {
			t.Fatalf("all completed %v, want %v", got.WereAllBoardsCompleted, st.WereAllBoardsCompleted)
		}
		if !slices.Equal(got.CompletedBoardIndices, st.CompletedBoardIndices) {
			t.Fatalf("completed %v, want %v", got.CompletedBoardIndices, st.CompletedBoardIndices)
		}
		if !slices.Equal(visited(got.Pages), visited(st.Pages)) {
			t.Fatalf("visited %v, want %v", visited(got.Pages), visited(st.Pages))
		}
	})
}
