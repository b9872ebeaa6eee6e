package play

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ideaboard/internal/clock"
)

// tick creates timer commands. Replaced in tests.
var tick = tea.Tick

// scheduledMsg fires a callback registered with the tea scheduler.
type scheduledMsg struct {
	id int
}

// teaScheduler runs exercise callbacks on the Bubble Tea event loop: each
// AfterFunc becomes a tea.Tick whose message is routed back to the screen,
// so the exercise is only ever touched from Update.
type teaScheduler struct {
	nextID  int
	tasks   map[int]func()
	pending []tea.Cmd
}

var _ clock.Scheduler = (*teaScheduler)(nil)

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{tasks: map[int]func(){}}
}

func (s *teaScheduler) AfterFunc(d time.Duration, f func()) func() {
	id := s.nextID
	s.nextID++
	s.tasks[id] = f

	if d <= 0 {
		s.pending = append(s.pending, func() tea.Msg { return scheduledMsg{id: id} })
	} else {
		s.pending = append(s.pending, tick(d, func(time.Time) tea.Msg {
			return scheduledMsg{id: id}
		}))
	}
	return func() { delete(s.tasks, id) }
}

// run executes the task behind msg unless it was cancelled.
func (s *teaScheduler) run(msg scheduledMsg) {
	f, ok := s.tasks[msg.id]
	if !ok {
		return
	}
	delete(s.tasks, msg.id)
	f()
}

// drain returns the commands for callbacks scheduled since the last drain.
func (s *teaScheduler) drain() []tea.Cmd {
	cmds := s.pending
	s.pending = nil
	return cmds
}
