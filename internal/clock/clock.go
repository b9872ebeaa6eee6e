// Package clock schedules deferred work for an exercise.
//
// Every exercise component runs on a single logical thread: the host's event
// loop. A Scheduler must invoke callbacks on that same thread, which is why
// the core never takes locks.
package clock

import (
	"sort"
	"time"
)

// Scheduler runs f once after d has elapsed. The returned cancel func
// prevents f from running if it has not run yet; calling it afterwards is
// a no-op.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (cancel func())
}

// Manual is a Scheduler driven explicitly by the caller. It is used by tests
// and by headless runs where time only moves when told to.
type Manual struct {
	now    time.Duration
	nextID int
	tasks  []*task
}

type task struct {
	id        int
	due       time.Duration
	f         func()
	cancelled bool
}

var _ Scheduler = (*Manual)(nil)

// NewManual creates a Manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) AfterFunc(d time.Duration, f func()) func() {
	if d < 0 {
		d = 0
	}
	t := &task{id: m.nextID, due: m.now + d, f: f}
	m.nextID++
	m.tasks = append(m.tasks, t)
	return func() { t.cancelled = true }
}

// Now returns the elapsed manual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending returns the number of callbacks that have not run or been cancelled.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Flush runs every callback due at the current time, including callbacks
// scheduled with zero delay by callbacks run during the flush.
func (m *Manual) Flush() {
	m.runUntil(m.now)
}

// Advance moves time forward by d and runs everything that became due, in
// due order.
func (m *Manual) Advance(d time.Duration) {
	m.runUntil(m.now + d)
}

func (m *Manual) runUntil(limit time.Duration) {
	for {
		t := m.popDue(limit)
		if t == nil {
			break
		}
		if t.due > m.now {
			m.now = t.due
		}
		t.f()
	}
	m.now = limit
}

// popDue removes and returns the earliest due task, ties broken by
// scheduling order.
func (m *Manual) popDue(limit time.Duration) *task {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.tasks = live
	if len(m.tasks) == 0 {
		return nil
	}

	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].due != m.tasks[j].due {
			return m.tasks[i].due < m.tasks[j].due
		}
		return m.tasks[i].id < m.tasks[j].id
	})

	t := m.tasks[0]
	if t.due > limit {
		return nil
	}
	m.tasks = m.tasks[1:]
	return t
}
