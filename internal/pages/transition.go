package pages

// Transition tracks one animated page change until it settles.
type Transition struct {
	id        int
	from      int
	target    int
	skipFocus bool
	timedOut  bool
	settled   bool
	cancel    func()
	done      chan struct{}
}

func newTransition(id, from, target int, skipFocus bool) *Transition {
	return &Transition{
		id:        id,
		from:      from,
		target:    target,
		skipFocus: skipFocus,
		done:      make(chan struct{}),
	}
}

// Done is closed once the transition has settled.
func (t *Transition) Done() <-chan struct{} {
	return t.done
}

// From returns the index that was active before the transition.
func (t *Transition) From() int {
	return t.from
}

// Target returns the index the transition moves to.
func (t *Transition) Target() int {
	return t.target
}

// Settled reports whether the transition has finished.
func (t *Transition) Settled() bool {
	return t.settled
}

// TimedOut reports whether the transition was settled by the timeout rather
// than by an animation-end signal.
func (t *Transition) TimedOut() bool {
	return t.timedOut
}

func (t *Transition) finish(timedOut bool) {
	t.settled = true
	t.timedOut = timedOut
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	close(t.done)
}
