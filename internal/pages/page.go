package pages

// Position is where a page sits relative to the active page.
type Position int

const (
	Past    Position = -1
	Present Position = 0
	Future  Position = 1
)

// String returns the name used for styling.
func (p Position) String() string {
	switch p {
	case Past:
		return "past"
	case Present:
		return "present"
	default:
		return "future"
	}
}

// PositionOf maps an index offset from the active page to a Position.
// Only the sign matters.
func PositionOf(relative int) Position {
	switch {
	case relative < 0:
		return Past
	case relative == 0:
		return Present
	default:
		return Future
	}
}

// PageState is the persisted part of a page.
type PageState struct {
	HasBeenVisible bool `json:"hasBeenVisible"`
}

// Page is one navigable slot in a Sequence.
type Page struct {
	position       Position
	visible        bool
	hasBeenVisible bool
	onEnd          []func()
}

// NewPage creates a page in the future position so the first navigation
// slides it in from the right.
func NewPage(prev PageState) *Page {
	return &Page{
		position:       Future,
		visible:        true,
		hasBeenVisible: prev.HasBeenVisible,
	}
}

// SetPosition updates the position from an offset relative to the active
// page. Becoming present marks the page as seen for good.
func (p *Page) SetPosition(relative int) {
	p.position = PositionOf(relative)
	if p.position == Present {
		p.hasBeenVisible = true
	}
}

// Position returns the current position.
func (p *Page) Position() Position {
	return p.position
}

// UpdateVisibility shows or hides the page's content.
func (p *Page) UpdateVisibility(visible bool) {
	p.visible = visible
}

// Visible reports whether the page's content is rendered.
func (p *Page) Visible() bool {
	return p.visible
}

// HasBeenVisible reports whether the page was ever the present page.
func (p *Page) HasBeenVisible() bool {
	return p.hasBeenVisible
}

// RegisterTransitionEnd queues fn to run once when the page's next
// transition ends.
func (p *Page) RegisterTransitionEnd(fn func()) {
	if fn == nil {
		return
	}
	p.onEnd = append(p.onEnd, fn)
}

// EndTransition delivers the transition-end signal. Registered callbacks run
// once and are then dropped.
func (p *Page) EndTransition() {
	callbacks := p.onEnd
	p.onEnd = nil
	for _, fn := range callbacks {
		fn()
	}
}

// CurrentState returns the persisted state.
func (p *Page) CurrentState() PageState {
	return PageState{HasBeenVisible: p.hasBeenVisible}
}

// Reset forgets that the page has been visible.
func (p *Page) Reset() {
	p.hasBeenVisible = false
}
