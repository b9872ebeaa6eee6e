package ideaboard

import (
	"strings"
	"time"

	"github.com/abhisek/ideaboard/internal/board"
	"github.com/abhisek/ideaboard/internal/xapi"
)

// Grid layout for new cards, in percent of the canvas.
const (
	gridColumns = 4
	cardWidth   = 22
	cardHeight  = 20
	gridStep    = 25
)

// Board is one idea board instance.
type Board struct {
	contentID    string
	subContentID string
	title        string
	actor        xapi.Actor
	languageTag  string
	newID        func() string
	now          func() time.Time

	initial  []board.Element
	elements []board.Element
	handlers map[string][]board.Handler

	selected int
	focused  bool
	answered bool
}

var (
	_ board.Instance     = (*Board)(nil)
	_ board.AnswerGiver  = (*Board)(nil)
	_ board.TaskResetter = (*Board)(nil)
	_ board.Focuser      = (*Board)(nil)
	_ board.Renderer     = (*Board)(nil)
)

func (b *Board) newElement(text string, slot int) board.Element {
	return board.Element{
		ID: b.newID(),
		ContentType: board.ElementContent{
			Library:      CardLibrary,
			SubContentID: b.newID(),
			Params:       board.ElementParams{Text: text},
		},
		Telemetry: board.Telemetry{
			X:      float64(slot%gridColumns) * gridStep,
			Y:      float64(slot/gridColumns%gridColumns) * gridStep,
			Width:  cardWidth,
			Height: cardHeight,
		},
	}
}

// On registers h for event.
func (b *Board) On(event string, h board.Handler) {
	b.handlers[event] = append(b.handlers[event], h)
}

func (b *Board) emit(event string, e board.Element) {
	for _, h := range b.handlers[event] {
		h(board.Event{
			Type:         event,
			SubContentID: e.ContentType.SubContentID,
			MachineName:  LibraryName(e.ContentType.Library),
		})
	}
}

// Cards returns a copy of the cards on the board.
func (b *Board) Cards() []board.Element {
	out := make([]board.Element, len(b.elements))
	copy(out, b.elements)
	return out
}

// Len returns the number of cards.
func (b *Board) Len() int {
	return len(b.elements)
}

func (b *Board) indexOf(id string) int {
	for i, e := range b.elements {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// AddCard places a new card, selects it and returns its id.
func (b *Board) AddCard(text string) string {
	e := b.newElement(text, len(b.elements))
	b.elements = append(b.elements, e)
	b.selected = len(b.elements) - 1
	b.answered = true
	b.emit(board.EventAdded, e)
	b.emit(board.EventResize, e)
	return e.ID
}

// EditCard changes a card's text. It reports false for unknown ids. An
// unchanged text is not an edit.
func (b *Board) EditCard(id, text string) bool {
	i := b.indexOf(id)
	if i < 0 {
		return false
	}
	if b.elements[i].ContentType.Params.Text == text {
		return true
	}
	b.elements[i].ContentType.Params.Text = text
	b.answered = true
	b.emit(board.EventEdited, b.elements[i])
	return true
}

// RemoveCard deletes a card. It reports false for unknown ids.
func (b *Board) RemoveCard(id string) bool {
	i := b.indexOf(id)
	if i < 0 {
		return false
	}
	removed := b.elements[i]
	b.elements = append(b.elements[:i], b.elements[i+1:]...)
	if b.selected >= len(b.elements) && b.selected > 0 {
		b.selected = len(b.elements) - 1
	}
	b.answered = true
	b.emit(board.EventResize, removed)
	return true
}

// MoveCard shifts a card by dx, dy percent, keeping it on the canvas.
func (b *Board) MoveCard(id string, dx, dy float64) bool {
	i := b.indexOf(id)
	if i < 0 {
		return false
	}
	t := &b.elements[i].Telemetry
	t.X = clamp(t.X+dx, 0, 100-t.Width)
	t.Y = clamp(t.Y+dy, 0, 100-t.Height)
	return true
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Select makes the card at index current. Out-of-range indices are ignored.
func (b *Board) Select(index int) {
	if index < 0 || index >= len(b.elements) {
		return
	}
	b.selected = index
}

// SelectNext moves the selection forward, wrapping around.
func (b *Board) SelectNext() {
	if len(b.elements) == 0 {
		return
	}
	b.selected = (b.selected + 1) % len(b.elements)
}

// SelectPrev moves the selection back, wrapping around.
func (b *Board) SelectPrev() {
	if len(b.elements) == 0 {
		return
	}
	b.selected = (b.selected - 1 + len(b.elements)) % len(b.elements)
}

// Selected returns the selected card.
func (b *Board) Selected() (board.Element, bool) {
	if b.selected < 0 || b.selected >= len(b.elements) {
		return board.Element{}, false
	}
	return b.elements[b.selected], true
}

// FocusFirst focuses the first card.
func (b *Board) FocusFirst() bool {
	if len(b.elements) == 0 {
		b.focused = false
		return false
	}
	b.selected = 0
	b.focused = true
	return true
}

// Focused reports whether a card holds focus.
func (b *Board) Focused() bool {
	return b.focused
}

// Blur drops card focus.
func (b *Board) Blur() {
	b.focused = false
}

// Title returns the content title.
func (b *Board) Title() string {
	return b.title
}

// AnswerGiven reports whether the learner changed the board.
func (b *Board) AnswerGiven() bool {
	return b.answered
}

// ResetTask restores the cards from the parameters.
func (b *Board) ResetTask() {
	b.elements = board.State{Main: board.Canvas{Elements: b.initial}}.Copy().Main.Elements
	b.selected = 0
	b.answered = false
}

// CurrentStateWhenNoAnswerGiven returns the cards.
func (b *Board) CurrentStateWhenNoAnswerGiven() board.State {
	return board.State{Main: board.Canvas{Elements: b.Cards()}}
}

// XAPIData reports the cards as an answered statement.
func (b *Board) XAPIData() xapi.Data {
	obj := xapi.Object{
		ID:         xapi.ActivityID(b.contentID, b.subContentID),
		ObjectType: "Activity",
		Definition: xapi.NewDefinition(b.languageTag, b.title, Library),
	}
	st := xapi.New(xapi.VerbAnswered, b.actor, obj, b.now())

	texts := make([]string, len(b.elements))
	for i, e := range b.elements {
		texts[i] = e.ContentType.Params.Text
	}
	st.Result = &xapi.Result{
		Completion: b.answered,
		Response:   strings.Join(texts, "[,]"),
	}
	return xapi.Data{Statement: st}
}
