package board

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/abhisek/ideaboard/internal/xapi"
)

// Events an embedded instance can emit.
const (
	EventAdded  = "added"
	EventEdited = "edited"
	EventResize = "resize"
)

// Event is a notification from an embedded instance.
type Event struct {
	Type         string
	SubContentID string
	MachineName  string
}

// Handler receives instance events.
type Handler func(Event)

// Instance is the embedded sub-activity a board hosts. Everything beyond
// this contract is an optional capability.
type Instance interface {
	On(event string, h Handler)
	CurrentStateWhenNoAnswerGiven() State
	XAPIData() xapi.Data
}

// AnswerGiver reports whether the learner has answered.
type AnswerGiver interface {
	AnswerGiven() bool
}

// TaskResetter returns the instance to its initial state.
type TaskResetter interface {
	ResetTask()
}

// Titler provides the instance title.
type Titler interface {
	Title() string
}

// Resizer lays the instance out again.
type Resizer interface {
	Resize()
}

// Focuser moves focus to the first interactive element and reports whether
// there was one.
type Focuser interface {
	FocusFirst() bool
}

// Renderer draws the instance into a width x height cell area.
type Renderer interface {
	View(width, height int) string
}

// Metadata is the descriptive part of a content definition.
type Metadata struct {
	Title string `json:"title,omitempty"`
}

// ContentDefinition describes the sub-content a board embeds.
type ContentDefinition struct {
	Library      string          `json:"library"`
	SubContentID string          `json:"subContentId,omitempty"`
	Params       json.RawMessage `json:"params,omitempty"`
	Metadata     Metadata        `json:"metadata"`
}

// Factory constructs embedded instances.
type Factory interface {
	Create(def ContentDefinition, contentID string, prev *State) (Instance, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(def ContentDefinition, contentID string, prev *State) (Instance, error)

func (f FactoryFunc) Create(def ContentDefinition, contentID string, prev *State) (Instance, error) {
	return f(def, contentID, prev)
}

var errNoInstance = errors.New("runtime returned no instance")

// ErrInstanceCreation is fatal: a board cannot exist without its instance.
type ErrInstanceCreation struct {
	Library string
	Err     error
}

func (e *ErrInstanceCreation) Error() string {
	return fmt.Sprintf("create board instance %q: %v", e.Library, e.Err)
}

func (e *ErrInstanceCreation) Unwrap() error { return e.Err }

// capabilities gives every optional capability a neutral default so call
// sites never check for them.
type capabilities struct {
	Instance
}

func (c capabilities) AnswerGiven() bool {
	if a, ok := c.Instance.(AnswerGiver); ok {
		return a.AnswerGiven()
	}
	return false
}

func (c capabilities) ResetTask() {
	if r, ok := c.Instance.(TaskResetter); ok {
		r.ResetTask()
	}
}

// Title returns the instance title and whether the instance has one.
func (c capabilities) Title() (string, bool) {
	if t, ok := c.Instance.(Titler); ok {
		return t.Title(), true
	}
	return "", false
}

func (c capabilities) Resize() {
	if r, ok := c.Instance.(Resizer); ok {
		r.Resize()
	}
}

func (c capabilities) FocusFirst() bool {
	if f, ok := c.Instance.(Focuser); ok {
		return f.FocusFirst()
	}
	return false
}

func (c capabilities) View(width, height int) string {
	if r, ok := c.Instance.(Renderer); ok {
		return r.View(width, height)
	}
	return ""
}
