// Package xapi shapes the xAPI statements an exercise reports.
package xapi

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Verb short names.
const (
	VerbAnswered   = "answered"
	VerbCompleted  = "completed"
	VerbProgressed = "progressed"
)

const (
	verbBase = "http://adlnet.gov/expapi/verbs/"

	// InteractionActivity is the activity type of every exercise object.
	InteractionActivity = "http://adlnet.gov/expapi/activities/cmi.interaction"

	// EndingPointExtension carries the page index of a progressed statement.
	EndingPointExtension = "http://id.tincanapi.com/extension/ending-point"

	// FallbackLanguage is always filled in next to the content language
	// because reporting tools expect it.
	FallbackLanguage = "en-US"

	// ActivityBase prefixes content identifiers to form activity IRIs.
	ActivityBase = "urn:ideaboard:content:"
)

// LanguageMap maps a language tag to text.
type LanguageMap map[string]string

// Verb identifies what happened.
type Verb struct {
	ID      string      `json:"id"`
	Display LanguageMap `json:"display"`
}

// NewVerb returns the ADL verb for a short name such as "completed".
func NewVerb(short string) Verb {
	return Verb{
		ID:      verbBase + short,
		Display: LanguageMap{FallbackLanguage: short},
	}
}

// Short returns the short name of the verb.
func (v Verb) Short() string {
	return strings.TrimPrefix(v.ID, verbBase)
}

// Account identifies a learner on a system.
type Account struct {
	HomePage string `json:"homePage"`
	Name     string `json:"name"`
}

// Actor is the learner.
type Actor struct {
	ObjectType string  `json:"objectType"`
	Name       string  `json:"name,omitempty"`
	Account    Account `json:"account"`
}

// NewActor returns an agent identified by user id.
func NewActor(userID string) Actor {
	return Actor{
		ObjectType: "Agent",
		Name:       userID,
		Account:    Account{HomePage: "urn:ideaboard", Name: userID},
	}
}

// Definition describes the activity.
type Definition struct {
	Name            LanguageMap    `json:"name,omitempty"`
	Description     LanguageMap    `json:"description,omitempty"`
	Type            string         `json:"type,omitempty"`
	InteractionType string         `json:"interactionType,omitempty"`
	Extensions      map[string]any `json:"extensions,omitempty"`
}

// NewDefinition builds an interaction definition with name and description
// under languageTag and under the en-US fallback.
func NewDefinition(languageTag, name, description string) Definition {
	d := Definition{
		Name:            LanguageMap{},
		Description:     LanguageMap{},
		Type:            InteractionActivity,
		InteractionType: "other",
	}
	for _, tag := range []string{languageTag, FallbackLanguage} {
		if tag == "" {
			continue
		}
		d.Name[tag] = name
		d.Description[tag] = description
	}
	return d
}

// Object is the activity a statement is about.
type Object struct {
	ID         string     `json:"id"`
	ObjectType string     `json:"objectType"`
	Definition Definition `json:"definition"`
}

// ActivityID returns the activity IRI for content, optionally narrowed to
// one of its sub-contents.
func ActivityID(contentID, subContentID string) string {
	id := ActivityBase + contentID
	if subContentID != "" {
		id += "?subContentId=" + subContentID
	}
	return id
}

// Score is a scored result.
type Score struct {
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Raw    int     `json:"raw"`
	Scaled float64 `json:"scaled"`
}

// Result is the outcome attached to a statement.
type Result struct {
	Score      *Score `json:"score,omitempty"`
	Completion bool   `json:"completion"`
	Success    *bool  `json:"success,omitempty"`
	Response   string `json:"response,omitempty"`
}

// ScoredResult returns a completed result. Scaled is rounded to four
// decimals and zero when max is zero.
func ScoredResult(score, max int, success bool) *Result {
	scaled := 0.0
	if max > 0 {
		scaled = math.Round(float64(score)/float64(max)*10000) / 10000
	}
	return &Result{
		Score:      &Score{Min: 0, Max: max, Raw: score, Scaled: scaled},
		Completion: true,
		Success:    &success,
	}
}

// ContextActivities links a statement to related activities.
type ContextActivities struct {
	Parent []Object `json:"parent,omitempty"`
}

// Context carries the statement context.
type Context struct {
	ContextActivities *ContextActivities `json:"contextActivities,omitempty"`
}

// Statement is one xAPI statement.
type Statement struct {
	ID        string    `json:"id"`
	Actor     Actor     `json:"actor"`
	Verb      Verb      `json:"verb"`
	Object    Object    `json:"object"`
	Result    *Result   `json:"result,omitempty"`
	Context   *Context  `json:"context,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// New creates a statement with a fresh id.
func New(verb string, actor Actor, object Object, now time.Time) Statement {
	return Statement{
		ID:        uuid.NewString(),
		Actor:     actor,
		Verb:      NewVerb(verb),
		Object:    object,
		Timestamp: now.UTC(),
	}
}

// SetExtension sets an extension on the statement's object definition.
func (s *Statement) SetExtension(key string, value any) {
	if s.Object.Definition.Extensions == nil {
		s.Object.Definition.Extensions = map[string]any{}
	}
	s.Object.Definition.Extensions[key] = value
}

// SetParent records parent as the statement's parent activity.
func (s *Statement) SetParent(parent Object) {
	s.Context = &Context{
		ContextActivities: &ContextActivities{Parent: []Object{parent}},
	}
}

// Data is a statement together with the statements of child contents, the
// shape reporting tools collect from compound contents.
type Data struct {
	Statement Statement `json:"statement"`
	Children  []Data    `json:"children,omitempty"`
}

// FormatLanguageCode normalises a "language-country" tag: the language part
// lowercase and the country part uppercase. No other validation is done.
func FormatLanguageCode(code string) string {
	segments := strings.Split(code, "-")
	segments[0] = strings.ToLower(segments[0])
	if len(segments) > 1 {
		segments[1] = strings.ToUpper(segments[1])
	}
	return strings.Join(segments, "-")
}
