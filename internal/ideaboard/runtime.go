// Package ideaboard is the in-process idea board: a canvas of text cards
// that learners add, edit, move and remove. It implements the board
// instance contract.
package ideaboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	json "github.com/goccy/go-json"

	"github.com/abhisek/ideaboard/internal/board"
	"github.com/abhisek/ideaboard/internal/xapi"
)

// Library is the machine name the runtime creates instances for.
const Library = "H5P.IdeaBoard"

// CardLibrary is the sub-content library of every card.
const CardLibrary = "H5P.AdvancedText 1.1"

// Params are the content parameters of an idea board.
type Params struct {
	Cards []CardParams `json:"cards"`
}

// CardParams describe a card the board starts with.
type CardParams struct {
	Text            string           `json:"text"`
	BackgroundColor string           `json:"backgroundColor,omitempty"`
	Telemetry       *board.Telemetry `json:"telemetry,omitempty"`
}

// Runtime creates idea boards.
type Runtime struct {
	// NewID generates element and sub-content ids. Defaults to UUIDs.
	NewID func() string

	// Actor and LanguageTag shape the xAPI data of created boards.
	Actor       xapi.Actor
	LanguageTag string

	// Now defaults to time.Now.
	Now func() time.Time
}

var _ board.Factory = (*Runtime)(nil)

// LibraryName strips the version from a "Machine.Name major.minor" string.
func LibraryName(library string) string {
	name, _, _ := strings.Cut(strings.TrimSpace(library), " ")
	return name
}

// Create builds an idea board from def. prev, when given, replaces the
// cards from the parameters.
func (r *Runtime) Create(def board.ContentDefinition, contentID string, prev *board.State) (board.Instance, error) {
	if name := LibraryName(def.Library); name != Library {
		return nil, fmt.Errorf("unsupported library %q", def.Library)
	}

	var params Params
	if len(def.Params) > 0 {
		if err := json.Unmarshal(def.Params, &params); err != nil {
			return nil, fmt.Errorf("parse %s params: %w", Library, err)
		}
	}

	newID := r.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	now := r.Now
	if now == nil {
		now = time.Now
	}

	b := &Board{
		contentID:    contentID,
		subContentID: def.SubContentID,
		title:        def.Metadata.Title,
		actor:        r.Actor,
		languageTag:  r.LanguageTag,
		newID:        newID,
		now:          now,
		handlers:     map[string][]board.Handler{},
	}

	for i, c := range params.Cards {
		e := b.newElement(c.Text, i)
		e.BackgroundColor = c.BackgroundColor
		if c.Telemetry != nil {
			e.Telemetry = *c.Telemetry
		}
		b.initial = append(b.initial, e)
	}

	if prev != nil {
		b.elements = prev.Copy().Main.Elements
	} else {
		b.elements = board.State{Main: board.Canvas{Elements: b.initial}}.Copy().Main.Elements
	}

	return b, nil
}
