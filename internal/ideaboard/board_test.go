package ideaboard

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ideaboard/internal/board"
	"github.com/abhisek/ideaboard/internal/xapi"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newRuntime() *Runtime {
	return &Runtime{
		NewID:       sequentialIDs(),
		Actor:       xapi.NewActor("alice"),
		LanguageTag: "en",
		Now:         func() time.Time { return time.Unix(1700000000, 0) },
	}
}

func definition(params string) board.ContentDefinition {
	return board.ContentDefinition{
		Library:  "H5P.IdeaBoard 1.0",
		Params:   []byte(params),
		Metadata: board.Metadata{Title: "Brainstorm"},
	}
}

func create(t *testing.T, params string, prev *board.State) *Board {
	t.Helper()
	inst, err := newRuntime().Create(definition(params), "42", prev)
	require.NoError(t, err)
	return inst.(*Board)
}

func TestCreate_UnsupportedLibrary(t *testing.T) {
	def := definition(`{}`)
	def.Library = "H5P.Column 1.16"
	_, err := newRuntime().Create(def, "42", nil)
	assert.ErrorContains(t, err, "unsupported library")
}

func TestCreate_BadParams(t *testing.T) {
	_, err := newRuntime().Create(definition(`{"cards": 3}`), "42", nil)
	assert.Error(t, err)
}

func TestCreate_InitialCards(t *testing.T) {
	b := create(t, `{"cards":[{"text":"one","backgroundColor":"#fff"},{"text":"two"}]}`, nil)

	cards := b.Cards()
	require.Len(t, cards, 2)
	assert.Equal(t, "one", cards[0].ContentType.Params.Text)
	assert.Equal(t, "#fff", cards[0].BackgroundColor)
	assert.Equal(t, CardLibrary, cards[1].ContentType.Library)
	assert.NotEqual(t, cards[0].ID, cards[1].ID)
	assert.Equal(t, "Brainstorm", b.Title())
	assert.False(t, b.AnswerGiven())
}

func TestCreate_PreviousStateWins(t *testing.T) {
	prev := board.State{Main: board.Canvas{Elements: []board.Element{{ID: "kept"}}}}
	b := create(t, `{"cards":[{"text":"one"}]}`, &prev)

	cards := b.Cards()
	require.Len(t, cards, 1)
	assert.Equal(t, "kept", cards[0].ID)
}

func TestAddAndEditEmitEvents(t *testing.T) {
	b := create(t, `{}`, nil)
	var got []board.Event
	b.On(board.EventAdded, func(e board.Event) { got = append(got, e) })
	b.On(board.EventEdited, func(e board.Event) { got = append(got, e) })

	id := b.AddCard("first")
	require.True(t, b.EditCard(id, "first"), "same text")
	require.True(t, b.EditCard(id, "changed"))
	assert.False(t, b.EditCard("missing", "x"))

	require.Len(t, got, 2)
	assert.Equal(t, board.EventAdded, got[0].Type)
	assert.Equal(t, board.EventEdited, got[1].Type)
	assert.Equal(t, "H5P.AdvancedText", got[0].MachineName)
	assert.True(t, b.AnswerGiven())
}

func TestRemoveAndSelect(t *testing.T) {
	b := create(t, `{"cards":[{"text":"a"},{"text":"b"},{"text":"c"}]}`, nil)

	b.Select(2)
	sel, ok := b.Selected()
	require.True(t, ok)
	assert.Equal(t, "c", sel.ContentType.Params.Text)

	require.True(t, b.RemoveCard(sel.ID))
	sel, _ = b.Selected()
	assert.Equal(t, "b", sel.ContentType.Params.Text, "selection clamps to last card")

	b.SelectNext()
	sel, _ = b.Selected()
	assert.Equal(t, "a", sel.ContentType.Params.Text)

	b.SelectPrev()
	sel, _ = b.Selected()
	assert.Equal(t, "b", sel.ContentType.Params.Text)

	assert.False(t, b.RemoveCard("missing"))
}

func TestMoveCardStaysOnCanvas(t *testing.T) {
	b := create(t, `{"cards":[{"text":"a"}]}`, nil)
	id := b.Cards()[0].ID

	b.MoveCard(id, 500, -30)
	tm := b.Cards()[0].Telemetry
	assert.Equal(t, 100-tm.Width, tm.X)
	assert.Equal(t, 0.0, tm.Y)
}

func TestFocusFirst(t *testing.T) {
	empty := create(t, `{}`, nil)
	assert.False(t, empty.FocusFirst())

	b := create(t, `{"cards":[{"text":"a"},{"text":"b"}]}`, nil)
	b.Select(1)
	assert.True(t, b.FocusFirst())
	assert.True(t, b.Focused())
	sel, _ := b.Selected()
	assert.Equal(t, "a", sel.ContentType.Params.Text)
}

func TestResetTask(t *testing.T) {
	b := create(t, `{"cards":[{"text":"a"}]}`, nil)
	b.AddCard("extra")
	b.EditCard(b.Cards()[0].ID, "changed")

	b.ResetTask()

	cards := b.Cards()
	require.Len(t, cards, 1)
	assert.Equal(t, "a", cards[0].ContentType.Params.Text)
	assert.False(t, b.AnswerGiven())
}

func TestXAPIData(t *testing.T) {
	b := create(t, `{"cards":[{"text":"a"},{"text":"b"}]}`, nil)
	data := b.XAPIData()

	st := data.Statement
	assert.Equal(t, xapi.VerbAnswered, st.Verb.Short())
	assert.Equal(t, "urn:ideaboard:content:42", st.Object.ID)
	assert.Equal(t, "a[,]b", st.Result.Response)
	assert.NoError(t, xapi.Validate(st))
}

func TestView(t *testing.T) {
	empty := create(t, `{}`, nil)
	assert.Contains(t, empty.View(80, 20), "No cards yet")

	b := create(t, `{"cards":[{"text":"alpha"},{"text":"beta"}]}`, nil)
	out := b.View(80, 20)
	assert.True(t, strings.Contains(out, "alpha") && strings.Contains(out, "beta"))
}

func TestLibraryName(t *testing.T) {
	tests := map[string]string{
		"H5P.IdeaBoard 1.0": "H5P.IdeaBoard",
		"H5P.IdeaBoard":     "H5P.IdeaBoard",
		" H5P.Foo 2.3 ":     "H5P.Foo",
	}
	for in, want := range tests {
		if got := LibraryName(in); got != want {
			t.Errorf("LibraryName(%q) = %q, want %q", in, got, want)
		}
	}
}
