package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ideaboard/internal/xapi"
)

type fakeInstance struct {
	handlers map[string][]Handler
	state    State
	resets   int
	resizes  int
}

func newFakeInstance(prev *State) *fakeInstance {
	f := &fakeInstance{handlers: map[string][]Handler{}}
	if prev != nil {
		f.state = prev.Copy()
	}
	return f
}

func (f *fakeInstance) On(event string, h Handler) {
	f.handlers[event] = append(f.handlers[event], h)
}

func (f *fakeInstance) emit(event string) {
	for _, h := range f.handlers[event] {
		h(Event{Type: event, SubContentID: "sc", MachineName: "H5P.Card"})
	}
}

func (f *fakeInstance) CurrentStateWhenNoAnswerGiven() State { return f.state.Copy() }
func (f *fakeInstance) XAPIData() xapi.Data                  { return xapi.Data{} }

// richInstance adds every optional capability.
type richInstance struct {
	*fakeInstance
	title string
}

func (r *richInstance) Title() string     { return r.title }
func (r *richInstance) AnswerGiven() bool { return len(r.state.Main.Elements) > 0 }
func (r *richInstance) ResetTask()        { r.resets++ }
func (r *richInstance) Resize()           { r.resizes++ }
func (r *richInstance) FocusFirst() bool  { return true }

type recordingFactory struct {
	created []*fakeInstance
	rich    bool
	err     error
}

func (f *recordingFactory) Create(def ContentDefinition, contentID string, prev *State) (Instance, error) {
	if f.err != nil {
		return nil, f.err
	}
	inst := newFakeInstance(prev)
	f.created = append(f.created, inst)
	if f.rich {
		return &richInstance{fakeInstance: inst, title: "Rich"}, nil
	}
	return inst, nil
}

func (f *recordingFactory) last() *fakeInstance {
	return f.created[len(f.created)-1]
}

func ruledParams(created, edited int) Params {
	return Params{
		BoardGroup:                   Group{IdeaBoard: ContentDefinition{Library: "H5P.IdeaBoard 1.0"}},
		RequiresCompletionToProgress: true,
		CompletionRules:              CompletionRules{NumberCardsCreated: created, NumberCardsEdited: edited},
		ScoreForCompletion:           1,
	}
}

func newTestBoard(t *testing.T, p Params) (*Board, *recordingFactory, *int) {
	t.Helper()
	f := &recordingFactory{}
	calls := 0
	b, err := New(Options{
		Params:      p,
		ContentID:   "c1",
		Factory:     f,
		NoTitle:     "Untitled",
		OnCompleted: func() { calls++ },
	})
	require.NoError(t, err)
	return b, f, &calls
}

func TestNew_InstanceFailureIsFatal(t *testing.T) {
	boom := errors.New("boom")
	_, err := New(Options{Params: ruledParams(1, 1), Factory: &recordingFactory{err: boom}})

	var creation *ErrInstanceCreation
	require.ErrorAs(t, err, &creation)
	assert.Equal(t, "H5P.IdeaBoard 1.0", creation.Library)
	assert.ErrorIs(t, err, boom)
}

func TestNew_NilInstanceIsFatal(t *testing.T) {
	f := FactoryFunc(func(ContentDefinition, string, *State) (Instance, error) { return nil, nil })
	_, err := New(Options{Params: ruledParams(1, 1), Factory: f})

	var creation *ErrInstanceCreation
	assert.ErrorAs(t, err, &creation)
}

func TestRequiresCompletion(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   bool
	}{
		{"flag and rules", ruledParams(1, 0), true},
		{"flag without rules", ruledParams(0, 0), false},
		{"rules without flag", Params{CompletionRules: CompletionRules{NumberCardsCreated: 2}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.RequiresCompletion(); got != tt.want {
				t.Errorf("RequiresCompletion() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompletion_NeedsBothThresholds(t *testing.T) {
	b, f, calls := newTestBoard(t, ruledParams(1, 1))
	inst := f.last()

	assert.False(t, b.IsCompleted())

	inst.emit(EventAdded)
	assert.False(t, b.IsCompleted())
	assert.Equal(t, 0, b.Score())
	assert.Equal(t, 0, *calls)

	inst.emit(EventEdited)
	assert.True(t, b.IsCompleted())
	assert.Equal(t, 1, b.Score())
	assert.Equal(t, 1, *calls)

	// At-least-once: later events fire again with the same score.
	inst.emit(EventEdited)
	assert.Equal(t, 2, *calls)
	assert.Equal(t, 1, b.Score())
}

func TestCompletion_NotRequiredCompletesOnFirstView(t *testing.T) {
	p := ruledParams(0, 0)
	p.ScoreForCompletion = 3
	b, f, calls := newTestBoard(t, p)

	f.last().emit(EventAdded)
	assert.Equal(t, 0, *calls, "events are not tracked without rules")
	assert.True(t, b.IsCompleted())

	b.NotifyVisible()
	b.NotifyVisible()
	assert.Equal(t, 1, *calls)
	assert.Equal(t, 3, b.Score())
}

func TestRebuild_StartsCompletionOver(t *testing.T) {
	b, f, calls := newTestBoard(t, ruledParams(1, 0))
	old := f.last()
	old.emit(EventAdded)
	require.True(t, b.IsCompleted())

	seed := State{Main: Canvas{Elements: []Element{{ID: "x"}}}}
	require.NoError(t, b.Rebuild(&seed))

	assert.Len(t, f.created, 2)
	assert.False(t, b.IsCompleted())
	assert.Equal(t, 0, b.Score())
	assert.Equal(t, seed, b.CurrentState())

	// Events from the discarded instance are ignored.
	old.emit(EventAdded)
	assert.False(t, b.IsCompleted())
	assert.Equal(t, 1, *calls)

	f.last().emit(EventAdded)
	assert.True(t, b.IsCompleted())
}

func TestReset(t *testing.T) {
	f := &recordingFactory{rich: true}
	b, err := New(Options{Params: ruledParams(1, 0), Factory: f})
	require.NoError(t, err)

	f.last().emit(EventAdded)
	require.Equal(t, 1, b.Score())

	b.Reset()
	assert.Equal(t, 0, b.Score())
	assert.False(t, b.IsCompleted())
	assert.Equal(t, 1, f.last().resets)
}

func TestRestoreCompleted(t *testing.T) {
	b, _, _ := newTestBoard(t, ruledParams(2, 2))
	b.RestoreCompleted()

	assert.True(t, b.IsCompleted())
	assert.Equal(t, 1, b.Score())

	b.Reset()
	assert.False(t, b.IsCompleted())
}

func TestTitleFallbacks(t *testing.T) {
	p := ruledParams(0, 0)
	b, _, _ := newTestBoard(t, p)
	assert.Equal(t, "Untitled", b.Title())

	p.BoardGroup.IdeaBoard.Metadata.Title = "Brainstorm"
	b, _, _ = newTestBoard(t, p)
	assert.Equal(t, "Brainstorm", b.Title())

	rich, err := New(Options{Params: p, Factory: &recordingFactory{rich: true}})
	require.NoError(t, err)
	assert.Equal(t, "Rich", rich.Title())
}

func TestOptionalCapabilitiesDefault(t *testing.T) {
	b, _, _ := newTestBoard(t, ruledParams(0, 0))

	assert.False(t, b.AnswerGiven())
	assert.False(t, b.FocusFirstChild())
	assert.Empty(t, b.View(10, 10))
	b.Resize()
	b.Reset()
}

func TestResizeDirections(t *testing.T) {
	f := &recordingFactory{rich: true}
	up := 0
	b, err := New(Options{Params: ruledParams(0, 0), Factory: f, OnResize: func() { up++ }})
	require.NoError(t, err)

	f.last().emit(EventResize)
	assert.Equal(t, 1, up)
	assert.Equal(t, 0, f.last().resizes, "upward resize does not bounce back down")

	b.Resize()
	assert.Equal(t, 1, f.last().resizes)
	assert.Equal(t, 1, up)
}

func TestState_WithFreshIDs(t *testing.T) {
	src := State{Main: Canvas{Elements: []Element{
		{ID: "a", ContentType: ElementContent{SubContentID: "sa", Params: ElementParams{Text: "one"}}},
		{ID: "b", ContentType: ElementContent{SubContentID: "sb", Params: ElementParams{Text: "two"}}},
	}}}

	n := 0
	cloned := src.WithFreshIDs(func() string {
		n++
		return string(rune('0' + n))
	})

	require.Len(t, cloned.Main.Elements, 2)
	for i, e := range cloned.Main.Elements {
		assert.NotEqual(t, src.Main.Elements[i].ID, e.ID)
		assert.NotEqual(t, src.Main.Elements[i].ContentType.SubContentID, e.ContentType.SubContentID)
		assert.Equal(t, src.Main.Elements[i].ContentType.Params.Text, e.ContentType.Params.Text)
	}
	assert.Equal(t, "a", src.Main.Elements[0].ID, "source is untouched")
}
