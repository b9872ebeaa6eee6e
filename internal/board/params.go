package board

// Params configure one board.
type Params struct {
	TaskDescription              string          `json:"taskDescription"`
	BoardGroup                   Group           `json:"boardGroup"`
	RequiresCompletionToProgress bool            `json:"requiresCompletionToProgress"`
	CompletionRules              CompletionRules `json:"completionRules"`
	ScoreForCompletion           int             `json:"scoreForCompletion"`
	UsePreviousBoardContents     bool            `json:"usePreviousBoardContents"`
}

// Group wraps the embedded content definition.
type Group struct {
	IdeaBoard ContentDefinition `json:"ideaBoard"`
}

// CompletionRules are the minimum event counts before a board is complete.
type CompletionRules struct {
	NumberCardsCreated int `json:"numberCardsCreated"`
	NumberCardsEdited  int `json:"numberCardsEdited"`
}

// Quantitative reports whether any rule asks for at least one event.
func (r CompletionRules) Quantitative() bool {
	return r.NumberCardsCreated > 0 || r.NumberCardsEdited > 0
}

// RequiresCompletion reports whether a board with these params must be
// worked on before it counts as complete.
func (p Params) RequiresCompletion() bool {
	return p.RequiresCompletionToProgress && p.CompletionRules.Quantitative()
}
