package exercise

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/abhisek/ideaboard/internal/board"
	"github.com/abhisek/ideaboard/internal/pages"
)

// State is the persisted state of an exercise. It is enough to put the
// learner back on the same page with the same completion bookkeeping.
type State struct {
	CurrentPageIndex       int   `json:"currentPageIndex"`
	IsShowingSummary       bool  `json:"isShowingSummary"`
	WereAllBoardsCompleted bool  `json:"wereAllBoardsCompleted"`
	CompletedBoardIndices  []int `json:"completedBoardIndices"`

	// ClearedBoardIndices are completed boards whose content was replaced
	// by a clone since. They keep gating open but carry no score.
	ClearedBoardIndices []int `json:"clearedBoardIndices,omitempty"`

	Pages  pages.State   `json:"pages"`
	Boards []board.State `json:"boards"`
}

// MarshalState encodes st as JSON.
func MarshalState(st State) ([]byte, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("marshal exercise state: %w", err)
	}
	return data, nil
}

// MarshalStateIndent encodes st as indented JSON for display.
func MarshalStateIndent(st State) ([]byte, error) {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal exercise state: %w", err)
	}
	return data, nil
}

// UnmarshalState decodes a state written by MarshalState.
func UnmarshalState(data []byte) (*State, error) {
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("unmarshal exercise state: %w", err)
	}
	return &st, nil
}
