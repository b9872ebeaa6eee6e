package board

import "github.com/abhisek/ideaboard/internal/xapi"

// Collection is the ordered set of boards, index-aligned with the pages.
type Collection struct {
	boards []*Board
}

// NewCollection wraps boards. The slice is not copied.
func NewCollection(boards []*Board) *Collection {
	return &Collection{boards: boards}
}

// Len returns the number of boards.
func (c *Collection) Len() int {
	return len(c.boards)
}

// Board returns the board at index, or nil if index is out of range.
func (c *Collection) Board(index int) *Board {
	if index < 0 || index >= len(c.boards) {
		return nil
	}
	return c.boards[index]
}

// IsCompleted reports whether the board at index is complete. Out-of-range
// indices are not.
func (c *Collection) IsCompleted(index int) bool {
	b := c.Board(index)
	if b == nil {
		return false
	}
	return b.IsCompleted()
}

// TaskDescription returns the task text of the board at index.
func (c *Collection) TaskDescription(index int) string {
	b := c.Board(index)
	if b == nil {
		return ""
	}
	return b.TaskDescription()
}

// TotalScore sums the board scores.
func (c *Collection) TotalScore() int {
	total := 0
	for _, b := range c.boards {
		total += b.Score()
	}
	return total
}

// TotalMaxScore sums the board maximum scores.
func (c *Collection) TotalMaxScore() int {
	total := 0
	for _, b := range c.boards {
		total += b.MaxScore()
	}
	return total
}

// AnswerGiven reports whether any board has an answer.
func (c *Collection) AnswerGiven() bool {
	for _, b := range c.boards {
		if b.AnswerGiven() {
			return true
		}
	}
	return false
}

// Reset resets every board.
func (c *Collection) Reset() {
	for _, b := range c.boards {
		b.Reset()
	}
}

// Resize passes a layout change down to every board.
func (c *Collection) Resize() {
	for _, b := range c.boards {
		b.Resize()
	}
}

// XAPIData collects the xAPI data of every board.
func (c *Collection) XAPIData() []xapi.Data {
	out := make([]xapi.Data, len(c.boards))
	for i, b := range c.boards {
		out[i] = b.XAPIData()
	}
	return out
}

// CurrentState collects the state of every board.
func (c *Collection) CurrentState() []State {
	out := make([]State, len(c.boards))
	for i, b := range c.boards {
		out[i] = b.CurrentState()
	}
	return out
}
