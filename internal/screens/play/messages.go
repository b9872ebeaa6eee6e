package play

import (
	"github.com/abhisek/ideaboard/internal/content"
)

// ContentChangedMsg carries a reloaded content file. The exercise is
// rebuilt from it, keeping the learner's progress.
type ContentChangedMsg struct {
	Content *content.Content
	Err     error
}

// slideEndMsg signals that the slide animation of transition gen is over.
type slideEndMsg struct {
	gen int
}
