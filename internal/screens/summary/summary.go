package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ideaboard/internal/router"
	"github.com/abhisek/ideaboard/internal/screen"
	"github.com/abhisek/ideaboard/internal/ui/layout"
	"github.com/abhisek/ideaboard/internal/ui/theme"
)

// BoardResult is one row of the board list.
type BoardResult struct {
	Title     string
	Completed bool
	Score     int
	MaxScore  int
}

// Data is what the summary screen shows.
type Data struct {
	// Header names the screen, "Summary" when empty.
	Header   string
	Title    string
	Text     string
	Score    int
	MaxScore int
	Boards   []BoardResult
}

// SummaryScreen is shown after the last board of an exercise.
type SummaryScreen struct {
	data Data
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.ScoreProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(data Data) *SummaryScreen {
	return &SummaryScreen{data: data}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	if s.data.Header != "" {
		return s.data.Header
	}
	return "Summary"
}

func (s *SummaryScreen) Score() (int, int) {
	return s.data.Score, s.data.MaxScore
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←", Description: "Back to boards"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "left", "h", "esc", "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder
	center := func(str string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, str))
		b.WriteString("\n")
	}

	title := s.data.Title
	if title == "" {
		title = s.Title()
	}
	b.WriteString(theme.Title.Width(width).Render(title))
	b.WriteString("\n\n")

	if s.data.Text != "" {
		center(lipgloss.NewStyle().
			Foreground(theme.Text).
			Width(min(width-8, 70)).
			Render(s.data.Text))
		b.WriteString("\n")
	}

	if s.data.MaxScore > 0 {
		scoreColor := theme.Accent
		if s.data.Score == s.data.MaxScore {
			scoreColor = theme.Success
		}
		center(lipgloss.NewStyle().
			Foreground(scoreColor).
			Bold(true).
			Render(fmt.Sprintf("Score: %d / %d", s.data.Score, s.data.MaxScore)))
		b.WriteString("\n")
	}

	if len(s.data.Boards) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", max(0, min(width-8, 60))))
		center(theme.Subtitle.Render("Boards"))
		center(divider)
		b.WriteString("\n")

		for i, br := range s.data.Boards {
			mark := theme.Pending.Render("○")
			if br.Completed {
				mark = theme.Done.Render("●")
			}
			line := fmt.Sprintf("%s  %d. %s", mark, i+1, br.Title)
			if br.MaxScore > 0 {
				line += theme.Hint.Render(fmt.Sprintf("   %d/%d", br.Score, br.MaxScore))
			}
			center(line)
		}
	}

	return b.String()
}
