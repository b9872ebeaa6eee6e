package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/ideaboard/internal/board"
	"github.com/abhisek/ideaboard/internal/content"
)

var validateCmd = &cobra.Command{
	Use:   "validate <content-file>...",
	Short: "Check content files and summarise their boards",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			c, err := content.Load(path)
			if err != nil {
				failed++
				fmt.Printf("%s %s\n    %v\n", failMark(), path, err)
				continue
			}
			fmt.Printf("%s %s\n", okMark(), path)
			printContent(c)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d content files invalid", failed, len(args))
		}
		return nil
	},
}

func printContent(c *content.Content) {
	fmt.Printf("    %s  (%s, id %s)\n", color.New(color.Bold).Sprint(c.Title), c.Library, c.ID)

	maxScore := 0
	for i, b := range c.Params.Boards {
		title := b.BoardGroup.IdeaBoard.Metadata.Title
		if title == "" {
			title = color.New(color.FgYellow).Sprint("(untitled)")
		}
		fmt.Printf("    %2d. %-30s %s\n", i+1, title, describeRules(b))
		if b.ScoreForCompletion > 0 {
			maxScore += b.ScoreForCompletion
		}
	}

	if sum := c.Params.Summary(); sum != nil {
		fmt.Printf("    summary: %s\n", sum.Title)
	}
	fmt.Printf("    max score: %d\n", maxScore)
}

func describeRules(b board.Params) string {
	var parts []string
	if b.RequiresCompletionToProgress {
		parts = append(parts, color.New(color.FgCyan).Sprint("required"))
	}
	if n := b.CompletionRules.NumberCardsCreated; n > 0 {
		parts = append(parts, fmt.Sprintf("create %d", n))
	}
	if n := b.CompletionRules.NumberCardsEdited; n > 0 {
		parts = append(parts, fmt.Sprintf("edit %d", n))
	}
	if b.UsePreviousBoardContents {
		parts = append(parts, "starts from previous")
	}
	if len(parts) == 0 {
		return color.New(color.Faint).Sprint("open")
	}
	return strings.Join(parts, ", ")
}

func okMark() string {
	return color.New(color.FgGreen).Sprint("✓")
}

func failMark() string {
	return color.New(color.FgRed).Sprint("✗")
}
