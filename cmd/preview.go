package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/ideaboard/internal/app"
	"github.com/abhisek/ideaboard/internal/content"
	"github.com/abhisek/ideaboard/internal/screens/play"
)

var previewCmd = &cobra.Command{
	Use:   "preview <content-file>",
	Short: "Preview an exercise while editing it (no database)",
	Long: `Run an exercise without saving progress or statements. The content file
is watched: every saved change reloads the exercise in place, keeping the
current board and cards.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Duration("debounce", content.DefaultDebounce, "Wait this long for writes to settle before reloading")
}

func runPreview(cmd *cobra.Command, args []string) error {
	path := args[0]
	debounce, _ := cmd.Flags().GetDuration("debounce")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	c, err := loadContent(path)
	if err != nil {
		return err
	}

	scr, err := play.New(play.Options{Content: c, Config: cfg})
	if err != nil {
		return err
	}
	p := app.NewProgram(scr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return app.RunProgram(p)
	})
	g.Go(func() error {
		err := content.Watch(ctx, path, debounce, func(c *content.Content, err error) {
			p.Send(play.ContentChangedMsg{Content: c, Err: err})
		})
		if err != nil {
			// Keep the preview running without live reload.
			p.Send(play.ContentChangedMsg{Err: err})
		}
		return nil
	})

	return g.Wait()
}
