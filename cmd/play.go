package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/ideaboard/internal/app"
	"github.com/abhisek/ideaboard/internal/exercise"
	"github.com/abhisek/ideaboard/internal/screens/play"
	"github.com/abhisek/ideaboard/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play <content-file>",
	Short: "Work through an exercise, resuming saved progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, args[0])
	},
}

func init() {
	playCmd.Flags().Bool("fresh", false, "Ignore saved progress and start over")
}

// runPlay resumes the saved state of the content for the learner, runs
// the TUI and saves again on the way out.
func runPlay(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	c, err := loadContent(path)
	if err != nil {
		return err
	}

	st, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var prev *exercise.State
	fresh, _ := cmd.Flags().GetBool("fresh")
	if !fresh {
		prev = loadSaved(ctx, st.StateRepo(), c.ID, cfg.UserID)
	}

	scr, err := play.New(play.Options{
		Content:       c,
		Config:        cfg,
		States:        st.StateRepo(),
		Statements:    st.StatementRepo(),
		PreviousState: prev,
	})
	if err != nil {
		return err
	}

	runErr := app.Run(scr)
	if err := scr.Save(ctx); err != nil {
		warn("save progress: %v", err)
	}
	return runErr
}

// loadSaved returns the saved state, or nil when there is none or it can
// not be read.
func loadSaved(ctx context.Context, repo store.StateRepo, contentID, userID string) *exercise.State {
	saved, err := repo.Latest(ctx, contentID, userID)
	if err != nil {
		warn("read saved progress: %v", err)
		return nil
	}
	if saved == nil {
		return nil
	}
	prev, err := exercise.UnmarshalState(saved.Data)
	if err != nil {
		warn("saved progress ignored: %v", err)
		return nil
	}
	return prev
}
