package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/abhisek/ideaboard/internal/clock"
	"github.com/abhisek/ideaboard/internal/config"
	"github.com/abhisek/ideaboard/internal/content"
	"github.com/abhisek/ideaboard/internal/exercise"
	"github.com/abhisek/ideaboard/internal/ideaboard"
	"github.com/abhisek/ideaboard/internal/xapi"
)

var replayCmd = &cobra.Command{
	Use:   "replay <content-file> <action>...",
	Short: "Run actions against an exercise without the TUI and print the result",
	Long: `Replay runs a list of actions headlessly and prints the resulting exercise
state as JSON. Actions:

  forward              go to the next board, or into the summary
  back                 go to the previous board, or leave the summary
  add:<text>           add a card to the current board
  edit:<n>:<text>      change the text of card n (1-based)
  remove:<n>           remove card n
  clone                copy the previous board into the current one
  reset                start the whole exercise over`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().Bool("resume", false, "Start from the saved progress")
	replayCmd.Flags().Bool("save", false, "Save the resulting progress and log the statements")
	replayCmd.Flags().Bool("xapi", false, "Print the xAPI data of the exercise instead of its state")
	replayCmd.Flags().BoolP("verbose", "v", false, "Print announcements and statements while replaying")
}

func runReplay(cmd *cobra.Command, args []string) error {
	resume, _ := cmd.Flags().GetBool("resume")
	save, _ := cmd.Flags().GetBool("save")
	asXAPI, _ := cmd.Flags().GetBool("xapi")
	verbose, _ := cmd.Flags().GetBool("verbose")
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	c, err := loadContent(args[0])
	if err != nil {
		return err
	}

	opts := replayOptions{}
	if verbose {
		opts.Log = os.Stderr
	}
	if resume || save {
		st, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer st.Close()
		if resume {
			opts.PreviousState = loadSaved(ctx, st.StateRepo(), c.ID, cfg.UserID)
		}
		if save {
			statements := st.StatementRepo()
			opts.OnStatement = func(s xapi.Statement) {
				if _, err := statements.Append(ctx, c.ID, s); err != nil {
					warn("log statement: %v", err)
				}
			}
			defer func() {
				if opts.result == nil {
					return
				}
				data, err := exercise.MarshalState(opts.result.CurrentState())
				if err == nil {
					err = st.StateRepo().Save(ctx, c.ID, cfg.UserID, data)
				}
				if err != nil {
					warn("save progress: %v", err)
				}
			}()
		}
	}

	ex, err := replay(c, cfg, args[1:], &opts)
	if err != nil {
		return err
	}

	var out []byte
	if asXAPI {
		out, err = json.MarshalIndent(ex.XAPIData(), "", "  ")
	} else {
		out, err = exercise.MarshalStateIndent(ex.CurrentState())
	}
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	fmt.Fprintf(os.Stderr, "score %d/%d\n", ex.Score(), ex.MaxScore())
	return nil
}

type replayOptions struct {
	PreviousState *exercise.State
	OnStatement   func(xapi.Statement)

	// Log receives announcements and statement verbs when set.
	Log io.Writer

	// NewID overrides the id generator, for stable output.
	NewID func() string

	result *exercise.Exercise
}

// replayHost accepts every confirmation straight away.
type replayHost struct {
	exercise.NopHost
	log     io.Writer
	confirm error
}

func (h *replayHost) Announce(text string) {
	if h.log != nil && text != "" {
		fmt.Fprintln(h.log, "  »", text)
	}
}

func (h *replayHost) Confirm(_ exercise.ConfirmRequest, onConfirmed func() error) {
	h.confirm = onConfirmed()
}

// replay builds the exercise on a manual clock and applies actions in
// order. Every navigation is settled before the next action runs.
func replay(c *content.Content, cfg config.Config, actions []string, opts *replayOptions) (*exercise.Exercise, error) {
	sched := clock.NewManual()
	host := &replayHost{log: opts.Log}

	language := c.Language
	if language == "" {
		language = cfg.Language
	}
	ex, err := exercise.New(exercise.Config{
		Content: c,
		Factory: &ideaboard.Runtime{
			NewID:       opts.NewID,
			Actor:       xapi.NewActor(cfg.UserID),
			LanguageTag: exercise.LanguageTag(language),
		},
		Host:              host,
		Scheduler:         sched,
		TransitionTimeout: cfg.TransitionTimeout,
		DisableSlide:      true,
		UserID:            cfg.UserID,
		PreviousState:     opts.PreviousState,
		NewID:             opts.NewID,
		OnStatement: func(st xapi.Statement) {
			if opts.Log != nil {
				fmt.Fprintln(opts.Log, "  xapi", st.Verb.Short())
			}
			if opts.OnStatement != nil {
				opts.OnStatement(st)
			}
		},
	})
	if err != nil {
		return nil, err
	}
	opts.result = ex
	sched.Flush()

	ctrl := ex.Controller()
	settle := func() {
		ctrl.EndTransition()
		sched.Flush()
	}

	for i, action := range actions {
		if opts.Log != nil {
			fmt.Fprintf(opts.Log, "%d. %s\n", i+1, action)
		}
		if err := applyAction(ex, host, action); err != nil {
			return ex, fmt.Errorf("action %d %q: %w", i+1, action, err)
		}
		settle()
	}
	return ex, nil
}

func applyAction(ex *exercise.Exercise, host *replayHost, action string) error {
	ctrl := ex.Controller()
	name, arg, _ := strings.Cut(action, ":")

	switch name {
	case "forward":
		if !ctrl.Affordances().Forward {
			return fmt.Errorf("cannot move forward from page %d", ctrl.CurrentIndex()+1)
		}
		return ctrl.GoForward()
	case "back":
		if !ctrl.Affordances().Backward {
			return fmt.Errorf("nothing to go back to")
		}
		ctrl.GoBackward()
		return nil
	case "reset":
		ex.Reset()
		return nil
	case "clone":
		if !ctrl.Affordances().ClonePrevious {
			return fmt.Errorf("board %d does not start from the previous one", ctrl.CurrentIndex()+1)
		}
		host.confirm = nil
		ctrl.RequestClonePrevious()
		return host.confirm
	}

	b, ok := ctrl.CurrentBoard().Instance().(*ideaboard.Board)
	if !ok {
		return fmt.Errorf("board %d has no cards", ctrl.CurrentIndex()+1)
	}

	switch name {
	case "add":
		b.AddCard(arg)
		return nil
	case "edit":
		num, text, ok := strings.Cut(arg, ":")
		if !ok {
			return fmt.Errorf("want edit:<n>:<text>")
		}
		id, err := cardID(b, num)
		if err != nil {
			return err
		}
		b.EditCard(id, text)
		return nil
	case "remove":
		id, err := cardID(b, arg)
		if err != nil {
			return err
		}
		b.RemoveCard(id)
		return nil
	}
	return fmt.Errorf("unknown action %q", name)
}

// cardID resolves a 1-based card number on b.
func cardID(b *ideaboard.Board, num string) (string, error) {
	n, err := strconv.Atoi(num)
	if err != nil {
		return "", fmt.Errorf("invalid card number %q: %w", num, err)
	}
	cards := b.Cards()
	if n < 1 || n > len(cards) {
		return "", fmt.Errorf("card %d out of range (board has %d)", n, len(cards))
	}
	return cards[n-1].ID, nil
}
