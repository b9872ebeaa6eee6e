package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/ideaboard/internal/store"
	"github.com/abhisek/ideaboard/internal/xapi"
)

var statementsCmd = &cobra.Command{
	Use:   "statements <content-file>",
	Short: "List the xAPI statements logged for an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		verb, _ := cmd.Flags().GetString("verb")
		after, _ := cmd.Flags().GetInt64("after")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c, err := loadContent(args[0])
		if err != nil {
			return err
		}
		st, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		logged, err := st.StatementRepo().List(cmd.Context(), c.ID, store.QueryOpts{
			Limit: limit,
			After: after,
			Verb:  verb,
		})
		if err != nil {
			return fmt.Errorf("query statements: %w", err)
		}

		if len(logged) == 0 {
			fmt.Println("No statements found.")
			return nil
		}

		// Header.
		fmt.Printf("%-6s  %-19s  %-12s  %-16s  %-7s  %s\n",
			"Seq", "Timestamp", "Verb", "Actor", "Score", "Page")
		fmt.Println(strings.Repeat("─", 76))

		for _, l := range logged {
			s := l.Statement
			score := "-"
			if s.Result != nil && s.Result.Score != nil {
				score = fmt.Sprintf("%d/%d", s.Result.Score.Raw, s.Result.Score.Max)
			}
			page := "-"
			if v, ok := s.Object.Definition.Extensions[xapi.EndingPointExtension]; ok {
				page = fmt.Sprint(v)
			}
			fmt.Printf("%-6d  %-19s  %-12s  %-16s  %-7s  %s\n",
				l.Sequence,
				s.Timestamp.Local().Format("2006-01-02 15:04:05"),
				s.Verb.Short(),
				truncate(s.Actor.Account.Name, 16),
				score,
				page,
			)
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	statementsCmd.Flags().IntP("limit", "n", 20, "Number of statements to show")
	statementsCmd.Flags().String("verb", "", "Filter by verb (progressed, completed, answered)")
	statementsCmd.Flags().Int64("after", 0, "Only statements after this sequence number")
}
