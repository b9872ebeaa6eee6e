package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/abhisek/ideaboard/internal/exercise"
)

var stateCmd = &cobra.Command{
	Use:   "state <content-file>",
	Short: "Print the saved progress of an exercise as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		copyOut, _ := cmd.Flags().GetBool("copy")

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

		saved, err := st.StateRepo().Latest(cmd.Context(), c.ID, cfg.UserID)
		if err != nil {
			return fmt.Errorf("read state: %w", err)
		}
		if saved == nil {
			fmt.Printf("No saved progress for %s (user %s).\n", c.ID, cfg.UserID)
			return nil
		}

		prev, err := exercise.UnmarshalState(saved.Data)
		if err != nil {
			return err
		}
		out, err := exercise.MarshalStateIndent(*prev)
		if err != nil {
			return err
		}
		fmt.Println(string(out))

		if copyOut {
			if err := clipboard.WriteAll(string(out)); err != nil {
				return fmt.Errorf("copy to clipboard: %w", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), okMark(), "Copied to clipboard.")
		}
		return nil
	},
}

func init() {
	stateCmd.Flags().Bool("copy", false, "Also copy the state to the clipboard")
}
