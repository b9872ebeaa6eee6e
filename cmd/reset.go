package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset <content-file>",
	Short: "Delete the saved progress of an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c, err := loadContent(args[0])
		if err != nil {
			return err
		}

		if !yes {
			confirmed := false
			err := huh.NewConfirm().
				Title(fmt.Sprintf("Delete saved progress of %q for %s?", c.Title, cfg.UserID)).
				Description("Boards, cards and completions start over.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&confirmed).
				Run()
			if err != nil {
				return fmt.Errorf("confirm reset: %w", err)
			}
			if !confirmed {
				fmt.Println("Nothing deleted.")
				return nil
			}
		}

		st, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		deleted, err := st.StateRepo().Delete(cmd.Context(), c.ID, cfg.UserID)
		if err != nil {
			return fmt.Errorf("reset state: %w", err)
		}
		if !deleted {
			fmt.Println("No saved progress to delete.")
			return nil
		}
		fmt.Println(okMark(), "Saved progress deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
