package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var cleanForce bool

func init() {
	cleanCmd.Flags().BoolVarP(&cleanForce, "force", "f", false,
		"Skip the confirmation prompt.")
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean [--force]",
	Short: "Delete all stored posts and reset every profile to pending.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cleanForce && !confirm("This deletes all stored posts and resets every profile. Continue? [y/N] ") {
			fmt.Println("Aborted.")
			return nil
		}

		db, reg, st, err := openEnv()
		if err != nil {
			return err
		}
		defer db.Close()

		deleted, err := st.DeleteAll()
		if err != nil {
			return fmt.Errorf("failed to delete posts: %w", err)
		}
		reset, err := reg.ResetAll()
		if err != nil {
			return fmt.Errorf("failed to reset profiles: %w", err)
		}

		fmt.Printf("Deleted %d post(s), reset %d profile(s) to pending\n", deleted, reset)
		return nil
	},
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
