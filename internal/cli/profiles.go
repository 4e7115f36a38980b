package cli

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"hookline/internal/registry"
)

func init() {
	rootCmd.AddCommand(addCmd, removeCmd, listCmd, infoCmd, resetCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <handle>...",
	Short: "Add TikTok profiles to track (with or without the @ prefix).",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, reg, _, err := openEnv()
		if err != nil {
			return err
		}
		defer db.Close()

		added, err := reg.Add(args...)
		if err != nil {
			return err
		}

		fmt.Printf("Added %d profile(s), %d already tracked\n", added, len(args)-added)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <handle>...",
	Short: "Remove profiles from tracking, deleting their stored posts.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, reg, st, err := openEnv()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := reg.Remove(args...); err != nil {
			return err
		}
		// Drop the posts too, so re-adding the handle later starts from
		// a clean slate instead of resurrecting stale data.
		for _, h := range args {
			if err := st.DeleteByHandle(registry.Normalize(h)); err != nil {
				return err
			}
		}

		fmt.Printf("Removed %d profile(s)\n", len(args))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tracked profiles and their status.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, reg, _, err := openEnv()
		if err != nil {
			return err
		}
		defer db.Close()

		profiles, err := reg.ListAll()
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			fmt.Println(`No profiles tracked. Use "hookline add <handle>" to start.`)
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Handle", "Status", "Posts", "Slideshows", "Errors", "Last Scraped"})
		counts := make(map[registry.Status]int)
		for _, p := range profiles {
			last := "never"
			if p.LastScraped != nil {
				last = p.LastScraped.Format("2006-01-02 15:04")
			}
			t.AppendRow(table.Row{"@" + p.Handle, p.Status, p.PostCount, p.SlideshowCount, p.ErrorCount, last})
			counts[p.Status]++
		}
		t.Render()

		fmt.Printf("Total: %d | Completed: %d | Pending: %d | Failed: %d\n",
			len(profiles), counts[registry.StatusCompleted],
			counts[registry.StatusPending], counts[registry.StatusFailed])
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info <handle>",
	Short: "Show detailed information about a tracked profile.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, reg, st, err := openEnv()
		if err != nil {
			return err
		}
		defer db.Close()

		p, err := reg.Get(args[0])
		if err != nil {
			return err
		}

		stored, err := st.CountByHandle(p.Handle)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendRow(table.Row{"Handle", "@" + p.Handle})
		t.AppendRow(table.Row{"URL", p.URL})
		t.AppendRow(table.Row{"Status", p.Status})
		t.AppendRow(table.Row{"Added", p.AddedAt.Format("2006-01-02 15:04")})
		last := "never"
		if p.LastScraped != nil {
			last = p.LastScraped.Format("2006-01-02 15:04")
		}
		t.AppendRow(table.Row{"Last scraped", last})
		t.AppendRow(table.Row{"Posts seen", p.PostCount})
		t.AppendRow(table.Row{"Slideshows kept", p.SlideshowCount})
		t.AppendRow(table.Row{"Posts stored", stored})
		t.AppendRow(table.Row{"Errors", p.ErrorCount})
		if p.LastError != "" {
			t.AppendRow(table.Row{"Last error", p.LastError})
		}
		t.Render()
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset [handle]...",
	Short: "Reset profiles to pending. With no arguments, resets every failed profile.",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, reg, _, err := openEnv()
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := reg.Reset(args...)
		if err != nil {
			return err
		}

		fmt.Printf("Reset %d profile(s) to pending\n", n)
		return nil
	},
}
