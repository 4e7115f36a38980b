package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"hookline/internal/dataset"
	"hookline/internal/hook"
	"hookline/internal/types"
)

var analyzeOutput string

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "",
		"Output file for the training dataset (overrides config).")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [--output file] [--data-dir dir]",
	Short: "Aggregate stored posts into a training dataset with hook categories and quality scores.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		db, reg, st, err := openEnv()
		if err != nil {
			return err
		}
		defer db.Close()

		pipeline := hook.NewPipeline(
			hook.NewExtractor(cfg.Hooks.MaxLength),
			hook.NewScorer(cfg.Scoring.ClarityWeight, cfg.Scoring.EngagementWeight, cfg.Scoring.EngagementCeiling),
		)

		ds, err := dataset.NewBuilder(reg, st, pipeline, cfg.Dataset.TopWords).Build()
		if err != nil {
			return err
		}

		out := analyzeOutput
		if out == "" {
			out = cfg.Dataset.Output
		}
		if err := dataset.Write(ds, out); err != nil {
			return fmt.Errorf("failed to write dataset: %w", err)
		}

		printDatasetSummary(ds, out)
		return nil
	},
}

func printDatasetSummary(ds *types.Dataset, path string) {
	fmt.Printf("Training dataset written to %s\n", path)
	fmt.Printf("  Records:         %d\n", ds.Stats.TotalRecords)
	fmt.Printf("  Avg hook length: %.1f chars\n", ds.Stats.AvgHookLength)
	fmt.Printf("  Avg quality:     %.2f\n", ds.Stats.AvgQuality)

	categories := make([]types.Category, 0, len(ds.Stats.Categories))
	for c := range ds.Stats.Categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	fmt.Println("  Categories:")
	for _, c := range categories {
		if n := ds.Stats.Categories[c]; n > 0 {
			fmt.Printf("    %-14s %d\n", c, n)
		}
	}
}
