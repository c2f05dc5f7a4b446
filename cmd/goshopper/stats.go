package main

import (
	"github.com/spf13/cobra"

	"github.com/kandyfoma/goshopper/internal/learning"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show learning statistics",
		Long:  `Summarize the learning loop: sample volume, shops with templates, and average local confidence at correction time.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			stats, err := learning.NewEngine(store).Stats(ctx)
			if err != nil {
				return err
			}

			mappings, err := store.GetAllMappings(ctx)
			if err != nil {
				return err
			}
			templates, err := store.GetAllTemplates(ctx)
			if err != nil {
				return err
			}

			return printJSON(map[string]any{
				"total_samples":            stats.TotalSamples,
				"shops_learned":            stats.ShopsLearned,
				"average_local_confidence": stats.AverageLocalConfidence,
				"learned_mappings":         len(mappings),
				"shop_templates":           len(templates),
			})
		},
	}
}
