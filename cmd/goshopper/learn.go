package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kandyfoma/goshopper/internal/learning"
)

func learnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learn",
		Short: "Teach the normalizer and the template engine",
		Long:  `Record raw-text mappings and trigger shop template synthesis by hand.`,
	}

	cmd.AddCommand(learnMappingCmd())
	cmd.AddCommand(learnTemplateCmd())

	return cmd
}

func learnMappingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mapping <raw text> <product-id>",
		Short: "Map a raw spelling straight to a canonical product",
		Long: `Record a learned mapping so future occurrences of the raw text
resolve with confidence 1.0. With --shop the mapping only applies to
receipts from that shop; otherwise it applies globally.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			normalizer, err := buildNormalizer(ctx, store)
			if err != nil {
				return err
			}

			shopID, _ := cmd.Flags().GetString("shop")
			if err := normalizer.LearnMapping(ctx, args[0], args[1], shopID); err != nil {
				return fmt.Errorf("learning mapping: %w", err)
			}

			slog.Info("Mapping learned", "raw_text", args[0], "product_id", args[1], "shop", shopID)
			return nil
		},
	}

	cmd.Flags().String("shop", "", "restrict the mapping to one shop")

	return cmd
}

func learnTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template <shop-id>",
		Short: "Synthesize a shop template from accumulated samples",
		Long: `Force template synthesis for a shop. Synthesis normally happens
automatically once enough corrected samples accumulate; this command
re-runs it on demand, for example after samples were imported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			learner := learning.NewEngine(store)
			created, err := learner.SynthesizeTemplate(ctx, args[0])
			if err != nil {
				return fmt.Errorf("synthesizing template: %w", err)
			}
			if !created {
				slog.Warn("Not enough usable samples to synthesize a template", "shop", args[0])
				return nil
			}

			template, err := store.GetTemplate(ctx, args[0])
			if err != nil {
				return err
			}

			slog.Info("Template synthesized", "shop", args[0], "samples", template.SampleCount)
			return printJSON(template)
		},
	}
}
