package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func normalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize <raw product text>",
		Short: "Normalize a raw product name to the canonical catalog",
		Long: `Run one raw product spelling through the matching cascade and print
the canonical product, match method, confidence, and top suggestions.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runNormalize,
	}

	cmd.Flags().String("shop", "", "shop ID for shop-scoped learned mappings")

	return cmd
}

func runNormalize(cmd *cobra.Command, args []string) error {
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
	result := normalizer.Normalize(strings.Join(args, " "), shopID)

	return printJSON(result)
}
