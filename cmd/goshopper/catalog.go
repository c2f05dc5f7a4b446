package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kandyfoma/goshopper/internal/catalog"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the canonical product catalog",
		Long:  `List, search, and extend the canonical products that raw receipt text normalizes to.`,
	}

	cmd.AddCommand(catalogListCmd())
	cmd.AddCommand(catalogSearchCmd())
	cmd.AddCommand(catalogAddCmd())

	return cmd
}

func catalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all canonical products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if _, err := store.SeedProducts(ctx, catalog.DefaultProducts()); err != nil {
				return err
			}

			products, err := store.GetAllProducts(ctx)
			if err != nil {
				return err
			}
			return printJSON(products)
		},
	}
}

func catalogSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog by similarity",
		Args:  cobra.MinimumNArgs(1),
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

			limit, _ := cmd.Flags().GetInt("limit")
			results := normalizer.Search(strings.Join(args, " "), limit)
			return printJSON(results)
		},
	}

	cmd.Flags().Int("limit", 10, "maximum number of results")

	return cmd
}

func catalogAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <normalized name>",
		Short: "Add a canonical product",
		Long: `Add a new canonical product to the catalog. Aliases are comma
separated, for example --fr "banane plantain,plantain" --en "plantain".`,
		Args: cobra.MinimumNArgs(1),
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

			category, _ := cmd.Flags().GetString("category")
			unit, _ := cmd.Flags().GetString("unit")
			aliasesFR := splitAliases(cmd, "fr")
			aliasesEN := splitAliases(cmd, "en")

			productID, err := normalizer.AddProduct(ctx, strings.Join(args, " "), category, unit, aliasesFR, aliasesEN)
			if err != nil {
				return fmt.Errorf("adding product: %w", err)
			}

			slog.Info("Product added", "product_id", productID)
			return nil
		},
	}

	cmd.Flags().String("category", "", "product category")
	cmd.Flags().String("unit", "", "unit of measure")
	cmd.Flags().String("fr", "", "comma-separated French aliases")
	cmd.Flags().String("en", "", "comma-separated English aliases")

	return cmd
}

func splitAliases(cmd *cobra.Command, flag string) []string {
	raw, _ := cmd.Flags().GetString(flag)
	if raw == "" {
		return nil
	}

	var aliases []string
	for _, alias := range strings.Split(raw, ",") {
		if alias = strings.TrimSpace(alias); alias != "" {
			aliases = append(aliases, alias)
		}
	}
	return aliases
}
