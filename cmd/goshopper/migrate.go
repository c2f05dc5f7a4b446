package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kandyfoma/goshopper/internal/catalog"
	"github.com/kandyfoma/goshopper/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version and
seed the default product catalog. Safe to run repeatedly.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("no-seed", false, "skip seeding the default product catalog")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	dbPath, err := databasePath()
	if err != nil {
		return err
	}
	slog.Info("Running database migrations", "database", dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if noSeed, _ := cmd.Flags().GetBool("no-seed"); !noSeed {
		seeded, err := store.SeedProducts(ctx, catalog.DefaultProducts())
		if err != nil {
			return fmt.Errorf("seeding catalog: %w", err)
		}
		slog.Info("Catalog seeded", "new_products", seeded)
	}

	slog.Info("Database migrations completed", "schema_version", storage.ExpectedSchemaVersion)
	return nil
}
