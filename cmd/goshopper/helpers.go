package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/kandyfoma/goshopper/internal/ai"
	"github.com/kandyfoma/goshopper/internal/catalog"
	"github.com/kandyfoma/goshopper/internal/common"
	"github.com/kandyfoma/goshopper/internal/engine"
	"github.com/kandyfoma/goshopper/internal/extract"
	"github.com/kandyfoma/goshopper/internal/learning"
	"github.com/kandyfoma/goshopper/internal/ocr"
	"github.com/kandyfoma/goshopper/internal/shops"
	"github.com/kandyfoma/goshopper/internal/storage"
)

func databasePath() (string, error) {
	if path := viper.GetString("database.path"); path != "" {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "goshopper", "goshopper.db"), nil
}

// openStorage opens the database and brings the schema up to date.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath, err := databasePath()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("failed to open database at %s", dbPath), err)
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, common.NewUserError("database migration failed, try 'goshopper migrate'", err)
	}
	return store, nil
}

// buildNormalizer creates the product normalizer loaded from storage,
// seeding the default catalog on first use.
func buildNormalizer(ctx context.Context, store *storage.SQLiteStorage) (*catalog.Normalizer, error) {
	seeded, err := store.SeedProducts(ctx, catalog.DefaultProducts())
	if err != nil {
		return nil, fmt.Errorf("seeding product catalog: %w", err)
	}
	if seeded > 0 {
		slog.Info("Seeded default product catalog", "products", seeded)
	}

	normalizer := catalog.NewNormalizer(catalog.DefaultConfig(), store)
	if err := normalizer.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading product catalog: %w", err)
	}
	return normalizer, nil
}

func aiConfig() ai.Config {
	apiKey := viper.GetString("ai.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	return ai.Config{
		Provider:    viper.GetString("ai.provider"),
		APIKey:      apiKey,
		Model:       viper.GetString("ai.model"),
		MaxTokens:   viper.GetInt("ai.max_tokens"),
		Timeout:     viper.GetDuration("ai.timeout"),
		MinInterval: viper.GetDuration("ai.min_interval"),
	}
}

// buildOrchestrator wires the full processing pipeline. The AI client is
// optional; without one, low-confidence receipts stay on the local result.
func buildOrchestrator(ctx context.Context, store *storage.SQLiteStorage) (*engine.Orchestrator, error) {
	normalizer, err := buildNormalizer(ctx, store)
	if err != nil {
		return nil, err
	}

	registry := extract.NewRegistry(store)
	if err := registry.Load(ctx); err != nil {
		return nil, err
	}

	var aiClient ai.Client
	cfg := aiConfig()
	if cfg.APIKey == "" {
		slog.Warn("No AI API key configured, fallback extraction disabled")
	} else {
		aiClient, err = ai.NewClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("configuring AI provider: %w", err)
		}
	}

	learner := learning.NewEngine(store)
	learner.OnTemplate(registry.Put)

	return engine.NewOrchestrator(
		shops.NewIdentifier(shops.DefaultRules()),
		extract.NewExtractor(registry, normalizer),
		aiClient,
		learner,
		ocr.FileClient{},
	), nil
}

// printJSON writes v to stdout as indented JSON. All command output goes
// through stdout; logs go to stderr.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatElapsed(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}

func marshalCompact(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
