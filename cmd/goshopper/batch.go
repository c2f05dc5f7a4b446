package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kandyfoma/goshopper/internal/model"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Process every receipt in a directory",
		Long: `Process all .txt OCR files found in a directory, in name order.
Each result is written as one line of JSON to the output file (or stdout),
followed by a summary of the run.`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().StringP("output", "o", "", "write results to this file instead of stdout")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	matches, err := filepath.Glob(filepath.Join(args[0], "*.txt"))
	if err != nil {
		return fmt.Errorf("scanning %s: %w", args[0], err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no .txt receipts found in %s", args[0])
	}
	sort.Strings(matches)

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	orchestrator, err := buildOrchestrator(ctx, store)
	if err != nil {
		return err
	}

	texts := make([]string, 0, len(matches))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		texts = append(texts, string(data))
	}

	out := os.Stdout
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	bar := progressbar.NewOptions(len(texts),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Processing receipts..."),
	)

	results := orchestrator.ProcessBatch(ctx, texts, func(model.ProcessingResult) {
		_ = bar.Add(1)
	})
	fmt.Fprintln(os.Stderr)

	for i, result := range results {
		result.RawText = ""
		line, err := marshalCompact(result)
		if err != nil {
			return fmt.Errorf("encoding result for %s: %w", matches[i], err)
		}
		fmt.Fprintln(out, line)
	}

	stats := orchestrator.Stats()
	slog.Info("Batch complete",
		"total", stats.TotalProcessed,
		"local", stats.LocalSuccess,
		"ai_fallback", stats.AIFallback,
		"failed", stats.Failed)

	return nil
}
