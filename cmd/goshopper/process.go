package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kandyfoma/goshopper/internal/model"
)

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <file>",
		Short: "Process a single receipt",
		Long: `Extract and normalize one receipt. The argument is either a receipt
image (OCR text is read from the .txt sidecar next to it) or a plain .txt
file containing the OCR output directly.

The result is printed to stdout as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: runProcess,
	}

	cmd.Flags().Bool("text", false, "treat the argument as raw OCR text, not a file path")

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	orchestrator, err := buildOrchestrator(ctx, store)
	if err != nil {
		return err
	}

	asText, _ := cmd.Flags().GetBool("text")

	var result model.ProcessingResult
	switch {
	case asText:
		result = orchestrator.ProcessText(ctx, args[0])
	case strings.HasSuffix(args[0], ".txt"):
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		result = orchestrator.ProcessText(ctx, string(data))
	default:
		result = orchestrator.ProcessImage(ctx, args[0])
	}

	slog.Info("Receipt processed",
		"merchant", result.Merchant,
		"method", result.Method,
		"confidence", result.Confidence,
		"items", len(result.Items),
		"elapsed", formatElapsed(result.Elapsed))

	return printJSON(result)
}
