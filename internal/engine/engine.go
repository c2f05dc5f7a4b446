// Package engine orchestrates the hybrid receipt pipeline: local
// extraction, confidence check, AI fallback, learning, and output
// normalization.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/kandyfoma/goshopper/internal/ai"
	"github.com/kandyfoma/goshopper/internal/common"
	"github.com/kandyfoma/goshopper/internal/extract"
	"github.com/kandyfoma/goshopper/internal/learning"
	"github.com/kandyfoma/goshopper/internal/model"
	"github.com/kandyfoma/goshopper/internal/ocr"
	"github.com/kandyfoma/goshopper/internal/service"
	"github.com/kandyfoma/goshopper/internal/shops"
)

const (
	// AcceptThreshold is the local confidence below which the AI fallback
	// is consulted.
	AcceptThreshold = 0.85
	// itemTotalTolerance bounds the drift allowed between a reported line
	// total and qty times price before the total is recomputed.
	itemTotalTolerance = 0.01
)

// Orchestrator runs the full pipeline for one document at a time. It is
// safe to call from concurrent batch workers: the stats counter is
// synchronized and the collaborators are read-mostly or internally locked.
type Orchestrator struct {
	identifier *shops.Identifier
	extractor  *extract.Extractor
	aiClient   ai.Client // nil means the fallback is unavailable
	learner    *learning.Engine
	ocrClient  ocr.Client

	mu    sync.Mutex
	stats service.ProcessingStats
}

// NewOrchestrator wires the pipeline. aiClient, learner, and ocrClient may
// each be nil; the corresponding stage degrades or is skipped.
func NewOrchestrator(identifier *shops.Identifier, extractor *extract.Extractor, aiClient ai.Client, learner *learning.Engine, ocrClient ocr.Client) *Orchestrator {
	return &Orchestrator{
		identifier: identifier,
		extractor:  extractor,
		aiClient:   aiClient,
		learner:    learner,
		ocrClient:  ocrClient,
	}
}

// ProcessImage runs OCR on imagePath and processes the recognized text.
func (o *Orchestrator) ProcessImage(ctx context.Context, imagePath string) model.ProcessingResult {
	start := time.Now()

	if o.ocrClient == nil {
		o.countDocument()
		return o.failed("no OCR collaborator configured", start)
	}

	rawText, err := o.ocrClient.ExtractText(ctx, imagePath)
	if err != nil {
		o.countDocument()
		return o.failed(fmt.Sprintf("ocr: %v", err), start)
	}

	return o.processText(ctx, rawText, start)
}

// ProcessText runs the pipeline on already-recognized text.
func (o *Orchestrator) ProcessText(ctx context.Context, rawText string) model.ProcessingResult {
	return o.processText(ctx, rawText, time.Now())
}

func (o *Orchestrator) countDocument() {
	o.mu.Lock()
	o.stats.TotalProcessed++
	o.mu.Unlock()
}

func (o *Orchestrator) processText(ctx context.Context, rawText string, start time.Time) model.ProcessingResult {
	o.countDocument()

	if strings.TrimSpace(rawText) == "" {
		return o.failed(common.ErrEmptyInput.Error(), start)
	}

	shopID := o.identifier.Identify(rawText)
	slog.Info("Identified shop", "shop_id", shopID)

	extraction := o.extractor.Extract(shopID, rawText)
	localConfidence := extract.Score(extraction)
	slog.Info("Local extraction scored", "confidence", localConfidence, "items", len(extraction.Items))

	final := extraction
	confidence := localConfidence
	method := model.ProcessedLocal

	needsFallback := localConfidence < AcceptThreshold || shopID == shops.ShopUnknown
	if needsFallback && o.aiClient != nil {
		response, err := o.aiClient.Extract(ctx, ai.Request{OCRText: rawText})
		switch {
		case err != nil:
			// Fallback availability is a soft dependency.
			slog.Warn("AI fallback unavailable, accepting local result",
				"error", err, "confidence", localConfidence)
		case !response.Success:
			slog.Warn("AI fallback reported failure, accepting local result")
		default:
			final = fromAIResponse(response)
			confidence = response.Confidence
			method = model.ProcessedAI
			o.mu.Lock()
			o.stats.AIFallback++
			o.mu.Unlock()

			if o.learner != nil {
				updated, learnErr := o.learner.LearnFromCorrection(ctx, shopID, rawText, final, true, localConfidence)
				if learnErr != nil {
					slog.Error("Failed to record correction", "shop_id", shopID, "error", learnErr)
				} else if updated {
					slog.Info("Shop template updated from corrections", "shop_id", shopID)
				}
			}
		}
	} else if needsFallback {
		slog.Warn("Confidence below threshold and no AI fallback configured",
			"confidence", localConfidence)
	}

	if method == model.ProcessedLocal {
		o.mu.Lock()
		o.stats.LocalSuccess++
		o.mu.Unlock()
	}

	result := normalizeOutput(final, method, confidence, rawText)
	result.Elapsed = time.Since(start)
	return result
}

// ProcessBatch processes documents independently and in order. One
// document's failure never aborts its siblings. onDone, when non-nil, is
// called after each document; batch drivers use it to advance progress.
func (o *Orchestrator) ProcessBatch(ctx context.Context, rawTexts []string, onDone func(model.ProcessingResult)) []model.ProcessingResult {
	results := make([]model.ProcessingResult, len(rawTexts))
	for i, rawText := range rawTexts {
		results[i] = o.ProcessText(ctx, rawText)
		if onDone != nil {
			onDone(results[i])
		}
	}
	return results
}

// Stats returns a copy of the lifetime processing counters.
func (o *Orchestrator) Stats() service.ProcessingStats {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stats
}

func (o *Orchestrator) failed(message string, start time.Time) model.ProcessingResult {
	o.mu.Lock()
	o.stats.Failed++
	o.mu.Unlock()

	slog.Error("Document processing failed", "error", message)
	return model.ProcessingResult{
		Merchant: shops.ShopUnknown,
		Method:   model.ProcessedFailed,
		Currency: extract.DefaultCurrency,
		Error:    message,
		Elapsed:  time.Since(start),
	}
}

// fromAIResponse converts the AI contract into the local extraction shape.
func fromAIResponse(response *ai.Response) model.RawExtraction {
	extraction := model.RawExtraction{
		Merchant: response.Merchant,
		Date:     response.Date,
		Currency: response.Currency,
		Subtotal: response.Subtotal,
		Tax:      response.Tax,
		Total:    response.Total,
	}
	if extraction.Merchant == "" {
		extraction.Merchant = shops.ShopUnknown
	}
	for _, item := range response.Items {
		extraction.Items = append(extraction.Items, model.ReceiptItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
			Total:    item.Quantity * item.Price,
		})
	}
	return extraction
}

// normalizeOutput enforces the output-shape invariants regardless of which
// path produced the extraction: items need a name and a positive price to
// survive, drifting line totals are recomputed, and a missing document
// total is rebuilt from the retained items.
func normalizeOutput(extraction model.RawExtraction, method model.ProcessingMethod, confidence float64, rawText string) model.ProcessingResult {
	items := make([]model.ReceiptItem, 0, len(extraction.Items))
	for _, item := range extraction.Items {
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" || item.Price <= 0 {
			continue
		}
		if item.Quantity == 0 {
			item.Quantity = 1
		}
		expected := item.Quantity * item.Price
		if item.Total == 0 || math.Abs(item.Total-expected) > itemTotalTolerance {
			item.Total = expected
		}
		items = append(items, item)
	}

	total := extraction.Total
	if total == 0 {
		for _, item := range items {
			total += item.Total
		}
	}

	merchant := extraction.Merchant
	if merchant == "" {
		merchant = shops.ShopUnknown
	}
	currency := extraction.Currency
	if currency == "" {
		currency = extract.DefaultCurrency
	}

	return model.ProcessingResult{
		Merchant:   merchant,
		Date:       extraction.Date,
		Currency:   currency,
		Items:      items,
		Subtotal:   extraction.Subtotal,
		Tax:        extraction.Tax,
		Total:      total,
		Method:     method,
		Confidence: confidence,
		RawText:    rawText,
		Success:    true,
	}
}

// IsSoftAIFailure reports whether err is one of the AI failure modes the
// pipeline absorbs by accepting the local result.
func IsSoftAIFailure(err error) bool {
	return errors.Is(err, common.ErrAIUnavailable) ||
		errors.Is(err, common.ErrAIResponseFormat) ||
		errors.Is(err, common.ErrAIRateLimit)
}
