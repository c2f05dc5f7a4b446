package learning

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kandyfoma/goshopper/internal/common"
	"github.com/kandyfoma/goshopper/internal/model"
	"github.com/kandyfoma/goshopper/internal/service"
)

const (
	// MinSamples is how many corrected samples a shop needs before a
	// template is synthesized.
	MinSamples = 3
	// admissionCeiling rejects corrections whose local extraction was
	// already adequate; learning from them would only reinforce noise.
	admissionCeiling = 0.8
)

// Engine records AI corrections and turns them into shop templates. Sample
// writes and synthesis for the same shop are serialized through a per-shop
// lock so concurrent documents cannot lose sample counts.
type Engine struct {
	storage service.Storage
	onLearn func(model.ShopTemplate)

	mu        sync.Mutex
	shopLocks map[string]*sync.Mutex
}

// NewEngine creates a learning engine over the given storage.
func NewEngine(storage service.Storage) *Engine {
	return &Engine{
		storage:   storage,
		shopLocks: make(map[string]*sync.Mutex),
	}
}

// OnTemplate registers a callback invoked with each freshly synthesized
// template, after it has been persisted. Used to refresh in-memory template
// views so later documents in the same run pick the template up.
func (e *Engine) OnTemplate(fn func(model.ShopTemplate)) {
	e.onLearn = fn
}

func (e *Engine) shopLock(shopID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.shopLocks[shopID]
	if !ok {
		lock = &sync.Mutex{}
		e.shopLocks[shopID] = lock
	}
	return lock
}

// LearnFromCorrection records one AI-corrected extraction and synthesizes
// the shop's template when enough samples have accumulated. It reports
// whether a template was written. Corrections from confident local
// extractions (>= 0.8) and unsuccessful corrections are rejected outright.
func (e *Engine) LearnFromCorrection(ctx context.Context, shopID, rawText string, correction model.RawExtraction, correctionOK bool, localConfidence float64) (bool, error) {
	if localConfidence >= admissionCeiling {
		return false, nil
	}
	if !correctionOK {
		return false, nil
	}

	features := ExtractTextFeatures(rawText)
	AttachItemFeatures(&features, correction.Items)

	sample := &model.LearningSample{
		CapturedAt:      time.Now(),
		ID:              uuid.NewString(),
		ShopID:          shopID,
		RawText:         rawText,
		Correction:      correction,
		LocalConfidence: localConfidence,
		Features:        features,
	}

	lock := e.shopLock(shopID)
	lock.Lock()
	defer lock.Unlock()

	if err := e.storage.SaveSample(ctx, sample); err != nil {
		return false, fmt.Errorf("%w: saving learning sample: %v", common.ErrPersistence, err)
	}

	count, err := e.storage.CountSamplesByShop(ctx, shopID)
	if err != nil {
		return false, fmt.Errorf("%w: counting samples: %v", common.ErrPersistence, err)
	}
	if count < MinSamples {
		slog.Debug("Sample recorded, below synthesis threshold",
			"shop_id", shopID, "samples", count, "needed", MinSamples)
		return false, nil
	}

	return e.synthesizeLocked(ctx, shopID)
}

// SynthesizeTemplate forces template synthesis for a shop if it has enough
// samples; used by maintenance commands. Reports whether a template was
// written.
func (e *Engine) SynthesizeTemplate(ctx context.Context, shopID string) (bool, error) {
	lock := e.shopLock(shopID)
	lock.Lock()
	defer lock.Unlock()

	count, err := e.storage.CountSamplesByShop(ctx, shopID)
	if err != nil {
		return false, fmt.Errorf("%w: counting samples: %v", common.ErrPersistence, err)
	}
	if count < MinSamples {
		return false, nil
	}

	return e.synthesizeLocked(ctx, shopID)
}

// synthesizeLocked runs synthesis for a shop. Caller holds the shop lock.
// Samples are never deleted; re-synthesis overwrites the previous learned
// template.
func (e *Engine) synthesizeLocked(ctx context.Context, shopID string) (bool, error) {
	samples, err := e.storage.GetSamplesByShop(ctx, shopID)
	if err != nil {
		return false, fmt.Errorf("%w: loading samples: %v", common.ErrPersistence, err)
	}

	template, ok := synthesizeTemplate(shopID, samples)
	if !ok {
		slog.Warn("Samples carry no usable item pattern, synthesis skipped", "shop_id", shopID)
		return false, nil
	}

	if err := e.storage.SaveTemplate(ctx, &template); err != nil {
		return false, fmt.Errorf("%w: saving learned template: %v", common.ErrPersistence, err)
	}

	slog.Info("Synthesized shop template",
		"shop_id", shopID, "samples", template.SampleCount, "threshold", template.ConfidenceThreshold)

	if e.onLearn != nil {
		e.onLearn(template)
	}
	return true, nil
}

// Stats summarizes accumulated learning state across all shops.
func (e *Engine) Stats(ctx context.Context) (service.LearningStats, error) {
	samples, err := e.storage.GetAllSamples(ctx)
	if err != nil {
		return service.LearningStats{}, fmt.Errorf("%w: loading samples: %v", common.ErrPersistence, err)
	}

	stats := service.LearningStats{TotalSamples: len(samples)}
	shops := make(map[string]struct{})
	sum := 0.0
	for _, sample := range samples {
		shops[sample.ShopID] = struct{}{}
		sum += sample.LocalConfidence
	}
	stats.ShopsLearned = len(shops)
	if len(samples) > 0 {
		stats.AverageLocalConfidence = sum / float64(len(samples))
	}
	return stats, nil
}
