// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/kandyfoma/goshopper/internal/model"
)

// Storage defines the contract for our persistence layer. The catalog index,
// translation tables, and shop templates are loaded once through this
// interface at process start; mutations go back through it so they become
// visible to subsequently-started documents.
type Storage interface {
	// Product catalog operations
	SaveProduct(ctx context.Context, product *model.CanonicalProduct) error
	GetProduct(ctx context.Context, productID string) (*model.CanonicalProduct, error)
	GetAllProducts(ctx context.Context) ([]model.CanonicalProduct, error)

	// Learned mapping operations
	SaveMapping(ctx context.Context, mapping *model.LearnedMapping) error
	GetMapping(ctx context.Context, rawText, shopID string) (*model.LearnedMapping, error)
	GetAllMappings(ctx context.Context) ([]model.LearnedMapping, error)
	IncrementMappingUseCount(ctx context.Context, rawText, shopID string) error

	// Shop template operations
	SaveTemplate(ctx context.Context, template *model.ShopTemplate) error
	GetTemplate(ctx context.Context, shopID string) (*model.ShopTemplate, error)
	GetAllTemplates(ctx context.Context) ([]model.ShopTemplate, error)

	// Learning sample operations
	SaveSample(ctx context.Context, sample *model.LearningSample) error
	GetSamplesByShop(ctx context.Context, shopID string) ([]model.LearningSample, error)
	CountSamplesByShop(ctx context.Context, shopID string) (int, error)
	GetAllSamples(ctx context.Context) ([]model.LearningSample, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for transient failures.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// ProcessingStats tracks the outcomes of an orchestrator's lifetime.
type ProcessingStats struct {
	TotalProcessed int
	LocalSuccess   int
	AIFallback     int
	Failed         int
}

// LearningStats summarizes the accumulated learning state.
type LearningStats struct {
	TotalSamples           int
	ShopsLearned           int
	AverageLocalConfidence float64
}
