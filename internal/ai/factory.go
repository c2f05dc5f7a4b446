package ai

import (
	"fmt"
	"time"

	"github.com/kandyfoma/goshopper/internal/common"
	"github.com/kandyfoma/goshopper/internal/service"
)

// Config selects and configures an AI extraction provider.
type Config struct {
	Provider    string // "gemini" or "openai"
	APIKey      string
	Model       string
	MaxTokens   int
	BaseURL     string
	Timeout     time.Duration
	MinInterval time.Duration
}

// NewClient builds the configured provider wrapped in a shared rate
// limiter and transient-failure retries. A blank provider defaults to
// Gemini.
func NewClient(cfg Config) (Client, error) {
	var (
		client Client
		err    error
	)

	switch cfg.Provider {
	case "", "gemini":
		client, err = newGeminiClient(cfg)
	case "openai":
		client, err = newOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("%w: unknown AI provider %q", common.ErrInvalidConfig, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	interval := cfg.MinInterval
	if interval == 0 {
		interval = DefaultMinInterval
	}
	client = WithRateLimit(client, NewRateLimiter(interval))
	return WithRetries(client, service.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     5 * time.Second,
	}), nil
}
