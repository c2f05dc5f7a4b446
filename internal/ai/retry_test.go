package ai

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kandyfoma/goshopper/internal/common"
	"github.com/kandyfoma/goshopper/internal/service"
)

type flakyClient struct {
	calls    int
	failures int
	err      error
}

func (c *flakyClient) Name() string { return "flaky" }

func (c *flakyClient) Extract(_ context.Context, _ Request) (*Response, error) {
	c.calls++
	if c.calls <= c.failures {
		return nil, c.err
	}
	return &Response{Success: true, Merchant: "ShopD"}, nil
}

func fastRetryOptions() service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
	}
}

func TestRetryRecoversFromTransientFailure(t *testing.T) {
	inner := &flakyClient{failures: 2, err: fmt.Errorf("%w: connection reset", common.ErrAIUnavailable)}
	client := WithRetries(inner, fastRetryOptions())

	resp, err := client.Extract(context.Background(), Request{OCRText: "TOTAL: 100"})
	require.NoError(t, err)
	assert.Equal(t, "ShopD", resp.Merchant)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	inner := &flakyClient{failures: 10, err: fmt.Errorf("%w: 429", common.ErrAIRateLimit)}
	client := WithRetries(inner, fastRetryOptions())

	_, err := client.Extract(context.Background(), Request{OCRText: "TOTAL: 100"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMaxRetries)
	assert.Equal(t, 3, inner.calls)
}

func TestRetrySkipsMalformedResponses(t *testing.T) {
	inner := &flakyClient{failures: 10, err: fmt.Errorf("%w: not json", common.ErrAIResponseFormat)}
	client := WithRetries(inner, fastRetryOptions())

	_, err := client.Extract(context.Background(), Request{OCRText: "TOTAL: 100"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrAIResponseFormat)
	assert.Equal(t, 1, inner.calls)
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	inner := &flakyClient{failures: 10, err: fmt.Errorf("%w: down", common.ErrAIUnavailable)}
	client := WithRetries(inner, service.RetryOptions{
		MaxAttempts:  5,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Extract(ctx, Request{OCRText: "TOTAL: 100"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRetryPreservesName(t *testing.T) {
	client := WithRetries(&flakyClient{}, fastRetryOptions())
	assert.Equal(t, "flaky", client.Name())
}
