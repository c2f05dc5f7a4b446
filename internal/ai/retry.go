package ai

import (
	"context"
	"errors"

	"github.com/kandyfoma/goshopper/internal/common"
	"github.com/kandyfoma/goshopper/internal/service"
)

// retryingClient re-attempts transient provider failures. Malformed
// responses are not retried; the model is unlikely to do better on an
// identical prompt, and the caller has a local result to fall back on.
type retryingClient struct {
	inner Client
	opts  service.RetryOptions
}

// WithRetries wraps client so rate limits and transport errors are retried
// with exponential backoff.
func WithRetries(client Client, opts service.RetryOptions) Client {
	return &retryingClient{inner: client, opts: opts}
}

func (c *retryingClient) Name() string {
	return c.inner.Name()
}

func (c *retryingClient) Extract(ctx context.Context, req Request) (*Response, error) {
	var resp *Response
	err := common.WithRetry(ctx, func() error {
		var err error
		resp, err = c.inner.Extract(ctx, req)
		if err == nil {
			return nil
		}
		if common.IsRetryable(err) || errors.Is(err, common.ErrAIUnavailable) {
			return err
		}
		return &common.RetryableError{Err: err, Retryable: false}
	}, c.opts)
	if err != nil {
		return nil, err
	}
	return resp, nil
}
