package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitedClient throttles calls to an underlying Client so a burst of
// analysis requests cannot exhaust the provider quota.
type RateLimitedClient struct {
	next    Client
	limiter *rate.Limiter
}

// NewRateLimitedClient allows perMinute calls per minute with the given
// burst. A non-positive perMinute disables throttling.
func NewRateLimitedClient(next Client, perMinute, burst int) *RateLimitedClient {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Limit(float64(perMinute) / 60)
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimitedClient{next: next, limiter: rate.NewLimiter(limit, burst)}
}

func (c *RateLimitedClient) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("llm rate limit: %w", err)
	}
	return nil
}

// GenerateContent implements Client.
func (c *RateLimitedClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", err
	}
	return c.next.GenerateContent(ctx, prompt, tier)
}

// GenerateJSON implements Client.
func (c *RateLimitedClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", err
	}
	return c.next.GenerateJSON(ctx, prompt, tier)
}

// Close implements Client.
func (c *RateLimitedClient) Close() error {
	return c.next.Close()
}
