package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingClient struct {
	calls  int
	closed bool
}

func (c *countingClient) GenerateContent(_ context.Context, _ string, _ ModelTier) (string, error) {
	c.calls++
	return "text", nil
}

func (c *countingClient) GenerateJSON(_ context.Context, _ string, _ ModelTier) (string, error) {
	c.calls++
	return "{}", nil
}

func (c *countingClient) Close() error {
	c.closed = true
	return nil
}

func TestRateLimitedClient_Unlimited(t *testing.T) {
	inner := &countingClient{}
	c := NewRateLimitedClient(inner, 0, 0)

	for i := 0; i < 20; i++ {
		_, err := c.GenerateJSON(context.Background(), "p", TierLite)
		require.NoError(t, err)
	}
	assert.Equal(t, 20, inner.calls)
}

func TestRateLimitedClient_BlocksBeyondBurst(t *testing.T) {
	inner := &countingClient{}
	c := NewRateLimitedClient(inner, 1, 1)

	out, err := c.GenerateContent(context.Background(), "p", TierLite)
	require.NoError(t, err)
	assert.Equal(t, "text", out)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.GenerateJSON(ctx, "p", TierLite)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm rate limit")
	assert.Equal(t, 1, inner.calls)
}

func TestRateLimitedClient_Close(t *testing.T) {
	inner := &countingClient{}
	require.NoError(t, NewRateLimitedClient(inner, 10, 1).Close())
	assert.True(t, inner.closed)
}
