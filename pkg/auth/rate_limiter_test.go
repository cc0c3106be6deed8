package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlidingWindowLimiter_AllowsUpToLimitThenBlocks(t *testing.T) {
	// Arrange
	ctx := context.Background()
	limiter := NewSlidingWindowLimiter(2, time.Minute)

	// Act + Assert
	allowed, err := limiter.Allow(ctx, "k")
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "k")
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "k")
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestSlidingWindowLimiter_Reset_ClearsHistoryForKey(t *testing.T) {
	// Arrange
	ctx := context.Background()
	limiter := NewSlidingWindowLimiter(1, time.Minute)
	_, err := limiter.Allow(ctx, "k")
	assert.NoError(t, err)
	blocked, err := limiter.Allow(ctx, "k")
	assert.NoError(t, err)
	assert.False(t, blocked)

	// Act
	assert.NoError(t, limiter.Reset(ctx, "k"))

	// Assert
	allowed, err := limiter.Allow(ctx, "k")
	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestSlidingWindowLimiter_TracksKeysIndependently(t *testing.T) {
	// Arrange
	ctx := context.Background()
	limiter := NewSlidingWindowLimiter(1, time.Minute)

	// Act
	allowedA, err := limiter.Allow(ctx, "a")
	assert.NoError(t, err)
	allowedB, err := limiter.Allow(ctx, "b")
	assert.NoError(t, err)

	// Assert
	assert.True(t, allowedA)
	assert.True(t, allowedB)
}

func TestIPRateLimiter_Allow_EnforcesPerMinuteLimit(t *testing.T) {
	// Arrange
	ctx := context.Background()
	limiter := NewIPRateLimiter(1)

	// Act + Assert
	allowed, err := limiter.Allow(ctx, "203.0.113.1")
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "203.0.113.1")
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestCompositeRateLimiter_Allow_RequiresAllLimitersToAllow(t *testing.T) {
	// Arrange
	ctx := context.Background()
	generous := NewSlidingWindowLimiter(100, time.Minute)
	strict := NewSlidingWindowLimiter(1, time.Minute)
	composite := NewCompositeRateLimiter(generous, strict)

	// Act + Assert
	allowed, err := composite.Allow(ctx, "k")
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = composite.Allow(ctx, "k")
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestCompositeRateLimiter_Reset_ResetsEveryUnderlyingLimiter(t *testing.T) {
	// Arrange
	ctx := context.Background()
	strict := NewSlidingWindowLimiter(1, time.Minute)
	composite := NewCompositeRateLimiter(strict)
	_, err := composite.Allow(ctx, "k")
	assert.NoError(t, err)

	// Act
	assert.NoError(t, composite.Reset(ctx, "k"))

	// Assert
	allowed, err := composite.Allow(ctx, "k")
	assert.NoError(t, err)
	assert.True(t, allowed)
}
