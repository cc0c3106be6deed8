package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDistributedRateLimiter_Allow_FailsOpenWithoutClient(t *testing.T) {
	// Arrange
	limiter := NewDistributedIPRateLimiter(nil, "ratelimit", 10)

	// Act
	allowed, err := limiter.Allow(context.Background(), "1.2.3.4")

	// Assert
	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestDistributedRateLimiter_GetRemaining_FullLimitWithoutClient(t *testing.T) {
	// Arrange
	limiter := NewDistributedUserRateLimiter(nil, "ratelimit", 5)

	// Act
	remaining, window, err := limiter.GetRemaining(context.Background(), "user-1")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 5, remaining)
	assert.Equal(t, time.Minute, window)
}

func TestDistributedRateLimiter_Reset_NoOpWithoutClient(t *testing.T) {
	// Arrange
	limiter := NewDistributedIPRateLimiter(nil, "ratelimit", 10)

	// Act
	err := limiter.Reset(context.Background(), "1.2.3.4")

	// Assert
	assert.NoError(t, err)
}

func TestDistributedRateLimiter_GetLimitAndWindow_ReflectConstructorArgs(t *testing.T) {
	// Arrange
	limiter := NewDistributedRateLimiter(nil, "ratelimit", 42, 30*time.Second, "CUSTOM")

	// Act + Assert
	assert.Equal(t, 42, limiter.GetLimit())
	assert.Equal(t, 30*time.Second, limiter.GetWindow())
}
