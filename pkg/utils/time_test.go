package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNowRFC3339_ProducesParseableTimestamp(t *testing.T) {
	// Arrange + Act
	s := NowRFC3339()

	// Assert
	parsed, err := time.Parse(time.RFC3339, s)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, time.Minute)
}

func TestParseRFC3339_RoundTripsNowRFC3339Output(t *testing.T) {
	// Arrange
	s := NowRFC3339()

	// Act
	parsed, err := ParseRFC3339(s)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, s, parsed.Format(time.RFC3339))
}

func TestParseRFC3339_RejectsMalformedInput(t *testing.T) {
	// Arrange + Act
	_, err := ParseRFC3339("not-a-timestamp")

	// Assert
	assert.Error(t, err)
}
