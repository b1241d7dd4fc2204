package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowHonoursBurst(t *testing.T) {
	l := New(0.001, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "request %d", i)
	}
	assert.False(t, l.Allow("10.0.0.1"))
}

func TestAllowIsPerKey(t *testing.T) {
	l := New(0.001, 1)

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
	assert.Equal(t, 2, l.Len())
}

func TestIdleBucketsAreEvicted(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := New(0.001, 1, WithIdleTTL(time.Minute))
	l.now = func() time.Time { return clock }
	l.lastSweep = clock

	for i := 0; i < 100; i++ {
		l.Allow(fmt.Sprintf("10.0.0.%d", i))
	}
	assert.Equal(t, 100, l.Len())

	clock = clock.Add(30 * time.Second)
	assert.False(t, l.Allow("10.0.0.1"), "bucket still held within the window")

	clock = clock.Add(45 * time.Second)
	assert.True(t, l.Allow("10.0.0.99"), "evicted key gets a fresh bucket")
	assert.Equal(t, 2, l.Len(), "only keys seen in the last minute survive")

	clock = clock.Add(2 * time.Minute)
	assert.True(t, l.Allow("10.0.0.1"), "evicted key starts with a full bucket")
	assert.Equal(t, 1, l.Len())
}
