package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustion(t *testing.T) {
	bucket := NewTokenBucket(3, 1, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _ := bucket.Allow()
		assert.True(t, allowed, "token %d", i)
	}

	allowed, wait := bucket.Allow()
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))
}

func TestTokenBucketRefill(t *testing.T) {
	bucket := NewTokenBucket(1, 1, 10*time.Millisecond)

	allowed, _ := bucket.Allow()
	assert.True(t, allowed)

	allowed, _ = bucket.Allow()
	assert.False(t, allowed)

	time.Sleep(15 * time.Millisecond)

	allowed, _ = bucket.Allow()
	assert.True(t, allowed, "bucket should refill after the interval")
}

func TestRateLimiterIsolatesUsersAndActions(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 10; i++ {
		allowed, _ := rl.Allow("u1", "send_message")
		assert.True(t, allowed)
	}

	allowed, _ := rl.Allow("u1", "send_message")
	assert.False(t, allowed, "u1's message bucket is empty")

	allowed, _ = rl.Allow("u2", "send_message")
	assert.True(t, allowed, "u2 has a separate bucket")

	allowed, _ = rl.Allow("u1", "create_listing")
	assert.True(t, allowed, "a different action has a separate bucket")
}
