package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Now()

	t.Run("limit enforced per ip", func(t *testing.T) {
		rl := NewRateLimiter(2, time.Hour)

		assert.True(t, rl.Allow("10.0.0.1", now))
		assert.True(t, rl.Allow("10.0.0.1", now))
		assert.False(t, rl.Allow("10.0.0.1", now))

		// a different client is not affected
		assert.True(t, rl.Allow("10.0.0.2", now))
	})

	t.Run("window slides", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Hour)

		assert.True(t, rl.Allow("10.0.0.1", now))
		assert.False(t, rl.Allow("10.0.0.1", now.Add(30*time.Minute)))
		assert.True(t, rl.Allow("10.0.0.1", now.Add(61*time.Minute)))
	})

	t.Run("rejected attempts do not consume the budget", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Hour)

		assert.True(t, rl.Allow("10.0.0.1", now))
		for i := 0; i < 5; i++ {
			assert.False(t, rl.Allow("10.0.0.1", now.Add(time.Minute)))
		}
		// the single recorded attempt ages out regardless of the denials
		assert.True(t, rl.Allow("10.0.0.1", now.Add(2*time.Hour)))
	})
}
