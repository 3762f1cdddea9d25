package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSessionTokenShape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := NewSessionToken()

		assert.True(t, strings.HasPrefix(token, "user_"))
		suffix := strings.TrimPrefix(token, "user_")
		assert.Len(t, suffix, 8)
		for _, r := range suffix {
			assert.Contains(t, base36Alphabet, string(r))
		}
		seen[token] = true
	}
	// 100 draws from 36^8 colliding down to a handful would mean the
	// generator is broken.
	assert.Greater(t, len(seen), 90)
}
