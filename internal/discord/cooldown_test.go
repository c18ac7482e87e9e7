package discord

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCooldownAllowsFirstCall(t *testing.T) {
	c := NewCooldown(5 * time.Minute)
	now := time.Unix(1_700_000_000, 0)

	assert.True(t, c.Allow("top:42", now))
}

func TestCooldownBlocksInsideWindow(t *testing.T) {
	c := NewCooldown(5 * time.Minute)
	now := time.Unix(1_700_000_000, 0)

	assert.True(t, c.Allow("top:42", now))
	assert.False(t, c.Allow("top:42", now.Add(4*time.Minute)))
	assert.True(t, c.Allow("top:42", now.Add(5*time.Minute)))
}

func TestCooldownKeysAreIndependent(t *testing.T) {
	c := NewCooldown(5 * time.Minute)
	now := time.Unix(1_700_000_000, 0)

	assert.True(t, c.Allow("top:42", now))
	assert.True(t, c.Allow("voicetop:42", now))
	assert.True(t, c.Allow("top:43", now))
}
