package moderation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMuterFires(t *testing.T) {
	m := NewMuter()
	fired := make(chan struct{})

	m.Schedule("42", 10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("scheduled unmute never fired")
	}
	assert.False(t, m.Pending("42"))
}

func TestMuterCancel(t *testing.T) {
	m := NewMuter()

	m.Schedule("42", time.Hour, func() { t.Error("cancelled unmute fired") })
	require.True(t, m.Pending("42"))

	assert.True(t, m.Cancel("42"))
	assert.False(t, m.Pending("42"))
	assert.False(t, m.Cancel("42"))
}

func TestMuterRescheduleReplaces(t *testing.T) {
	m := NewMuter()
	fired := make(chan string, 2)

	m.Schedule("42", time.Hour, func() { fired <- "first" })
	m.Schedule("42", 10*time.Millisecond, func() { fired <- "second" })

	select {
	case got := <-fired:
		assert.Equal(t, "second", got)
	case <-time.After(time.Second):
		t.Fatal("rescheduled unmute never fired")
	}
}

func TestMuterImmediateWhenExpired(t *testing.T) {
	m := NewMuter()
	fired := make(chan struct{})

	// an expiry that passed while the bot was down re-arms with d <= 0
	m.Schedule("42", -time.Minute, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("expired unmute never fired")
	}
}
