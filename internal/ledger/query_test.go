package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerWithMessages(counts map[string]int, order []string) *Ledger {
	l := New()
	for _, uid := range order {
		l.Ensure(uid).Messages = counts[uid]
	}
	return l
}

func TestTopByMessagesSortsDescending(t *testing.T) {
	l := ledgerWithMessages(map[string]int{"a": 1, "b": 5, "c": 3}, []string{"a", "b", "c"})

	rows := TopByMessages(l, 10)

	assert.Equal(t, []RankedUser{
		{UserID: "b", Value: 5},
		{UserID: "c", Value: 3},
		{UserID: "a", Value: 1},
	}, rows)
}

func TestTopByMessagesStableTieBreak(t *testing.T) {
	l := ledgerWithMessages(map[string]int{"later": 2, "earlier": 2, "top": 9}, []string{"later", "earlier", "top"})

	rows := TopByMessages(l, 10)

	// equal counts keep ledger insertion order
	assert.Equal(t, []RankedUser{
		{UserID: "top", Value: 9},
		{UserID: "later", Value: 2},
		{UserID: "earlier", Value: 2},
	}, rows)
}

func TestTopByMessagesTruncates(t *testing.T) {
	l := ledgerWithMessages(map[string]int{"a": 1, "b": 2, "c": 3}, []string{"a", "b", "c"})

	assert.Len(t, TopByMessages(l, 2), 2)
}

func TestTopByVoice(t *testing.T) {
	l := New()
	l.Ensure("a").VoiceSeconds = 100
	l.Ensure("b").VoiceSeconds = 7200

	rows := TopByVoice(l, 10)

	require.Len(t, rows, 2)
	assert.Equal(t, RankedUser{UserID: "b", Value: 7200}, rows[0])
}

func TestRankOf(t *testing.T) {
	l := ledgerWithMessages(map[string]int{"a": 1, "b": 5, "c": 3}, []string{"a", "b", "c"})

	rank, ok := RankOf(l, "a")
	require.True(t, ok)
	assert.Equal(t, 3, rank)

	rank, ok = RankOf(l, "b")
	require.True(t, ok)
	assert.Equal(t, 1, rank)

	_, ok = RankOf(l, "missing")
	assert.False(t, ok)
}

func TestWeeklySummary(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	l := New()
	rec := l.Ensure("42")
	rec.Messages = 12
	rec.VoiceSeconds = 5400
	rec.Games = []GameEntry{
		{Name: "Dota 2", At: now.Unix() - 8*86400},
		{Name: "Dota 2", At: now.Unix() - 86400},
		{Name: "Dota 2", At: now.Unix() - 3600},
		{Name: "Counter-Strike 2", At: now.Unix() - 7200},
	}

	summaries := WeeklySummary(l, now)

	require.Contains(t, summaries, "42")
	sum := summaries["42"]
	assert.Equal(t, 12, sum.Messages)
	assert.Equal(t, 1.5, sum.VoiceHours)
	assert.Equal(t, map[string]int{"Dota 2": 2, "Counter-Strike 2": 1}, sum.GameCounts)
}

func TestRoundHours(t *testing.T) {
	assert.Equal(t, 1.0, RoundHours(3600))
	assert.Equal(t, 0.0, RoundHours(0))
	assert.Equal(t, 0.28, RoundHours(1000))
}
