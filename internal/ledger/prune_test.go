package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPruneGamesDropsOldEntries(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	games := []GameEntry{
		{Name: "Dota 2", At: now.Unix() - 8*86400},
		{Name: "Dota 2", At: now.Unix() - 1*86400},
	}

	kept := PruneGames(games, now)

	assert.Equal(t, []GameEntry{{Name: "Dota 2", At: now.Unix() - 1*86400}}, kept)
}

func TestPruneGamesKeepsWindowEdge(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	games := []GameEntry{{Name: "CS2", At: now.Unix() - 7*86400}}

	assert.Len(t, PruneGames(games, now), 1)
}

func TestPruneGamesIdempotent(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	games := []GameEntry{
		{Name: "a", At: now.Unix() - 10*86400},
		{Name: "b", At: now.Unix() - 3*86400},
		{Name: "c", At: now.Unix()},
	}

	once := PruneGames(games, now)
	twice := PruneGames(once, now)

	assert.Equal(t, once, twice)
	assert.LessOrEqual(t, len(once), len(games))
}

func TestPruneGamesPreservesOrder(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	games := []GameEntry{
		{Name: "first", At: now.Unix() - 3*86400},
		{Name: "second", At: now.Unix() - 2*86400},
		{Name: "third", At: now.Unix() - 1*86400},
	}

	kept := PruneGames(games, now)

	assert.Equal(t, games, kept)
}

func TestPruneGamesEmpty(t *testing.T) {
	kept := PruneGames(nil, time.Unix(1_700_000_000, 0))
	assert.Empty(t, kept)
}
