package ledger

import "time"

// HistoryWindow is how far back game activity is retained.
const HistoryWindow = 7 * 24 * time.Hour

// PruneGames returns the entries of games no older than HistoryWindow
// relative to now, preserving order. Pure and idempotent; entries exactly
// at the window edge are kept.
func PruneGames(games []GameEntry, now time.Time) []GameEntry {
	cutoff := now.Unix() - int64(HistoryWindow/time.Second)
	kept := make([]GameEntry, 0, len(games))
	for _, g := range games {
		if g.At >= cutoff {
			kept = append(kept, g)
		}
	}
	return kept
}
