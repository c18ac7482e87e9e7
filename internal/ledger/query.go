package ledger

import (
	"math"
	"sort"
	"time"
)

// RankedUser is one leaderboard row.
type RankedUser struct {
	UserID string
	Value  int64
}

// UserSummary is one user's weekly activity digest.
type UserSummary struct {
	Messages   int
	VoiceHours float64
	GameCounts map[string]int
}

// TopByMessages returns up to limit users sorted descending by message
// count. The sort is stable, so users with equal counts keep ledger order.
func TopByMessages(l *Ledger, limit int) []RankedUser {
	return top(l, limit, func(r *UserRecord) int64 { return int64(r.Messages) })
}

// TopByVoice returns up to limit users sorted descending by accumulated
// voice seconds.
func TopByVoice(l *Ledger, limit int) []RankedUser {
	return top(l, limit, func(r *UserRecord) int64 { return r.VoiceSeconds })
}

func top(l *Ledger, limit int, value func(*UserRecord) int64) []RankedUser {
	ranked := make([]RankedUser, 0, l.Len())
	for _, uid := range l.UserIDs() {
		rec, _ := l.Get(uid)
		ranked = append(ranked, RankedUser{UserID: uid, Value: value(rec)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// RankOf returns the user's 1-based position in the message leaderboard,
// or false if the user has no record.
func RankOf(l *Ledger, uid string) (int, bool) {
	if _, ok := l.Get(uid); !ok {
		return 0, false
	}
	for i, row := range top(l, -1, func(r *UserRecord) int64 { return int64(r.Messages) }) {
		if row.UserID == uid {
			return i + 1, true
		}
	}
	return 0, false
}

// WeeklySummary produces, for every user, the message count, voice hours
// rounded to two decimals and a frequency count of game names inside the
// retention window. Iterate with l.UserIDs() for a deterministic listing.
func WeeklySummary(l *Ledger, now time.Time) map[string]UserSummary {
	out := make(map[string]UserSummary, l.Len())
	for _, uid := range l.UserIDs() {
		rec, _ := l.Get(uid)
		counts := make(map[string]int)
		for _, g := range PruneGames(rec.Games, now) {
			counts[g.Name]++
		}
		out[uid] = UserSummary{
			Messages:   rec.Messages,
			VoiceHours: RoundHours(rec.VoiceSeconds),
			GameCounts: counts,
		}
	}
	return out
}

// RoundHours converts seconds to hours rounded to two decimal places.
func RoundHours(seconds int64) float64 {
	return math.Round(float64(seconds)/3600*100) / 100
}
