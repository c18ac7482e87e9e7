package ledger

import "time"

// Recorder applies inbound gateway events to the ledger. Every call is one
// full load→mutate→save cycle against the store; there is no batching.
type Recorder struct {
	store *Store
}

// NewRecorder creates a recorder writing through store.
func NewRecorder(store *Store) *Recorder {
	return &Recorder{store: store}
}

// RecordMessage increments the user's message counter.
func (r *Recorder) RecordMessage(uid string) {
	r.store.Update(func(l *Ledger) {
		l.Ensure(uid).Messages++
	})
}

// RecordVoiceState applies a voice channel transition. Joining opens a
// session; leaving closes it and credits the elapsed seconds, clamped at
// zero so a backwards clock can never drive the accumulator negative.
// Channel-to-channel moves and spurious updates are no-ops.
func (r *Recorder) RecordVoiceState(uid string, hadChannel, hasChannel bool, now time.Time) {
	r.store.Update(func(l *Ledger) {
		rec := l.Ensure(uid)
		switch {
		case !hadChannel && hasChannel:
			ts := now.Unix()
			rec.VoiceJoinTime = &ts
		case hadChannel && !hasChannel:
			if rec.VoiceJoinTime == nil {
				return
			}
			elapsed := now.Unix() - *rec.VoiceJoinTime
			if elapsed > 0 {
				rec.VoiceSeconds += elapsed
			}
			rec.VoiceJoinTime = nil
		}
	})
}

// RecordPresence prunes the user's game history, then appends one entry per
// currently active game. Entries are not deduplicated; repeated presence
// updates for the same game accumulate.
func (r *Recorder) RecordPresence(uid string, games []string, now time.Time) {
	r.store.Update(func(l *Ledger) {
		rec := l.Ensure(uid)
		rec.Games = PruneGames(rec.Games, now)
		for _, name := range games {
			rec.Games = append(rec.Games, GameEntry{Name: name, At: now.Unix()})
		}
	})
}
