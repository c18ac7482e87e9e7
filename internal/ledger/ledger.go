package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// GameEntry is a single observed game activity. On the wire it is a
// two-element array [name, unix_seconds], not an object.
type GameEntry struct {
	Name string
	At   int64
}

// MarshalJSON encodes the entry as [name, unix_seconds].
func (e GameEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{e.Name, e.At})
}

// UnmarshalJSON decodes [name, unix_seconds]. Timestamps may be written
// with a fractional part by older writers; they are truncated to seconds.
func (e *GameEntry) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("game entry: expected 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &e.Name); err != nil {
		return fmt.Errorf("game entry name: %w", err)
	}
	var ts float64
	if err := json.Unmarshal(pair[1], &ts); err != nil {
		return fmt.Errorf("game entry timestamp: %w", err)
	}
	e.At = int64(ts)
	return nil
}

// UserRecord holds the accumulated activity counters for one user.
// VoiceJoinTime is non-nil exactly while the user is inside a voice channel.
type UserRecord struct {
	Messages      int         `json:"messages"`
	VoiceSeconds  int64       `json:"voice_seconds"`
	Games         []GameEntry `json:"games"`
	VoiceJoinTime *int64      `json:"_voice_join_time"`
}

// MarshalJSON always emits all four fields; a never-seen game list is
// written as [] rather than null.
func (r *UserRecord) MarshalJSON() ([]byte, error) {
	type wire UserRecord
	w := wire(*r)
	if w.Games == nil {
		w.Games = []GameEntry{}
	}
	return json.Marshal(w)
}

// Ledger maps user IDs to their records. Iteration order is deterministic:
// insertion order in memory, document order after a reload. Leaderboard
// tie-breaking depends on this, so the order survives the JSON round-trip.
type Ledger struct {
	records map[string]*UserRecord
	order   []string
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{records: make(map[string]*UserRecord)}
}

// Len returns the number of user records.
func (l *Ledger) Len() int {
	return len(l.order)
}

// Get returns the record for uid, if present.
func (l *Ledger) Get(uid string) (*UserRecord, bool) {
	r, ok := l.records[uid]
	return r, ok
}

// Ensure returns the record for uid, creating a zero-initialized one if the
// user has never been seen.
func (l *Ledger) Ensure(uid string) *UserRecord {
	if r, ok := l.records[uid]; ok {
		return r
	}
	r := &UserRecord{Games: []GameEntry{}}
	l.records[uid] = r
	l.order = append(l.order, uid)
	return r
}

// UserIDs returns all user IDs in ledger order.
func (l *Ledger) UserIDs() []string {
	ids := make([]string, len(l.order))
	copy(ids, l.order)
	return ids
}

// MarshalJSON writes the ledger as a single JSON object, keys in ledger
// order.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, uid := range l.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(uid)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		rec, err := json.Marshal(l.records[uid])
		if err != nil {
			return nil, err
		}
		buf.Write(rec)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the ledger object with a token decoder so that
// document order becomes ledger order.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	l.records = make(map[string]*UserRecord)
	l.order = nil

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("ledger: expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		uid, ok := tok.(string)
		if !ok {
			return fmt.Errorf("ledger: expected string key, got %v", tok)
		}
		rec := &UserRecord{}
		if err := dec.Decode(rec); err != nil {
			return fmt.Errorf("ledger: record %q: %w", uid, err)
		}
		if _, dup := l.records[uid]; !dup {
			l.order = append(l.order, uid)
		}
		l.records[uid] = rec
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
