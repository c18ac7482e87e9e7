package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "users_data.json"))
}

func TestLoadMissingFileReturnsEmptyLedger(t *testing.T) {
	store := newTestStore(t)

	l := store.Load()

	require.NotNil(t, l)
	assert.Equal(t, 0, l.Len())
}

func TestLoadCorruptFileReturnsEmptyLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users_data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	l := NewStore(path).Load()

	require.NotNil(t, l)
	assert.Equal(t, 0, l.Len())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	l := New()
	rec := l.Ensure("42")
	rec.Messages = 7
	rec.VoiceSeconds = 3600
	rec.Games = []GameEntry{{Name: "Dota 2", At: 1_700_000_000}}
	join := int64(1_700_000_100)
	other := l.Ensure("7")
	other.Messages = 7
	other.VoiceJoinTime = &join

	store.Save(l)
	got := store.Load()

	require.Equal(t, l.UserIDs(), got.UserIDs())
	for _, uid := range l.UserIDs() {
		want, _ := l.Get(uid)
		have, ok := got.Get(uid)
		require.True(t, ok, uid)
		assert.Equal(t, want, have, uid)
	}
}

func TestSaveEmitsAllFourFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users_data.json")
	store := NewStore(path)

	l := New()
	l.Ensure("42")
	store.Save(l)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "42")
	for _, field := range []string{"messages", "voice_seconds", "games", "_voice_join_time"} {
		assert.Contains(t, raw["42"], field)
	}
	assert.JSONEq(t, "[]", string(raw["42"]["games"]))
	assert.JSONEq(t, "null", string(raw["42"]["_voice_join_time"]))
}

func TestLoadDefaultsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users_data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"42": {"messages": 3}}`), 0644))

	l := NewStore(path).Load()

	rec, ok := l.Get("42")
	require.True(t, ok)
	assert.Equal(t, 3, rec.Messages)
	assert.Zero(t, rec.VoiceSeconds)
	assert.Nil(t, rec.VoiceJoinTime)
	assert.Empty(t, rec.Games)
}

func TestLoadAcceptsFractionalTimestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users_data.json")
	doc := `{"42": {"messages": 0, "voice_seconds": 0, "games": [["Dota 2", 1700000000.75]], "_voice_join_time": null}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	l := NewStore(path).Load()

	rec, ok := l.Get("42")
	require.True(t, ok)
	require.Len(t, rec.Games, 1)
	assert.Equal(t, GameEntry{Name: "Dota 2", At: 1_700_000_000}, rec.Games[0])
}

func TestLedgerOrderSurvivesRoundTrip(t *testing.T) {
	store := newTestStore(t)

	l := New()
	for _, uid := range []string{"9", "1", "5", "3"} {
		l.Ensure(uid)
	}
	store.Save(l)

	assert.Equal(t, []string{"9", "1", "5", "3"}, store.Load().UserIDs())
}

func TestUpdatePersistsMutation(t *testing.T) {
	store := newTestStore(t)

	store.Update(func(l *Ledger) {
		l.Ensure("42").Messages++
	})
	store.Update(func(l *Ledger) {
		l.Ensure("42").Messages++
	})

	rec, ok := store.Load().Get("42")
	require.True(t, ok)
	assert.Equal(t, 2, rec.Messages)
}
