package moderation

import (
	"sync"
	"time"
)

// Muter owns the in-process unmute timers. Each scheduled unmute keeps its
// timer handle so /unmute can cancel it instead of leaving a detached timer
// racing the manual action.
type Muter struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewMuter creates an empty scheduler.
func NewMuter() *Muter {
	return &Muter{timers: make(map[string]*time.Timer)}
}

// Schedule arms an unmute for userID after d, replacing any pending one.
// A non-positive d fires immediately.
func (m *Muter) Schedule(userID string, d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.timers[userID]; ok {
		t.Stop()
	}
	m.timers[userID] = time.AfterFunc(d, func() {
		m.mu.Lock()
		delete(m.timers, userID)
		m.mu.Unlock()
		fn()
	})
}

// Cancel stops a pending unmute and reports whether one was armed.
func (m *Muter) Cancel(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.timers[userID]
	if !ok {
		return false
	}
	t.Stop()
	delete(m.timers, userID)
	return true
}

// Pending reports whether an unmute is currently armed for userID.
func (m *Muter) Pending(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.timers[userID]
	return ok
}
