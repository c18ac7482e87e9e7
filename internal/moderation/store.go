package moderation

import (
	"fmt"
	"log"
	"time"
)

// Warning is one issued warning.
type Warning struct {
	UserID    string
	IssuedBy  string
	Reason    string
	CreatedAt time.Time
}

// Mute is a pending mute with its expiry.
type Mute struct {
	UserID    string
	ExpiresAt time.Time
	Reason    string
}

// Store handles moderation state persistence
type Store struct {
	db *DB
}

// NewStore creates a new moderation store
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// AddWarning records a warning and returns the user's new warning count.
func (s *Store) AddWarning(userID, issuedBy, reason string) (int, error) {
	_, err := s.db.conn.Exec(
		"INSERT INTO warnings (user_id, issued_by, reason) VALUES ($1, $2, $3)",
		userID, issuedBy, reason)
	if err != nil {
		return 0, fmt.Errorf("failed to add warning: %w", err)
	}

	var count int
	err = s.db.conn.QueryRow(
		"SELECT COUNT(*) FROM warnings WHERE user_id = $1", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count warnings: %w", err)
	}
	return count, nil
}

// Warnings returns all warnings for a user, oldest first.
func (s *Store) Warnings(userID string) ([]Warning, error) {
	rows, err := s.db.conn.Query(
		"SELECT issued_by, reason, created_at FROM warnings WHERE user_id = $1 ORDER BY created_at",
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get warnings: %w", err)
	}
	defer rows.Close()

	var warnings []Warning
	for rows.Next() {
		w := Warning{UserID: userID}
		if err := rows.Scan(&w.IssuedBy, &w.Reason, &w.CreatedAt); err != nil {
			log.Printf("Error scanning warning row: %v", err)
			continue
		}
		warnings = append(warnings, w)
	}

	return warnings, nil
}

// ClearWarnings deletes all warnings for a user and reports whether any
// existed.
func (s *Store) ClearWarnings(userID string) (bool, error) {
	res, err := s.db.conn.Exec("DELETE FROM warnings WHERE user_id = $1", userID)
	if err != nil {
		return false, fmt.Errorf("failed to clear warnings: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// SetMute upserts the user's mute expiry so a pending unmute survives a
// restart.
func (s *Store) SetMute(userID string, expiresAt time.Time, reason string) error {
	_, err := s.db.conn.Exec(`
		INSERT INTO mutes (user_id, expires_at, reason)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET expires_at = EXCLUDED.expires_at, reason = EXCLUDED.reason`,
		userID, expiresAt, reason)
	if err != nil {
		return fmt.Errorf("failed to set mute: %w", err)
	}
	return nil
}

// ClearMute removes the user's mute record.
func (s *Store) ClearMute(userID string) error {
	_, err := s.db.conn.Exec("DELETE FROM mutes WHERE user_id = $1", userID)
	if err != nil {
		return fmt.Errorf("failed to clear mute: %w", err)
	}
	return nil
}

// PendingMutes returns every recorded mute, including ones that expired
// while the bot was down; callers re-arm those with a zero delay.
func (s *Store) PendingMutes() ([]Mute, error) {
	rows, err := s.db.conn.Query("SELECT user_id, expires_at, reason FROM mutes")
	if err != nil {
		return nil, fmt.Errorf("failed to get pending mutes: %w", err)
	}
	defer rows.Close()

	var mutes []Mute
	for rows.Next() {
		var m Mute
		if err := rows.Scan(&m.UserID, &m.ExpiresAt, &m.Reason); err != nil {
			log.Printf("Error scanning mute row: %v", err)
			continue
		}
		mutes = append(mutes, m)
	}

	return mutes, nil
}
