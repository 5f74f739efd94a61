package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNoSave is returned by LoadSave when the game has no save slot.
var ErrNoSave = errors.New("storage: no save")

// SaveRecord is the content of a save slot. Data is opaque to the store.
type SaveRecord struct {
	GameID  string
	Version string
	Data    []byte
	SavedAt time.Time
}

// WriteSave replaces the save slot of a game.
func (s *Store) WriteSave(gameID, version string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (game_id, version, data, saved_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(game_id) DO UPDATE SET
		   version = excluded.version,
		   data = excluded.data,
		   saved_at = excluded.saved_at`,
		gameID, version, data, formatTimestamp(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write save: %w", err)
	}
	return nil
}

// LoadSave reads the save slot of a game, or returns ErrNoSave.
func (s *Store) LoadSave(gameID string) (SaveRecord, error) {
	r := SaveRecord{GameID: gameID}
	var savedAt any
	err := s.db.QueryRow(
		"SELECT version, data, saved_at FROM saves WHERE game_id = ?",
		gameID,
	).Scan(&r.Version, &r.Data, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return SaveRecord{}, ErrNoSave
	}
	if err != nil {
		return SaveRecord{}, fmt.Errorf("storage: cannot load save: %w", err)
	}
	r.SavedAt = parseTimestamp(savedAt)
	return r, nil
}

// DeleteSave empties the save slot of a game. Deleting a missing slot
// is not an error.
func (s *Store) DeleteSave(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM saves WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	return nil
}

// UpdateStatistics replaces the serialized statistics of a game with the
// result of update, which receives the stored value (found is false when
// there is none). The read and the write share one transaction, so
// concurrent sessions folding into the same row do not lose updates.
// An error from update aborts the transaction and is returned as is.
func (s *Store) UpdateStatistics(gameID string, update func(data []byte, found bool) ([]byte, error)) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin statistics update: %w", err)
	}
	defer tx.Rollback()

	var text string
	found := true
	err = tx.QueryRow("SELECT data FROM statistics WHERE game_id = ?", gameID).Scan(&text)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		found = false
	case err != nil:
		return fmt.Errorf("storage: cannot load statistics: %w", err)
	}

	data, err := update([]byte(text), found)
	if err != nil {
		return err
	}

	_, err = tx.Exec(
		`INSERT INTO statistics (game_id, data, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id) DO UPDATE SET
		   data = excluded.data,
		   updated_at = excluded.updated_at`,
		gameID, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save statistics: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit statistics: %w", err)
	}
	return nil
}

// LoadStatistics returns the serialized statistics of a game.
// found is false when none were stored yet.
func (s *Store) LoadStatistics(gameID string) (data []byte, found bool, err error) {
	var text string
	err = s.db.QueryRow("SELECT data FROM statistics WHERE game_id = ?", gameID).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: cannot load statistics: %w", err)
	}
	return []byte(text), true, nil
}
