package storage

import (
	"fmt"
	"time"
)

// SessionRecord is one finished game.
type SessionRecord struct {
	ID        string
	GameID    string
	Start     time.Time
	End       time.Time
	Score     int
	Lines     int
	Blocks    int
	Duration  time.Duration
	Completed bool
}

// SaveSession records a finished session. Saving the same ID twice
// replaces the earlier record.
func (s *Store) SaveSession(r SessionRecord) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO sessions
		 (session_id, game_id, started_at, ended_at, score, lines, blocks, duration_ns, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.GameID,
		formatTimestamp(r.Start),
		formatTimestamp(r.End),
		r.Score,
		r.Lines,
		r.Blocks,
		int64(r.Duration),
		r.Completed,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}
	return nil
}

// RecentSessions returns the latest sessions of a game, newest first.
// A non-positive limit means 20.
func (s *Store) RecentSessions(gameID string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT session_id, game_id, started_at, ended_at, score, lines, blocks, duration_ns, completed
		 FROM sessions
		 WHERE game_id = ?
		 ORDER BY ended_at DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var r SessionRecord
		var start, end any
		var durationNS int64
		if err := rows.Scan(
			&r.ID,
			&r.GameID,
			&start,
			&end,
			&r.Score,
			&r.Lines,
			&r.Blocks,
			&durationNS,
			&r.Completed,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Start = parseTimestamp(start)
		r.End = parseTimestamp(end)
		r.Duration = time.Duration(durationNS)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}
