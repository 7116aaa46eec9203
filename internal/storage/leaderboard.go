package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultPlayerName is stored when a winner leaves the name blank.
const DefaultPlayerName = "Anonymous Cat"

// maxNameLen bounds stored names, in runes.
const maxNameLen = 24

// LeaderboardSize is the number of entries shown by default.
const LeaderboardSize = 10

// WinTime is one leaderboard entry: how long a winning round took.
type WinTime struct {
	ID        int64
	RunID     string
	GameID    string
	Name      string
	Time      time.Duration
	CreatedAt time.Time
}

// NormalizeName trims the name, caps its length and substitutes the default
// for a blank one.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultPlayerName
	}
	if r := []rune(name); len(r) > maxNameLen {
		name = strings.TrimSpace(string(r[:maxNameLen]))
	}
	return name
}

// AddWinTime stores a winning time. runID identifies the round; a second
// submission for the same round is ignored and reports false.
func (s *Store) AddWinTime(runID, gameID, name string, elapsed time.Duration) (bool, error) {
	if runID == "" {
		return false, errors.New("storage: win time needs a run id")
	}
	if elapsed < 0 {
		return false, fmt.Errorf("storage: negative win time %v", elapsed)
	}

	result, err := s.db.Exec(
		`INSERT OR IGNORE INTO win_times (run_id, game_id, name, time_ms) VALUES (?, ?, ?, ?)`,
		runID, gameID, NormalizeName(name), elapsed.Milliseconds(),
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot save win time: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n == 1, nil
}

// TopWinTimes returns the fastest wins for the game, fastest first.
// Ties keep submission order. A non-positive limit means LeaderboardSize.
func (s *Store) TopWinTimes(gameID string, limit int) ([]WinTime, error) {
	if limit <= 0 {
		limit = LeaderboardSize
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, game_id, name, time_ms, created_at
		 FROM win_times
		 WHERE game_id = ?
		 ORDER BY time_ms ASC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query win times: %w", err)
	}
	defer rows.Close()

	var entries []WinTime
	for rows.Next() {
		var e WinTime
		var ms int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.GameID, &e.Name, &ms, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Time = time.Duration(ms) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// BestWinTime returns the fastest win for the game. ok is false when nobody
// has won yet.
func (s *Store) BestWinTime(gameID string) (best time.Duration, ok bool, err error) {
	var ms sql.NullInt64
	err = s.db.QueryRow(
		"SELECT MIN(time_ms) FROM win_times WHERE game_id = ?",
		gameID,
	).Scan(&ms)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best win time: %w", err)
	}

	if !ms.Valid {
		return 0, false, nil
	}
	return time.Duration(ms.Int64) * time.Millisecond, true, nil
}
