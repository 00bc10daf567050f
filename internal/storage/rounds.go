package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-sweeper/internal/core"
)

// Round is a persisted finished round.
type Round struct {
	ID        int64
	GameID    string
	Width     int
	Height    int
	BombRate  float64
	Seed      int64
	Outcome   string
	Opened    int
	Duration  time.Duration
	Snapshot  string
	CreatedAt time.Time
}

// RoundStats aggregates finished rounds of one game.
type RoundStats struct {
	GameID   string
	Played   int
	Wins     int
	Losses   int
	BestTime time.Duration // fastest win, zero if never won
}

// WinRate returns wins divided by played rounds.
func (r RoundStats) WinRate() float64 {
	if r.Played == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Played)
}

// SaveRound records a finished round. Returns the ID of the inserted record.
func (s *Store) SaveRound(summary core.RoundSummary) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO rounds
		 (game_id, width, height, bomb_rate, seed, outcome, opened, duration_ms, snapshot)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.GameID,
		summary.Width,
		summary.Height,
		summary.BombRate,
		summary.Seed,
		summary.Outcome,
		summary.Opened,
		summary.Duration.Milliseconds(),
		summary.Snapshot,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordRound satisfies the round recorder used by the network surfaces.
func (s *Store) RecordRound(summary core.RoundSummary) error {
	_, err := s.SaveRound(summary)
	return err
}

// RecentRounds retrieves the most recent rounds for a game, newest first.
func (s *Store) RecentRounds(gameID string, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, width, height, bomb_rate, seed, outcome, opened, duration_ms, snapshot, created_at
		 FROM rounds
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		var r Round
		var durationMs int64
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.GameID,
			&r.Width,
			&r.Height,
			&r.BombRate,
			&r.Seed,
			&r.Outcome,
			&r.Opened,
			&durationMs,
			&r.Snapshot,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		rounds = append(rounds, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rounds, nil
}

// RoundStats aggregates wins, losses and the fastest win for a game.
func (s *Store) RoundStats(gameID string) (RoundStats, error) {
	stats := RoundStats{GameID: gameID}

	var bestMs int64
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = 'lost' THEN 1 ELSE 0 END), 0),
		        COALESCE(MIN(CASE WHEN outcome = 'won' THEN duration_ms END), 0)
		 FROM rounds WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Played, &stats.Wins, &stats.Losses, &bestMs)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get round stats: %w", err)
	}

	stats.BestTime = time.Duration(bestMs) * time.Millisecond
	return stats, nil
}
