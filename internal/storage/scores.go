package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ScoreEntry is one finished run of a game.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// GameStats aggregates the runs of one game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

const (
	scoreColumns = `SELECT id, game_id, score, created_at FROM scores WHERE game_id = ? ORDER BY score DESC, id ASC`
	statsColumns = `SELECT game_id, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at) FROM scores`
)

// SaveScore records a finished run and returns its row ID.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO scores (game_id, score) VALUES (?, ?)`, gameID, score)
	if err != nil {
		return 0, fmt.Errorf("storage: insert score for %s: %w", gameID, err)
	}
	return res.LastInsertId()
}

// TopScores returns the best limit runs of a game, highest first. Ties keep
// insertion order. A non-positive limit means 10.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.scores(scoreColumns+` LIMIT ?`, gameID, limit)
}

// AllScores returns every run of a game, highest first.
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	return s.scores(scoreColumns, gameID)
}

func (s *Store) scores(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: query scores: %w", err)
	}
	defer rows.Close()

	var out []ScoreEntry
	for rows.Next() {
		var (
			e  ScoreEntry
			at any
		)
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &at); err != nil {
			return nil, fmt.Errorf("storage: scan score: %w", err)
		}
		e.CreatedAt = parseTime(at)
		out = append(out, e)
	}
	return out, rows.Err()
}

// HighScore returns the best score of a game, or 0 before the first run.
func (s *Store) HighScore(gameID string) (int, error) {
	var best int
	err := s.db.QueryRow(`SELECT COALESCE(MAX(score), 0) FROM scores WHERE game_id = ?`, gameID).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: high score for %s: %w", gameID, err)
	}
	return best, nil
}

// ClearScores removes every run of a game.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec(`DELETE FROM scores WHERE game_id = ?`, gameID); err != nil {
		return fmt.Errorf("storage: clear scores for %s: %w", gameID, err)
	}
	return nil
}

// GetGameStats aggregates the runs of one game. A game that was never played
// yields zero stats.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	row := s.db.QueryRow(statsColumns+` WHERE game_id = ? GROUP BY game_id`, gameID)
	stats, err := scanStats(row)
	if errors.Is(err, sql.ErrNoRows) {
		return &GameStats{GameID: gameID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: stats for %s: %w", gameID, err)
	}
	return stats, nil
}

// GetAllGamesStats aggregates every game that has at least one run, keyed by
// game ID.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(statsColumns + ` GROUP BY game_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: query stats: %w", err)
	}
	defer rows.Close()

	all := make(map[string]*GameStats)
	for rows.Next() {
		stats, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: scan stats: %w", err)
		}
		all[stats.GameID] = stats
	}
	return all, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStats(r scanner) (*GameStats, error) {
	var (
		gs   GameStats
		last any
	)
	if err := r.Scan(&gs.GameID, &gs.GamesCount, &gs.HighScore, &gs.AvgScore, &gs.TotalScore, &last); err != nil {
		return nil, err
	}
	gs.LastPlayed = parseTime(last)
	return &gs, nil
}
