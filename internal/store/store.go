// Package store handles SQLite persistence for the player profile, the
// level catalog, and the game history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/mindtiles/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for game data.
type Store struct {
	db *sql.DB
}

// catalog is the level seed applied on first open. Only the first level
// starts unlocked; everything else is earned.
var catalog = []model.Level{
	{ID: 1, Name: "Getting Started", Unlocked: true},
	{ID: 2, Name: "Pattern Recognition"},
	{ID: 3, Name: "Memory Trail"},
	{ID: 4, Name: "Focus Challenge"},
	{ID: 5, Name: "Speed Test"},
	{ID: 6, Name: "Advanced Patterns"},
	{ID: 7, Name: "Memory Master"},
	{ID: 8, Name: "Attention Elite"},
	{ID: 9, Name: "Processing Pro"},
	{ID: 10, Name: "Grand Champion"},
}

// Open opens or creates the SQLite database, applies migrations, and seeds
// a fresh profile and level catalog when empty.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	if err := store.seed(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on seed failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			username TEXT NOT NULL,
			current_level INTEGER NOT NULL,
			total_score INTEGER NOT NULL,
			games_played INTEGER NOT NULL,
			streak_days INTEGER NOT NULL,
			avg_time INTEGER NOT NULL,
			best_time INTEGER NOT NULL,
			accuracy_rate INTEGER NOT NULL,
			improvement_rate INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS levels (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			unlocked INTEGER NOT NULL,
			completed INTEGER NOT NULL,
			score INTEGER NOT NULL,
			best_time INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY,
			played_at TEXT NOT NULL,
			level INTEGER NOT NULL,
			score INTEGER NOT NULL,
			time_used INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			rounds_reached INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_played_at ON games(played_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) seed() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.Exec(
		`INSERT INTO users (id, username, current_level, total_score, games_played, streak_days, avg_time, best_time, accuracy_rate, improvement_rate)
		 VALUES (1, 'player', 1, 0, 0, 0, 0, ?, 0, 0)`,
		model.UnsetBestTime,
	)
	if err != nil {
		return err
	}
	for _, lvl := range catalog {
		_, err = tx.Exec(
			`INSERT INTO levels (id, name, unlocked, completed, score, best_time) VALUES (?, ?, ?, 0, 0, 0)`,
			lvl.ID, lvl.Name, boolToInt(lvl.Unlocked),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadUser returns the single local profile.
func (s *Store) LoadUser(ctx context.Context) (model.User, error) {
	var u model.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, current_level, total_score, games_played, streak_days, avg_time, best_time, accuracy_rate, improvement_rate
		 FROM users WHERE id = 1`).Scan(
		&u.ID, &u.Username, &u.CurrentLevel, &u.TotalScore, &u.GamesPlayed, &u.StreakDays,
		&u.Stats.AverageTime, &u.Stats.BestTime, &u.Stats.AccuracyRate, &u.Stats.ImprovementRate,
	)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to load user: %w", err)
	}
	return u, nil
}

// LoadLevels returns the level catalog ordered by id.
func (s *Store) LoadLevels(ctx context.Context) ([]model.Level, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, unlocked, completed, score, best_time FROM levels ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var levels []model.Level
	for rows.Next() {
		var lvl model.Level
		var unlocked, completed int
		if err := rows.Scan(&lvl.ID, &lvl.Name, &unlocked, &completed, &lvl.Score, &lvl.BestTime); err != nil {
			return nil, err
		}
		lvl.Unlocked = unlocked != 0
		lvl.Completed = completed != 0
		lvl.Difficulty = model.DifficultyFor(lvl.ID)
		levels = append(levels, lvl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return levels, nil
}

// SaveProgress persists the post-game user and level state together with
// the game history row in one transaction.
func (s *Store) SaveProgress(ctx context.Context, user model.User, levels []model.Level, res model.GameResult) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET current_level = ?, total_score = ?, games_played = ?, streak_days = ?, avg_time = ?, best_time = ?, accuracy_rate = ?, improvement_rate = ?
		 WHERE id = 1`,
		user.CurrentLevel, user.TotalScore, user.GamesPlayed, user.StreakDays,
		user.Stats.AverageTime, user.Stats.BestTime, user.Stats.AccuracyRate, user.Stats.ImprovementRate,
	)
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE levels SET unlocked = ?, completed = ?, score = ?, best_time = ? WHERE id = ?`)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, lvl := range levels {
		if _, err = stmt.ExecContext(ctx, boolToInt(lvl.Unlocked), boolToInt(lvl.Completed), lvl.Score, lvl.BestTime, lvl.ID); err != nil {
			return 0, err
		}
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO games (played_at, level, score, time_used, accuracy, rounds_reached) VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().Format(time.RFC3339Nano), res.Level, res.Score, res.TimeUsed, res.Accuracy, res.RoundsReached,
	)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListGames returns the game history ordered oldest first.
func (s *Store) ListGames(ctx context.Context) ([]model.GameRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, played_at, level, score, time_used, accuracy, rounds_reached FROM games ORDER BY played_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var games []model.GameRecord
	for rows.Next() {
		var g model.GameRecord
		if err := rows.Scan(&g.ID, &g.PlayedAt, &g.Level, &g.Score, &g.TimeUsed, &g.Accuracy, &g.RoundsReached); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
