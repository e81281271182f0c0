// Package sqlite implements player record persistence on SQLite.
//
// Only this package translates career records into concrete SQL rows; the
// engine and API layers see the storage interfaces. Migrations are embedded
// and applied on open.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/omerta/internal/errors"
	"github.com/louisbranch/omerta/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/omerta/internal/storage"
	"github.com/louisbranch/omerta/internal/storage/sqlite/migrations"
)

// Store is a SQLite-backed player store.
type Store struct {
	sqlDB *sql.DB
}

// Open boots the database at path and applies embedded migrations before
// the store is handed to higher layers.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close is nil-safe so callers can defer it in all startup paths.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// LoadPlayerRecord fetches one career line by player id.
func (s *Store) LoadPlayerRecord(ctx context.Context, id string) (storage.PlayerRecord, error) {
	var record storage.PlayerRecord
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, name, total_points, games, wins, survivals, draws, rate
FROM players WHERE id = ?`, id)
	err := row.Scan(&record.ID, &record.Name, &record.TotalPoints, &record.Games,
		&record.Wins, &record.Survivals, &record.Draws, &record.Rate)
	if err == sql.ErrNoRows {
		return storage.PlayerRecord{}, errors.New(errors.CodeNotFound, "player record not found")
	}
	if err != nil {
		return storage.PlayerRecord{}, fmt.Errorf("load player record: %w", err)
	}
	return record, nil
}

// SavePlayerRecord upserts a career line.
func (s *Store) SavePlayerRecord(ctx context.Context, record storage.PlayerRecord) error {
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO players (id, name, total_points, games, wins, survivals, draws, rate, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    total_points = excluded.total_points,
    games = excluded.games,
    wins = excluded.wins,
    survivals = excluded.survivals,
    draws = excluded.draws,
    rate = excluded.rate,
    updated_at = excluded.updated_at`,
		record.ID, record.Name, record.TotalPoints, record.Games,
		record.Wins, record.Survivals, record.Draws, record.Rate,
		time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("save player record: %w", err)
	}
	return nil
}

// leaderboard columns, whitelisted so request input never reaches SQL.
var topFields = map[string]string{
	"total_points": "total_points",
	"rate":         "rate",
	"games":        "games",
	"wins":         "wins",
}

// TopPlayers returns up to limit records ordered by the given field.
func (s *Store) TopPlayers(ctx context.Context, field string, limit int) ([]storage.PlayerRecord, error) {
	column, ok := topFields[field]
	if !ok {
		column = "total_points"
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.sqlDB.QueryContext(ctx, fmt.Sprintf(`
SELECT id, name, total_points, games, wins, survivals, draws, rate
FROM players ORDER BY %s DESC LIMIT ?`, column), limit)
	if err != nil {
		return nil, fmt.Errorf("query top players: %w", err)
	}
	defer rows.Close()

	var records []storage.PlayerRecord
	for rows.Next() {
		var record storage.PlayerRecord
		if err := rows.Scan(&record.ID, &record.Name, &record.TotalPoints, &record.Games,
			&record.Wins, &record.Survivals, &record.Draws, &record.Rate); err != nil {
			return nil, fmt.Errorf("scan top players: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top players: %w", err)
	}
	return records, nil
}

// RecalculateRatings refreshes the derived rating of every stored record.
func (s *Store) RecalculateRatings(ctx context.Context) error {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, name, total_points, games, wins, survivals, draws, rate FROM players`)
	if err != nil {
		return fmt.Errorf("query players: %w", err)
	}
	var records []storage.PlayerRecord
	for rows.Next() {
		var record storage.PlayerRecord
		if err := rows.Scan(&record.ID, &record.Name, &record.TotalPoints, &record.Games,
			&record.Wins, &record.Survivals, &record.Draws, &record.Rate); err != nil {
			rows.Close()
			return fmt.Errorf("scan players: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterate players: %w", err)
	}
	rows.Close()

	for i := range records {
		records[i].RecalculateDerivedRating()
		if err := s.SavePlayerRecord(ctx, records[i]); err != nil {
			return err
		}
	}
	return nil
}
