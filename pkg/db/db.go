// Package db persists player scores and statistics in a local SQLite file.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"cardtable/pkg/account"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Store wraps the SQLite database holding the durable player state
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database at path and ensures the schema
// exists
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // SQLite is not concurrent for writes

	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS players (
			name  TEXT PRIMARY KEY,
			score INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS stats (
			player TEXT NOT NULL,
			game   TEXT NOT NULL,
			won    INTEGER NOT NULL DEFAULT 0,
			lost   INTEGER NOT NULL DEFAULT 0,
			push   INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (player, game),
			FOREIGN KEY (player) REFERENCES players(name) ON DELETE CASCADE
		);`,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // nolint:errcheck

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Save writes the snapshot, replacing whatever was stored before
func (s *Store) Save(ctx context.Context, snapshot *account.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM stats`); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM players`); err != nil {
		return err
	}

	for _, player := range snapshot.Players {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO players (name, score) VALUES (?, ?)`,
			player.Name, player.Score)
		if err != nil {
			return err
		}
	}

	for _, stat := range snapshot.Stats {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO stats (player, game, won, lost, push) VALUES (?, ?, ?, ?, ?)`,
			stat.Player, stat.Game, stat.Won, stat.Lost, stat.Push)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Load reads the stored snapshot. An empty database yields an empty
// snapshot, not an error.
func (s *Store) Load(ctx context.Context) (*account.Snapshot, error) {
	snapshot := &account.Snapshot{}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, score FROM players ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var record account.PlayerRecord
		if err := rows.Scan(&record.Name, &record.Score); err != nil {
			return nil, err
		}

		snapshot.Players = append(snapshot.Players, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	statRows, err := s.db.QueryContext(ctx,
		`SELECT player, game, won, lost, push FROM stats ORDER BY player, game`)
	if err != nil {
		return nil, err
	}
	defer statRows.Close()

	for statRows.Next() {
		var record account.StatRecord
		if err := statRows.Scan(&record.Player, &record.Game, &record.Won, &record.Lost, &record.Push); err != nil {
			return nil, err
		}

		snapshot.Stats = append(snapshot.Stats, record)
	}

	if err := statRows.Err(); err != nil {
		return nil, err
	}

	return snapshot, nil
}
