package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tymbaca/tour-go/pkg/caller"
	"github.com/tymbaca/tour-go/pkg/tracer"
	"github.com/tymbaca/tour-go/tour"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS results (
	key        TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteStorage keeps each result as its flat list JSON, one row per key.
type SQLiteStorage struct {
	db *sql.DB
}

func New(dbPath string) (*SQLiteStorage, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite storage: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) Get(ctx context.Context, key string) (tour.Result, bool, error) {
	ctx, span := tracer.Start(ctx, caller.Name())
	defer span.End()

	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM results WHERE key = ?`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return tour.Result{}, false, nil
	}
	if err != nil {
		return tour.Result{}, false, fmt.Errorf("get %s: %w", key, err)
	}

	var res tour.Result
	if err := json.Unmarshal(body, &res); err != nil {
		return tour.Result{}, false, fmt.Errorf("get %s: %w", key, err)
	}

	return res, true, nil
}

func (s *SQLiteStorage) Put(ctx context.Context, key string, res tour.Result) error {
	ctx, span := tracer.Start(ctx, caller.Name())
	defer span.End()

	body, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO results (key, body) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET body = excluded.body`,
		key, body,
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}

	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
