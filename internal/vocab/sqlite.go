package vocab

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS vocabulary (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	source      TEXT NOT NULL UNIQUE,
	translation TEXT NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_vocabulary_translation ON vocabulary(translation);
`

// SQLiteBackend stores the vocabulary in a local sqlite file.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the sqlite database at path and
// applies the schema. ":memory:" gives a private in-memory store.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary db: %w", err)
	}
	// A single connection keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)
	if err := InitDB(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate vocabulary db: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

// InitDB runs the schema statements on db.
func InitDB(db *sql.DB) error {
	for _, s := range strings.Split(sqliteSchema, ";") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (b *SQLiteBackend) All(ctx context.Context) ([]Entry, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT source, translation FROM vocabulary ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query vocabulary: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Source, &e.Translation); err != nil {
			return nil, fmt.Errorf("scan vocabulary row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (b *SQLiteBackend) Insert(ctx context.Context, entries []Entry) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin vocabulary insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO vocabulary (source, translation) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare vocabulary insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Source, e.Translation); err != nil {
			return fmt.Errorf("insert %q: %w", e.Source, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit vocabulary insert: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Close() error { return b.db.Close() }
