package vocab

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS vocabulary (
	id          BIGSERIAL PRIMARY KEY,
	source      TEXT NOT NULL UNIQUE,
	translation TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresBackend stores the vocabulary in a shared PostgreSQL database so
// several titles can build on the same dictionary.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to databaseURL and ensures the schema exists.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresBackend, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate vocabulary schema: %w", err)
	}
	return &PostgresBackend{pool: pool}, nil
}

func (b *PostgresBackend) All(ctx context.Context) ([]Entry, error) {
	rows, err := b.pool.Query(ctx, `SELECT source, translation FROM vocabulary ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query vocabulary: %w", err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Entry])
	if err != nil {
		return nil, fmt.Errorf("collect vocabulary rows: %w", err)
	}
	return entries, nil
}

func (b *PostgresBackend) Insert(ctx context.Context, entries []Entry) error {
	return pgx.BeginFunc(ctx, b.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, e := range entries {
			batch.Queue(`INSERT INTO vocabulary (source, translation) VALUES ($1, $2)`, e.Source, e.Translation)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert vocabulary batch: %w", err)
		}
		return nil
	})
}

func (b *PostgresBackend) Close() error {
	b.pool.Close()
	return nil
}
