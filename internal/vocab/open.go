package vocab

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Open picks the backend: PostgreSQL when databaseURL is set, otherwise the
// sqlite file at dbPath.
func Open(ctx context.Context, dbPath, databaseURL string) (*Store, error) {
	var (
		backend Backend
		err     error
	)
	if databaseURL != "" {
		backend, err = OpenPostgres(ctx, databaseURL)
		log.Debug().Msg("Using PostgreSQL vocabulary backend")
	} else {
		backend, err = OpenSQLite(dbPath)
		log.Debug().Str("path", dbPath).Msg("Using sqlite vocabulary backend")
	}
	if err != nil {
		return nil, err
	}

	store, err := NewStore(ctx, backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return store, nil
}
