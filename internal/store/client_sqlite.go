package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pollivu/pollivu/internal/config"
	"github.com/pollivu/pollivu/internal/logger"
)

// Sentinel errors of the local pollctl store.
var (
	// ErrCredentialNotFound is returned when no credential is stored for the
	// requested poll ID.
	ErrCredentialNotFound = errors.New("poll credential not found")

	// ErrLocalSessionNotFound is returned when no voter session has been
	// saved locally yet.
	ErrLocalSessionNotFound = errors.New("local session not found")
)

// ClientDB wraps the SQLite handle of the local credential store.
type ClientDB struct {
	*sql.DB
	logger *logger.Logger
}

// NewConnectSQLite opens (creating if necessary) the SQLite database at
// cfg.DSN, verifies it with a ping and returns the wrapped handle. The parent
// directory is created with owner-only permissions since the file holds raw
// creator tokens.
func NewConnectSQLite(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (*ClientDB, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = ":memory:"
	}

	if dsn != ":memory:" {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, fmt.Errorf("create credential store dir: %w", err)
			}
		}
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error opening local database")
		return nil, fmt.Errorf("error opening local database: %w", err)
	}

	// A single connection keeps :memory: databases coherent and sidesteps
	// SQLite write locking.
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting local database (ping)")
		return nil, err
	}

	return &ClientDB{DB: conn, logger: log}, nil
}

// Migrate creates the credential store schema when it does not exist yet.
func (db *ClientDB) Migrate() error {
	if _, err := db.Exec(createClientSchema); err != nil {
		return fmt.Errorf("client migration error: %w", err)
	}

	return nil
}
