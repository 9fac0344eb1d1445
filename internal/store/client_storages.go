package store

import (
	"context"
	"fmt"

	"github.com/pollivu/pollivu/internal/config"
	"github.com/pollivu/pollivu/internal/logger"
)

// ClientStorages groups the client-side repositories into a single value that
// can be passed around the pollctl command layer. Currently it holds only
// [CredentialStore]; additional repositories can be added here as the feature
// set grows.
type ClientStorages struct {
	// Credentials is the SQLite-backed store for creator tokens and the
	// local voter session.
	Credentials CredentialStore
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Creates the schema via [ClientDB.Migrate].
//  3. Constructs and returns a [ClientStorages] value wired to a fresh
//     [CredentialStore].
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Credentials: NewCredentialRepository(db, logger),
	}, nil
}
