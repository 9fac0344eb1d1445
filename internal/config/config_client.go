package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	defaultServerBaseURL  = "http://localhost:8080"
	defaultClientTimeout  = 10 * time.Second
	defaultClientDataFile = "pollivu.db"
)

// ClientAdapter holds network settings used by the pollctl transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the pollivu server.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database settings for the pollctl credential store.
type ClientDB struct {
	// DSN is the SQLite file path where creator tokens are kept.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientConfig is the top-level pollctl configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains the server base URL and request timeout.
	Adapter ClientAdapter
	// Storage contains local credential store settings.
	Storage ClientStorage
}

// GetClientConfig builds and validates a pollctl-specific config view from
// the merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client, fills in defaults for anything left unset (local
// server, ten second timeout, credential store under the user's home
// directory), and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.HTTPAddress == "" {
		cfg.Adapter.HTTPAddress = defaultServerBaseURL
	}

	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = defaultClientTimeout
	}

	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = defaultClientDSN()
	}
}

// defaultClientDSN places the credential store under ~/.pollivu, falling
// back to the working directory when the home directory is unknown.
func defaultClientDSN() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultClientDataFile
	}

	return filepath.Join(home, ".pollivu", defaultClientDataFile)
}
