// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Pollivu Authors

package config

// validate checks that the final merged [StructuredConfig] contains no
// malformed values before it is used at startup.
//
// Presence checks for the encryption secret and salt live in the encryption
// engine constructor, not here: pollctl shares this loader and has no use
// for either value, so requiring them would break the client for no gain.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.KeyCacheSize < 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Auth.TokenDuration < 0 {
		return ErrInvalidAuthConfigs
	}

	if cfg.Server.RequestTimeout < 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Adapter.RequestTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.CleanupInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
