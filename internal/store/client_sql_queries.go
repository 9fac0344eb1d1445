// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Pollivu Authors

package store

const (
	createClientSchema = `
		CREATE TABLE IF NOT EXISTS credentials (
			poll_id       TEXT PRIMARY KEY,
			question      TEXT NOT NULL DEFAULT '',
			share_url     TEXT NOT NULL DEFAULT '',
			creator_token TEXT NOT NULL,
			created_at    TIMESTAMP NOT NULL
		);

		CREATE TABLE IF NOT EXISTS session (
			id         INTEGER PRIMARY KEY CHECK (id = 1),
			session_id TEXT NOT NULL
		);`

	saveCredential = `
		INSERT INTO credentials (
			poll_id,
			question,
			share_url,
			creator_token,
			created_at
		) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (poll_id) DO UPDATE SET
			question      = excluded.question,
			share_url     = excluded.share_url,
			creator_token = excluded.creator_token;`

	getCredential = `
		SELECT
			poll_id,
			question,
			share_url,
			creator_token,
			created_at
		FROM credentials
		WHERE poll_id = ?;`

	listCredentials = `
		SELECT
			poll_id,
			question,
			share_url,
			creator_token,
			created_at
		FROM credentials
		ORDER BY created_at DESC, poll_id;`

	deleteCredential = `
		DELETE FROM credentials
		WHERE poll_id = ?;`

	getLocalSession = `
		SELECT session_id
		FROM session
		WHERE id = 1;`

	saveLocalSession = `
		INSERT INTO session (id, session_id)
		VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET session_id = excluded.session_id;`
)
