package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/models"
)

type credentialRepository struct {
	*ClientDB
	logger *logger.Logger
}

// NewCredentialRepository wires a [CredentialStore] onto the local SQLite
// handle.
func NewCredentialRepository(db *ClientDB, logger *logger.Logger) CredentialStore {
	return &credentialRepository{
		ClientDB: db,
		logger:   logger,
	}
}

func (c *credentialRepository) SaveCredential(ctx context.Context, cred models.PollCredential) error {
	_, err := c.ExecContext(ctx, saveCredential,
		cred.PollID,
		cred.Question,
		cred.ShareURL,
		cred.CreatorToken,
		cred.CreatedAt,
	)
	if err != nil {
		c.logger.Err(err).
			Str("func", "credentialRepository.SaveCredential").
			Str("poll_id", cred.PollID).
			Msg("failed to save poll credential")
		return fmt.Errorf("failed to save poll credential: %w", err)
	}

	return nil
}

func (c *credentialRepository) GetCredential(ctx context.Context, pollID string) (models.PollCredential, error) {
	var cred models.PollCredential

	row := c.QueryRowContext(ctx, getCredential, pollID)
	err := row.Scan(
		&cred.PollID,
		&cred.Question,
		&cred.ShareURL,
		&cred.CreatorToken,
		&cred.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PollCredential{}, ErrCredentialNotFound
	}
	if err != nil {
		c.logger.Err(err).
			Str("func", "credentialRepository.GetCredential").
			Str("poll_id", pollID).
			Msg("failed to read poll credential")
		return models.PollCredential{}, fmt.Errorf("failed to read poll credential: %w", err)
	}

	return cred, nil
}

func (c *credentialRepository) ListCredentials(ctx context.Context) ([]models.PollCredential, error) {
	rows, err := c.QueryContext(ctx, listCredentials)
	if err != nil {
		c.logger.Err(err).
			Str("func", "credentialRepository.ListCredentials").
			Msg("failed to list poll credentials")
		return nil, fmt.Errorf("failed to list poll credentials: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var creds []models.PollCredential
	for rows.Next() {
		var cred models.PollCredential
		if err = rows.Scan(
			&cred.PollID,
			&cred.Question,
			&cred.ShareURL,
			&cred.CreatorToken,
			&cred.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		creds = append(creds, cred)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return creds, nil
}

func (c *credentialRepository) DeleteCredential(ctx context.Context, pollID string) error {
	if _, err := c.ExecContext(ctx, deleteCredential, pollID); err != nil {
		c.logger.Err(err).
			Str("func", "credentialRepository.DeleteCredential").
			Str("poll_id", pollID).
			Msg("failed to delete poll credential")
		return fmt.Errorf("failed to delete poll credential: %w", err)
	}

	return nil
}

func (c *credentialRepository) SessionID(ctx context.Context) (string, error) {
	var id string

	err := c.QueryRowContext(ctx, getLocalSession).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrLocalSessionNotFound
	}
	if err != nil {
		c.logger.Err(err).
			Str("func", "credentialRepository.SessionID").
			Msg("failed to read local session")
		return "", fmt.Errorf("failed to read local session: %w", err)
	}

	return id, nil
}

func (c *credentialRepository) SetSessionID(ctx context.Context, id string) error {
	if _, err := c.ExecContext(ctx, saveLocalSession, id); err != nil {
		c.logger.Err(err).
			Str("func", "credentialRepository.SetSessionID").
			Msg("failed to save local session")
		return fmt.Errorf("failed to save local session: %w", err)
	}

	return nil
}
