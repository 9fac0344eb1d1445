package store

import (
	"context"

	"github.com/pollivu/pollivu/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/credential_store_mock.go -package=mock

// CredentialStore is the local pollctl store: the creator tokens handed out
// at poll creation and the anonymous voter session reused across runs. Both
// exist only on the client; the server keeps hashes and cannot restore them.
type CredentialStore interface {
	// SaveCredential persists (or replaces) the credential for one poll.
	SaveCredential(ctx context.Context, cred models.PollCredential) error

	// GetCredential returns the stored credential for pollID, or
	// [ErrCredentialNotFound].
	GetCredential(ctx context.Context, pollID string) (models.PollCredential, error)

	// ListCredentials returns every stored credential, newest first.
	ListCredentials(ctx context.Context) ([]models.PollCredential, error)

	// DeleteCredential removes the credential for pollID. Deleting an
	// unknown poll is not an error.
	DeleteCredential(ctx context.Context, pollID string) error

	// SessionID returns the stored voter session identifier, or
	// [ErrLocalSessionNotFound] when none has been saved yet.
	SessionID(ctx context.Context) (string, error)

	// SetSessionID saves (or replaces) the voter session identifier.
	SetSessionID(ctx context.Context, id string) error
}
