package models

import "time"

// User represents a registered account. Accounts are optional in this
// system: polls can be created and administered anonymously with a
// creator token, and an account only adds the ordinary ownership path
// (dashboard listing, edit, option management).
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"-"`

	// Email is the unique login identifier, stored lowercase.
	Email string `json:"email"`

	// DisplayName is an optional public name shown instead of the
	// email. Empty when the user never set one.
	DisplayName string `json:"display_name,omitempty"`

	// PasswordHash is the bcrypt hash of the account password.
	// Never exposed via JSON and never logged.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`

	// LastLogin records the most recent successful login, nil for
	// accounts that never logged in.
	LastLogin *time.Time `json:"-"`

	// IsActive marks the account as usable. Disabled accounts fail
	// authentication without revealing why.
	IsActive bool `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
