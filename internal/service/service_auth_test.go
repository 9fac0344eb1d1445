package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pollivu/pollivu/internal/config"
	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/internal/store"
	"github.com/pollivu/pollivu/models"
)

func newAuthService(repo *mockUserRepository) AuthService {
	cfg := config.Auth{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "pollivu-test",
		TokenDuration: time.Hour,
	}
	return NewAuthService(repo, cfg, logger.Nop())
}

func bcryptHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

// ─────────────────────────────────────────────
// RegisterUser
// ─────────────────────────────────────────────

func TestRegisterUser_Success(t *testing.T) {
	var created models.User
	repo := &mockUserRepository{
		createUserFn: func(ctx context.Context, user models.User) (models.User, error) {
			created = user
			user.UserID = 42
			return user, nil
		},
	}
	svc := newAuthService(repo)

	user, err := svc.RegisterUser(context.Background(), models.RegisterRequest{
		Email:       "  Alice@Example.COM ",
		Password:    "correct horse",
		DisplayName: "Alice",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), user.UserID)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.True(t, created.IsActive)

	// The password is stored hashed, and the hash verifies.
	assert.NotEqual(t, "correct horse", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("correct horse")))
}

func TestRegisterUser_MalformedEmail(t *testing.T) {
	svc := newAuthService(&mockUserRepository{})

	_, err := svc.RegisterUser(context.Background(), models.RegisterRequest{
		Email:    "not-an-email",
		Password: "long enough password",
	})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestRegisterUser_ShortPassword(t *testing.T) {
	svc := newAuthService(&mockUserRepository{})

	_, err := svc.RegisterUser(context.Background(), models.RegisterRequest{
		Email:    "alice@example.com",
		Password: "seven77",
	})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestRegisterUser_EmailTaken(t *testing.T) {
	repo := &mockUserRepository{
		createUserFn: func(ctx context.Context, user models.User) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}
	svc := newAuthService(repo)

	_, err := svc.RegisterUser(context.Background(), models.RegisterRequest{
		Email:    "alice@example.com",
		Password: "long enough password",
	})
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	hash := bcryptHash(t, "swordfish123")

	var lastLoginUserID int64
	repo := &mockUserRepository{
		findUserByEmailFn: func(ctx context.Context, email string) (models.User, error) {
			assert.Equal(t, "bob@example.com", email)
			return models.User{UserID: 7, Email: email, PasswordHash: hash, IsActive: true}, nil
		},
		updateLastLoginFn: func(ctx context.Context, userID int64, at time.Time) error {
			lastLoginUserID = userID
			return nil
		},
	}
	svc := newAuthService(repo)

	user, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "BOB@example.com",
		Password: "swordfish123",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), user.UserID)
	assert.Equal(t, int64(7), lastLoginUserID)
	require.NotNil(t, user.LastLogin)
	assert.WithinDuration(t, time.Now().UTC(), *user.LastLogin, 5*time.Second)
}

func TestLogin_UnknownEmailIsGeneric(t *testing.T) {
	repo := &mockUserRepository{
		findUserByEmailFn: func(ctx context.Context, email string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	// The response must not disclose that the account does not exist.
	assert.NotErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &mockUserRepository{
		findUserByEmailFn: func(ctx context.Context, email string) (models.User, error) {
			return models.User{UserID: 7, Email: email, PasswordHash: bcryptHash(t, "right"), IsActive: true}, nil
		},
	}
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "bob@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	repo := &mockUserRepository{
		findUserByEmailFn: func(ctx context.Context, email string) (models.User, error) {
			return models.User{UserID: 7, Email: email, PasswordHash: bcryptHash(t, "swordfish123"), IsActive: false}, nil
		},
	}
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "bob@example.com",
		Password: "swordfish123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_LastLoginFailureDoesNotFailLogin(t *testing.T) {
	repo := &mockUserRepository{
		findUserByEmailFn: func(ctx context.Context, email string) (models.User, error) {
			return models.User{UserID: 7, Email: email, PasswordHash: bcryptHash(t, "swordfish123"), IsActive: true}, nil
		},
		updateLastLoginFn: func(ctx context.Context, userID int64, at time.Time) error {
			return store.ErrExecutingStatement
		},
	}
	svc := newAuthService(repo)

	user, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "bob@example.com",
		Password: "swordfish123",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.UserID)
	assert.Nil(t, user.LastLogin)
}

// ─────────────────────────────────────────────
// Tokens
// ─────────────────────────────────────────────

func TestCreateAndParseToken_RoundTrip(t *testing.T) {
	svc := newAuthService(&mockUserRepository{})

	issued, err := svc.CreateToken(context.Background(), models.User{UserID: 99})
	require.NoError(t, err)
	require.NotEmpty(t, issued.SignedString)

	parsed, err := svc.ParseToken(context.Background(), issued.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(99), parsed.UserID)
}

func TestParseToken_GarbageIsInvalid(t *testing.T) {
	svc := newAuthService(&mockUserRepository{})

	_, err := svc.ParseToken(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestParseToken_WrongIssuerRejected(t *testing.T) {
	other := NewAuthService(&mockUserRepository{}, config.Auth{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "someone-else",
		TokenDuration: time.Hour,
	}, logger.Nop())

	issued, err := other.CreateToken(context.Background(), models.User{UserID: 1})
	require.NoError(t, err)

	svc := newAuthService(&mockUserRepository{})
	_, err = svc.ParseToken(context.Background(), issued.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
