package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/pollivu/pollivu/internal/config"
	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/internal/store"
	"github.com/pollivu/pollivu/internal/utils"
	"github.com/pollivu/pollivu/models"
)

// minPasswordLength is the smallest accepted account password, in runes.
const minPasswordLength = 8

// authService is the concrete implementation of AuthService.
// It handles account registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegisterUser creates a new account.
//
// The email is normalised to lowercase before the uniqueness check so that
// the same address cannot register twice under different casings. The
// password is stored as a bcrypt hash; the plain text never leaves this
// method.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if the email is malformed or the password is
//     shorter than the minimum.
//   - A wrapped storage error if the repository call fails (e.g. email
//     already taken — see store.ErrEmailAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, input models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		log.Error().Str("email", email).Msg("invalid email provided")
		return models.User{}, fmt.Errorf("%w: malformed email", ErrInvalidDataProvided)
	}
	if utf8.RuneCountInString(input.Password) < minPasswordLength {
		log.Error().Str("email", email).Msg("password below minimum length")
		return models.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidDataProvided, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		Email:        email,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		PasswordHash: string(hash),
		IsActive:     true,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("email", registeredUser.Email).Msg("new user registered")
	return registeredUser, nil
}

// Login authenticates an existing account.
//
// Every failure mode — unknown email, wrong password, disabled account —
// yields the same ErrInvalidCredentials so that the endpoint does not reveal
// whether an address is registered. A successful login records the time in
// the account's last_login column; a failure to record it is logged but does
// not fail the login.
func (a *authService) Login(ctx context.Context, input models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		log.Error().Msg("empty credentials provided")
		return models.User{}, ErrInvalidCredentials
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Warn().Str("email", truncateForLog(email)).Msg("login attempt for unknown email")
			return models.User{}, ErrInvalidCredentials
		}
		log.Err(err).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(input.Password)); err != nil {
		log.Warn().Str("email", truncateForLog(email)).Msg("failed login attempt")
		return models.User{}, ErrInvalidCredentials
	}

	if !foundUser.IsActive {
		log.Warn().Int64("id", foundUser.UserID).Msg("login attempt for disabled account")
		return models.User{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := a.userRepository.UpdateLastLogin(ctx, foundUser.UserID, now); err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("last login update failed")
	} else {
		foundUser.LastLogin = &now
	}

	log.Info().Str("email", foundUser.Email).Msg("user logged in")
	return foundUser, nil
}

// CreateToken issues a signed JWT for the given account.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.SessionToken, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.SessionToken{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.SessionToken, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.SessionToken{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// truncateForLog shortens an email for failed-attempt log lines so that full
// addresses do not accumulate in logs.
func truncateForLog(email string) string {
	const keep = 5
	if len(email) <= keep {
		return email
	}
	return email[:keep] + "***"
}
