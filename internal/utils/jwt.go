package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pollivu/pollivu/models"
)

// GenerateJWTToken creates a signed HMAC-SHA256 session token carrying
// the standard claims:
//   - Issuer    (iss): the service name
//   - Subject   (sub): the account ID as a base-10 string
//   - IssuedAt  (iat): now
//   - ExpiresAt (exp): now plus tokenDuration
//
// Returns an error when issuer, duration or sign key is empty.
func GenerateJWTToken(issuer string, userID int64, tokenDuration time.Duration, signKey string) (models.SessionToken, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.SessionToken{}, errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.SessionToken{}, fmt.Errorf("error signing JWT token: %w", err)
	}

	return models.SessionToken{Token: token, SignedString: tokenString}, nil
}

// ValidateAndParseJWTToken verifies the signature, issuer and expiry of
// tokenString and extracts the account ID from the subject claim.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.SessionToken, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionToken{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return models.SessionToken{}, fmt.Errorf("error validating and parsing token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return models.SessionToken{}, fmt.Errorf("error getting subject from token: %w", err)
	}
	if sub == "" {
		return models.SessionToken{}, errors.New("empty subject claim")
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return models.SessionToken{}, fmt.Errorf("error converting subject %q to user ID: %w", sub, err)
	}

	return models.SessionToken{Token: token, UserID: userID}, nil
}

// ParseBearerToken extracts the token part of an "Authorization: Bearer
// <token>" header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
