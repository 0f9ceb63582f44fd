// Package auth implements the credential primitives of the backend:
// password hashing, session and reset JWTs, and OTP generation.
package auth

import (
	"errors"
	"time"

	"github.com/betmaster21/blackjack-backend/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claim value distinguishing reset tokens from session tokens.
const resetTokenType = "reset"

// AccessClaims is the claim set of a session token: subject is the account
// ID, Email carries the account identifier for profile lookups.
type AccessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// ResetClaims is the claim set of a password-reset token: subject is the
// account email, TokenType must be exactly "reset".
type ResetClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"type"`
}

// TokenIssuer signs and verifies the two token kinds with a process-wide
// shared HMAC secret.
type TokenIssuer struct {
	secret    []byte
	method    jwt.SigningMethod
	accessTTL time.Duration
	resetTTL  time.Duration
}

// NewTokenIssuer builds a TokenIssuer. The algorithm tag must name an HMAC
// signing method known to the jwt library (e.g. "HS256"); unknown tags fall
// back to HS256.
func NewTokenIssuer(secret, algorithm string, accessTTL, resetTTL time.Duration) *TokenIssuer {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		method = jwt.SigningMethodHS256
	}
	return &TokenIssuer{
		secret:    []byte(secret),
		method:    method,
		accessTTL: accessTTL,
		resetTTL:  resetTTL,
	}
}

// GenerateAccessToken issues a session token for the given account.
func (t *TokenIssuer) GenerateAccessToken(userID, email string) (string, error) {
	token := jwt.NewWithClaims(t.method, AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.accessTTL)),
		},
		Email: email,
	})
	return token.SignedString(t.secret)
}

// ParseAccessToken verifies a session token and returns its claims.
// Any failure (tampering, malformed structure, expiry) collapses to
// common.ErrInvalidToken; callers treat the token as absent.
func (t *TokenIssuer) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, t.keyFunc)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// GenerateResetToken issues a short-lived, purpose-tagged token proving a
// successful OTP verification for the given email.
func (t *TokenIssuer) GenerateResetToken(email string) (string, error) {
	token := jwt.NewWithClaims(t.method, ResetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.resetTTL)),
		},
		TokenType: resetTokenType,
	})
	return token.SignedString(t.secret)
}

// ParseResetToken verifies a reset token and returns the email it was
// issued for. A wrong type claim is rejected exactly like a bad signature
// or expiry; the caller never learns which check failed.
func (t *TokenIssuer) ParseResetToken(tokenString string) (string, error) {
	claims := &ResetClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, t.keyFunc)
	if err != nil || !token.Valid {
		return "", common.ErrInvalidToken
	}
	if claims.TokenType != resetTokenType {
		return "", common.ErrInvalidToken
	}
	return claims.Subject, nil
}

func (t *TokenIssuer) keyFunc(token *jwt.Token) (interface{}, error) {
	if token.Method.Alg() != t.method.Alg() {
		return nil, errors.New("unexpected signing method")
	}
	return t.secret, nil
}
