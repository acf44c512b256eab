// Copyright (c) 2026 EasyBuy. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces ([middleware.TokenVerifier],
// auth.TokenIssuer).
package sec

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the only error [TokenService.Verify] returns. Expired,
// tampered and malformed tokens are deliberately indistinguishable to callers.
var ErrInvalidToken = errors.New("sec: invalid or expired token")

// Identity is the authenticated user's minimal public attributes.
//
// It is embedded in the token at login and reconstructed on every request;
// nothing about it is stored server-side.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthClaims represents the payload embedded inside a JWT access token.
//
// The identity fields keep the names the frontend already reads
// ("id", "username", "email"). The password hash is never part of it.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenService issues and verifies HS256-signed identity tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// TokenOption customises a [TokenService].
type TokenOption func(*TokenService)

// WithClock replaces the wall clock used for issuing and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(service *TokenService) {
		service.now = now
	}
}

// NewTokenService creates a new TokenService signing with the shared secret.
func NewTokenService(secret []byte, timeToLive time.Duration, issuer string, opts ...TokenOption) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, errors.New("sec: signing secret must not be empty")
	}
	if timeToLive <= 0 {
		return nil, errors.New("sec: token ttl must be positive")
	}

	service := &TokenService{
		secret: secret,
		ttl:    timeToLive,
		issuer: issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// TTL reports how long issued tokens stay valid.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// Issue creates a new signed token for the identity, valid for the configured TTL.
func (service *TokenService) Issue(identity Identity) (string, error) {
	currentTime := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.ID, 10),
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
		UserID:   identity.ID,
		Username: identity.Username,
		Email:    identity.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and expiry of a token and returns its identity.
//
// Any failure is reported as [ErrInvalidToken].
func (service *TokenService) Verify(tokenString string) (*Identity, error) {
	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return service.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(service.issuer),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &Identity{
		ID:       claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
	}, nil
}
