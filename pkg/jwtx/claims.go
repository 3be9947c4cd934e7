// Package jwtx signs and verifies the service's Ed25519 bearer tokens.
//
// Every token carries a Kind claim identifying what it may be used for: a
// full access token, a refresh token, or a short-lived two-factor challenge
// token issued mid-login. Verifiers match on the kind rather than trusting a
// generic signed blob.
package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token lifetimes. Challenge tokens only bridge the gap between password
// verification and the second factor, so they stay very short.
const (
	DefaultAccessTokenTTL    = time.Hour
	DefaultRefreshTokenTTL   = 7 * 24 * time.Hour
	DefaultChallengeTokenTTL = 5 * time.Minute
)

// Kind tags what a signed token is valid for.
type Kind string

const (
	KindAccess    Kind = "access"
	KindRefresh   Kind = "refresh"
	KindChallenge Kind = "challenge"
)

// Valid reports whether k is a known token kind.
func (k Kind) Valid() bool {
	switch k {
	case KindAccess, KindRefresh, KindChallenge:
		return true
	}
	return false
}

// Claims are the token claims used across the service.
type Claims struct {
	jwt.RegisteredClaims

	// Kind discriminates access, refresh and challenge tokens.
	Kind Kind `json:"kind"`

	// SID references the persisted session row. Empty on challenge tokens,
	// which exist before any session does.
	SID string `json:"sid,omitempty"`

	Email  string `json:"email,omitempty"`
	RoleID int64  `json:"role_id,omitempty"`
	Role   string `json:"role,omitempty"`
}

// NewClaims builds minimally-correct claims for the given kind. The subject
// is the numeric user id.
func NewClaims(kind Kind, userID int64, email string, roleID int64, role, sid, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Kind:   kind,
		SID:    sid,
		Email:  email,
		RoleID: roleID,
		Role:   role,
	}
}

// UserID parses the numeric subject claim.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidClaim
	}
	return id, nil
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the issuer matches the expected value. An empty
// expected value enforces nothing.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected != "" && c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token has not expired and is not used before nbf.
func (c *Claims) ValidateExpiry(now time.Time) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
