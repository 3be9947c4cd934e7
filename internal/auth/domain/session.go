package domain

import "time"

// Session binds a hashed bearer token to a user for a bounded time window.
// Raw tokens are never persisted; TokenHash and RefreshTokenHash hold SHA-256
// hex fingerprints.
type Session struct {
	ID                int64
	UserID            int64
	SID               string // ULID reference embedded in token claims
	TokenHash         string
	RefreshTokenHash  string
	IPAddress         string
	UserAgent         string
	Active            bool
	TwoFactorVerified bool
	ExpiresAt         time.Time
	CreatedAt         time.Time
	LastActivity      time.Time
}

// Expired is the single expiry check used everywhere a session is read.
// Active=false is terminal; an expired-but-active session must be flipped
// inactive through the store's Invalidate entry point by whoever observes it.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// SessionInfo is session metadata safe to show the owning user. Token hashes
// never leave the store layer.
type SessionInfo struct {
	ID           int64     `json:"id"`
	IPAddress    string    `json:"ip_address"`
	UserAgent    string    `json:"user_agent"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	ExpiresAt    time.Time `json:"expires_at"`
	Current      bool      `json:"current"`

	// Stale marks a session idle past the staleness window.
	Stale bool `json:"stale"`
}

// ClientInfo carries request metadata recorded on sessions and audit entries.
type ClientInfo struct {
	IP        string
	UserAgent string
}
