package domain

// LoginResult is the shape of both a full login and a completed two-factor
// login. When the account has two-factor enabled and no code was supplied,
// RequiresTwoFactor is true, AccessToken is empty and ChallengeToken carries
// the short-lived token accepted only by the completion endpoint.
type LoginResult struct {
	AccessToken       string      `json:"access_token"`
	RefreshToken      string      `json:"refresh_token,omitempty"`
	RequiresTwoFactor bool        `json:"requires_two_factor"`
	ChallengeToken    string      `json:"challenge_token,omitempty"`
	User              UserSummary `json:"user"`
}

// CleanupReport summarises an on-demand maintenance run.
type CleanupReport struct {
	ExpiredSessions    int64 `json:"expired_sessions"`
	DeletedResetTokens int64 `json:"deleted_reset_tokens"`
	DeletedAttempts    int64 `json:"deleted_login_attempts"`
}

// SuspiciousUser flags an account whose concurrent active sessions meet the
// configured threshold, or who holds sessions idle past the staleness window.
type SuspiciousUser struct {
	UserID        int64         `json:"user_id"`
	Email         string        `json:"email"`
	SessionCount  int64         `json:"session_count"`
	StaleSessions int64         `json:"stale_sessions"`
	Sessions      []SessionInfo `json:"sessions"`
}
