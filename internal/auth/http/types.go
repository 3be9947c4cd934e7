package http

import "github.com/hogarcare/hogar/internal/auth/domain"

// Request and response shapes for the JSON API. Kept in one place so the
// generated API docs and the handlers cannot drift apart.

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`

	// Code optionally carries a TOTP or backup code, letting clients with
	// two-factor enabled log in with a single request.
	Code string `json:"code,omitempty"`
}

type CompleteTwoFactorRequest struct {
	ChallengeToken string `json:"challenge_token"`
	Code           string `json:"code"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

type EnableTwoFactorRequest struct {
	Code string `json:"code"`
}

type DisableTwoFactorRequest struct {
	Code string `json:"code"`
}

type BootstrapRequest struct {
	Token          string `json:"token"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	FullName       string `json:"full_name"`
	Identification string `json:"identification"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type EnableTwoFactorResponse struct {
	Enabled              bool `json:"enabled"`
	BackupCodesRemaining int  `json:"backup_codes_remaining"`
}

type SessionListResponse struct {
	Sessions []domain.SessionInfo `json:"sessions"`
}

type RevokeAllResponse struct {
	RevokedSessions int64 `json:"revoked_sessions"`
}

type SuspiciousResponse struct {
	Users []domain.SuspiciousUser `json:"users"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
