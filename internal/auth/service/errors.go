package service

import "errors"

// Sentinel errors returned by the service layer. The HTTP layer maps these to
// API error responses; anything not listed here surfaces as a server error.
var (
	// ErrInvalidCredentials is deliberately generic. Whether the email was
	// unknown, the account inactive or the password wrong, callers get the
	// same error so login responses leak nothing about account existence.
	ErrInvalidCredentials = errors.New("service: invalid credentials")

	// ErrInvalidToken covers malformed, forged, wrong-kind and revoked tokens.
	ErrInvalidToken = errors.New("service: invalid token")

	// ErrSessionExpired is distinct from ErrInvalidToken so clients know a
	// refresh may still succeed.
	ErrSessionExpired = errors.New("service: session expired")

	// ErrInvalidCode covers wrong TOTP codes, spent backup codes and unknown
	// password reset codes.
	ErrInvalidCode = errors.New("service: invalid code")

	ErrTwoFactorNotSetup       = errors.New("service: two-factor not set up")
	ErrTwoFactorNotEnabled     = errors.New("service: two-factor not enabled")
	ErrTwoFactorAlreadyEnabled = errors.New("service: two-factor already enabled")

	ErrWeakPassword = errors.New("service: password does not meet minimum length")

	ErrForbidden = errors.New("service: forbidden")
	ErrNotFound  = errors.New("service: not found")

	// ErrBootstrapDone rejects bootstrap once any user exists.
	ErrBootstrapDone = errors.New("service: bootstrap already completed")
)
