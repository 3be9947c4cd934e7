package domain

import "time"

// LoginAttempt records the outcome of a login request, successful or not.
// Recorded best-effort; a failure to write never fails the login itself.
type LoginAttempt struct {
	ID        int64
	Email     string
	Success   bool
	Reason    string // e.g. "bad_password", "inactive", "bad_2fa_code"
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}
