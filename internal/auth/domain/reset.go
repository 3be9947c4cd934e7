package domain

import "time"

// PasswordResetToken is a single-use recovery artifact. CodeHash is the
// SHA-256 hex fingerprint of the numeric code mailed to the user; the raw
// code is never stored, so verification iterates unused unexpired candidates
// and hash-compares.
type PasswordResetToken struct {
	ID        int64
	UserID    int64
	CodeHash  string
	ExpiresAt time.Time
	Used      bool
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Usable reports whether this token may still be consumed at now. Used=true
// is terminal.
func (t *PasswordResetToken) Usable(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
