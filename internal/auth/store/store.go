package store

import (
	"context"
	"errors"
	"time"

	"github.com/hogarcare/hogar/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep concerns tidy and testable, and the
// Tx type makes multi-step mutations explicit.
type Store interface {
	Users() Users
	Roles() Roles
	Sessions() Sessions
	TwoFactor() TwoFactor
	BackupCodes() BackupCodes
	ResetTokens() ResetTokens
	LoginAttempts() LoginAttempts
	Audit() Audit

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back when fn returns
	// an error and committing otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Same repos, plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetByID(ctx context.Context, id int64) (domain.User, error)

	// GetByEmail looks up by lowercased email, used during login.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// Create inserts a new user and returns the assigned id.
	Create(ctx context.Context, u domain.User) (int64, error)

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error

	// SetActive toggles the soft-delete flag; users are never hard-deleted.
	SetActive(ctx context.Context, userID int64, active bool) error

	// IsEmpty reports whether any users exist, used by bootstrap.
	IsEmpty(ctx context.Context) (bool, error)
}

type Roles interface {
	GetByID(ctx context.Context, id int64) (domain.Role, error)
	GetByName(ctx context.Context, name domain.RoleName) (domain.Role, error)
	ListAll(ctx context.Context) ([]domain.Role, error)
	Create(ctx context.Context, r domain.Role) (int64, error)
	IsEmpty(ctx context.Context) (bool, error)
}

type Sessions interface {
	// Create persists a new session row and returns its id.
	Create(ctx context.Context, s domain.Session) (int64, error)

	GetByID(ctx context.Context, id int64) (domain.Session, error)

	// GetActiveByTokenHash looks up an active session by access-token hash.
	// Expiry is NOT filtered here; callers check Expired and invalidate
	// lazily through Invalidate.
	GetActiveByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error)

	// GetActiveByRefreshHash looks up an active session by refresh-token hash.
	GetActiveByRefreshHash(ctx context.Context, refreshHash string) (domain.Session, error)

	// TouchActivity is a partial update of last_activity only.
	TouchActivity(ctx context.Context, id int64, now time.Time) error

	// RotateTokens atomically swaps the stored token hashes and extends expiry.
	RotateTokens(ctx context.Context, id int64, tokenHash, refreshTokenHash string, expiresAt time.Time) error

	// Invalidate is the single entry point that flips active=false. Terminal:
	// a session is never reactivated.
	Invalidate(ctx context.Context, id int64) error

	// InvalidateAllForUser revokes every active session of a user (password
	// reset, admin revocation). Returns the number of sessions flipped.
	InvalidateAllForUser(ctx context.Context, userID int64) (int64, error)

	ListActiveForUser(ctx context.Context, userID int64) ([]domain.Session, error)

	// ListUserActiveCounts returns users with at least min active sessions,
	// most sessions first.
	ListUserActiveCounts(ctx context.Context, min int64) ([]UserSessionCount, error)

	// ListUserStaleCounts returns users holding active sessions whose last
	// activity is older than cutoff, with the count of such sessions.
	ListUserStaleCounts(ctx context.Context, cutoff time.Time) ([]UserSessionCount, error)

	// DeactivateExpired flips active=false on expired-but-active rows.
	// On-demand maintenance, not a background sweep.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// UserSessionCount pairs a user with their active session count for the
// suspicious-session report.
type UserSessionCount struct {
	UserID int64
	Email  string
	Count  int64
}

type TwoFactor interface {
	GetByUserID(ctx context.Context, userID int64) (domain.TwoFactorCredential, error)

	// Upsert creates or replaces the user's credential (new secret, disabled).
	Upsert(ctx context.Context, c domain.TwoFactorCredential) error

	// Enable flips enabled=true after the first successful verification.
	Enable(ctx context.Context, userID int64) error

	// UpdateLastUsed records a successful code verification.
	UpdateLastUsed(ctx context.Context, userID int64, now time.Time) error

	// Delete removes the credential entirely (disable flow).
	Delete(ctx context.Context, userID int64) error
}

type BackupCodes interface {
	Create(ctx context.Context, userID int64, codeHash string) error

	// Consume deletes the matching row in one conditional statement and
	// reports whether a row was actually removed. This is the only way a
	// backup code is spent, so concurrent submissions of the same code can
	// never both succeed.
	Consume(ctx context.Context, userID int64, codeHash string) (bool, error)

	DeleteAllForUser(ctx context.Context, userID int64) error
	CountForUser(ctx context.Context, userID int64) (int, error)
}

type ResetTokens interface {
	Create(ctx context.Context, t domain.PasswordResetToken) (int64, error)

	// ListUsable returns all unused, unexpired tokens. The raw code was never
	// stored, so verification hash-compares against each candidate.
	ListUsable(ctx context.Context, now time.Time) ([]domain.PasswordResetToken, error)

	// MarkUsed terminally consumes a token.
	MarkUsed(ctx context.Context, id int64, now time.Time) error

	// DeleteDead removes used or expired tokens (maintenance).
	DeleteDead(ctx context.Context, now time.Time) (int64, error)
}

type LoginAttempts interface {
	Record(ctx context.Context, a domain.LoginAttempt) error

	// DeleteOlderThan trims attempt history (maintenance).
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type Audit interface {
	// Record appends to the digital_records trail.
	Record(ctx context.Context, e domain.AuditEntry) error

	// ListForUser returns newest-first entries, used by tests and admin views.
	ListForUser(ctx context.Context, userID int64, limit int) ([]domain.AuditEntry, error)
}
