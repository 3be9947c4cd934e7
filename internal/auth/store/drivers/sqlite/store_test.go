package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hogarcare/hogar/internal/auth/domain"
	"github.com/hogarcare/hogar/internal/auth/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s/auth.db?_busy_timeout=5000", t.TempDir())
	st, err := NewStore(dsn)
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())

	t.Cleanup(func() { _ = st.Close() })
	return st
}

func seedUser(t *testing.T, st *Store, email string) domain.User {
	t.Helper()
	ctx := context.Background()

	roleID, err := st.Roles().Create(ctx, domain.Role{Name: domain.RoleNurse})
	if err != nil {
		// Role already seeded by an earlier call in the same test.
		role, gerr := st.Roles().GetByName(ctx, domain.RoleNurse)
		require.NoError(t, gerr)
		roleID = role.ID
	}

	userID, err := st.Users().Create(ctx, domain.User{
		Identification: "ID-" + email,
		Email:          email,
		FullName:       "Test User",
		PasswordHash:   "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		Active:         true,
		RoleID:         roleID,
	})
	require.NoError(t, err)

	user, err := st.Users().GetByID(ctx, userID)
	require.NoError(t, err)
	return user
}

func seedSession(t *testing.T, st *Store, userID int64, tokenHash string, expiresAt time.Time) domain.Session {
	t.Helper()
	now := time.Now().UTC()

	id, err := st.Sessions().Create(context.Background(), domain.Session{
		UserID:           userID,
		SID:              "sid-" + tokenHash,
		TokenHash:        tokenHash,
		RefreshTokenHash: "refresh-" + tokenHash,
		IPAddress:        "10.0.0.1",
		UserAgent:        "test-agent",
		Active:           true,
		ExpiresAt:        expiresAt,
		CreatedAt:        now,
		LastActivity:     now,
	})
	require.NoError(t, err)

	sess, err := st.Sessions().GetByID(context.Background(), id)
	require.NoError(t, err)
	return sess
}

func TestUsers_EmailLowercased(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, st, "Nurse@Example.COM")

	assert.Equal(t, "nurse@example.com", user.Email)

	found, err := st.Users().GetByEmail(ctx, "  NURSE@example.com ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, st, "dup@example.com")

	_, err := st.Users().Create(ctx, domain.User{
		Identification: "other",
		Email:          "DUP@example.com",
		FullName:       "Other",
		PasswordHash:   "x",
		Active:         true,
		RoleID:         user.RoleID,
	})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestSessions_Lifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, st, "sess@example.com")

	sess := seedSession(t, st, user.ID, "hash-1", time.Now().UTC().Add(time.Hour))

	found, err := st.Sessions().GetActiveByTokenHash(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, found.ID)
	assert.True(t, found.Active)

	require.NoError(t, st.Sessions().Invalidate(ctx, sess.ID))

	_, err = st.Sessions().GetActiveByTokenHash(ctx, "hash-1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Invalidate is conditional on active=1, so a second call reports nothing
	// to flip.
	assert.ErrorIs(t, st.Sessions().Invalidate(ctx, sess.ID), store.ErrNotFound)
}

func TestSessions_ActiveTokenHashUnique(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, st, "unique@example.com")

	first := seedSession(t, st, user.ID, "same-hash", time.Now().UTC().Add(time.Hour))

	_, err := st.Sessions().Create(ctx, domain.Session{
		UserID:           user.ID,
		SID:              "sid-other",
		TokenHash:        "same-hash",
		RefreshTokenHash: "refresh-other",
		Active:           true,
		ExpiresAt:        time.Now().UTC().Add(time.Hour),
		CreatedAt:        time.Now().UTC(),
		LastActivity:     time.Now().UTC(),
	})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	// The partial index only covers active rows, so a revoked session does
	// not block a new one with the same hash.
	require.NoError(t, st.Sessions().Invalidate(ctx, first.ID))
	seedSession(t, st, user.ID, "same-hash-2", time.Now().UTC().Add(time.Hour))
}

func TestSessions_RotateTokens(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, st, "rotate@example.com")

	sess := seedSession(t, st, user.ID, "old-hash", time.Now().UTC().Add(time.Hour))
	newExpiry := time.Now().UTC().Add(2 * time.Hour).Truncate(time.Second)

	require.NoError(t, st.Sessions().RotateTokens(ctx, sess.ID, "new-hash", "new-refresh", newExpiry))

	_, err := st.Sessions().GetActiveByTokenHash(ctx, "old-hash")
	assert.ErrorIs(t, err, store.ErrNotFound)

	rotated, err := st.Sessions().GetActiveByTokenHash(ctx, "new-hash")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, rotated.ID)
	assert.Equal(t, "new-refresh", rotated.RefreshTokenHash)

	// Rotation is refused on revoked sessions.
	require.NoError(t, st.Sessions().Invalidate(ctx, sess.ID))
	err = st.Sessions().RotateTokens(ctx, sess.ID, "another", "another-r", newExpiry)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSessions_DeactivateExpired(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, st, "expired@example.com")

	now := time.Now().UTC()
	seedSession(t, st, user.ID, "dead-1", now.Add(-time.Hour))
	seedSession(t, st, user.ID, "dead-2", now.Add(-time.Minute))
	live := seedSession(t, st, user.ID, "live", now.Add(time.Hour))

	n, err := st.Sessions().DeactivateExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	remaining, err := st.Sessions().ListActiveForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, live.ID, remaining[0].ID)
}

func TestSessions_ListUserActiveCounts(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	busy := seedUser(t, st, "busy@example.com")
	quiet := seedUser(t, st, "quiet@example.com")

	expiry := time.Now().UTC().Add(time.Hour)
	for i := range 3 {
		seedSession(t, st, busy.ID, fmt.Sprintf("busy-%d", i), expiry)
	}
	seedSession(t, st, quiet.ID, "quiet-0", expiry)

	counts, err := st.Sessions().ListUserActiveCounts(ctx, 3)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, busy.ID, counts[0].UserID)
	assert.Equal(t, "busy@example.com", counts[0].Email)
	assert.Equal(t, int64(3), counts[0].Count)
}

func TestSessions_ListUserStaleCounts(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	idle := seedUser(t, st, "idle@example.com")
	fresh := seedUser(t, st, "fresh@example.com")

	expiry := time.Now().UTC().Add(7 * 24 * time.Hour)
	old := seedSession(t, st, idle.ID, "idle-0", expiry)
	seedSession(t, st, idle.ID, "idle-1", expiry)
	seedSession(t, st, fresh.ID, "fresh-0", expiry)

	// Age one of the idle user's sessions two days back.
	require.NoError(t, st.Sessions().TouchActivity(ctx, old.ID,
		time.Now().UTC().Add(-48*time.Hour)))

	counts, err := st.Sessions().ListUserStaleCounts(ctx, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, idle.ID, counts[0].UserID)
	assert.Equal(t, int64(1), counts[0].Count)

	// A revoked session stops counting as stale.
	require.NoError(t, st.Sessions().Invalidate(ctx, old.ID))
	counts, err = st.Sessions().ListUserStaleCounts(ctx, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestBackupCodes_ConsumeOnce(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, st, "codes@example.com")

	require.NoError(t, st.BackupCodes().Create(ctx, user.ID, "code-hash-1"))
	require.NoError(t, st.BackupCodes().Create(ctx, user.ID, "code-hash-2"))

	consumed, err := st.BackupCodes().Consume(ctx, user.ID, "code-hash-1")
	require.NoError(t, err)
	assert.True(t, consumed)

	consumed, err = st.BackupCodes().Consume(ctx, user.ID, "code-hash-1")
	require.NoError(t, err)
	assert.False(t, consumed, "a backup code must never verify twice")

	n, err := st.BackupCodes().CountForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBackupCodes_DuplicateHashRejected(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, st, "dupcodes@example.com")

	require.NoError(t, st.BackupCodes().Create(ctx, user.ID, "same"))
	assert.ErrorIs(t, st.BackupCodes().Create(ctx, user.ID, "same"), store.ErrAlreadyExists)
}

func TestResetTokens_UsableAndMarkUsed(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, st, "reset@example.com")
	now := time.Now().UTC()

	liveID, err := st.ResetTokens().Create(ctx, domain.PasswordResetToken{
		UserID: user.ID, CodeHash: "live", ExpiresAt: now.Add(15 * time.Minute),
	})
	require.NoError(t, err)

	_, err = st.ResetTokens().Create(ctx, domain.PasswordResetToken{
		UserID: user.ID, CodeHash: "expired", ExpiresAt: now.Add(-time.Minute),
	})
	require.NoError(t, err)

	usable, err := st.ResetTokens().ListUsable(ctx, now)
	require.NoError(t, err)
	require.Len(t, usable, 1)
	assert.Equal(t, "live", usable[0].CodeHash)

	require.NoError(t, st.ResetTokens().MarkUsed(ctx, liveID, now))
	assert.ErrorIs(t, st.ResetTokens().MarkUsed(ctx, liveID, now), store.ErrNotFound)

	usable, err = st.ResetTokens().ListUsable(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, usable)

	deleted, err := st.ResetTokens().DeleteDead(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}

func TestLoginAttempts_DeleteOlderThan(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, st.LoginAttempts().Record(ctx, domain.LoginAttempt{
		Email: "old@example.com", Success: false, Reason: "bad_password", CreatedAt: now.Add(-48 * time.Hour),
	}))
	require.NoError(t, st.LoginAttempts().Record(ctx, domain.LoginAttempt{
		Email: "new@example.com", Success: true, CreatedAt: now,
	}))

	deleted, err := st.LoginAttempts().DeleteOlderThan(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestAudit_RecordAndList(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, st, "audit@example.com")

	require.NoError(t, st.Audit().Record(ctx, domain.AuditEntry{
		UserID: user.ID, Action: domain.AuditLogin, TableName: "sessions", RecordID: 1, Description: "first",
	}))
	require.NoError(t, st.Audit().Record(ctx, domain.AuditEntry{
		UserID: user.ID, Action: domain.AuditLogout, TableName: "sessions", RecordID: 1, Description: "second",
	}))

	entries, err := st.Audit().ListForUser(ctx, user.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.AuditLogout, entries[0].Action, "newest first")
}

func TestWithTx_RollbackOnError(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, st, "tx@example.com")

	boom := errors.New("boom")
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.BackupCodes().Create(ctx, user.ID, "rolled-back"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := st.BackupCodes().CountForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, n, "failed transaction must leave nothing behind")
}

func TestWithTx_Commit(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, st, "commit@example.com")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		return tx.BackupCodes().Create(ctx, user.ID, "kept")
	})
	require.NoError(t, err)

	n, err := st.BackupCodes().CountForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
