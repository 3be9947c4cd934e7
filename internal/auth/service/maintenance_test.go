package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hogarcare/hogar/internal/auth/domain"
)

func TestRunCleanup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "cleanup@example.com", "a fine password", domain.RoleNurse)
	admin := env.seedUser(t, "janitor@example.com", "a fine password", domain.RoleAdmin)

	now := time.Now().UTC()

	// One fresh session and one that ran past its expiry without being read.
	_, err := env.auth.Login(ctx, "cleanup@example.com", "a fine password", "", testClient)
	require.NoError(t, err)

	stale, err := env.store.Sessions().Create(ctx, domain.Session{
		UserID:           user.ID,
		SID:              "01HSTALESESSION",
		TokenHash:        "stale-access-hash",
		RefreshTokenHash: "stale-refresh-hash",
		IPAddress:        testClient.IP,
		UserAgent:        testClient.UserAgent,
		Active:           true,
		ExpiresAt:        now.Add(-time.Hour),
	})
	require.NoError(t, err)

	// One spent reset code, one expired one, one still live.
	used := now.Add(-time.Minute)
	for _, tok := range []domain.PasswordResetToken{
		{UserID: user.ID, CodeHash: "spent-hash", ExpiresAt: now.Add(10 * time.Minute), Used: true, UsedAt: &used},
		{UserID: user.ID, CodeHash: "expired-hash", ExpiresAt: now.Add(-time.Minute)},
		{UserID: user.ID, CodeHash: "live-hash", ExpiresAt: now.Add(10 * time.Minute)},
	} {
		_, err := env.store.ResetTokens().Create(ctx, tok)
		require.NoError(t, err)
	}

	// One attempt past the retention window, one recent.
	require.NoError(t, env.store.LoginAttempts().Record(ctx, domain.LoginAttempt{
		Email: "cleanup@example.com", Reason: "bad_password",
		IPAddress: testClient.IP, CreatedAt: now.Add(-48 * time.Hour),
	}))
	require.NoError(t, env.store.LoginAttempts().Record(ctx, domain.LoginAttempt{
		Email: "cleanup@example.com", Success: true,
		IPAddress: testClient.IP, CreatedAt: now,
	}))

	maintenance := NewMaintenanceService(env.store, NopAuditSink{}, 24*time.Hour)

	report, err := maintenance.RunCleanup(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.ExpiredSessions)
	assert.Equal(t, int64(2), report.DeletedResetTokens)
	assert.Equal(t, int64(1), report.DeletedAttempts)

	// The stale session is now terminally inactive.
	flipped, err := env.store.Sessions().GetByID(ctx, stale)
	require.NoError(t, err)
	assert.False(t, flipped.Active)

	// The live reset code survived.
	tokens, err := env.store.ResetTokens().ListUsable(ctx, now)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "live-hash", tokens[0].CodeHash)

	// A second run finds nothing left to do.
	report, err = maintenance.RunCleanup(ctx, admin.ID)
	require.NoError(t, err)
	assert.Zero(t, report.ExpiredSessions)
	assert.Zero(t, report.DeletedResetTokens)
	assert.Zero(t, report.DeletedAttempts)
}

func TestRunCleanup_WritesAudit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, "auditor@example.com", "a fine password", domain.RoleSuperAdmin)

	maintenance := NewMaintenanceService(env.store, &StoreAuditSink{Store: env.store}, 0)

	_, err := maintenance.RunCleanup(ctx, admin.ID)
	require.NoError(t, err)

	entries, err := env.store.Audit().ListForUser(ctx, admin.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditCleanupRun, entries[0].Action)
}
