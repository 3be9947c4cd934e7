package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hogarcare/hogar/internal/auth/domain"
)

func TestForgot_UnknownEmailStaysSilent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.reset.Forgot(ctx, "ghost@example.com", testClient))

	assert.Zero(t, env.notifier.sent, "no code may be sent for unknown accounts")

	tokens, err := env.store.ResetTokens().ListUsable(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestForgot_InactiveAccountStaysSilent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "gone@example.com", "a fine password", domain.RoleNurse)
	require.NoError(t, env.store.Users().SetActive(ctx, user.ID, false))

	require.NoError(t, env.reset.Forgot(ctx, "gone@example.com", testClient))
	assert.Zero(t, env.notifier.sent)
}

func TestForgot_DeliversNumericCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "forgot@example.com", "a fine password", domain.RoleNurse)

	require.NoError(t, env.reset.Forgot(ctx, "Forgot@Example.com", testClient))

	require.Equal(t, 1, env.notifier.sent)
	assert.Equal(t, user.ID, env.notifier.user.ID)
	require.Len(t, env.notifier.code, 8)
	for _, r := range env.notifier.code {
		assert.True(t, r >= '0' && r <= '9', "reset codes are numeric")
	}
}

func TestReset_FullFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "flow@example.com", "old password here", domain.RoleNurse)

	// An active session that must die with the reset.
	login, err := env.auth.Login(ctx, "flow@example.com", "old password here", "", testClient)
	require.NoError(t, err)

	require.NoError(t, env.reset.Forgot(ctx, "flow@example.com", testClient))
	code := env.notifier.code

	require.NoError(t, env.reset.Reset(ctx, "  "+code+"  ", "brand new password"))

	// Old password gone, new one works.
	_, err = env.auth.Login(ctx, "flow@example.com", "old password here", "", testClient)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.Login(ctx, "flow@example.com", "brand new password", "", testClient)
	require.NoError(t, err)

	// The pre-reset session was revoked.
	_, err = env.sessions.ValidateAccessToken(ctx, login.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// The code is terminally spent.
	assert.ErrorIs(t, env.reset.Reset(ctx, code, "yet another password"), ErrInvalidCode)
}

func TestReset_WrongCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "wrongcode@example.com", "a fine password", domain.RoleNurse)
	require.NoError(t, env.reset.Forgot(ctx, "wrongcode@example.com", testClient))

	assert.ErrorIs(t, env.reset.Reset(ctx, "00000000", "a new password!"), ErrInvalidCode)
}

func TestReset_WeakPasswordRejectedBeforeCodeCheck(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "weak@example.com", "a fine password", domain.RoleNurse)
	require.NoError(t, env.reset.Forgot(ctx, "weak@example.com", testClient))

	err := env.reset.Reset(ctx, env.notifier.code, "short")
	assert.ErrorIs(t, err, ErrWeakPassword)

	// The code survives a weak-password attempt.
	require.NoError(t, env.reset.Reset(ctx, env.notifier.code, "long enough now"))
}

func TestReset_ExpiredCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "stale@example.com", "a fine password", domain.RoleNurse)

	// A service whose codes expire effectively immediately.
	impatient := NewPasswordResetService(env.store, env.notifier, NopAuditSink{}, time.Nanosecond)
	require.NoError(t, impatient.Forgot(ctx, "stale@example.com", testClient))

	time.Sleep(5 * time.Millisecond)
	assert.ErrorIs(t, env.reset.Reset(ctx, env.notifier.code, "a new password!"), ErrInvalidCode)
}
