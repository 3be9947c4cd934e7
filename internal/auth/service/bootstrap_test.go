package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hogarcare/hogar/internal/auth/domain"
)

func TestBootstrap_SeedsRolesAndSuperAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewBootstrapService(env.store, NopAuditSink{}, "deploy-secret")

	summary, err := svc.Bootstrap(ctx, "deploy-secret", BootstrapInput{
		Email:          "  Root@Example.com ",
		Password:       "a strong first password",
		FullName:       "First Admin",
		Identification: "ID-0001",
	})
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", summary.Email)
	assert.Equal(t, "super_admin", summary.Role)

	roles, err := env.store.Roles().ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, len(domain.AllRoleNames()))

	// The seeded account can log in straight away.
	result, err := env.auth.Login(ctx, "root@example.com", "a strong first password", "", testClient)
	require.NoError(t, err)
	assert.Equal(t, "super_admin", result.User.Role)
}

func TestBootstrap_RefusedOnceUsersExist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "existing@example.com", "a fine password", domain.RoleNurse)

	svc := NewBootstrapService(env.store, NopAuditSink{}, "deploy-secret")

	_, err := svc.Bootstrap(ctx, "deploy-secret", BootstrapInput{
		Email:    "late@example.com",
		Password: "a strong first password",
		FullName: "Too Late",
	})
	assert.ErrorIs(t, err, ErrBootstrapDone)
}

func TestBootstrap_TokenGate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	in := BootstrapInput{Email: "root@example.com", Password: "a strong first password", FullName: "Admin"}

	svc := NewBootstrapService(env.store, NopAuditSink{}, "deploy-secret")
	_, err := svc.Bootstrap(ctx, "wrong-secret", in)
	assert.ErrorIs(t, err, ErrForbidden)

	// An unset deploy token disables bootstrap entirely, even for an empty
	// submitted token.
	unguarded := NewBootstrapService(env.store, NopAuditSink{}, "")
	_, err = unguarded.Bootstrap(ctx, "", in)
	assert.ErrorIs(t, err, ErrForbidden)

	// Nothing was seeded by the refused attempts.
	empty, err := env.store.Users().IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestBootstrap_WeakPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewBootstrapService(env.store, NopAuditSink{}, "deploy-secret")

	_, err := svc.Bootstrap(ctx, "deploy-secret", BootstrapInput{
		Email:    "root@example.com",
		Password: "short",
		FullName: "Admin",
	})
	assert.ErrorIs(t, err, ErrWeakPassword)

	empty, err := env.store.Users().IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)
}
