package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hogarcare/hogar/internal/auth/domain"
	httpapi "github.com/hogarcare/hogar/internal/auth/http"
	"github.com/hogarcare/hogar/internal/auth/service"
	"github.com/hogarcare/hogar/internal/auth/store/drivers/sqlite"
	"github.com/hogarcare/hogar/pkg/cryptox"
	"github.com/hogarcare/hogar/pkg/jwtx"
	"github.com/hogarcare/hogar/pkg/slogx"
)

/*
 * Common constants and helper functions for auth service end-to-end tests.
 * Each test starts its own in-process server over a throwaway SQLite
 * database, so tests never share rate limiters or state.
 */

const (
	bootstrapToken = "test-bootstrap-token-12345"
	adminEmail     = "admin@example.com"
	adminFullName  = "Administrator"
	adminPassword  = "Admin123!pass"

	testIssuer = "hogar-auth-test"
)

func TestMain(m *testing.M) {
	cryptox.SetPepperPath(filepath.Join(os.TempDir(), "hogar-e2e-test-pepper"))

	// Cheap hashing; these tests exercise HTTP flows, not Argon2 hardness.
	cryptox.SetCost(8*1024, 1, 1)

	os.Exit(m.Run())
}

// testServer is a fully wired auth service listening on a loopback port.
type testServer struct {
	URL      string
	Store    *sqlite.Store
	Notifier *captureNotifier
}

// captureNotifier records reset codes instead of queueing them.
type captureNotifier struct {
	mu   sync.Mutex
	code string
	sent int
}

func (c *captureNotifier) SendResetCode(_ context.Context, _ domain.User, code string, _ time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.code = code
	c.sent++
	return nil
}

func (c *captureNotifier) lastCode() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.code
}

// startServer wires the full service stack and serves it via httptest. The
// suspicious-session threshold is lowered to 3 so tests can trip it without
// running into the login rate limit.
func startServer(t *testing.T) *testServer {
	t.Helper()

	dir := t.TempDir()
	st, err := sqlite.NewStore(fmt.Sprintf("file:%s/auth.db?_busy_timeout=5000", dir))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	pemKey, err := jwtx.LoadOrGenerateKey(filepath.Join(dir, "signing.key"))
	require.NoError(t, err)
	signer, err := jwtx.NewSigner(pemKey)
	require.NoError(t, err)
	verifier := jwtx.NewVerifier(signer.Public(), testIssuer)

	logger := slogx.New(slogx.Config{Service: "auth-e2e", Level: "error", Format: "text"})
	audit := &service.StoreAuditSink{Store: st}
	notifier := &captureNotifier{}

	twoFactor := service.NewTwoFactorService(st, audit, testIssuer)

	router := httpapi.NewRouter(signer, "test", st, logger)
	router.AuthService = service.NewAuthService(st, signer, verifier, twoFactor, audit,
		service.AuthConfig{Issuer: testIssuer})
	router.TwoFactorService = twoFactor
	router.ResetService = service.NewPasswordResetService(st, notifier, audit, 0)
	router.SessionService = service.NewSessionService(st, verifier, audit, 3)
	router.MaintenanceService = service.NewMaintenanceService(st, audit, 0)
	router.BootstrapService = service.NewBootstrapService(st, audit, bootstrapToken)
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Store: st, Notifier: notifier}
}

// doJSON performs a request with an optional bearer token and JSON body,
// decoding the JSON response into out when it is non-nil.
func doJSON(t *testing.T, method, url, token string, body, out any) int {
	t.Helper()

	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, payload)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// bootstrapAdmin seeds the role catalog and the initial super_admin.
func bootstrapAdmin(t *testing.T, ts *testServer) domain.UserSummary {
	t.Helper()

	var summary domain.UserSummary
	status := doJSON(t, http.MethodPost, ts.URL+"/v1/bootstrap", "", map[string]string{
		"token":     bootstrapToken,
		"email":     adminEmail,
		"password":  adminPassword,
		"full_name": adminFullName,
	}, &summary)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "super_admin", summary.Role)
	return summary
}

// login performs a single-factor login and requires it to succeed.
func login(t *testing.T, ts *testServer, email, password string) domain.LoginResult {
	t.Helper()

	var result domain.LoginResult
	status := doJSON(t, http.MethodPost, ts.URL+"/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	require.Equal(t, http.StatusOK, status)
	require.False(t, result.RequiresTwoFactor)
	require.NotEmpty(t, result.AccessToken)
	return result
}

// seedUser inserts a user directly into the store, for flows that need an
// account besides the bootstrapped admin.
func seedUser(t *testing.T, ts *testServer, email, password string, role domain.RoleName) domain.User {
	t.Helper()
	ctx := context.Background()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	roleRow, err := ts.Store.Roles().GetByName(ctx, role)
	require.NoError(t, err, "bootstrap before seeding users; it creates the role catalog")

	id, err := ts.Store.Users().Create(ctx, domain.User{
		Identification: "ID-" + email,
		Email:          email,
		FullName:       "Seeded User",
		PasswordHash:   hash,
		Active:         true,
		RoleID:         roleRow.ID,
	})
	require.NoError(t, err)

	user, err := ts.Store.Users().GetByID(ctx, id)
	require.NoError(t, err)
	return user
}
