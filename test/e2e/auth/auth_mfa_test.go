package auth_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hogarcare/hogar/internal/auth/domain"
)

// enrollTwoFactor drives the setup and enable endpoints and returns the TOTP
// secret and the raw backup codes.
func enrollTwoFactor(t *testing.T, ts *testServer, accessToken string) (string, []string) {
	t.Helper()

	var setup domain.TwoFactorSetup
	status := doJSON(t, http.MethodPost, ts.URL+"/v1/2fa/setup", accessToken, nil, &setup)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, setup.Secret)
	require.Contains(t, setup.ProvisioningURI, "otpauth://totp/")
	require.Len(t, setup.BackupCodes, 10)

	code, err := totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)

	var enabled struct {
		Enabled              bool `json:"enabled"`
		BackupCodesRemaining int  `json:"backup_codes_remaining"`
	}
	status = doJSON(t, http.MethodPost, ts.URL+"/v1/2fa/enable", accessToken,
		map[string]string{"code": code}, &enabled)
	require.Equal(t, http.StatusOK, status)
	require.True(t, enabled.Enabled)
	require.Equal(t, 10, enabled.BackupCodesRemaining)

	return setup.Secret, setup.BackupCodes
}

func TestTwoFactorLoginFlow(t *testing.T) {
	ts := startServer(t)
	bootstrapAdmin(t, ts)

	session := login(t, ts, adminEmail, adminPassword)
	secret, _ := enrollTwoFactor(t, ts, session.AccessToken)

	// Password alone now yields a challenge, never tokens.
	var challenged domain.LoginResult
	status := doJSON(t, http.MethodPost, ts.URL+"/v1/auth/login", "", map[string]string{
		"email":    adminEmail,
		"password": adminPassword,
	}, &challenged)
	require.Equal(t, http.StatusOK, status)
	require.True(t, challenged.RequiresTwoFactor)
	assert.Empty(t, challenged.AccessToken)
	require.NotEmpty(t, challenged.ChallengeToken)

	// The challenge token does not open protected endpoints.
	status = doJSON(t, http.MethodGet, ts.URL+"/v1/me", challenged.ChallengeToken, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// A wrong code is rejected without burning the challenge.
	status = doJSON(t, http.MethodPost, ts.URL+"/v1/auth/2fa/complete", "", map[string]string{
		"challenge_token": challenged.ChallengeToken,
		"code":            "000000",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// The right code completes the login.
	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	var completed domain.LoginResult
	status = doJSON(t, http.MethodPost, ts.URL+"/v1/auth/2fa/complete", "", map[string]string{
		"challenge_token": challenged.ChallengeToken,
		"code":            code,
	}, &completed)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, completed.AccessToken)

	status = doJSON(t, http.MethodGet, ts.URL+"/v1/me", completed.AccessToken, nil, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestTwoFactorBackupCodeLogin(t *testing.T) {
	ts := startServer(t)
	bootstrapAdmin(t, ts)

	session := login(t, ts, adminEmail, adminPassword)
	_, codes := enrollTwoFactor(t, ts, session.AccessToken)

	var challenged domain.LoginResult
	status := doJSON(t, http.MethodPost, ts.URL+"/v1/auth/login", "", map[string]string{
		"email":    adminEmail,
		"password": adminPassword,
	}, &challenged)
	require.Equal(t, http.StatusOK, status)
	require.True(t, challenged.RequiresTwoFactor)

	var completed domain.LoginResult
	status = doJSON(t, http.MethodPost, ts.URL+"/v1/auth/2fa/complete", "", map[string]string{
		"challenge_token": challenged.ChallengeToken,
		"code":            codes[0],
	}, &completed)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, completed.AccessToken)

	// The spent code no longer works for a fresh challenge.
	status = doJSON(t, http.MethodPost, ts.URL+"/v1/auth/login", "", map[string]string{
		"email":    adminEmail,
		"password": adminPassword,
	}, &challenged)
	require.Equal(t, http.StatusOK, status)

	status = doJSON(t, http.MethodPost, ts.URL+"/v1/auth/2fa/complete", "", map[string]string{
		"challenge_token": challenged.ChallengeToken,
		"code":            codes[0],
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestTwoFactorDisable(t *testing.T) {
	ts := startServer(t)
	bootstrapAdmin(t, ts)

	session := login(t, ts, adminEmail, adminPassword)
	secret, _ := enrollTwoFactor(t, ts, session.AccessToken)

	// Disabling needs a valid code.
	status := doJSON(t, http.MethodDelete, ts.URL+"/v1/2fa", session.AccessToken,
		map[string]string{"code": "000000"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	status = doJSON(t, http.MethodDelete, ts.URL+"/v1/2fa", session.AccessToken,
		map[string]string{"code": code}, nil)
	require.Equal(t, http.StatusOK, status)

	// Login is back to a single factor.
	result := login(t, ts, adminEmail, adminPassword)
	assert.NotEmpty(t, result.AccessToken)
}
