package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrapTokenGate(t *testing.T) {
	ts := startServer(t)

	var apiErr map[string]string
	status := doJSON(t, http.MethodPost, ts.URL+"/v1/bootstrap", "", map[string]string{
		"token":     "wrong-token",
		"email":     adminEmail,
		"password":  adminPassword,
		"full_name": adminFullName,
	}, &apiErr)
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "forbidden", apiErr["error"])

	// Nothing was created; the right token still works afterwards.
	bootstrapAdmin(t, ts)
	login(t, ts, adminEmail, adminPassword)
}

func TestBootstrapRunsOnce(t *testing.T) {
	ts := startServer(t)
	bootstrapAdmin(t, ts)

	var apiErr map[string]string
	status := doJSON(t, http.MethodPost, ts.URL+"/v1/bootstrap", "", map[string]string{
		"token":     bootstrapToken,
		"email":     "second@example.com",
		"password":  "another password!",
		"full_name": "Second Admin",
	}, &apiErr)
	require.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "state_conflict", apiErr["error"])
}
