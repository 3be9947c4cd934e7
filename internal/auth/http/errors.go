package http

import (
	"errors"
	"net/http"

	"github.com/hogarcare/hogar/internal/auth/service"
	"github.com/hogarcare/hogar/pkg/httpx"
	"github.com/hogarcare/hogar/pkg/slogx"
)

// writeServiceError maps service sentinel errors to API error responses.
// Anything unrecognised is logged and surfaces as a generic server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrInvalidToken):
		httpx.ErrInvalidToken.WriteError(w)
	case errors.Is(err, service.ErrSessionExpired):
		httpx.ErrSessionExpired.WriteError(w)
	case errors.Is(err, service.ErrInvalidCode):
		httpx.NewAPIError(http.StatusBadRequest, httpx.ErrorCodeInvalidCode,
			"the supplied code is invalid or has already been used").WriteError(w)
	case errors.Is(err, service.ErrTwoFactorNotSetup):
		httpx.NewAPIError(http.StatusConflict, httpx.ErrorCodeStateConflict,
			"two-factor authentication has not been set up").WriteError(w)
	case errors.Is(err, service.ErrTwoFactorNotEnabled):
		httpx.NewAPIError(http.StatusConflict, httpx.ErrorCodeStateConflict,
			"two-factor authentication is not enabled").WriteError(w)
	case errors.Is(err, service.ErrTwoFactorAlreadyEnabled):
		httpx.NewAPIError(http.StatusConflict, httpx.ErrorCodeStateConflict,
			"two-factor authentication is already enabled").WriteError(w)
	case errors.Is(err, service.ErrWeakPassword):
		httpx.NewAPIError(http.StatusBadRequest, httpx.ErrorCodeInvalidRequest,
			"the new password does not meet the minimum length requirement").WriteError(w)
	case errors.Is(err, service.ErrBootstrapDone):
		httpx.NewAPIError(http.StatusConflict, httpx.ErrorCodeStateConflict,
			"the system has already been bootstrapped").WriteError(w)
	case errors.Is(err, service.ErrForbidden):
		httpx.ErrForbidden.WriteError(w)
	case errors.Is(err, service.ErrNotFound):
		httpx.ErrNotFound.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("unhandled service error",
			"method", r.Method, "path", r.URL.Path, "err", err)
		httpx.ErrServerError.WriteError(w)
	}
}
