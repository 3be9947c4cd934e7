package http

import (
	"net/http"
	"strings"

	"github.com/hogarcare/hogar/internal/auth/domain"
	"github.com/hogarcare/hogar/internal/auth/service"
	"github.com/hogarcare/hogar/pkg/httpx"
	"github.com/hogarcare/hogar/pkg/slogx"
)

// AuthHandler owns the login, two-factor completion, refresh and logout
// endpoints.
type AuthHandler struct {
	AuthService *service.AuthService
}

func clientInfo(r *http.Request) domain.ClientInfo {
	return domain.ClientInfo{
		IP:        httpx.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}

// HandleLogin handles POST /v1/auth/login
//
//	@Summary		Log in with email and password
//	@Description	Verifies credentials and issues an access/refresh token pair. Accounts with
//	@Description	two-factor enabled receive a short-lived challenge token instead, unless a
//	@Description	valid code is supplied inline.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest		true	"Credentials"
//	@Success		200		{object}	domain.LoginResult	"Tokens, or a two-factor challenge"
//	@Failure		400		{object}	httpx.APIError		"Malformed request"
//	@Failure		401		{object}	httpx.APIError		"Invalid credentials"
//	@Failure		429		{object}	httpx.APIError		"Rate limited"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}

	result, err := h.AuthService.Login(r.Context(), req.Email, req.Password, req.Code, clientInfo(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, result)
}

// HandleComplete2FA handles POST /v1/auth/2fa/complete
//
//	@Summary		Complete a two-factor login
//	@Description	Exchanges the challenge token from login plus a TOTP or backup code for a
//	@Description	full session. Access and refresh tokens are not accepted here.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CompleteTwoFactorRequest	true	"Challenge token and code"
//	@Success		200		{object}	domain.LoginResult			"Access and refresh tokens"
//	@Failure		400		{object}	httpx.APIError				"Invalid code"
//	@Failure		401		{object}	httpx.APIError				"Invalid or expired challenge token"
//	@Router			/v1/auth/2fa/complete [post].
func (h *AuthHandler) HandleComplete2FA(w http.ResponseWriter, r *http.Request) {
	var req CompleteTwoFactorRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.ChallengeToken == "" || req.Code == "" {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}

	result, err := h.AuthService.CompleteTwoFactorLogin(r.Context(), req.ChallengeToken, req.Code, clientInfo(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, result)
}

// HandleRefresh handles POST /v1/auth/refresh
//
//	@Summary		Rotate the token pair
//	@Description	Exchanges a valid refresh token for a new access/refresh pair. The old pair
//	@Description	stops working immediately.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RefreshRequest		true	"Refresh token"
//	@Success		200		{object}	domain.LoginResult	"New access and refresh tokens"
//	@Failure		401		{object}	httpx.APIError		"Invalid or revoked refresh token"
//	@Router			/v1/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.RefreshToken == "" {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}

	result, err := h.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, result)
}

// HandleLogout handles POST /v1/auth/logout
//
//	@Summary		Log out
//	@Description	Invalidates the session bound to the presented access token. Idempotent:
//	@Description	unknown or already-revoked tokens still return 200.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	MessageResponse	"Logged out"
//	@Router			/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token := httpx.BearerToken(r)
	if token == "" {
		// Nothing to invalidate; logout of nothing still succeeds.
		httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "logged out"})
		return
	}

	if err := h.AuthService.Logout(r.Context(), token, clientInfo(r)); err != nil {
		slogx.FromContext(r.Context()).Error("logout failed", "err", err)
		httpx.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "logged out"})
}
