package http

import (
	"net/http"

	"github.com/hogarcare/hogar/internal/auth/service"
	"github.com/hogarcare/hogar/pkg/httpx"
)

// TwoFactorHandler owns TOTP enrolment for the authenticated user.
type TwoFactorHandler struct {
	TwoFactorService *service.TwoFactorService
}

// HandleSetup handles POST /v1/2fa/setup
//
//	@Summary		Begin two-factor enrolment
//	@Description	Generates a TOTP secret and ten single-use backup codes. The secret,
//	@Description	provisioning URI and raw codes are returned exactly once; repeat calls before
//	@Description	enabling replace the pending setup.
//	@Tags			TwoFactor
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	domain.TwoFactorSetup	"Secret, URI and backup codes"
//	@Failure		401	{object}	httpx.APIError			"Invalid or missing access token"
//	@Failure		409	{object}	httpx.APIError			"Two-factor already enabled"
//	@Router			/v1/2fa/setup [post].
func (h *TwoFactorHandler) HandleSetup(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	setup, err := h.TwoFactorService.Setup(r.Context(), id.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, setup)
}

// HandleEnable handles POST /v1/2fa/enable
//
//	@Summary		Enable two-factor authentication
//	@Description	Verifies a code against the pending setup and switches two-factor on.
//	@Tags			TwoFactor
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		EnableTwoFactorRequest	true	"TOTP or backup code"
//	@Success		200		{object}	EnableTwoFactorResponse	"Enabled, with remaining backup codes"
//	@Failure		400		{object}	httpx.APIError			"Invalid code"
//	@Failure		409		{object}	httpx.APIError			"No pending setup, or already enabled"
//	@Router			/v1/2fa/enable [post].
func (h *TwoFactorHandler) HandleEnable(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req EnableTwoFactorRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Code == "" {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}

	remaining, err := h.TwoFactorService.Enable(r.Context(), id.UserID, req.Code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, EnableTwoFactorResponse{
		Enabled:              true,
		BackupCodesRemaining: remaining,
	})
}

// HandleDisable handles DELETE /v1/2fa
//
//	@Summary		Disable two-factor authentication
//	@Description	Removes the TOTP credential and all backup codes. Requires a valid code so a
//	@Description	hijacked session cannot silently strip the second factor.
//	@Tags			TwoFactor
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		DisableTwoFactorRequest	true	"TOTP or backup code"
//	@Success		200		{object}	MessageResponse			"Disabled"
//	@Failure		400		{object}	httpx.APIError			"Invalid code"
//	@Failure		409		{object}	httpx.APIError			"Two-factor not set up or not enabled"
//	@Router			/v1/2fa [delete].
func (h *TwoFactorHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req DisableTwoFactorRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Code == "" {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.TwoFactorService.Disable(r.Context(), id.UserID, req.Code); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "two-factor authentication disabled"})
}
