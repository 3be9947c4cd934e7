package http

import (
	"net/http"
	"strings"

	"github.com/hogarcare/hogar/internal/auth/service"
	"github.com/hogarcare/hogar/pkg/httpx"
	"github.com/hogarcare/hogar/pkg/slogx"
)

// PasswordHandler owns the unauthenticated forgot/reset flow.
type PasswordHandler struct {
	ResetService *service.PasswordResetService
}

// HandleForgot handles POST /v1/auth/password/forgot
//
//	@Summary		Request a password reset
//	@Description	Mails an 8-digit reset code when the account exists and is active. The
//	@Description	response is identical either way, so the endpoint cannot be used to probe
//	@Description	which emails are registered.
//	@Tags			Password
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ForgotPasswordRequest	true	"Account email"
//	@Success		200		{object}	MessageResponse			"Always the same message"
//	@Failure		400		{object}	httpx.APIError			"Malformed request"
//	@Failure		429		{object}	httpx.APIError			"Rate limited"
//	@Router			/v1/auth/password/forgot [post].
func (h *PasswordHandler) HandleForgot(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.ResetService.Forgot(r.Context(), req.Email, clientInfo(r)); err != nil {
		// Internal failures still return the generic message; leaking a
		// storage error here would distinguish known from unknown emails.
		slogx.FromContext(r.Context()).Error("password reset request failed", "err", err)
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{
		Message: "if the account exists, a reset code has been sent",
	})
}

// HandleReset handles POST /v1/auth/password/reset
//
//	@Summary		Reset the password with a code
//	@Description	Consumes a valid reset code, sets the new password and revokes every active
//	@Description	session of the account. Codes are single use.
//	@Tags			Password
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ResetPasswordRequest	true	"Reset code and new password"
//	@Success		200		{object}	MessageResponse			"Password updated"
//	@Failure		400		{object}	httpx.APIError			"Invalid code or weak password"
//	@Failure		429		{object}	httpx.APIError			"Rate limited"
//	@Router			/v1/auth/password/reset [post].
func (h *PasswordHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Code == "" || req.NewPassword == "" {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.ResetService.Reset(r.Context(), req.Code, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "password updated"})
}
