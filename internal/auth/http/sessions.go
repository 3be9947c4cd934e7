package http

import (
	"net/http"
	"strconv"

	"github.com/hogarcare/hogar/internal/auth/service"
	"github.com/hogarcare/hogar/pkg/httpx"
)

// SessionsHandler exposes session visibility and revocation, both self-service
// and admin.
type SessionsHandler struct {
	SessionService *service.SessionService
}

// HandleList handles GET /v1/sessions
//
//	@Summary		List my active sessions
//	@Description	Returns the caller's active sessions, newest activity first, marking the one
//	@Description	backing this request. Token hashes are never included.
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	SessionListResponse	"Active sessions"
//	@Failure		401	{object}	httpx.APIError		"Invalid or missing access token"
//	@Router			/v1/sessions [get].
func (h *SessionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	sessions, err := h.SessionService.ListSessions(r.Context(), id.UserID, currentSessionID(id))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, SessionListResponse{Sessions: sessions})
}

// HandleRevoke handles DELETE /v1/sessions/{id}
//
//	@Summary		Revoke one of my sessions
//	@Description	Invalidates a single session owned by the caller. Revoking someone else's
//	@Description	session is forbidden regardless of role.
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int				true	"Session id"
//	@Success		200	{object}	MessageResponse	"Revoked"
//	@Failure		403	{object}	httpx.APIError	"Session belongs to another user"
//	@Failure		404	{object}	httpx.APIError	"Unknown session"
//	@Router			/v1/sessions/{id} [delete].
func (h *SessionsHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	sessionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || sessionID <= 0 {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.SessionService.RevokeSession(r.Context(), id.UserID, sessionID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "session revoked"})
}

// HandleRevokeAllForUser handles DELETE /v1/admin/users/{id}/sessions
//
//	@Summary		Revoke all sessions of a user
//	@Description	Admin operation: invalidates every active session of the target user, for
//	@Description	example after a reported account compromise.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int					true	"User id"
//	@Success		200	{object}	RevokeAllResponse	"Number of sessions revoked"
//	@Failure		403	{object}	httpx.APIError		"Caller lacks an admin role"
//	@Failure		404	{object}	httpx.APIError		"Unknown user"
//	@Router			/v1/admin/users/{id}/sessions [delete].
func (h *SessionsHandler) HandleRevokeAllForUser(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || userID <= 0 {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}

	n, err := h.SessionService.RevokeAllForUser(r.Context(), id.UserID, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, RevokeAllResponse{RevokedSessions: n})
}

// HandleSuspicious handles GET /v1/admin/sessions/suspicious
//
//	@Summary		Report suspicious sessions
//	@Description	Lists users whose active session count meets the configured threshold, and
//	@Description	users holding sessions idle past the staleness window, with session metadata
//	@Description	for each. Open to super_admin, admin and director.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	SuspiciousResponse	"Flagged users"
//	@Failure		403	{object}	httpx.APIError		"Caller lacks an admin role"
//	@Router			/v1/admin/sessions/suspicious [get].
func (h *SessionsHandler) HandleSuspicious(w http.ResponseWriter, r *http.Request) {
	if _, ok := identity(w, r); !ok {
		return
	}

	users, err := h.SessionService.Suspicious(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, SuspiciousResponse{Users: users})
}
