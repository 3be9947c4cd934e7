package http

import (
	"net/http"

	"github.com/hogarcare/hogar/internal/auth/service"
	"github.com/hogarcare/hogar/pkg/httpx"
)

// MeHandler returns the authenticated user's profile.
type MeHandler struct {
	AuthService *service.AuthService
}

// HandleMe handles GET /v1/me
//
//	@Summary		Current user profile
//	@Description	Returns the profile of the user behind the presented access token.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	domain.UserSummary	"User profile"
//	@Failure		401	{object}	httpx.APIError		"Invalid or missing access token"
//	@Router			/v1/me [get].
func (h *MeHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	profile, err := h.AuthService.Profile(r.Context(), id.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, profile)
}
