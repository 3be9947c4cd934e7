package http

import (
	"net/http"
	"strings"

	"github.com/hogarcare/hogar/internal/auth/service"
	"github.com/hogarcare/hogar/pkg/httpx"
)

// BootstrapHandler seeds the first super_admin on an empty database.
type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// HandleBootstrap handles POST /v1/bootstrap
//
//	@Summary		Bootstrap the system
//	@Description	Seeds the role catalog and creates the initial super_admin account. Guarded
//	@Description	by a deploy-time shared token and refused once any user exists.
//	@Tags			System
//	@Accept			json
//	@Produce		json
//	@Param			request	body		BootstrapRequest	true	"Bootstrap token and initial account"
//	@Success		201		{object}	domain.UserSummary	"Created super_admin"
//	@Failure		403		{object}	httpx.APIError		"Wrong or missing bootstrap token"
//	@Failure		409		{object}	httpx.APIError		"Already bootstrapped"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) HandleBootstrap(w http.ResponseWriter, r *http.Request) {
	var req BootstrapRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.FullName) == "" {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}

	summary, err := h.BootstrapService.Bootstrap(r.Context(), req.Token, service.BootstrapInput{
		Email:          req.Email,
		Password:       req.Password,
		FullName:       req.FullName,
		Identification: req.Identification,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, summary)
}
