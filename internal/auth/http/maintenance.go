package http

import (
	"net/http"

	"github.com/hogarcare/hogar/internal/auth/service"
	"github.com/hogarcare/hogar/pkg/httpx"
)

// MaintenanceHandler exposes on-demand housekeeping to admins.
type MaintenanceHandler struct {
	MaintenanceService *service.MaintenanceService
}

// HandleCleanup handles POST /v1/admin/maintenance/cleanup
//
//	@Summary		Run maintenance cleanup
//	@Description	Deactivates expired sessions, deletes dead password reset tokens and trims
//	@Description	old login attempts. There is no background sweeper; this endpoint is the only
//	@Description	way housekeeping runs.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	domain.CleanupReport	"What was cleaned"
//	@Failure		403	{object}	httpx.APIError			"Caller lacks an admin role"
//	@Router			/v1/admin/maintenance/cleanup [post].
func (h *MaintenanceHandler) HandleCleanup(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	report, err := h.MaintenanceService.RunCleanup(r.Context(), id.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, report)
}
