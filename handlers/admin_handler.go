package handlers

import (
	"net/http"

	"github.com/hokkyo/riichi-league/models"
	"github.com/hokkyo/riichi-league/services"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Reset godoc
// @Summary      Reset the league to a fresh season
// @Tags         admin
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /admin/reset [post]
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.adminService.Reset(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"status": "league reset"}, nil)
}

// Export godoc
// @Summary      Export the complete league state
// @Tags         admin
// @Produce      json
// @Success      200 {object} models.Snapshot
// @Router       /admin/export [get]
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.adminService.Export(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot, nil)
}

// Import godoc
// @Summary      Restore league state from a snapshot
// @Description  Only the state groups present in the snapshot are replaced.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Router       /admin/import [post]
func (h *AdminHandler) Import(w http.ResponseWriter, r *http.Request) {
	var snapshot models.Snapshot
	if err := readJSON(w, r, &snapshot); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.adminService.Import(r.Context(), &snapshot); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"status": "snapshot imported"}, nil)
}

// BackupSchedules godoc
// @Summary      Upload a timestamped backup of all schedules
// @Tags         admin
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} map[string]string
// @Router       /admin/backup-schedules [post]
func (h *AdminHandler) BackupSchedules(w http.ResponseWriter, r *http.Request) {
	result, err := h.adminService.BackupSchedules(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{
		"status":   "schedules backed up",
		"key":      result.Key,
		"location": result.Location,
	}, nil)
}
