package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-predictor/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(s services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: s}
}

// Stats godoc
// @Summary Tournament progress
// @Tags admin
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.GetStats(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats, nil)
}
