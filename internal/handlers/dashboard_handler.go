package handlers

import (
	"steeraway/internal/middleware"
	"steeraway/internal/services"
	"steeraway/internal/utils"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetStats returns the admin overview: fleet, bookings, revenue.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Dashboard stats retrieved successfully", stats)
}

// GetMyStats returns the calling user's own booking summary.
func (h *DashboardHandler) GetMyStats(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	stats, err := h.dashboardService.UserStats(c.Request.Context(), userID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking stats retrieved successfully", stats)
}
