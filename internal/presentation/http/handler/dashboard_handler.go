package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pharmacare/pharmacare-api/internal/application/service"
	infraRepo "github.com/pharmacare/pharmacare-api/internal/infrastructure/repository"
	"github.com/pharmacare/pharmacare-api/internal/presentation/http/dto/response"
)

// DashboardHandler serves the aggregated numbers the dashboard screen shows.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats returns sales, stock and expiry counters for the active branch.
// Super-admins get figures across every branch.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	ctx := c.Request.Context()
	if IsSuperAdmin(c) {
		ctx = infraRepo.WithSkipBranchScope(ctx, true)
	}

	stats, err := h.dashboardService.GetDashboardStats(ctx, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}
