package handler

import (
	"log/slog"

	"github.com/fintrack-ledger/internal/api/middleware"
	"github.com/fintrack-ledger/internal/api/service"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles the aggregated overview endpoint
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(logger *slog.Logger, dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Overview returns the home screen payload
func (h *DashboardHandler) Overview(c *gin.Context) {
	dashboard, err := h.dashboardService.Overview(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.logger.Error("Failed to build dashboard", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, dashboard)
}
