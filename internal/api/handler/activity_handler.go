package handler

import (
	"log/slog"
	"strconv"

	"github.com/fintrack-ledger/internal/api/middleware"
	"github.com/fintrack-ledger/internal/api/service"
	"github.com/gin-gonic/gin"
)

// ActivityHandler serves the asynchronous activity feed
type ActivityHandler struct {
	activityService service.ActivityService
	logger          *slog.Logger
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(logger *slog.Logger, activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		logger:          logger,
	}
}

// List returns the user's recent activity entries
func (h *ActivityHandler) List(c *gin.Context) {
	limit := 0
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 || parsed > 100 {
			RespondBadRequest(c, "Invalid limit, expected 1-100")
			return
		}
		limit = parsed
	}

	entries, err := h.activityService.List(c.Request.Context(), middleware.GetUserID(c), limit)
	if err != nil {
		h.logger.Error("Failed to list activity entries", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, entries)
}
