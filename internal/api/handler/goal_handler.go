package handler

import (
	"errors"
	"log/slog"

	"github.com/fintrack-ledger/internal/api/middleware"
	"github.com/fintrack-ledger/internal/api/service"
	"github.com/fintrack-ledger/internal/domain/goal"
	"github.com/gin-gonic/gin"
)

// GoalHandler handles HTTP requests for savings goal operations
type GoalHandler struct {
	goalService service.GoalService
	logger      *slog.Logger
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(logger *slog.Logger, goalService service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		logger:      logger,
	}
}

// Create handles creation of a new savings goal
func (h *GoalHandler) Create(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	g, err := goal.New(userID, req.Title, req.Description, req.TargetAmount, req.Deadline, req.Icon, req.Color)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	created, err := h.goalService.Create(c.Request.Context(), userID, g)
	if err != nil {
		h.logger.Error("Failed to create goal", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, created)
}

// GetByID retrieves a goal, returning 404 if missing or owned by another user
func (h *GoalHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	g, err := h.goalService.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		var notFound goal.ErrGoalNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Goal not found")
			return
		}
		h.logger.Error("Failed to get goal", "id", id, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, g)
}

// List returns the user's goals, open ones first
func (h *GoalHandler) List(c *gin.Context) {
	goals, err := h.goalService.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.logger.Error("Failed to list goals", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, goals)
}

// Update changes goal attributes
func (h *GoalHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	g, err := h.goalService.Update(c.Request.Context(), middleware.GetUserID(c), id, req.Title, req.Description, req.TargetAmount, req.Deadline, req.Icon, req.Color)
	if err != nil {
		var notFound goal.ErrGoalNotFound
		switch {
		case errors.As(err, &notFound):
			RespondNotFound(c, "Goal not found")
		case errors.Is(err, goal.ErrEmptyTitle), errors.Is(err, goal.ErrInvalidTarget):
			RespondBadRequest(c, err.Error())
		default:
			h.logger.Error("Failed to update goal", "id", id, "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, g)
}

// Delete removes a goal
func (h *GoalHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.goalService.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		var notFound goal.ErrGoalNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Goal not found")
			return
		}
		h.logger.Error("Failed to delete goal", "id", id, "error", err)
		RespondInternalError(c)
		return
	}

	RespondNoContent(c)
}

// Contribute adds funds to a goal; the first contribution crossing the
// target returns the completion achievement alongside the goal.
func (h *GoalHandler) Contribute(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.goalService.Contribute(c.Request.Context(), middleware.GetUserID(c), id, req.Amount, middleware.GetCorrelationID(c))
	if err != nil {
		var notFound goal.ErrGoalNotFound
		switch {
		case errors.As(err, &notFound):
			RespondNotFound(c, "Goal not found")
		case errors.Is(err, goal.ErrInvalidContribution):
			RespondBadRequest(c, err.Error())
		default:
			h.logger.Error("Failed to contribute to goal", "id", id, "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, result)
}
