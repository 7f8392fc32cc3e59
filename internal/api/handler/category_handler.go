package handler

import (
	"errors"
	"log/slog"

	"github.com/fintrack-ledger/internal/api/service"
	"github.com/fintrack-ledger/internal/domain/category"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles HTTP requests for category operations
type CategoryHandler struct {
	categoryService service.CategoryService
	logger          *slog.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(logger *slog.Logger, categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// Create handles creation of a new category
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.categoryService.Create(c.Request.Context(), req.Name, req.Icon, req.Color, category.Type(req.Type))
	if err != nil {
		if errors.Is(err, category.ErrEmptyName) || errors.Is(err, category.ErrInvalidType) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create category", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, created)
}

// GetByID retrieves a category by its ID
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	cat, err := h.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		var notFound category.ErrCategoryNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Category not found")
			return
		}
		h.logger.Error("Failed to get category", "id", id, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, cat)
}

// List returns all categories, optionally filtered by type
func (h *CategoryHandler) List(c *gin.Context) {
	typeFilter := category.Type(c.Query("type"))

	categories, err := h.categoryService.List(c.Request.Context(), typeFilter)
	if err != nil {
		if errors.Is(err, category.ErrInvalidType) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to list categories", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, categories)
}
