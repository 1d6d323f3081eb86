package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/stwalsh4118/sdma/internal/errors"
	"github.com/stwalsh4118/sdma/internal/models"
	"github.com/stwalsh4118/sdma/internal/services"
)

// CategoryHandler handles the incident category editor.
type CategoryHandler struct {
	service services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler instance.
func NewCategoryHandler(service services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// CategoryRequest is the body of category and subtype writes.
type CategoryRequest struct {
	NameHi string `json:"nameHi" binding:"required"`
	NameEn string `json:"nameEn" binding:"required"`
}

func (r CategoryRequest) names() services.CategoryNames {
	return services.CategoryNames{NameHi: r.NameHi, NameEn: r.NameEn}
}

// CategoriesResponse lists the categories of one kind.
type CategoriesResponse struct {
	Kind       models.CategoryKind   `json:"kind"`
	Categories []models.CategoryItem `json:"categories"`
}

func kindParam(c *gin.Context) (models.CategoryKind, bool) {
	kind, err := models.ParseCategoryKind(c.Param("kind"))
	if err != nil {
		apierrors.NotFound(c, err.Error())
		return "", false
	}
	return kind, true
}

// List handles GET /api/v1/categories/:kind.
func (h *CategoryHandler) List(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}

	categories, err := h.service.List(c.Request.Context(), kind)
	if err != nil {
		respondServiceError(c, err, "Failed to load categories")
		return
	}

	c.JSON(http.StatusOK, CategoriesResponse{Kind: kind, Categories: categories})
}

// Create handles POST /api/v1/categories/:kind.
func (h *CategoryHandler) Create(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	item, err := h.service.Add(c.Request.Context(), kind, req.names())
	if err != nil {
		respondServiceError(c, err, "Failed to add category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": item})
}

// Update handles PUT /api/v1/categories/:kind/:id.
func (h *CategoryHandler) Update(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	item, err := h.service.Update(c.Request.Context(), kind, id, req.names())
	if err != nil {
		respondServiceError(c, err, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": item})
}

// Subtypes handles GET /api/v1/categories/:kind/:id/subtypes.
func (h *CategoryHandler) Subtypes(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	drill, err := h.service.DrillDown(c.Request.Context(), kind, id)
	if err != nil {
		respondServiceError(c, err, "Failed to load subtypes")
		return
	}

	c.JSON(http.StatusOK, drill)
}

// CreateSubtype handles POST /api/v1/categories/:kind/:id/subtypes.
func (h *CategoryHandler) CreateSubtype(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	parentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	item, err := h.service.AddSubtype(c.Request.Context(), kind, parentID, req.names())
	if err != nil {
		respondServiceError(c, err, "Failed to add subtype")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"subtype": item})
}

// UpdateSubtype handles PUT /api/v1/categories/:kind/subtypes/:id.
func (h *CategoryHandler) UpdateSubtype(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	item, err := h.service.UpdateSubtype(c.Request.Context(), kind, id, req.names())
	if err != nil {
		respondServiceError(c, err, "Failed to update subtype")
		return
	}

	c.JSON(http.StatusOK, gin.H{"subtype": item})
}
