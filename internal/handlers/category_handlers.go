package handlers

import (
	"net/http"

	"marketplace-be/internal/category"

	"github.com/gin-gonic/gin"
)

type categoryInput struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
	ParentID    *uint   `json:"parent_id"`
}

func categoryError(c *gin.Context, err error) {
	switch err {
	case category.ErrCategoryNotFound:
		respondError(c, http.StatusNotFound, "category not found")
	case category.ErrCategoryExists:
		respondError(c, http.StatusConflict, "category already exists")
	case category.ErrCategoryInUse:
		respondError(c, http.StatusConflict, "category has products or children")
	default:
		respondError(c, http.StatusInternalServerError, "category operation failed")
	}
}

func (h *Handlers) ListCategories(c *gin.Context) {
	categories, err := h.Categories.GetCategories(c.Request.Context())
	if err != nil {
		categoryError(c, err)
		return
	}
	respondOK(c, "categories retrieved successfully", categories)
}

func (h *Handlers) GetCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	cat, err := h.Categories.GetCategory(c.Request.Context(), id)
	if err != nil {
		categoryError(c, err)
		return
	}
	respondOK(c, "category retrieved successfully", cat)
}

func (h *Handlers) CreateCategory(c *gin.Context) {
	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	cat, err := h.Categories.AddCategory(c.Request.Context(), input.Name, input.Description, input.ParentID)
	if err != nil {
		categoryError(c, err)
		return
	}
	respondCreated(c, "category created successfully", cat)
}

func (h *Handlers) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	cat, err := h.Categories.UpdateCategory(c.Request.Context(), id, input.Name, input.Description, input.ParentID)
	if err != nil {
		categoryError(c, err)
		return
	}
	respondOK(c, "category updated successfully", cat)
}

func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.Categories.DeleteCategory(c.Request.Context(), id); err != nil {
		categoryError(c, err)
		return
	}
	respondOK(c, "category deleted successfully", nil)
}
