package handlers

import (
	"net/http"

	"marketplace-be/internal/store"

	"github.com/gin-gonic/gin"
)

type createStoreInput struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
}

type updateStoreInput struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	IsActive    *bool   `json:"is_active"`
}

func storeError(c *gin.Context, err error) {
	switch err {
	case store.ErrStoreNotFound:
		respondError(c, http.StatusNotFound, "store not found")
	case store.ErrStoreExists:
		respondError(c, http.StatusConflict, "user already owns a store")
	case store.ErrUnauthorized:
		respondError(c, http.StatusForbidden, "not the store owner")
	case store.ErrNothingToUpdate:
		respondError(c, http.StatusBadRequest, "no fields to update")
	default:
		respondError(c, http.StatusInternalServerError, "store operation failed")
	}
}

func (h *Handlers) CreateStore(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input createStoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	s, err := h.Stores.CreateStore(c.Request.Context(), userID, store.CreateStoreInput{
		Name:        input.Name,
		Description: input.Description,
		Phone:       input.Phone,
		Address:     input.Address,
	})
	if err != nil {
		storeError(c, err)
		return
	}

	respondCreated(c, "store created successfully", s)
}

func (h *Handlers) ListStores(c *gin.Context) {
	limit, page := pagination(c)

	var search *string
	if q := c.Query("search"); q != "" {
		search = &q
	}

	stores, err := h.Stores.ListStores(c.Request.Context(), search, limit, page)
	if err != nil {
		storeError(c, err)
		return
	}

	respondOK(c, "stores retrieved successfully", stores)
}

func (h *Handlers) GetStore(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	s, err := h.Stores.GetStore(c.Request.Context(), id)
	if err != nil {
		storeError(c, err)
		return
	}

	respondOK(c, "store retrieved successfully", s)
}

func (h *Handlers) GetOwnStore(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	s, err := h.Stores.GetOwnStore(c.Request.Context(), userID)
	if err != nil {
		storeError(c, err)
		return
	}

	respondOK(c, "store retrieved successfully", s)
}

func (h *Handlers) UpdateStore(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input updateStoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	s, err := h.Stores.UpdateStore(c.Request.Context(), userID, id, store.UpdateStoreInput{
		Name:        input.Name,
		Description: input.Description,
		Phone:       input.Phone,
		Address:     input.Address,
		IsActive:    input.IsActive,
	})
	if err != nil {
		storeError(c, err)
		return
	}

	respondOK(c, "store updated successfully", s)
}

func (h *Handlers) StoreStatistics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.Orders.StoreStatistics(c.Request.Context(), userID)
	if err != nil {
		orderError(c, err)
		return
	}

	respondOK(c, "store statistics retrieved successfully", stats)
}
