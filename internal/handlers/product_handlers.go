package handlers

import (
	"net/http"
	"strconv"

	"marketplace-be/internal/product"

	"github.com/gin-gonic/gin"
)

type createProductInput struct {
	CategoryID    uint    `json:"category_id" binding:"required"`
	Name          string  `json:"name" binding:"required,max=255"`
	Description   *string `json:"description"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	StockQuantity int     `json:"stock_quantity" binding:"min=0"`
}

type updateProductInput struct {
	CategoryID    *uint    `json:"category_id"`
	Name          *string  `json:"name" binding:"omitempty,max=255"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" binding:"omitempty,gt=0"`
	StockQuantity *int     `json:"stock_quantity" binding:"omitempty,min=0"`
	IsActive      *bool    `json:"is_active"`
}

func productError(c *gin.Context, err error) {
	switch err {
	case product.ErrProductNotFound:
		respondError(c, http.StatusNotFound, "product not found")
	case product.ErrUnauthorized:
		respondError(c, http.StatusForbidden, "product belongs to another store")
	case product.ErrNothingToUpdate:
		respondError(c, http.StatusBadRequest, "no fields to update")
	case product.ErrInvalidPrice:
		respondError(c, http.StatusUnprocessableEntity, "price must be positive")
	case product.ErrInvalidStock:
		respondError(c, http.StatusUnprocessableEntity, "stock quantity must not be negative")
	default:
		respondError(c, http.StatusInternalServerError, "product operation failed")
	}
}

func (h *Handlers) ListProducts(c *gin.Context) {
	filter, ok := productFilter(c)
	if !ok {
		return
	}
	limit, page := pagination(c)

	products, err := h.Products.GetProducts(c.Request.Context(), filter, limit, page)
	if err != nil {
		productError(c, err)
		return
	}
	respondOK(c, "products retrieved successfully", products)
}

func (h *Handlers) GetProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	p, err := h.Products.GetProduct(c.Request.Context(), id)
	if err != nil {
		productError(c, err)
		return
	}
	respondOK(c, "product retrieved successfully", p)
}

func (h *Handlers) CreateProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input createProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	p, err := h.Products.CreateProduct(c.Request.Context(), userID, product.CreateProductInput{
		CategoryID:    input.CategoryID,
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
	})
	if err != nil {
		productError(c, err)
		return
	}
	respondCreated(c, "product created successfully", p)
}

func (h *Handlers) UpdateProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input updateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	p, err := h.Products.UpdateProduct(c.Request.Context(), userID, id, product.UpdateProductInput{
		CategoryID:    input.CategoryID,
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		IsActive:      input.IsActive,
	})
	if err != nil {
		productError(c, err)
		return
	}
	respondOK(c, "product updated successfully", p)
}

func (h *Handlers) DeleteProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.Products.DeleteProduct(c.Request.Context(), userID, id); err != nil {
		productError(c, err)
		return
	}
	respondOK(c, "product deactivated successfully", nil)
}

func productFilter(c *gin.Context) (*product.ListFilter, bool) {
	filter := &product.ListFilter{}

	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, http.StatusUnprocessableEntity, "category_id must be a number")
			return nil, false
		}
		v := uint(id)
		filter.CategoryID = &v
	}
	if raw := c.Query("store_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, http.StatusUnprocessableEntity, "store_id must be a number")
			return nil, false
		}
		v := uint(id)
		filter.StoreID = &v
	}
	if raw := c.Query("search"); raw != "" {
		filter.Search = &raw
	}
	if raw := c.Query("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(c, http.StatusUnprocessableEntity, "min_price must be a number")
			return nil, false
		}
		filter.MinPrice = &v
	}
	if raw := c.Query("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(c, http.StatusUnprocessableEntity, "max_price must be a number")
			return nil, false
		}
		filter.MaxPrice = &v
	}
	if raw := c.Query("in_stock"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, http.StatusUnprocessableEntity, "in_stock must be true or false")
			return nil, false
		}
		filter.InStock = &v
	}

	return filter, true
}
