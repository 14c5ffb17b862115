package handlers

import (
	"net/http"

	"marketplace-be/internal/cart"

	"github.com/gin-gonic/gin"
)

type addCartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type updateCartItemInput struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

func cartError(c *gin.Context, err error) {
	switch err {
	case cart.ErrCartItemNotFound:
		respondError(c, http.StatusNotFound, "cart item not found")
	case cart.ErrProductNotFound:
		respondError(c, http.StatusNotFound, "product not found")
	case cart.ErrProductInactive:
		respondError(c, http.StatusUnprocessableEntity, "product is not available")
	case cart.ErrInsufficientStock:
		respondError(c, http.StatusConflict, "insufficient stock for requested quantity")
	case cart.ErrInvalidQuantity:
		respondError(c, http.StatusUnprocessableEntity, "quantity must be positive")
	case cart.ErrNotCartOwner:
		respondError(c, http.StatusForbidden, "cart item belongs to another user")
	default:
		respondError(c, http.StatusInternalServerError, "cart operation failed")
	}
}

func (h *Handlers) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	userCart, err := h.Carts.GetCart(c.Request.Context(), userID)
	if err != nil {
		cartError(c, err)
		return
	}
	respondOK(c, "cart retrieved successfully", userCart)
}

func (h *Handlers) AddCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input addCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	item, err := h.Carts.AddItem(c.Request.Context(), cart.AddItemParams{
		UserID:    userID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
	})
	if err != nil {
		cartError(c, err)
		return
	}
	respondCreated(c, "item added to cart", item)
}

// UpdateCartItem changes an item's quantity. Quantity zero removes the item.
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input updateCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	err := h.Carts.UpdateItem(c.Request.Context(), cart.UpdateItemParams{
		UserID:   userID,
		ItemID:   id,
		Quantity: input.Quantity,
	})
	if err != nil {
		cartError(c, err)
		return
	}
	respondOK(c, "cart item updated successfully", nil)
}

func (h *Handlers) RemoveCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.Carts.RemoveItem(c.Request.Context(), userID, id); err != nil {
		cartError(c, err)
		return
	}
	respondOK(c, "cart item removed successfully", nil)
}

func (h *Handlers) ClearCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.Carts.ClearCart(c.Request.Context(), userID); err != nil {
		cartError(c, err)
		return
	}
	respondOK(c, "cart cleared successfully", nil)
}
