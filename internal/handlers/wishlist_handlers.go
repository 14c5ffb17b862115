package handlers

import (
	"net/http"

	"marketplace-be/internal/wishlist"

	"github.com/gin-gonic/gin"
)

type addWishlistInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

func wishlistError(c *gin.Context, err error) {
	switch err {
	case wishlist.ErrAlreadyInWishlist:
		respondError(c, http.StatusConflict, "product already in wishlist")
	case wishlist.ErrNotInWishlist:
		respondError(c, http.StatusNotFound, "product not in wishlist")
	case wishlist.ErrProductNotFound:
		respondError(c, http.StatusNotFound, "product not found")
	default:
		respondError(c, http.StatusInternalServerError, "wishlist operation failed")
	}
}

func (h *Handlers) ListWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := h.Wishlists.List(c.Request.Context(), userID)
	if err != nil {
		wishlistError(c, err)
		return
	}
	respondOK(c, "wishlist retrieved successfully", items)
}

func (h *Handlers) AddToWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input addWishlistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	item, err := h.Wishlists.Add(c.Request.Context(), userID, input.ProductID)
	if err != nil {
		wishlistError(c, err)
		return
	}
	respondCreated(c, "product added to wishlist", item)
}

func (h *Handlers) RemoveFromWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := paramID(c, "productId")
	if !ok {
		return
	}

	if err := h.Wishlists.Remove(c.Request.Context(), userID, productID); err != nil {
		wishlistError(c, err)
		return
	}
	respondOK(c, "product removed from wishlist", nil)
}

func (h *Handlers) CheckWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := paramID(c, "productId")
	if !ok {
		return
	}

	in, err := h.Wishlists.Contains(c.Request.Context(), userID, productID)
	if err != nil {
		wishlistError(c, err)
		return
	}
	respondOK(c, "wishlist checked", gin.H{"in_wishlist": in})
}

func (h *Handlers) ClearWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.Wishlists.Clear(c.Request.Context(), userID); err != nil {
		wishlistError(c, err)
		return
	}
	respondOK(c, "wishlist cleared successfully", nil)
}
