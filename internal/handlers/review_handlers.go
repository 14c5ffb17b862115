package handlers

import (
	"net/http"

	"marketplace-be/internal/review"

	"github.com/gin-gonic/gin"
)

type createReviewInput struct {
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

type updateReviewInput struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

func reviewError(c *gin.Context, err error) {
	switch err {
	case review.ErrReviewNotFound:
		respondError(c, http.StatusNotFound, "review not found")
	case review.ErrAlreadyReviewed:
		respondError(c, http.StatusConflict, "product already reviewed")
	case review.ErrProductNotFound:
		respondError(c, http.StatusNotFound, "product not found")
	case review.ErrInvalidRating:
		respondError(c, http.StatusUnprocessableEntity, "rating must be between 1 and 5")
	case review.ErrUnauthorized:
		respondError(c, http.StatusForbidden, "review belongs to another user")
	case review.ErrNothingToUpdate:
		respondError(c, http.StatusBadRequest, "no fields to update")
	default:
		respondError(c, http.StatusInternalServerError, "review operation failed")
	}
}

func (h *Handlers) ListProductReviews(c *gin.Context) {
	productID, ok := paramID(c, "id")
	if !ok {
		return
	}
	limit, page := pagination(c)

	reviews, err := h.Reviews.ListByProduct(c.Request.Context(), productID, limit, page)
	if err != nil {
		reviewError(c, err)
		return
	}
	respondOK(c, "reviews retrieved successfully", reviews)
}

func (h *Handlers) ProductReviewSummary(c *gin.Context) {
	productID, ok := paramID(c, "id")
	if !ok {
		return
	}

	summary, err := h.Reviews.Summarize(c.Request.Context(), productID)
	if err != nil {
		reviewError(c, err)
		return
	}
	respondOK(c, "review summary retrieved successfully", summary)
}

func (h *Handlers) CreateReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input createReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	r, err := h.Reviews.Create(c.Request.Context(), userID, review.CreateReviewInput{
		ProductID: productID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	})
	if err != nil {
		reviewError(c, err)
		return
	}
	respondCreated(c, "review created successfully", r)
}

func (h *Handlers) UpdateReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input updateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	r, err := h.Reviews.Update(c.Request.Context(), userID, id, review.UpdateReviewInput{
		Rating:  input.Rating,
		Comment: input.Comment,
	})
	if err != nil {
		reviewError(c, err)
		return
	}
	respondOK(c, "review updated successfully", r)
}

func (h *Handlers) DeleteReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.Reviews.Delete(c.Request.Context(), userID, id); err != nil {
		reviewError(c, err)
		return
	}
	respondOK(c, "review deleted successfully", nil)
}
