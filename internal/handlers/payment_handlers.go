package handlers

import (
	"net/http"

	"marketplace-be/internal/payment"

	"github.com/gin-gonic/gin"
)

func paymentError(c *gin.Context, err error) {
	switch err {
	case payment.ErrPaymentNotFound:
		respondError(c, http.StatusNotFound, "payment not found")
	case payment.ErrAlreadySettled:
		respondError(c, http.StatusConflict, "payment already settled")
	case payment.ErrUnauthorized:
		respondError(c, http.StatusForbidden, "you are not allowed to access this payment")
	default:
		respondError(c, http.StatusInternalServerError, "payment operation failed")
	}
}

func (h *Handlers) ListPayments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payments, err := h.Payments.ListMine(c.Request.Context(), userID)
	if err != nil {
		paymentError(c, err)
		return
	}
	respondOK(c, "payments retrieved successfully", payments)
}

func (h *Handlers) GetOrderPayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	p, err := h.Payments.GetByOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		paymentError(c, err)
		return
	}
	respondOK(c, "payment retrieved successfully", p)
}

// MarkPaymentPaid settles a pending payment. Admin only.
func (h *Handlers) MarkPaymentPaid(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.Payments.MarkPaid(c.Request.Context(), id); err != nil {
		paymentError(c, err)
		return
	}
	respondOK(c, "payment marked as paid", nil)
}

func (h *Handlers) MarkPaymentFailed(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.Payments.MarkFailed(c.Request.Context(), id); err != nil {
		paymentError(c, err)
		return
	}
	respondOK(c, "payment marked as failed", nil)
}
