package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"marketplace-be/internal/order"

	"github.com/gin-gonic/gin"
)

type addressInput struct {
	Street     string `json:"street" binding:"required,max=255"`
	City       string `json:"city" binding:"required,max=100"`
	State      string `json:"state" binding:"required,max=100"`
	PostalCode string `json:"postal_code" binding:"required,max=20"`
	Country    string `json:"country" binding:"required,max=100"`
}

func (a addressInput) toAddress() order.Address {
	return order.Address{
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

type checkoutInput struct {
	ShippingAddress addressInput  `json:"shipping_address" binding:"required"`
	BillingAddress  *addressInput `json:"billing_address"`
	PaymentMethod   string        `json:"payment_method" binding:"required"`
	Notes           *string       `json:"notes" binding:"omitempty,max=500"`
}

type updateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

func orderError(c *gin.Context, err error) {
	var shortage *order.StockShortageError
	if errors.As(err, &shortage) {
		respondError(c, http.StatusConflict, shortage.Error())
		return
	}
	var transition *order.InvalidTransitionError
	if errors.As(err, &transition) {
		respondError(c, http.StatusConflict, transition.Error())
		return
	}

	switch err {
	case order.ErrOrderNotFound:
		respondError(c, http.StatusNotFound, "order not found")
	case order.ErrEmptyCart:
		respondError(c, http.StatusBadRequest, "cart is empty")
	case order.ErrUnauthorized:
		respondError(c, http.StatusForbidden, "you are not allowed to access this order")
	case order.ErrInvalidStatus:
		respondError(c, http.StatusUnprocessableEntity, "unknown order status")
	case order.ErrInvalidPayMethod:
		respondError(c, http.StatusUnprocessableEntity, "unsupported payment method")
	case order.ErrMissingAddress:
		respondError(c, http.StatusUnprocessableEntity, "shipping address is incomplete")
	default:
		respondError(c, http.StatusInternalServerError, "order operation failed")
	}
}

// Checkout converts the caller's cart into one order per store.
func (h *Handlers) Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input checkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	params := order.CheckoutParams{
		UserID:          userID,
		ShippingAddress: input.ShippingAddress.toAddress(),
		PaymentMethod:   input.PaymentMethod,
		Notes:           input.Notes,
	}
	if input.BillingAddress != nil {
		billing := input.BillingAddress.toAddress()
		params.BillingAddress = &billing
	}

	orders, err := h.Orders.Checkout(c.Request.Context(), params)
	if err != nil {
		orderError(c, err)
		return
	}
	respondCreated(c, fmt.Sprintf("checkout complete, %d order(s) created", len(orders)), orders)
}

func (h *Handlers) ListOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filter, ok := orderFilter(c)
	if !ok {
		return
	}
	limit, page := pagination(c)

	orders, err := h.Orders.ListOrders(c.Request.Context(), userID, filter, limit, page)
	if err != nil {
		orderError(c, err)
		return
	}
	respondOK(c, "orders retrieved successfully", orders)
}

func (h *Handlers) GetOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ord, err := h.Orders.GetOrder(c.Request.Context(), userID, id)
	if err != nil {
		orderError(c, err)
		return
	}
	respondOK(c, "order retrieved successfully", ord)
}

func (h *Handlers) CancelOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.Orders.Cancel(c.Request.Context(), userID, id); err != nil {
		orderError(c, err)
		return
	}
	respondOK(c, "order cancelled successfully", nil)
}

func (h *Handlers) ListStoreOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filter, ok := orderFilter(c)
	if !ok {
		return
	}
	limit, page := pagination(c)

	orders, err := h.Orders.ListStoreOrders(c.Request.Context(), userID, filter, limit, page)
	if err != nil {
		orderError(c, err)
		return
	}
	respondOK(c, "store orders retrieved successfully", orders)
}

func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input updateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.Orders.UpdateStatus(c.Request.Context(), userID, id, order.Status(input.Status)); err != nil {
		orderError(c, err)
		return
	}
	respondOK(c, "order status updated successfully", nil)
}

func orderFilter(c *gin.Context) (*order.ListFilter, bool) {
	filter := &order.ListFilter{}

	if raw := c.Query("status"); raw != "" {
		status := order.Status(raw)
		if !order.ValidStatus(status) {
			respondError(c, http.StatusUnprocessableEntity, "unknown order status")
			return nil, false
		}
		filter.Status = &status
	}
	if raw := c.Query("date_from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(c, http.StatusUnprocessableEntity, "date_from must be YYYY-MM-DD")
			return nil, false
		}
		filter.DateFrom = &from
	}
	if raw := c.Query("date_to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(c, http.StatusUnprocessableEntity, "date_to must be YYYY-MM-DD")
			return nil, false
		}
		filter.DateTo = &to
	}

	return filter, true
}
