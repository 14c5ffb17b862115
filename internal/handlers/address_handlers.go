package handlers

import (
	"net/http"

	"marketplace-be/internal/address"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createAddressInput struct {
	Label        string  `json:"label" binding:"required,max=50"`
	Phone        string  `json:"phone" binding:"required,max=30"`
	Street       string  `json:"street" binding:"required,max=255"`
	Unit         *string `json:"unit" binding:"omitempty,max=50"`
	City         string  `json:"city" binding:"required,max=100"`
	State        string  `json:"state" binding:"required,max=100"`
	PostalCode   string  `json:"postal_code" binding:"required,max=20"`
	Country      string  `json:"country" binding:"required,max=100"`
	SetAsDefault bool    `json:"set_as_default"`
}

type updateAddressInput struct {
	Label        *string `json:"label" binding:"omitempty,max=50"`
	Phone        *string `json:"phone" binding:"omitempty,max=30"`
	Street       *string `json:"street" binding:"omitempty,max=255"`
	Unit         *string `json:"unit" binding:"omitempty,max=50"`
	City         *string `json:"city" binding:"omitempty,max=100"`
	State        *string `json:"state" binding:"omitempty,max=100"`
	PostalCode   *string `json:"postal_code" binding:"omitempty,max=20"`
	Country      *string `json:"country" binding:"omitempty,max=100"`
	SetAsDefault bool    `json:"set_as_default"`
}

func addressError(c *gin.Context, err error) {
	switch err {
	case address.ErrAddressNotFound:
		respondError(c, http.StatusNotFound, "address not found")
	case address.ErrNothingToUpdate:
		respondError(c, http.StatusBadRequest, "no fields to update")
	default:
		respondError(c, http.StatusInternalServerError, "address operation failed")
	}
}

func addressID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid address id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handlers) ListAddresses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	addresses, err := h.Addresses.List(c.Request.Context(), userID)
	if err != nil {
		addressError(c, err)
		return
	}
	respondOK(c, "addresses retrieved successfully", addresses)
}

func (h *Handlers) GetAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := addressID(c)
	if !ok {
		return
	}

	addr, err := h.Addresses.Get(c.Request.Context(), userID, id)
	if err != nil {
		addressError(c, err)
		return
	}
	respondOK(c, "address retrieved successfully", addr)
}

func (h *Handlers) CreateAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input createAddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	addr, err := h.Addresses.Create(c.Request.Context(), userID, address.CreateAddressInput{
		Label:        input.Label,
		Phone:        input.Phone,
		Street:       input.Street,
		Unit:         input.Unit,
		City:         input.City,
		State:        input.State,
		PostalCode:   input.PostalCode,
		Country:      input.Country,
		SetAsDefault: input.SetAsDefault,
	})
	if err != nil {
		addressError(c, err)
		return
	}
	respondCreated(c, "address created successfully", addr)
}

func (h *Handlers) UpdateAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := addressID(c)
	if !ok {
		return
	}

	var input updateAddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	addr, err := h.Addresses.Update(c.Request.Context(), userID, id, address.UpdateAddressInput{
		Label:        input.Label,
		Phone:        input.Phone,
		Street:       input.Street,
		Unit:         input.Unit,
		City:         input.City,
		State:        input.State,
		PostalCode:   input.PostalCode,
		Country:      input.Country,
		SetAsDefault: input.SetAsDefault,
	})
	if err != nil {
		addressError(c, err)
		return
	}
	respondOK(c, "address updated successfully", addr)
}

func (h *Handlers) DeleteAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := addressID(c)
	if !ok {
		return
	}

	if err := h.Addresses.Delete(c.Request.Context(), userID, id); err != nil {
		addressError(c, err)
		return
	}
	respondOK(c, "address deleted successfully", nil)
}

func (h *Handlers) SetDefaultAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := addressID(c)
	if !ok {
		return
	}

	if err := h.Addresses.SetDefaultAddress(c.Request.Context(), userID, id); err != nil {
		addressError(c, err)
		return
	}
	respondOK(c, "default address updated successfully", nil)
}
