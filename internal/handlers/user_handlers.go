package handlers

import (
	"net/http"

	"marketplace-be/internal/user"

	"github.com/gin-gonic/gin"
)

type registerInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=client store_owner service_provider"`
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handlers) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := h.Users.Register(c.Request.Context(), user.RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		switch err {
		case user.ErrEmailExists:
			respondError(c, http.StatusConflict, "email already registered")
		case user.ErrInvalidRole:
			respondError(c, http.StatusUnprocessableEntity, "invalid role")
		default:
			respondError(c, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	respondCreated(c, "user registered successfully", result)
}

func (h *Handlers) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := h.Users.Login(c.Request.Context(), user.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		if err == user.ErrInvalidCredentials {
			respondError(c, http.StatusUnauthorized, "invalid email or password")
			return
		}
		respondError(c, http.StatusInternalServerError, "login failed")
		return
	}

	respondOK(c, "login successful", result)
}

func (h *Handlers) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	u, err := h.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if err == user.ErrUserNotFound {
			respondError(c, http.StatusNotFound, "user not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load user")
		return
	}

	respondOK(c, "user retrieved successfully", u)
}
