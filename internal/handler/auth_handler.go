package handler

import (
	"net/http"

	"choosecare-bff/internal/middleware"
	"choosecare-bff/internal/service"
	"choosecare-bff/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates upstream and returns the token with the role's home screen
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	session, err := h.authService.Login(c.Request.Context(), middleware.DeviceID(c), req.Email, req.Password)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	utils.SuccessResponse(c, session)
}

// Logout forgets the device's stored token when the caller holds it
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := middleware.BearerToken(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
		return
	}
	h.authService.Logout(c.Request.Context(), middleware.DeviceID(c), token)
	utils.MessageResponse(c, "Logged out successfully")
}
