package handler

import (
	"net/http"
	"time"

	"github.com/gdugdh24/faithmatch-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/usecase/auth"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase *auth.AuthUseCase
}

func NewAuthHandler(authUseCase *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

// GoogleAuthRequest represents Google sign-in request
type GoogleAuthRequest struct {
	IDToken    string `json:"id_token" binding:"required"`
	DeviceInfo string `json:"device_info" binding:"omitempty,max=255"`
}

// GoogleAuth handles POST /auth/google
// @Summary Google authentication
// @Description Exchange a Google ID token for a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GoogleAuthRequest true "Google ID token"
// @Success 200 {object} auth.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google [post]
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	var req GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	deviceInfo := req.DeviceInfo
	if deviceInfo == "" {
		deviceInfo = c.GetHeader("User-Agent")
	}

	result, err := h.authUseCase.LoginWithGoogle(c.Request.Context(), req.IDToken, deviceInfo, c.ClientIP())
	if err != nil {
		respondError(c, err, "authentication failed")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Logout handles POST /auth/logout
// @Summary Logout
// @Description Invalidate the current session
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authUseCase.Logout(c.Request.Context(), c.GetString(middleware.TokenKey)); err != nil {
		respondError(c, err, "logout failed")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "logged out successfully",
	})
}

// MeResponse is the authenticated account and its session expiry.
type MeResponse struct {
	User             *domain.User `json:"user"`
	SessionExpiresAt time.Time    `json:"session_expires_at"`
}

// Me handles GET /auth/me
// @Summary Get current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} MeResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	user, err := h.authUseCase.GetUser(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, err, "failed to get user")
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		User:             user,
		SessionExpiresAt: principal.ExpiresAt,
	})
}
