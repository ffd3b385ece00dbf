// internal/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopworks/storefront-backend/internal/config"
	"github.com/shopworks/storefront-backend/internal/models"
	"github.com/shopworks/storefront-backend/internal/services"
	"github.com/shopworks/storefront-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
	jwtConfig   config.JWTConfig
}

func NewAuthHandler(authService *services.AuthService, jwtConfig config.JWTConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtConfig:   jwtConfig,
	}
}

// POST /api/users
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.authService.Register(&req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	h.setSessionCookie(c, token)
	utils.Created(c, models.NewUserProfile(user))
}

// POST /api/users/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.authService.Login(&req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	h.setSessionCookie(c, token)
	utils.OK(c, models.NewUserProfile(user))
}

// POST /api/users/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.jwtConfig.CookieName, "", -1, "/", "", h.jwtConfig.CookieSecure, true)
	utils.OK(c, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		h.jwtConfig.CookieName,
		token,
		int(h.authService.TokenTTL().Seconds()),
		"/",
		"",
		h.jwtConfig.CookieSecure,
		true,
	)
}
