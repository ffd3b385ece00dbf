// internal/handlers/user.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopworks/storefront-backend/internal/middleware"
	"github.com/shopworks/storefront-backend/internal/models"
	"github.com/shopworks/storefront-backend/internal/services"
	"github.com/shopworks/storefront-backend/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /api/users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		utils.Fail(c, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	utils.OK(c, principal)
}

// PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		utils.Fail(c, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(principal.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.OK(c, models.NewUserProfile(user))
}

// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		utils.Error(c, err)
		return
	}

	profiles := make([]models.UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, models.NewUserProfile(&users[i]))
	}
	utils.OK(c, profiles)
}

// GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	user, err := h.userService.GetByID(id)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.OK(c, models.NewUserProfile(user))
}

// PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	var req services.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.AdminUpdate(id, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.OK(c, models.NewUserProfile(user))
}

// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	if err := h.userService.Delete(id); err != nil {
		utils.Error(c, err)
		return
	}

	utils.OK(c, gin.H{"message": "User removed"})
}
