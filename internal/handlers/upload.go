// internal/handlers/upload.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopworks/storefront-backend/internal/services"
	"github.com/shopworks/storefront-backend/internal/utils"
)

type UploadHandler struct {
	uploadService *services.UploadService
}

func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// POST /api/upload
func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "No image file provided")
		return
	}

	path, err := h.uploadService.SaveImage(c, file)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Created(c, gin.H{"image": path})
}
