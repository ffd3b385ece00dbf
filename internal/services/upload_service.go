// internal/services/upload_service.go
package services

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopworks/storefront-backend/internal/apperrors"
	"github.com/shopworks/storefront-backend/internal/config"
)

// UploadService persists product images to the configured local directory;
// they are served back under the public path by the router.
type UploadService struct {
	cfg config.UploadConfig
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

func NewUploadService(cfg config.UploadConfig) (*UploadService, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &UploadService{cfg: cfg}, nil
}

// SaveImage stores the uploaded file under a generated name and returns the
// public path to reference it from a product record.
func (s *UploadService) SaveImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", apperrors.InvalidRequest("Images only")
	}

	if file.Size > int64(s.cfg.MaxSizeMB)*1024*1024 {
		return "", apperrors.InvalidRequest(fmt.Sprintf("Image larger than %dMB", s.cfg.MaxSizeMB))
	}

	name := fmt.Sprintf("image-%s%s", uuid.NewString(), ext)
	dst := filepath.Join(s.cfg.Dir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}

	return s.cfg.PublicPath + "/" + name, nil
}
