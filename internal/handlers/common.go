// internal/handlers/common.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shopworks/storefront-backend/internal/apperrors"
)

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperrors.InvalidRequest("Invalid id")
	}
	return uint(id), nil
}
