// internal/utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shopworks/storefront-backend/internal/apperrors"
)

// Success responses return the resource body directly; errors return
// {"message": ...} at the mapped status. Handlers never shape JSON on
// their own.

type ErrorBody struct {
	Message string `json:"message"`
}

func OK(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

func Created(c *gin.Context, body interface{}) {
	c.JSON(http.StatusCreated, body)
}

func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Message: message})
}

// Error maps a service failure to its HTTP shape. A gorm record-not-found
// that escaped untranslated is re-expressed as a uniform 404 so callers
// never see storage-layer error text. Unclassified errors become a 500 with
// the detail suppressed outside development.
func Error(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		Fail(c, statusFor(appErr.Code), appErr.Message)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		Fail(c, http.StatusNotFound, "Resource not found")
		return
	}

	logrus.WithError(err).Error("unhandled error")
	message := "Internal server error"
	if gin.Mode() != gin.ReleaseMode {
		message = err.Error()
	}
	Fail(c, http.StatusInternalServerError, message)
}

func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.CodeInvalidRequest:
		return http.StatusBadRequest
	case apperrors.CodeUnauthenticated:
		return http.StatusUnauthorized
	case apperrors.CodeForbidden:
		return http.StatusForbidden
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
