// internal/utils/pagination.go
package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Catalog pagination uses a fixed page size; only the 1-indexed page number
// comes from the caller.

func GetPageNumber(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("pageNumber", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	return page
}

func ApplyPage(db *gorm.DB, page, pageSize int) *gorm.DB {
	offset := (page - 1) * pageSize
	return db.Offset(offset).Limit(pageSize)
}

// TotalPages is ceil(total / pageSize); zero matches yield zero pages.
func TotalPages(total int64, pageSize int) int {
	return int(math.Ceil(float64(total) / float64(pageSize)))
}
