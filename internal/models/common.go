// internal/models/common.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SoftDeleteModel adds a deletion marker for entities that can be removed
// through the API (users, products). Orders never carry one.
type SoftDeleteModel struct {
	BaseModel
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
