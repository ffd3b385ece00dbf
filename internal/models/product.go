// internal/models/product.go
package models

type Product struct {
	SoftDeleteModel
	UserID       uint    `json:"userId" gorm:"index;not null"`
	Name         string  `json:"name" gorm:"size:255;not null"`
	Image        string  `json:"image" gorm:"size:512"`
	Brand        string  `json:"brand" gorm:"size:255"`
	Category     string  `json:"category" gorm:"size:255"`
	Description  string  `json:"description" gorm:"type:text"`
	Price        float64 `json:"price" gorm:"not null;default:0"`
	CountInStock int     `json:"countInStock" gorm:"not null;default:0"`
	Rating       float64 `json:"rating" gorm:"not null;default:0"`
	NumReviews   int     `json:"numReviews" gorm:"not null;default:0"`

	// Relationships
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// Review is a customer rating attached to a product. One per user per
// product; Product.Rating is the mean of its reviews.
type Review struct {
	BaseModel
	ProductID uint    `json:"productId" gorm:"index;not null"`
	UserID    uint    `json:"userId" gorm:"index;not null"`
	Name      string  `json:"name" gorm:"size:255;not null"`
	Rating    float64 `json:"rating" gorm:"not null"`
	Comment   string  `json:"comment" gorm:"type:text"`
}
