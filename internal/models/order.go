// internal/models/order.go
package models

import "time"

// Order is the central aggregate: it exclusively owns its line items, which
// are created with it in one transaction and cascade with it. The price
// fields are a snapshot supplied at checkout and persisted verbatim; they
// are never re-derived from the catalog.
type Order struct {
	BaseModel
	UserID uint `json:"userId" gorm:"index;not null"`

	// Shipping snapshot, copied at creation time.
	ShippingAddress    string `json:"shippingAddress" gorm:"size:512;not null"`
	ShippingCity       string `json:"shippingCity" gorm:"size:255;not null"`
	ShippingPostalCode string `json:"shippingPostalCode" gorm:"size:32;not null"`

	PaymentMethod string `json:"paymentMethod" gorm:"size:255;not null"`

	// Price snapshot.
	ItemsPrice    float64 `json:"itemsPrice" gorm:"not null;default:0"`
	TaxPrice      float64 `json:"taxPrice" gorm:"not null;default:0"`
	ShippingPrice float64 `json:"shippingPrice" gorm:"not null;default:0"`
	TotalPrice    float64 `json:"totalPrice" gorm:"not null;default:0"`

	// Lifecycle. Invariant: IsPaid iff PaidAt != nil, IsDelivered iff
	// DeliveredAt != nil.
	IsPaid      bool       `json:"isPaid" gorm:"not null;default:false"`
	PaidAt      *time.Time `json:"paidAt"`
	IsDelivered bool       `json:"isDelivered" gorm:"not null;default:false"`
	DeliveredAt *time.Time `json:"deliveredAt"`

	// Payment gateway result, populated on payment.
	PaymentResultID         string `json:"paymentResultId" gorm:"size:255"`
	PaymentResultStatus     string `json:"paymentResultStatus" gorm:"size:64"`
	PaymentResultUpdateTime string `json:"paymentResultUpdateTime" gorm:"size:64"`
	PaymentResultEmail      string `json:"paymentResultEmail" gorm:"size:255"`

	// Relationships
	User  *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items []OrderItem `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem captures quantity only; product name and price are re-joined
// from the live Product at read time, so historical orders reflect current
// catalog data rather than the price paid.
type OrderItem struct {
	BaseModel
	OrderID   uint `json:"orderId" gorm:"index;not null"`
	ProductID uint `json:"productId" gorm:"index;not null"`
	Qty       int  `json:"qty" gorm:"not null"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
