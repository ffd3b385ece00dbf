// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shopworks/storefront-backend/internal/apperrors"
	"github.com/shopworks/storefront-backend/internal/database"
	"github.com/shopworks/storefront-backend/internal/events"
	"github.com/shopworks/storefront-backend/internal/metrics"
	"github.com/shopworks/storefront-backend/internal/models"
	"github.com/shopworks/storefront-backend/internal/utils"
)

// OrderService owns the order aggregate and its lifecycle:
// created -> paid -> delivered. Both transitions are one-way and stamped
// with the transition time; neither is idempotent, a repeat call re-stamps
// the timestamp. MarkDelivered deliberately does not require the order to
// be paid first, matching the documented contract.
type OrderService struct {
	db        *gorm.DB
	payments  *PaymentService
	publisher *events.Publisher
}

type OrderItemRequest struct {
	ProductID uint `json:"productId" validate:"required"`
	Qty       int  `json:"qty" validate:"required,gte=1"`
}

type ShippingRequest struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
}

type CreateOrderRequest struct {
	OrderItems    []OrderItemRequest `json:"orderItems"`
	Shipping      ShippingRequest    `json:"shipping"`
	PaymentMethod string             `json:"paymentMethod" validate:"required"`
	ItemsPrice    float64            `json:"itemsPrice" validate:"gte=0"`
	TaxPrice      float64            `json:"taxPrice" validate:"gte=0"`
	ShippingPrice float64            `json:"shippingPrice" validate:"gte=0"`
	TotalPrice    float64            `json:"totalPrice" validate:"gte=0"`
}

func NewOrderService(db *gorm.DB, payments *PaymentService, publisher *events.Publisher) *OrderService {
	return &OrderService{
		db:        db,
		payments:  payments,
		publisher: publisher,
	}
}

// Create persists the order header and its line items atomically: a failure
// on any line leaves no order behind. The price snapshot is taken from the
// request verbatim and never recomputed afterwards.
func (s *OrderService) Create(principal models.UserProfile, req *CreateOrderRequest) (*models.Order, error) {
	if len(req.OrderItems) == 0 {
		return nil, apperrors.InvalidRequest("No order items")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidRequest(utils.ValidationMessage(err))
	}

	order := &models.Order{
		UserID:             principal.ID,
		ShippingAddress:    req.Shipping.Address,
		ShippingCity:       req.Shipping.City,
		ShippingPostalCode: req.Shipping.PostalCode,
		PaymentMethod:      req.PaymentMethod,
		ItemsPrice:         req.ItemsPrice,
		TaxPrice:           req.TaxPrice,
		ShippingPrice:      req.ShippingPrice,
		TotalPrice:         req.TotalPrice,
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, item := range req.OrderItems {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound("Product not found")
				}
				return fmt.Errorf("database error: %w", err)
			}

			line := &models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Qty:       item.Qty,
			}
			if err := tx.Create(line).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	s.publisher.PublishAsync(events.NewOrderEvent(events.TypeOrderCreated, order.ID, order.UserID, order.TotalPrice))

	return s.load(order.ID)
}

// Get returns the order with purchaser identity and line items re-joined to
// live product data. Only the owner or an admin may see it.
func (s *OrderService) Get(id uint, principal models.UserProfile) (*models.Order, error) {
	order, err := s.load(id)
	if err != nil {
		return nil, err
	}

	if !principal.IsAdmin && order.UserID != principal.ID {
		return nil, apperrors.Forbidden("Not authorized to view this order")
	}

	return order, nil
}

func (s *OrderService) ListMine(principal models.UserProfile) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("user_id = ?", principal.ID).
		Order("created_at DESC").
		Preload("Items").Preload("Items.Product").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) ListAll() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Order("created_at DESC").
		Preload("User").Preload("Items").Preload("Items.Product").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

// MarkPaid stamps the paid transition and copies the captured payment
// result onto the order.
func (s *OrderService) MarkPaid(id uint, req *PaymentResultRequest) (*models.Order, error) {
	order, err := s.find(id)
	if err != nil {
		return nil, err
	}

	result := s.payments.Capture(req)
	now := time.Now()
	order.IsPaid = true
	order.PaidAt = &now
	order.PaymentResultID = result.ID
	order.PaymentResultStatus = result.Status
	order.PaymentResultUpdateTime = result.UpdateTime
	order.PaymentResultEmail = result.Email

	if err := s.db.Save(order).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	metrics.OrdersPaidTotal.Inc()
	s.publisher.PublishAsync(events.NewOrderEvent(events.TypeOrderPaid, order.ID, order.UserID, order.TotalPrice))

	return s.load(order.ID)
}

func (s *OrderService) MarkDelivered(id uint) (*models.Order, error) {
	order, err := s.find(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order.IsDelivered = true
	order.DeliveredAt = &now

	if err := s.db.Save(order).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	metrics.OrdersDeliveredTotal.Inc()
	s.publisher.PublishAsync(events.NewOrderEvent(events.TypeOrderDelivered, order.ID, order.UserID, order.TotalPrice))

	return s.load(order.ID)
}

func (s *OrderService) find(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func (s *OrderService) load(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("User").Preload("Items").Preload("Items.Product").
		First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}
