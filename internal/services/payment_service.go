// internal/services/payment_service.go
package services

import (
	"time"

	"github.com/google/uuid"
)

// PaymentService is the mock gateway this system ships with: it normalizes
// a caller-supplied payment result instead of charging anything. A real
// processor would replace Capture and keep the same shape.
type PaymentService struct{}

type PaymentResultRequest struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	UpdateTime string `json:"update_time"`
	Email      string `json:"email_address"`
}

type PaymentResult struct {
	ID         string
	Status     string
	UpdateTime string
	Email      string
}

func NewPaymentService() *PaymentService {
	return &PaymentService{}
}

func (s *PaymentService) Capture(req *PaymentResultRequest) PaymentResult {
	result := PaymentResult{
		ID:         req.ID,
		Status:     req.Status,
		UpdateTime: req.UpdateTime,
		Email:      req.Email,
	}

	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	if result.Status == "" {
		result.Status = "COMPLETED"
	}
	if result.UpdateTime == "" {
		result.UpdateTime = time.Now().UTC().Format(time.RFC3339)
	}

	return result
}
