// internal/handlers/order.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopworks/storefront-backend/internal/middleware"
	"github.com/shopworks/storefront-backend/internal/services"
	"github.com/shopworks/storefront-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		utils.Fail(c, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderService.Create(principal, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Created(c, order)
}

// GET /api/orders/mine
func (h *OrderHandler) ListMine(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		utils.Fail(c, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	orders, err := h.orderService.ListMine(principal)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.OK(c, orders)
}

// GET /api/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		utils.Fail(c, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	id, err := parseID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	order, err := h.orderService.Get(id, principal)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.OK(c, order)
}

// PUT /api/orders/:id/pay
func (h *OrderHandler) Pay(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	var req services.PaymentResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderService.MarkPaid(id, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.OK(c, order)
}

// PUT /api/orders/:id/deliver
func (h *OrderHandler) Deliver(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	order, err := h.orderService.MarkDelivered(id)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.OK(c, order)
}

// GET /api/orders
func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.orderService.ListAll()
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.OK(c, orders)
}
