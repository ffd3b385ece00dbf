// internal/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopworks/storefront-backend/internal/middleware"
	"github.com/shopworks/storefront-backend/internal/services"
	"github.com/shopworks/storefront-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GET /api/products
func (h *ProductHandler) List(c *gin.Context) {
	page, err := h.productService.List(c.Query("keyword"), utils.GetPageNumber(c))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.OK(c, page)
}

// GET /api/products/top
func (h *ProductHandler) Top(c *gin.Context) {
	products, err := h.productService.Top(c.Request.Context())
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.OK(c, products)
}

// GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.OK(c, product)
}

// POST /api/products
func (h *ProductHandler) Create(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		utils.Fail(c, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	product, err := h.productService.CreateSample(c.Request.Context(), principal.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Created(c, product)
}

// PUT /api/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.OK(c, product)
}

// DELETE /api/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		utils.Error(c, err)
		return
	}

	utils.OK(c, gin.H{"message": "Product removed"})
}

// POST /api/products/:id/reviews
func (h *ProductHandler) CreateReview(c *gin.Context) {
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

	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.productService.CreateReview(c.Request.Context(), id, principal, &req); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Created(c, gin.H{"message": "Review added"})
}
