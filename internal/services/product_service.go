// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/shopworks/storefront-backend/internal/apperrors"
	"github.com/shopworks/storefront-backend/internal/cache"
	"github.com/shopworks/storefront-backend/internal/config"
	"github.com/shopworks/storefront-backend/internal/database"
	"github.com/shopworks/storefront-backend/internal/models"
	"github.com/shopworks/storefront-backend/internal/utils"
)

type ProductService struct {
	db    *gorm.DB
	cache *cache.ProductCache
	cfg   config.CatalogConfig
}

type ProductPage struct {
	Products []models.Product `json:"products"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
}

type UpdateProductRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Image        string  `json:"image"`
	Brand        string  `json:"brand"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" validate:"gte=0"`
	CountInStock int     `json:"countInStock" validate:"gte=0"`
}

type CreateReviewRequest struct {
	Rating  float64 `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string  `json:"comment"`
}

func NewProductService(db *gorm.DB, productCache *cache.ProductCache, cfg config.CatalogConfig) *ProductService {
	return &ProductService{
		db:    db,
		cache: productCache,
		cfg:   cfg,
	}
}

// List returns one fixed-size page of the catalog. The keyword, when
// present, is a case-insensitive substring match on the product name.
func (s *ProductService) List(keyword string, page int) (*ProductPage, error) {
	query := s.db.Model(&models.Product{})
	if keyword != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(keyword)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	if err := utils.ApplyPage(query, page, s.cfg.PageSize).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	if products == nil {
		products = []models.Product{}
	}

	return &ProductPage{
		Products: products,
		Page:     page,
		Pages:    utils.TotalPages(total, s.cfg.PageSize),
	}, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	if product, ok := s.cache.GetProduct(ctx, id); ok {
		return product, nil
	}

	var product models.Product
	if err := s.db.Preload("Reviews").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	s.cache.SetProduct(ctx, &product)
	return &product, nil
}

// Top returns the highest-rated products, at most the configured count,
// non-increasing by rating. Ties fall back to storage order.
func (s *ProductService) Top(ctx context.Context) ([]models.Product, error) {
	if products, ok := s.cache.GetTopProducts(ctx); ok {
		return products, nil
	}

	var products []models.Product
	if err := s.db.Order("rating DESC").Limit(s.cfg.TopProducts).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch top products: %w", err)
	}

	s.cache.SetTopProducts(ctx, products)
	return products, nil
}

// CreateSample inserts a stub record for the admin to edit afterwards.
func (s *ProductService) CreateSample(ctx context.Context, creatorID uint) (*models.Product, error) {
	product := &models.Product{
		UserID:      creatorID,
		Name:        "Sample name",
		Image:       "/images/sample.jpg",
		Brand:       "Sample brand",
		Category:    "Sample category",
		Description: "Sample description",
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.cache.Invalidate(ctx, product.ID)
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidRequest(utils.ValidationMessage(err))
	}

	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	product.Name = req.Name
	product.Image = req.Image
	product.Brand = req.Brand
	product.Category = req.Category
	product.Description = req.Description
	product.Price = req.Price
	product.CountInStock = req.CountInStock

	if err := s.db.Save(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.cache.Invalidate(ctx, product.ID)
	return &product, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Product not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.cache.Invalidate(ctx, id)
	return nil
}

// CreateReview adds one review per user per product and recomputes the
// product's rating and review count in the same transaction.
func (s *ProductService) CreateReview(ctx context.Context, productID uint, principal models.UserProfile, req *CreateReviewRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return apperrors.InvalidRequest(utils.ValidationMessage(err))
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Product not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		var existing int64
		if err := tx.Model(&models.Review{}).
			Where("product_id = ? AND user_id = ?", productID, principal.ID).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("failed to check existing review: %w", err)
		}
		if existing > 0 {
			return apperrors.InvalidRequest("Product already reviewed")
		}

		review := &models.Review{
			ProductID: productID,
			UserID:    principal.ID,
			Name:      principal.Name,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}

		var stats struct {
			Count int64
			Avg   float64
		}
		if err := tx.Model(&models.Review{}).
			Where("product_id = ?", productID).
			Select("COUNT(*) as count, AVG(rating) as avg").
			Scan(&stats).Error; err != nil {
			return fmt.Errorf("failed to aggregate reviews: %w", err)
		}

		product.NumReviews = int(stats.Count)
		product.Rating = stats.Avg
		if err := tx.Save(&product).Error; err != nil {
			return fmt.Errorf("failed to update product rating: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, productID)
	return nil
}
