// internal/services/product_service_test.go
package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopworks/storefront-backend/internal/apperrors"
	"github.com/shopworks/storefront-backend/internal/config"
	"github.com/shopworks/storefront-backend/internal/models"
)

func newProductService(db *gorm.DB) *ProductService {
	return NewProductService(db, nil, config.CatalogConfig{PageSize: 5, TopProducts: 3})
}

func TestListPagination(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)
	admin := createTestUser(t, db, "admin", "admin@email.com", true)

	for i := 0; i < 12; i++ {
		createTestProduct(t, db, admin.ID, fmt.Sprintf("Gadget %02d", i), 10, 5, 3)
	}

	page, err := svc.List("", 1)
	require.NoError(t, err)
	assert.Len(t, page.Products, 5)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.Pages)

	page, err = svc.List("", 3)
	require.NoError(t, err)
	assert.Len(t, page.Products, 2)
	assert.Equal(t, 3, page.Page)
}

func TestListKeyword(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)
	admin := createTestUser(t, db, "admin", "admin@email.com", true)

	createTestProduct(t, db, admin.ID, "Airpods Wireless", 89, 10, 4.5)
	createTestProduct(t, db, admin.ID, "Camera", 929, 5, 3)

	// Substring match is case-insensitive.
	page, err := svc.List("AIRPODS", 1)
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Airpods Wireless", page.Products[0].Name)
	assert.Equal(t, 1, page.Pages)
}

func TestListNoMatches(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)
	admin := createTestUser(t, db, "admin", "admin@email.com", true)
	createTestProduct(t, db, admin.ID, "Camera", 929, 5, 3)

	page, err := svc.List("nothing-matches-this", 1)
	require.NoError(t, err)
	assert.NotNil(t, page.Products)
	assert.Empty(t, page.Products)
	assert.Equal(t, 0, page.Pages)
}

func TestTopProducts(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)
	admin := createTestUser(t, db, "admin", "admin@email.com", true)

	createTestProduct(t, db, admin.ID, "Low", 10, 5, 2)
	createTestProduct(t, db, admin.ID, "Mid", 10, 5, 3.5)
	createTestProduct(t, db, admin.ID, "High", 10, 5, 5)
	createTestProduct(t, db, admin.ID, "Mid2", 10, 5, 3)

	top, err := svc.Top(context.Background())
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "High", top[0].Name)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Rating, top[i].Rating)
	}
}

func TestGetMissingProduct(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)

	_, err := svc.Get(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	assert.Equal(t, "Product not found", err.Error())
}

func TestCreateSampleAndUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)
	admin := createTestUser(t, db, "admin", "admin@email.com", true)

	product, err := svc.CreateSample(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sample name", product.Name)
	assert.Equal(t, admin.ID, product.UserID)
	assert.Zero(t, product.Price)

	updated, err := svc.Update(context.Background(), product.ID, &UpdateProductRequest{
		Name:         "Real product",
		Brand:        "Acme",
		Category:     "Electronics",
		Description:  "An actual product",
		Price:        49.99,
		CountInStock: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, "Real product", updated.Name)
	assert.Equal(t, 49.99, updated.Price)
	assert.Equal(t, 7, updated.CountInStock)
}

func TestDeleteProduct(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)
	admin := createTestUser(t, db, "admin", "admin@email.com", true)
	product := createTestProduct(t, db, admin.ID, "Widget", 10, 5, 3)

	require.NoError(t, svc.Delete(context.Background(), product.ID))

	_, err := svc.Get(context.Background(), product.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestCreateReview(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)
	admin := createTestUser(t, db, "admin", "admin@email.com", true)
	alice := createTestUser(t, db, "alice", "alice@email.com", false)
	bob := createTestUser(t, db, "bob", "bob@email.com", false)
	product := createTestProduct(t, db, admin.ID, "Widget", 10, 5, 0)

	err := svc.CreateReview(context.Background(), product.ID, models.NewUserProfile(alice), &CreateReviewRequest{Rating: 4, Comment: "good"})
	require.NoError(t, err)
	err = svc.CreateReview(context.Background(), product.ID, models.NewUserProfile(bob), &CreateReviewRequest{Rating: 2, Comment: "meh"})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.NumReviews)
	assert.InDelta(t, 3.0, got.Rating, 0.001)

	// One review per user per product.
	err = svc.CreateReview(context.Background(), product.ID, models.NewUserProfile(alice), &CreateReviewRequest{Rating: 5})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidRequest))
	assert.Equal(t, "Product already reviewed", err.Error())
}

func TestCreateReviewRatingBounds(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)
	admin := createTestUser(t, db, "admin", "admin@email.com", true)
	alice := createTestUser(t, db, "alice", "alice@email.com", false)
	product := createTestProduct(t, db, admin.ID, "Widget", 10, 5, 0)

	err := svc.CreateReview(context.Background(), product.ID, models.NewUserProfile(alice), &CreateReviewRequest{Rating: 6})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidRequest))
}
