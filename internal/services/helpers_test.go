// internal/services/helpers_test.go
package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopworks/storefront-backend/internal/database"
	"github.com/shopworks/storefront-backend/internal/models"
)

// newTestDB opens a per-test in-memory database. The shared-cache DSN keeps
// every pooled connection pointed at the same store, and the test name keeps
// parallel tests isolated from each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string, isAdmin bool) *models.User {
	t.Helper()

	user := &models.User{Name: name, Email: email, IsAdmin: isAdmin}
	require.NoError(t, user.SetPassword("123456"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, creatorID uint, name string, price float64, stock int, rating float64) *models.Product {
	t.Helper()

	product := &models.Product{
		UserID:       creatorID,
		Name:         name,
		Brand:        "Acme",
		Category:     "Electronics",
		Price:        price,
		CountInStock: stock,
		Rating:       rating,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
