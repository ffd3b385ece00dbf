// internal/cache/product_cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/shopworks/storefront-backend/internal/config"
	"github.com/shopworks/storefront-backend/internal/models"
)

const (
	topProductsKey   = "catalog:top"
	productKeyFormat = "catalog:product:%d"
)

// ProductCache fronts catalog reads with redis. A nil *ProductCache is a
// valid no-op so callers never branch on whether caching is configured.
// Cache misses and redis failures both fall through to the database.
type ProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProductCache(cfg config.RedisConfig) (*ProductCache, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &ProductCache{
		rdb: rdb,
		ttl: time.Duration(cfg.TTLSeconds) * time.Second,
	}, nil
}

func (c *ProductCache) GetProduct(ctx context.Context, id uint) (*models.Product, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, fmt.Sprintf(productKeyFormat, id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logrus.WithError(err).Debug("product cache read failed")
		}
		return nil, false
	}

	var product models.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, false
	}
	return &product, true
}

func (c *ProductCache) SetProduct(ctx context.Context, product *models.Product) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, fmt.Sprintf(productKeyFormat, product.ID), raw, c.ttl).Err(); err != nil {
		logrus.WithError(err).Debug("product cache write failed")
	}
}

func (c *ProductCache) GetTopProducts(ctx context.Context) ([]models.Product, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, topProductsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logrus.WithError(err).Debug("top products cache read failed")
		}
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false
	}
	return products, true
}

func (c *ProductCache) SetTopProducts(ctx context.Context, products []models.Product) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, topProductsKey, raw, c.ttl).Err(); err != nil {
		logrus.WithError(err).Debug("top products cache write failed")
	}
}

// Invalidate drops the cached entry for a product and the top-products
// list. Called on every catalog mutation.
func (c *ProductCache) Invalidate(ctx context.Context, id uint) {
	if c == nil {
		return
	}

	if err := c.rdb.Del(ctx, fmt.Sprintf(productKeyFormat, id), topProductsKey).Err(); err != nil {
		logrus.WithError(err).Debug("product cache invalidation failed")
	}
}

func (c *ProductCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
