package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Maharshi2203/Sattys-main/models"
	"github.com/Maharshi2203/Sattys-main/repository"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	ProductCachePrefix     = "product:detail:"
	ProductListCachePrefix = "products:v:"
	CacheVersionKey        = "products:version"

	DefaultCacheTTL = 5 * time.Minute
)

// ProductCache caches product reads. Every catalog write must call
// Invalidate or InvalidateProduct.
type ProductCache interface {
	GetProductList(ctx context.Context, filter repository.ProductFilter) (*models.ProductPage, bool)
	SetProductList(ctx context.Context, filter repository.ProductFilter, page *models.ProductPage)
	GetProduct(ctx context.Context, id uint) (*models.Product, bool)
	SetProduct(ctx context.Context, product *models.Product)
	Invalidate(ctx context.Context) error
	InvalidateProduct(ctx context.Context, id uint)
}

// CacheManager is the Redis ProductCache. List keys embed a version number;
// bumping the version orphans every cached list at once and Redis expires
// the orphans by TTL.
type CacheManager struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCacheManager(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *CacheManager {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheManager{redis: rdb, ttl: ttl, logger: logger}
}

func (cm *CacheManager) GetProductList(ctx context.Context, filter repository.ProductFilter) (*models.ProductPage, bool) {
	version, err := cm.cacheVersion(ctx)
	if err != nil {
		return nil, false
	}
	raw, err := cm.redis.Get(ctx, listKey(version, filter)).Bytes()
	if err != nil {
		return nil, false
	}
	var page models.ProductPage
	if err := json.Unmarshal(raw, &page); err != nil {
		cm.logger.Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return &page, true
}

func (cm *CacheManager) SetProductList(ctx context.Context, filter repository.ProductFilter, page *models.ProductPage) {
	version, err := cm.cacheVersion(ctx)
	if err != nil {
		return
	}
	b, err := json.Marshal(page)
	if err != nil {
		cm.logger.Warn("Failed to marshal product list for cache", zap.Error(err))
		return
	}
	if err := cm.redis.Set(ctx, listKey(version, filter), b, cm.ttl).Err(); err != nil {
		cm.logger.Warn("Failed to cache product list", zap.Error(err))
	}
}

func (cm *CacheManager) GetProduct(ctx context.Context, id uint) (*models.Product, bool) {
	raw, err := cm.redis.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var p models.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		cm.logger.Warn("Failed to unmarshal cached product", zap.Error(err), zap.Uint("product_id", id))
		return nil, false
	}
	return &p, true
}

func (cm *CacheManager) SetProduct(ctx context.Context, product *models.Product) {
	b, err := json.Marshal(product)
	if err != nil {
		cm.logger.Warn("Failed to marshal product for cache", zap.Error(err), zap.Uint("product_id", product.ID))
		return
	}
	if err := cm.redis.Set(ctx, productKey(product.ID), b, cm.ttl).Err(); err != nil {
		cm.logger.Warn("Failed to cache product", zap.Error(err), zap.Uint("product_id", product.ID))
	}
}

// Invalidate drops every cached product list by bumping the version.
func (cm *CacheManager) Invalidate(ctx context.Context) error {
	v, err := cm.redis.Incr(ctx, CacheVersionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	cm.logger.Debug("Product cache invalidated", zap.Int64("version", v))
	return nil
}

// InvalidateProduct drops the lists and the detail entry of one product.
func (cm *CacheManager) InvalidateProduct(ctx context.Context, id uint) {
	if err := cm.Invalidate(ctx); err != nil {
		cm.logger.Error("Failed to invalidate product lists", zap.Error(err), zap.Uint("product_id", id))
	}
	if err := cm.redis.Del(ctx, productKey(id)).Err(); err != nil {
		cm.logger.Warn("Failed to delete product cache", zap.Error(err), zap.Uint("product_id", id))
	}
}

// cacheVersion reads the list version, creating it on first use.
func (cm *CacheManager) cacheVersion(ctx context.Context) (int64, error) {
	v, err := cm.redis.Get(ctx, CacheVersionKey).Int64()
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, redis.Nil) {
		return 0, err
	}
	if err := cm.redis.SetNX(ctx, CacheVersionKey, 1, 0).Err(); err != nil {
		return 0, err
	}
	return cm.redis.Get(ctx, CacheVersionKey).Int64()
}

func listKey(version int64, filter repository.ProductFilter) string {
	return fmt.Sprintf("%s%d:%s", ProductListCachePrefix, version, filter.Key())
}

func productKey(id uint) string {
	return fmt.Sprintf("%s%d", ProductCachePrefix, id)
}

// NoopCache is used when Redis is not configured.
type NoopCache struct{}

func (NoopCache) GetProductList(context.Context, repository.ProductFilter) (*models.ProductPage, bool) {
	return nil, false
}
func (NoopCache) SetProductList(context.Context, repository.ProductFilter, *models.ProductPage) {}
func (NoopCache) GetProduct(context.Context, uint) (*models.Product, bool)                      { return nil, false }
func (NoopCache) SetProduct(context.Context, *models.Product)                                   {}
func (NoopCache) Invalidate(context.Context) error                                              { return nil }
func (NoopCache) InvalidateProduct(context.Context, uint)                                       {}
