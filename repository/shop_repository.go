package repository

import (
	"context"

	"github.com/Maharshi2203/Sattys-main/models"
	"gorm.io/gorm"
)

// ShopRepository reads and writes the single shop_info row.
type ShopRepository interface {
	Get(ctx context.Context) (*models.ShopInfo, error)
	Save(ctx context.Context, info *models.ShopInfo) error
}

// GormShopRepository implements ShopRepository using GORM.
type GormShopRepository struct {
	db *gorm.DB
}

// NewGormShopRepository creates a new GormShopRepository.
func NewGormShopRepository(db *gorm.DB) ShopRepository {
	return &GormShopRepository{db: db}
}

// Get returns the oldest shop_info row, or gorm.ErrRecordNotFound.
func (r *GormShopRepository) Get(ctx context.Context) (*models.ShopInfo, error) {
	var info models.ShopInfo
	if err := r.db.WithContext(ctx).Order("id ASC").First(&info).Error; err != nil {
		return nil, err
	}
	return &info, nil
}

// Save inserts the row when it has no id, otherwise overwrites it.
func (r *GormShopRepository) Save(ctx context.Context, info *models.ShopInfo) error {
	if info.ID == 0 {
		return r.db.WithContext(ctx).Create(info).Error
	}
	return r.db.WithContext(ctx).Save(info).Error
}
