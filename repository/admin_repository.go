package repository

import (
	"context"

	"github.com/Maharshi2203/Sattys-main/models"
	"gorm.io/gorm"
)

// AdminRepository defines data access for dashboard users.
type AdminRepository interface {
	Create(ctx context.Context, user *models.AdminUser) error
	FindByUsername(ctx context.Context, username string) (*models.AdminUser, error)
}

// GormAdminRepository implements AdminRepository using GORM.
type GormAdminRepository struct {
	db *gorm.DB
}

// NewGormAdminRepository creates a new GormAdminRepository.
func NewGormAdminRepository(db *gorm.DB) AdminRepository {
	return &GormAdminRepository{db: db}
}

func (r *GormAdminRepository) Create(ctx context.Context, user *models.AdminUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *GormAdminRepository) FindByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	var u models.AdminUser
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
