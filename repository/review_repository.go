package repository

import (
	"context"
	"strings"

	"github.com/Maharshi2203/Sattys-main/models"
	"gorm.io/gorm"
)

var reviewOrder = map[models.ReviewSort]string{
	models.ReviewSortRecent:  "created_at DESC",
	models.ReviewSortHighest: "rating DESC, created_at DESC",
	models.ReviewSortHelpful: "helpful_count DESC, created_at DESC",
}

// ReviewRepository defines data access for product reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id uint) (*models.Review, error)
	FindApproved(ctx context.Context, productID uint, sort models.ReviewSort) ([]models.Review, error)
	ExistsForEmail(ctx context.Context, productID uint, email string) (bool, error)
	IncrementHelpful(ctx context.Context, id uint) error
	SetApproved(ctx context.Context, id uint, approved bool) error
	Delete(ctx context.Context, id uint) error
}

// GormReviewRepository implements ReviewRepository using GORM.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository.
func NewGormReviewRepository(db *gorm.DB) ReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *GormReviewRepository) FindByID(ctx context.Context, id uint) (*models.Review, error) {
	var rv models.Review
	if err := r.db.WithContext(ctx).First(&rv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

// FindApproved lists the visible reviews of a product. Unknown sorts fall
// back to most helpful first.
func (r *GormReviewRepository) FindApproved(ctx context.Context, productID uint, sort models.ReviewSort) ([]models.Review, error) {
	order, ok := reviewOrder[sort]
	if !ok {
		order = reviewOrder[models.ReviewSortHelpful]
	}
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND is_approved = ?", productID, true).
		Order(order).
		Find(&reviews).Error
	return reviews, err
}

// ExistsForEmail reports whether the email already reviewed the product.
func (r *GormReviewRepository) ExistsForEmail(ctx context.Context, productID uint, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("product_id = ? AND LOWER(user_email) = ?", productID, strings.ToLower(strings.TrimSpace(email))).
		Count(&n).Error
	return n > 0, err
}

// IncrementHelpful atomically bumps the helpful counter.
func (r *GormReviewRepository) IncrementHelpful(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", id).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormReviewRepository) SetApproved(ctx context.Context, id uint, approved bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", id).
		Update("is_approved", approved)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormReviewRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
