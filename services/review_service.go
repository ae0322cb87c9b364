package services

import (
	"context"
	"math"
	"strings"

	"github.com/Maharshi2203/Sattys-main/models"
	awspkg "github.com/Maharshi2203/Sattys-main/pkg/aws"
	"github.com/Maharshi2203/Sattys-main/repository"
	"go.uber.org/zap"
)

// ReviewService defines product review operations.
type ReviewService interface {
	List(ctx context.Context, productID uint, sort models.ReviewSort) (*models.ReviewList, *ServiceError)
	Create(ctx context.Context, req *models.CreateReviewRequest) (*models.Review, *ServiceError)
	MarkHelpful(ctx context.Context, id uint) *ServiceError
	Moderate(ctx context.Context, id uint, approved bool) *ServiceError
	Delete(ctx context.Context, id uint) *ServiceError
}

type reviewServiceImpl struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	metrics  Metrics
	logger   *zap.Logger
}

func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository, metrics Metrics, logger *zap.Logger) ReviewService {
	return &reviewServiceImpl{reviews: reviews, products: products, metrics: metricsOrNoop(metrics), logger: logger}
}

func (s *reviewServiceImpl) List(ctx context.Context, productID uint, sort models.ReviewSort) (*models.ReviewList, *ServiceError) {
	reviews, err := s.reviews.FindApproved(ctx, productID, sort)
	if err != nil {
		s.logger.Error("Failed to list reviews", zap.Uint("product_id", productID), zap.Error(err))
		return nil, internal("Failed to fetch reviews")
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return &models.ReviewList{Reviews: reviews, Stats: CalculateStats(reviews)}, nil
}

func (s *reviewServiceImpl) Create(ctx context.Context, req *models.CreateReviewRequest) (*models.Review, *ServiceError) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, badRequest("Rating must be between 1 and 5")
	}
	if _, err := s.products.FindByID(ctx, req.ProductID); err != nil {
		if isNotFound(err) {
			return nil, notFound("Product not found")
		}
		s.logger.Error("Failed to verify product for review", zap.Uint("product_id", req.ProductID), zap.Error(err))
		return nil, internal("Failed to submit review")
	}

	email := strings.ToLower(strings.TrimSpace(req.UserEmail))
	if email != "" {
		exists, err := s.reviews.ExistsForEmail(ctx, req.ProductID, email)
		if err != nil {
			s.logger.Error("Failed to check duplicate review", zap.Error(err))
			return nil, internal("Failed to submit review")
		}
		if exists {
			return nil, badRequest("You have already reviewed this product")
		}
	}

	r := &models.Review{
		ProductID:  req.ProductID,
		UserName:   strings.TrimSpace(req.UserName),
		UserEmail:  optionalString(email),
		Rating:     req.Rating,
		Title:      optionalString(req.Title),
		Comment:    optionalString(req.Comment),
		IsApproved: true,
	}
	if err := s.reviews.Create(ctx, r); err != nil {
		s.logger.Error("Failed to create review", zap.Uint("product_id", req.ProductID), zap.Error(err))
		return nil, internal("Failed to submit review")
	}
	_ = s.metrics.RecordCount(ctx, awspkg.MetricReviewsCreated, nil)
	return r, nil
}

func (s *reviewServiceImpl) MarkHelpful(ctx context.Context, id uint) *ServiceError {
	return s.mutate(ctx, id, "mark review helpful", func() error { return s.reviews.IncrementHelpful(ctx, id) })
}

func (s *reviewServiceImpl) Moderate(ctx context.Context, id uint, approved bool) *ServiceError {
	return s.mutate(ctx, id, "moderate review", func() error { return s.reviews.SetApproved(ctx, id, approved) })
}

func (s *reviewServiceImpl) Delete(ctx context.Context, id uint) *ServiceError {
	return s.mutate(ctx, id, "delete review", func() error { return s.reviews.Delete(ctx, id) })
}

func (s *reviewServiceImpl) mutate(ctx context.Context, id uint, action string, fn func() error) *ServiceError {
	if err := fn(); err != nil {
		if isNotFound(err) {
			return notFound("Review not found")
		}
		s.logger.Error("Failed to "+action, zap.Uint("review_id", id), zap.Error(err))
		return internal("Failed to " + action)
	}
	return nil
}

// CalculateStats summarises ratings. The average is rounded to one decimal
// and the distribution always has keys 1 through 5.
func CalculateStats(reviews []models.Review) models.ReviewStats {
	stats := models.ReviewStats{Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	if len(reviews) == 0 {
		return stats
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
		if r.Rating >= 1 && r.Rating <= 5 {
			stats.Distribution[r.Rating]++
		}
	}
	stats.Total = len(reviews)
	stats.Average = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	return stats
}
