package controllers

import (
	"net/http"
	"strings"

	"github.com/Maharshi2203/Sattys-main/models"
	"github.com/Maharshi2203/Sattys-main/services"
	"github.com/gin-gonic/gin"
)

// ReviewController handles product review endpoints.
type ReviewController struct {
	reviews   services.ReviewService
	validator *RequestValidator
}

func NewReviewController(reviews services.ReviewService, validator *RequestValidator) *ReviewController {
	return &ReviewController{reviews: reviews, validator: validator}
}

// ListReviews handles GET /api/reviews?productId=&sortBy=.
func (rc *ReviewController) ListReviews(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("productId"))
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
		return
	}
	productID, err := parseID(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	sort := models.ReviewSort(strings.ToLower(strings.TrimSpace(c.Query("sortBy"))))
	switch sort {
	case models.ReviewSortRecent, models.ReviewSortHighest, models.ReviewSortHelpful:
	default:
		sort = models.ReviewSortHelpful
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	list, svcErr := rc.reviews.List(ctx, productID, sort)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateReview handles POST /api/reviews.
func (rc *ReviewController) CreateReview(c *gin.Context) {
	var req models.CreateReviewRequest
	if err := rc.validator.BindJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	review, svcErr := rc.reviews.Create(ctx, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "review": review})
}

// MarkHelpful handles PATCH /api/reviews/:id/helpful.
func (rc *ReviewController) MarkHelpful(c *gin.Context) {
	id, ok := pathID(c, "id", "review")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	if svcErr := rc.reviews.MarkHelpful(ctx, id); svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ModerateReview handles PATCH /api/admin/reviews/:id.
func (rc *ReviewController) ModerateReview(c *gin.Context) {
	id, ok := pathID(c, "id", "review")
	if !ok {
		return
	}
	var req models.ModerateReviewRequest
	if err := rc.validator.BindJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	if svcErr := rc.reviews.Moderate(ctx, id, *req.IsApproved); svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "is_approved": *req.IsApproved})
}

// DeleteReview handles DELETE /api/admin/reviews/:id.
func (rc *ReviewController) DeleteReview(c *gin.Context) {
	id, ok := pathID(c, "id", "review")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	if svcErr := rc.reviews.Delete(ctx, id); svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
