package models

import "time"

// Review is a shopper rating attached to a product.
type Review struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	ProductID          uint      `gorm:"not null;index" json:"product_id"`
	UserName           string    `gorm:"type:text;not null" json:"user_name"`
	UserEmail          *string   `gorm:"type:text;index" json:"user_email"`
	Rating             int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Title              *string   `gorm:"type:text" json:"title"`
	Comment            *string   `gorm:"type:text" json:"comment"`
	IsVerifiedPurchase bool      `gorm:"not null;default:false" json:"is_verified_purchase"`
	IsApproved         bool      `gorm:"not null;default:true" json:"is_approved"`
	HelpfulCount       int       `gorm:"not null;default:0" json:"helpful_count"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ReviewSort orders a product's review list.
type ReviewSort string

const (
	ReviewSortHelpful ReviewSort = "helpful"
	ReviewSortRecent  ReviewSort = "recent"
	ReviewSortHighest ReviewSort = "highest"
)

// CreateReviewRequest is the shopper payload for posting a review.
type CreateReviewRequest struct {
	ProductID uint   `json:"product_id" validate:"required"`
	UserName  string `json:"user_name" validate:"required,max=120"`
	UserEmail string `json:"user_email" validate:"omitempty,email"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Title     string `json:"title" validate:"max=200"`
	Comment   string `json:"comment" validate:"max=5000"`
}

// ModerateReviewRequest toggles whether a review is shown.
type ModerateReviewRequest struct {
	IsApproved *bool `json:"is_approved" validate:"required"`
}

// ReviewStats aggregates the approved reviews of a product.
type ReviewStats struct {
	Average      float64     `json:"average"`
	Total        int         `json:"total"`
	Distribution map[int]int `json:"distribution"`
}

// ReviewList is the storefront payload for a product's reviews.
type ReviewList struct {
	Reviews []Review    `json:"reviews"`
	Stats   ReviewStats `json:"stats"`
}
