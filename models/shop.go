package models

import "time"

// ShopInfo holds the single storefront identity record.
type ShopInfo struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ShopName      string    `gorm:"type:text;not null" json:"shop_name"`
	OwnerName     *string   `gorm:"type:text" json:"owner_name"`
	BusinessIdea  *string   `gorm:"type:text" json:"business_idea"`
	ConceptVision *string   `gorm:"type:text" json:"concept_vision"`
	LogoURL       *string   `gorm:"type:text" json:"logo_url"`
	BannerURL     *string   `gorm:"type:text" json:"banner_url"`
	Address       *string   `gorm:"type:text" json:"address"`
	Phone         *string   `gorm:"type:text" json:"phone"`
	Email         *string   `gorm:"type:text" json:"email"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName keeps the singular table name used by the storefront.
func (ShopInfo) TableName() string { return "shop_info" }

// ShopInfoRequest replaces the storefront identity.
type ShopInfoRequest struct {
	ShopName      string `json:"shop_name" validate:"required,max=200"`
	OwnerName     string `json:"owner_name" validate:"max=200"`
	BusinessIdea  string `json:"business_idea"`
	ConceptVision string `json:"concept_vision"`
	LogoURL       string `json:"logo_url" validate:"max=2048"`
	BannerURL     string `json:"banner_url" validate:"max=2048"`
	Address       string `json:"address"`
	Phone         string `json:"phone" validate:"max=32"`
	Email         string `json:"email" validate:"omitempty,email"`
}
