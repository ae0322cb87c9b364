package models

import (
	"math"
	"strings"
	"time"

	"github.com/lib/pq"
)

// StockStatus is the availability flag shown on the storefront.
type StockStatus string

const (
	StockIn  StockStatus = "IN"
	StockOut StockStatus = "OUT"
)

// Product is a catalog entry stored in Postgres.
type Product struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	ProductCode   *string        `gorm:"type:text" json:"product_code"` // not unique; imports may repeat codes
	Name          string         `gorm:"type:text;not null;index:name_idx" json:"name"`
	BrandName     *string        `gorm:"type:text" json:"brand_name"`
	CompanyName   *string        `gorm:"type:text" json:"company_name"`
	CategoryID    *uint          `gorm:"index:category_idx" json:"category_id"`
	Category      *Category      `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
	CaseSize      *string        `gorm:"type:text" json:"case_size"`
	PackSize      *string        `gorm:"type:text" json:"pack_size"`
	ShelfLife     *string        `gorm:"type:text" json:"shelf_life"`
	BasePrice     float64        `gorm:"type:numeric(10,2);not null" json:"base_price"`
	GSTPercentage float64        `gorm:"type:numeric(5,2);not null;default:0" json:"gst_percentage"`
	FinalPrice    float64        `gorm:"type:numeric(10,2);not null;index:price_idx" json:"final_price"`
	Description   *string        `gorm:"type:text" json:"description"`
	ImageURL      *string        `gorm:"type:text" json:"image_url"`
	Images        pq.StringArray `gorm:"type:text[]" json:"images"`
	StockStatus   StockStatus    `gorm:"type:varchar(3);not null;default:'IN'" json:"stock_status"`
	IsFeatured    bool           `gorm:"not null;default:false;index:featured_idx" json:"is_featured"`
	IsActive      bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// DeriveFinalPrice returns the tax-inclusive price rounded to paise.
func DeriveFinalPrice(basePrice, gstPercentage float64) float64 {
	return RoundPrice(basePrice * (1 + gstPercentage/100))
}

// RoundPrice rounds to two decimal places, matching the numeric(10,2) columns.
func RoundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}

// ParseStockStatus maps free text to a stock status. Anything but OUT is IN.
func ParseStockStatus(s string) StockStatus {
	if StockStatus(strings.ToUpper(strings.TrimSpace(s))) == StockOut {
		return StockOut
	}
	return StockIn
}

// ProductRequest is the admin payload for creating or replacing a product.
type ProductRequest struct {
	ProductCode   string   `json:"product_code" validate:"max=64"`
	Name          string   `json:"name" validate:"required,max=255"`
	BrandName     string   `json:"brand_name" validate:"max=255"`
	CompanyName   string   `json:"company_name" validate:"max=255"`
	CategoryID    *uint    `json:"category_id"`
	CaseSize      string   `json:"case_size"`
	PackSize      string   `json:"pack_size"`
	ShelfLife     string   `json:"shelf_life"`
	BasePrice     *float64 `json:"base_price" validate:"required,gte=0"`
	GSTPercentage float64  `json:"gst_percentage" validate:"gte=0,lte=100"`
	FinalPrice    float64  `json:"final_price" validate:"gte=0"`
	Description   string   `json:"description"`
	ImageURL      string   `json:"image_url" validate:"omitempty,max=2048"`
	Images        []string `json:"images" validate:"max=10,dive,max=2048"`
	StockStatus   string   `json:"stock_status" validate:"omitempty,oneof=IN OUT in out"`
	IsFeatured    bool     `json:"is_featured"`
}

// ProductPage is a paginated product listing.
type ProductPage struct {
	Products []Product `json:"products"`
	Meta     PageMeta  `json:"meta"`
}

// PageMeta describes a page of results.
type PageMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPageMeta computes page counts for a listing.
func NewPageMeta(page, perPage int, total int64) PageMeta {
	totalPages := 0
	if perPage > 0 {
		totalPages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return PageMeta{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// DashboardStats summarises the catalog for the admin landing page.
type DashboardStats struct {
	TotalProducts      int64     `json:"totalProducts"`
	InStockProducts    int64     `json:"inStockProducts"`
	OutOfStockProducts int64     `json:"outOfStockProducts"`
	CategoriesCount    int64     `json:"categoriesCount"`
	RecentProducts     []Product `json:"recentProducts"`
	UnreadMessages     int64     `json:"unreadMessages"`
}
