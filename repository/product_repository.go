package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Maharshi2203/Sattys-main/models"
	"gorm.io/gorm"
)

// Product list sort keys.
const (
	SortNewest    = "created_at_desc"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
)

var productOrder = map[string]string{
	SortNewest:    "products.created_at DESC",
	SortPriceAsc:  "products.final_price ASC",
	SortPriceDesc: "products.final_price DESC",
	SortNameAsc:   "products.name ASC",
	SortNameDesc:  "products.name DESC",
}

// ValidProductSort reports whether s is a known sort key.
func ValidProductSort(s string) bool {
	_, ok := productOrder[s]
	return ok
}

// ProductFilter narrows a product listing. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID *uint
	Search     string
	Stock      models.StockStatus
	Brand      string
	MinPrice   *float64
	MaxPrice   *float64
	Featured   bool
	Sort       string
	Page       int
	PerPage    int
}

// Key renders the filter as a stable string for cache keys.
func (f ProductFilter) Key() string {
	cat := ""
	if f.CategoryID != nil {
		cat = fmt.Sprint(*f.CategoryID)
	}
	minP, maxP := "", ""
	if f.MinPrice != nil {
		minP = fmt.Sprint(*f.MinPrice)
	}
	if f.MaxPrice != nil {
		maxP = fmt.Sprint(*f.MaxPrice)
	}
	return fmt.Sprintf("c=%s|q=%s|s=%s|b=%s|min=%s|max=%s|f=%t|o=%s|p=%d|pp=%d",
		cat, strings.ToLower(f.Search), f.Stock, strings.ToLower(f.Brand), minP, maxP, f.Featured, f.Sort, f.Page, f.PerPage)
}

// ProductRepository defines data access for catalog products.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	CodesInCategory(ctx context.Context, categoryID uint) ([]string, error)
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
	Count(ctx context.Context, stock models.StockStatus) (int64, error)
	Recent(ctx context.Context, limit int) ([]models.Product, error)
}

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository.
func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

// Create inserts a product.
func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit("Category").Create(product).Error
}

// FindByID loads a product with its category.
func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByIDs loads the active products among ids. Missing ids are skipped.
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&products).Error
	return products, err
}

// FindAll returns one page of products matching the filter, plus the total.
func (r *GormProductRepository) FindAll(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Product{})
	if f.CategoryID != nil {
		query = query.Where("products.category_id = ?", *f.CategoryID)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		query = query.Where("(products.name ILIKE ? OR products.brand_name ILIKE ? OR products.product_code ILIKE ?)", like, like, like)
	}
	if f.Stock != "" {
		query = query.Where("products.stock_status = ?", f.Stock)
	}
	if b := strings.TrimSpace(f.Brand); b != "" {
		query = query.Where("products.brand_name ILIKE ?", "%"+b+"%")
	}
	if f.MinPrice != nil {
		query = query.Where("products.final_price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("products.final_price <= ?", *f.MaxPrice)
	}
	if f.Featured {
		query = query.Where("products.is_featured = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := productOrder[f.Sort]
	if !ok {
		order = productOrder[SortNewest]
	}
	page, perPage := f.Page, f.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	if err := query.
		Preload("Category").
		Order(order).
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Update saves every column of the product.
func (r *GormProductRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit("Category").Save(product).Error
}

// Delete removes a product, returning gorm.ErrRecordNotFound when absent.
func (r *GormProductRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CodesInCategory lists product codes in a category that start with its id.
func (r *GormProductRepository) CodesInCategory(ctx context.Context, categoryID uint) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("category_id = ? AND product_code LIKE ?", categoryID, fmt.Sprintf("%d%%", categoryID)).
		Pluck("product_code", &codes).Error
	return codes, err
}

// CountByCategory counts products referencing a category.
func (r *GormProductRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&n).Error
	return n, err
}

// Count counts products, optionally only those with the given stock status.
func (r *GormProductRepository) Count(ctx context.Context, stock models.StockStatus) (int64, error) {
	var n int64
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if stock != "" {
		query = query.Where("stock_status = ?", stock)
	}
	err := query.Count(&n).Error
	return n, err
}

// Recent returns the newest products.
func (r *GormProductRepository) Recent(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}
