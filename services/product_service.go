package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Maharshi2203/Sattys-main/models"
	awspkg "github.com/Maharshi2203/Sattys-main/pkg/aws"
	"github.com/Maharshi2203/Sattys-main/repository"
	"go.uber.org/zap"
)

const recentProductsLimit = 5

// ProductService defines catalog product operations.
type ProductService interface {
	List(ctx context.Context, filter repository.ProductFilter) (*models.ProductPage, *ServiceError)
	Get(ctx context.Context, id uint) (*models.Product, *ServiceError)
	Create(ctx context.Context, req *models.ProductRequest) (*models.Product, *ServiceError)
	Update(ctx context.Context, id uint, req *models.ProductRequest) (*models.Product, *ServiceError)
	Delete(ctx context.Context, id uint) *ServiceError
	NextSKU(ctx context.Context, categoryID uint) (string, *ServiceError)
	Stats(ctx context.Context) (*models.DashboardStats, *ServiceError)
}

type productServiceImpl struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	contacts   repository.ContactRepository
	cache      ProductCache
	events     *CatalogEvents
	metrics    Metrics
	logger     *zap.Logger
}

// NewProductService creates a new ProductService. A nil cache disables caching.
func NewProductService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	contacts repository.ContactRepository,
	cache ProductCache,
	events *CatalogEvents,
	metrics Metrics,
	logger *zap.Logger,
) ProductService {
	if cache == nil {
		cache = NoopCache{}
	}
	return &productServiceImpl{
		products:   products,
		categories: categories,
		contacts:   contacts,
		cache:      cache,
		events:     events,
		metrics:    metricsOrNoop(metrics),
		logger:     logger,
	}
}

func (s *productServiceImpl) List(ctx context.Context, filter repository.ProductFilter) (*models.ProductPage, *ServiceError) {
	if cached, ok := s.cache.GetProductList(ctx, filter); ok {
		_ = s.metrics.RecordCount(ctx, awspkg.MetricCacheHits, map[string]string{"Cache": "product_list"})
		return cached, nil
	}
	_ = s.metrics.RecordCount(ctx, awspkg.MetricCacheMisses, map[string]string{"Cache": "product_list"})

	products, total, err := s.products.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, internal("Failed to fetch products")
	}
	if products == nil {
		products = []models.Product{}
	}
	page := &models.ProductPage{
		Products: products,
		Meta:     models.NewPageMeta(filter.Page, filter.PerPage, total),
	}
	s.cache.SetProductList(ctx, filter, page)
	return page, nil
}

func (s *productServiceImpl) Get(ctx context.Context, id uint) (*models.Product, *ServiceError) {
	if cached, ok := s.cache.GetProduct(ctx, id); ok {
		return cached, nil
	}
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Product not found")
		}
		s.logger.Error("Failed to fetch product", zap.Uint("product_id", id), zap.Error(err))
		return nil, internal("Failed to fetch product")
	}
	s.cache.SetProduct(ctx, p)
	return p, nil
}

func (s *productServiceImpl) Create(ctx context.Context, req *models.ProductRequest) (*models.Product, *ServiceError) {
	if svcErr := s.checkCategory(ctx, req.CategoryID); svcErr != nil {
		return nil, svcErr
	}

	p := &models.Product{IsActive: true}
	applyProductRequest(p, req)

	if p.ProductCode == nil && p.CategoryID != nil {
		code, svcErr := s.NextSKU(ctx, *p.CategoryID)
		if svcErr != nil {
			return nil, svcErr
		}
		p.ProductCode = &code
	}

	if err := s.products.Create(ctx, p); err != nil {
		if isForeignKeyViolation(err) {
			return nil, badRequest("Category not found")
		}
		s.logger.Error("Failed to create product", zap.String("name", p.Name), zap.Error(err))
		return nil, internal("Failed to create product")
	}

	s.afterWrite(ctx, EventProductCreated, p)
	_ = s.metrics.RecordCount(ctx, awspkg.MetricProductsCreated, nil)
	s.logger.Info("Product created", zap.Uint("product_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

func (s *productServiceImpl) Update(ctx context.Context, id uint, req *models.ProductRequest) (*models.Product, *ServiceError) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Product not found")
		}
		s.logger.Error("Failed to load product for update", zap.Uint("product_id", id), zap.Error(err))
		return nil, internal("Failed to update product")
	}
	if svcErr := s.checkCategory(ctx, req.CategoryID); svcErr != nil {
		return nil, svcErr
	}

	applyProductRequest(p, req)
	p.Category = nil

	if err := s.products.Update(ctx, p); err != nil {
		if isForeignKeyViolation(err) {
			return nil, badRequest("Category not found")
		}
		s.logger.Error("Failed to update product", zap.Uint("product_id", id), zap.Error(err))
		return nil, internal("Failed to update product")
	}

	s.afterWrite(ctx, EventProductUpdated, p)
	return p, nil
}

func (s *productServiceImpl) Delete(ctx context.Context, id uint) *ServiceError {
	if err := s.products.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return notFound("Product not found")
		}
		s.logger.Error("Failed to delete product", zap.Uint("product_id", id), zap.Error(err))
		return internal("Failed to delete product")
	}
	s.afterWrite(ctx, EventProductDeleted, &models.Product{ID: id})
	return nil
}

// NextSKU returns "<categoryID><seq>" where seq is one above the highest
// sequence already used in the category, zero padded to four digits.
func (s *productServiceImpl) NextSKU(ctx context.Context, categoryID uint) (string, *ServiceError) {
	codes, err := s.products.CodesInCategory(ctx, categoryID)
	if err != nil {
		s.logger.Error("Failed to read product codes", zap.Uint("category_id", categoryID), zap.Error(err))
		return "", internal("Failed to generate product code")
	}
	return NextProductCode(categoryID, codes), nil
}

func (s *productServiceImpl) Stats(ctx context.Context) (*models.DashboardStats, *ServiceError) {
	var (
		stats models.DashboardStats
		err   error
	)
	fail := func(what string, err error) *ServiceError {
		s.logger.Error("Failed to compute dashboard stats", zap.String("part", what), zap.Error(err))
		return internal("Failed to fetch stats")
	}

	if stats.TotalProducts, err = s.products.Count(ctx, ""); err != nil {
		return nil, fail("total", err)
	}
	if stats.InStockProducts, err = s.products.Count(ctx, models.StockIn); err != nil {
		return nil, fail("in_stock", err)
	}
	if stats.OutOfStockProducts, err = s.products.Count(ctx, models.StockOut); err != nil {
		return nil, fail("out_of_stock", err)
	}
	if stats.CategoriesCount, err = s.categories.Count(ctx); err != nil {
		return nil, fail("categories", err)
	}
	if stats.RecentProducts, err = s.products.Recent(ctx, recentProductsLimit); err != nil {
		return nil, fail("recent", err)
	}
	if stats.RecentProducts == nil {
		stats.RecentProducts = []models.Product{}
	}
	if stats.UnreadMessages, err = s.contacts.CountUnread(ctx); err != nil {
		return nil, fail("unread", err)
	}
	return &stats, nil
}

func (s *productServiceImpl) checkCategory(ctx context.Context, id *uint) *ServiceError {
	if id == nil {
		return nil
	}
	if _, err := s.categories.FindByID(ctx, *id); err != nil {
		if isNotFound(err) {
			return badRequest("Category not found")
		}
		s.logger.Error("Failed to verify category", zap.Uint("category_id", *id), zap.Error(err))
		return internal("Failed to verify category")
	}
	return nil
}

func (s *productServiceImpl) afterWrite(ctx context.Context, eventType string, p *models.Product) {
	s.cache.InvalidateProduct(ctx, p.ID)
	s.events.ProductChanged(ctx, eventType, p.ID, p.Name)
}

// NextProductCode computes the next code for a category from its existing
// codes. Codes not starting with the category id are ignored, as are
// suffixes without leading digits.
func NextProductCode(categoryID uint, codes []string) string {
	prefix := strconv.FormatUint(uint64(categoryID), 10)
	maxSeq := 0
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if !strings.HasPrefix(code, prefix) {
			continue
		}
		if seq, ok := leadingInt(code[len(prefix):]); ok && seq > maxSeq {
			maxSeq = seq
		}
	}
	return fmt.Sprintf("%s%04d", prefix, maxSeq+1)
}

func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// applyProductRequest copies an admin payload onto p, deriving the final
// price and the primary image.
func applyProductRequest(p *models.Product, req *models.ProductRequest) {
	p.Name = strings.TrimSpace(req.Name)
	p.ProductCode = optionalString(req.ProductCode)
	p.BrandName = optionalString(req.BrandName)
	p.CompanyName = optionalString(req.CompanyName)
	p.CategoryID = req.CategoryID
	p.CaseSize = optionalString(req.CaseSize)
	p.PackSize = optionalString(req.PackSize)
	p.ShelfLife = optionalString(req.ShelfLife)
	p.Description = optionalString(req.Description)

	if req.BasePrice != nil {
		p.BasePrice = models.RoundPrice(*req.BasePrice)
	}
	p.GSTPercentage = req.GSTPercentage
	if req.FinalPrice > 0 {
		p.FinalPrice = models.RoundPrice(req.FinalPrice)
	} else {
		p.FinalPrice = models.DeriveFinalPrice(p.BasePrice, p.GSTPercentage)
	}

	images := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	imageURL := strings.TrimSpace(req.ImageURL)
	if imageURL == "" && len(images) > 0 {
		imageURL = images[0]
	}
	if len(images) == 0 && imageURL != "" {
		images = []string{imageURL}
	}
	p.ImageURL = optionalString(imageURL)
	p.Images = images

	p.StockStatus = models.ParseStockStatus(req.StockStatus)
	p.IsFeatured = req.IsFeatured
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
