package controllers

import (
	"net/http"
	"strings"

	"github.com/Maharshi2203/Sattys-main/models"
	"github.com/Maharshi2203/Sattys-main/services"
	"github.com/gin-gonic/gin"
)

// ProductController handles HTTP requests for catalog products.
type ProductController struct {
	products  services.ProductService
	validator *RequestValidator
}

// NewProductController creates a new ProductController.
func NewProductController(products services.ProductService, validator *RequestValidator) *ProductController {
	return &ProductController{products: products, validator: validator}
}

// ListProducts handles GET /api/products.
func (pc *ProductController) ListProducts(c *gin.Context) {
	filter, err := pc.validator.ParseProductFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	page, svcErr := pc.products.List(ctx, filter)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetProduct handles GET /api/products/:id.
func (pc *ProductController) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id", "product")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	product, svcErr := pc.products.Get(ctx, id)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /api/admin/products.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req models.ProductRequest
	if err := pc.validator.BindJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	product, svcErr := pc.products.Create(ctx, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/admin/products/:id.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id", "product")
	if !ok {
		return
	}
	var req models.ProductRequest
	if err := pc.validator.BindJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	product, svcErr := pc.products.Update(ctx, id, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/admin/products/:id.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id", "product")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	if svcErr := pc.products.Delete(ctx, id); svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// NextSKU handles GET /api/admin/products/next-sku?category_id=.
func (pc *ProductController) NextSKU(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("category_id"))
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category_id is required"})
		return
	}
	categoryID, err := parseID(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	code, svcErr := pc.products.NextSKU(ctx, categoryID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product_code": code})
}

// DashboardStats handles GET /api/admin/stats.
func (pc *ProductController) DashboardStats(c *gin.Context) {
	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	stats, svcErr := pc.products.Stats(ctx)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, stats)
}
