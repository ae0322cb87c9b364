package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Maharshi2203/Sattys-main/controllers"
	"github.com/Maharshi2203/Sattys-main/models"
	"github.com/Maharshi2203/Sattys-main/repository"
	"github.com/Maharshi2203/Sattys-main/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProductRouter(svc services.ProductService) *gin.Engine {
	r := gin.New()
	pc := controllers.NewProductController(svc, controllers.NewRequestValidator())
	r.GET("/api/products", pc.ListProducts)
	r.GET("/api/products/:id", pc.GetProduct)
	r.POST("/api/admin/products", pc.CreateProduct)
	r.PUT("/api/admin/products/:id", pc.UpdateProduct)
	r.DELETE("/api/admin/products/:id", pc.DeleteProduct)
	r.GET("/api/admin/products/next-sku", pc.NextSKU)
	r.GET("/api/admin/stats", pc.DashboardStats)
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	msg, _ := resp["error"].(string)
	return msg
}

func TestController_ListProducts_ParsesFilter(t *testing.T) {
	var got repository.ProductFilter
	svc := &mockProductService{
		listFn: func(_ context.Context, f repository.ProductFilter) (*models.ProductPage, *services.ServiceError) {
			got = f
			return &models.ProductPage{Products: []models.Product{{ID: 1, Name: "Chips"}}, Meta: models.NewPageMeta(f.Page, f.PerPage, 1)}, nil
		},
	}
	r := setupProductRouter(svc)

	w := doJSON(r, http.MethodGet, "/api/products?category=3&search=chi&stock=out&minPrice=10&maxPrice=200&featured=true&sort=price_asc&limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, got.CategoryID)
	assert.Equal(t, uint(3), *got.CategoryID)
	assert.Equal(t, "chi", got.Search)
	assert.Equal(t, models.StockOut, got.Stock)
	assert.Equal(t, 10.0, *got.MinPrice)
	assert.Equal(t, 200.0, *got.MaxPrice)
	assert.True(t, got.Featured)
	assert.Equal(t, repository.SortPriceAsc, got.Sort)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 5, got.PerPage)

	var page models.ProductPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Products, 1)
	assert.Equal(t, int64(1), page.Meta.Total)
}

func TestController_ListProducts_DefaultsAndBadQueries(t *testing.T) {
	var got repository.ProductFilter
	svc := &mockProductService{
		listFn: func(_ context.Context, f repository.ProductFilter) (*models.ProductPage, *services.ServiceError) {
			got = f
			return &models.ProductPage{Products: []models.Product{}}, nil
		},
	}
	r := setupProductRouter(svc)

	w := doJSON(r, http.MethodGet, "/api/products?category=all&perPage=500", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, got.CategoryID)
	assert.Equal(t, repository.SortNewest, got.Sort)
	assert.Equal(t, controllers.MaxPageSize, got.PerPage)

	for _, q := range []string{
		"?page=0",
		"?category=abc",
		"?stock=maybe",
		"?sort=random",
		"?minPrice=50&maxPrice=10",
		"?featured=perhaps",
	} {
		w := doJSON(r, http.MethodGet, "/api/products"+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestController_GetProduct(t *testing.T) {
	svc := &mockProductService{
		getFn: func(_ context.Context, id uint) (*models.Product, *services.ServiceError) {
			if id == 7 {
				return &models.Product{ID: 7, Name: "Chips"}, nil
			}
			return nil, &services.ServiceError{StatusCode: http.StatusNotFound, Message: "Product not found"}
		},
	}
	r := setupProductRouter(svc)

	w := doJSON(r, http.MethodGet, "/api/products/7", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/products/8", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", errorOf(t, w))

	w = doJSON(r, http.MethodGet, "/api/products/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid product ID", errorOf(t, w))
}

func TestController_CreateProduct(t *testing.T) {
	svc := &mockProductService{
		createFn: func(_ context.Context, req *models.ProductRequest) (*models.Product, *services.ServiceError) {
			return &models.Product{ID: 1, Name: req.Name, BasePrice: *req.BasePrice}, nil
		},
	}
	r := setupProductRouter(svc)

	w := doJSON(r, http.MethodPost, "/api/admin/products", map[string]any{"name": "Chips", "base_price": 10, "gst_percentage": 5})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/admin/products", map[string]any{"base_price": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "name is required", errorOf(t, w))

	w = doJSON(r, http.MethodPost, "/api/admin/products", map[string]any{"name": "Chips"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "base_price is required", errorOf(t, w))

	w = doJSON(r, http.MethodPost, "/api/admin/products", map[string]any{"name": "Chips", "base_price": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/admin/products", map[string]any{"name": "Chips", "base_price": 1, "stock_status": "SOON"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestController_UpdateAndDeleteProduct(t *testing.T) {
	svc := &mockProductService{
		updateFn: func(_ context.Context, id uint, req *models.ProductRequest) (*models.Product, *services.ServiceError) {
			return &models.Product{ID: id, Name: req.Name}, nil
		},
		deleteFn: func(_ context.Context, id uint) *services.ServiceError {
			if id == 2 {
				return nil
			}
			return &services.ServiceError{StatusCode: http.StatusNotFound, Message: "Product not found"}
		},
	}
	r := setupProductRouter(svc)

	w := doJSON(r, http.MethodPut, "/api/admin/products/2", map[string]any{"name": "New", "base_price": 3})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/admin/products/2", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/admin/products/3", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestController_NextSKUAndStats(t *testing.T) {
	svc := &mockProductService{
		skuFn: func(_ context.Context, categoryID uint) (string, *services.ServiceError) {
			return services.NextProductCode(categoryID, []string{"20004"}), nil
		},
		statsFn: func(context.Context) (*models.DashboardStats, *services.ServiceError) {
			return &models.DashboardStats{TotalProducts: 4, RecentProducts: []models.Product{}}, nil
		},
	}
	r := setupProductRouter(svc)

	w := doJSON(r, http.MethodGet, "/api/admin/products/next-sku?category_id=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"product_code":"20005"}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/admin/products/next-sku", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/api/admin/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 4.0, stats["totalProducts"])
}
