package controllers_test

import (
	"context"
	"io"
	"time"

	"github.com/Maharshi2203/Sattys-main/importer"
	"github.com/Maharshi2203/Sattys-main/models"
	awspkg "github.com/Maharshi2203/Sattys-main/pkg/aws"
	"github.com/Maharshi2203/Sattys-main/repository"
	"github.com/Maharshi2203/Sattys-main/services"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Mock ProductService ---

type mockProductService struct {
	listFn   func(ctx context.Context, filter repository.ProductFilter) (*models.ProductPage, *services.ServiceError)
	getFn    func(ctx context.Context, id uint) (*models.Product, *services.ServiceError)
	createFn func(ctx context.Context, req *models.ProductRequest) (*models.Product, *services.ServiceError)
	updateFn func(ctx context.Context, id uint, req *models.ProductRequest) (*models.Product, *services.ServiceError)
	deleteFn func(ctx context.Context, id uint) *services.ServiceError
	skuFn    func(ctx context.Context, categoryID uint) (string, *services.ServiceError)
	statsFn  func(ctx context.Context) (*models.DashboardStats, *services.ServiceError)
}

func (m *mockProductService) List(ctx context.Context, filter repository.ProductFilter) (*models.ProductPage, *services.ServiceError) {
	return m.listFn(ctx, filter)
}
func (m *mockProductService) Get(ctx context.Context, id uint) (*models.Product, *services.ServiceError) {
	return m.getFn(ctx, id)
}
func (m *mockProductService) Create(ctx context.Context, req *models.ProductRequest) (*models.Product, *services.ServiceError) {
	return m.createFn(ctx, req)
}
func (m *mockProductService) Update(ctx context.Context, id uint, req *models.ProductRequest) (*models.Product, *services.ServiceError) {
	return m.updateFn(ctx, id, req)
}
func (m *mockProductService) Delete(ctx context.Context, id uint) *services.ServiceError {
	return m.deleteFn(ctx, id)
}
func (m *mockProductService) NextSKU(ctx context.Context, categoryID uint) (string, *services.ServiceError) {
	return m.skuFn(ctx, categoryID)
}
func (m *mockProductService) Stats(ctx context.Context) (*models.DashboardStats, *services.ServiceError) {
	return m.statsFn(ctx)
}

// --- Mock ImportService / queue ---

type mockImportService struct {
	importFn func(ctx context.Context, filename string, data []byte) (*importer.Result, *services.ServiceError)
}

func (m *mockImportService) Import(ctx context.Context, filename string, data []byte) (*importer.Result, *services.ServiceError) {
	return m.importFn(ctx, filename, data)
}

type mockQueue struct {
	enqueueFn func(ctx context.Context, filename string, data []byte) (*services.ImportJob, error)
	statusFn  func(ctx context.Context, id string) (*services.ImportJob, error)
}

func (m *mockQueue) Enqueue(ctx context.Context, filename string, data []byte) (*services.ImportJob, error) {
	return m.enqueueFn(ctx, filename, data)
}
func (m *mockQueue) Status(ctx context.Context, id string) (*services.ImportJob, error) {
	return m.statusFn(ctx, id)
}

// --- Mock AuthService ---

type mockAuthService struct {
	loginFn func(ctx context.Context, req *models.LoginRequest) (string, *models.AdminSession, *services.ServiceError)
}

func (m *mockAuthService) Login(ctx context.Context, req *models.LoginRequest) (string, *models.AdminSession, *services.ServiceError) {
	return m.loginFn(ctx, req)
}
func (m *mockAuthService) EnsureAdmin(context.Context, string, string) error { return nil }

// --- Mock UploadService ---

type mockUploadService struct {
	uploadFn  func(ctx context.Context, filename, contentType string, body io.Reader) (string, *services.ServiceError)
	presignFn func(ctx context.Context, filename, contentType string, expires int64) (*awspkg.PresignedUpload, *services.ServiceError)
}

func (m *mockUploadService) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, *services.ServiceError) {
	return m.uploadFn(ctx, filename, contentType, body)
}
func (m *mockUploadService) Presign(ctx context.Context, filename, contentType string, expires int64) (*awspkg.PresignedUpload, *services.ServiceError) {
	return m.presignFn(ctx, filename, contentType, expires)
}

// --- Mock ReviewService ---

type mockReviewService struct {
	listFn     func(ctx context.Context, productID uint, sort models.ReviewSort) (*models.ReviewList, *services.ServiceError)
	createFn   func(ctx context.Context, req *models.CreateReviewRequest) (*models.Review, *services.ServiceError)
	helpfulFn  func(ctx context.Context, id uint) *services.ServiceError
	moderateFn func(ctx context.Context, id uint, approved bool) *services.ServiceError
	deleteFn   func(ctx context.Context, id uint) *services.ServiceError
}

func (m *mockReviewService) List(ctx context.Context, productID uint, sort models.ReviewSort) (*models.ReviewList, *services.ServiceError) {
	return m.listFn(ctx, productID, sort)
}
func (m *mockReviewService) Create(ctx context.Context, req *models.CreateReviewRequest) (*models.Review, *services.ServiceError) {
	return m.createFn(ctx, req)
}
func (m *mockReviewService) MarkHelpful(ctx context.Context, id uint) *services.ServiceError {
	return m.helpfulFn(ctx, id)
}
func (m *mockReviewService) Moderate(ctx context.Context, id uint, approved bool) *services.ServiceError {
	return m.moderateFn(ctx, id, approved)
}
func (m *mockReviewService) Delete(ctx context.Context, id uint) *services.ServiceError {
	return m.deleteFn(ctx, id)
}

// --- Mock CheckoutService ---

type mockCheckoutService struct {
	linkFn func(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutLink, *services.ServiceError)
}

func (m *mockCheckoutService) WhatsAppLink(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutLink, *services.ServiceError) {
	return m.linkFn(ctx, req)
}

// --- Mock ShopService ---

type mockShopService struct {
	info *models.ShopInfo
}

func (m *mockShopService) Get(context.Context) (*models.ShopInfo, *services.ServiceError) {
	return m.info, nil
}
func (m *mockShopService) Update(_ context.Context, req *models.ShopInfoRequest) (*models.ShopInfo, *services.ServiceError) {
	m.info = &models.ShopInfo{ID: 1, ShopName: req.ShopName, UpdatedAt: time.Now()}
	return m.info, nil
}
