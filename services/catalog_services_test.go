package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/Maharshi2203/Sattys-main/models"
	awspkg "github.com/Maharshi2203/Sattys-main/pkg/aws"
	"github.com/Maharshi2203/Sattys-main/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- Categories ---

func TestCategoryService_CreateRejectsDuplicateName(t *testing.T) {
	cats := newFakeCategoryRepo("Snacks")
	svc := services.NewCategoryService(cats, newFakeProductRepo(), nil, zap.NewNop())

	_, svcErr := svc.Create(context.Background(), &models.CategoryRequest{Name: "  snacks "})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusConflict, svcErr.StatusCode)
	assert.Equal(t, "Category already exists", svcErr.Message)

	c, svcErr := svc.Create(context.Background(), &models.CategoryRequest{Name: " Sweets ", Description: "Mithai"})
	require.Nil(t, svcErr)
	assert.Equal(t, "Sweets", c.Name)
	require.NotNil(t, c.Description)
	assert.Equal(t, "Mithai", *c.Description)
}

func TestCategoryService_UpdateKeepsOwnName(t *testing.T) {
	cats := newFakeCategoryRepo("Snacks", "Sweets")
	svc := services.NewCategoryService(cats, newFakeProductRepo(), nil, zap.NewNop())

	c, svcErr := svc.Update(context.Background(), 1, &models.CategoryRequest{Name: "snacks", Description: "Crunchy"})
	require.Nil(t, svcErr)
	assert.Equal(t, "snacks", c.Name)

	_, svcErr = svc.Update(context.Background(), 1, &models.CategoryRequest{Name: "Sweets"})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusConflict, svcErr.StatusCode)

	_, svcErr = svc.Update(context.Background(), 9, &models.CategoryRequest{Name: "Other"})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}

func TestCategoryService_DeleteRefusedWhileProductsReferenceIt(t *testing.T) {
	cats := newFakeCategoryRepo("Snacks", "Empty")
	products := newFakeProductRepo(models.Product{Name: "Chips", CategoryID: uintPtr(1), IsActive: true})
	svc := services.NewCategoryService(cats, products, nil, zap.NewNop())

	svcErr := svc.Delete(context.Background(), 1)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusConflict, svcErr.StatusCode)

	require.Nil(t, svc.Delete(context.Background(), 2))
	svcErr = svc.Delete(context.Background(), 2)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}

// --- Reviews ---

func TestReviewService_CreateAndList(t *testing.T) {
	products := newFakeProductRepo(models.Product{ID: 1, Name: "Chips", IsActive: true})
	reviews := newFakeReviewRepo()
	metrics := newFakeMetrics()
	svc := services.NewReviewService(reviews, products, metrics, zap.NewNop())
	ctx := context.Background()

	r, svcErr := svc.Create(ctx, &models.CreateReviewRequest{
		ProductID: 1, UserName: " Asha ", UserEmail: "Asha@Example.com", Rating: 5, Title: "Great",
	})
	require.Nil(t, svcErr)
	assert.True(t, r.IsApproved)
	assert.Equal(t, "Asha", r.UserName)
	require.NotNil(t, r.UserEmail)
	assert.Equal(t, "asha@example.com", *r.UserEmail)

	_, svcErr = svc.Create(ctx, &models.CreateReviewRequest{ProductID: 1, UserName: "A", UserEmail: "asha@example.com ", Rating: 1})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
	assert.Equal(t, "You have already reviewed this product", svcErr.Message)

	_, svcErr = svc.Create(ctx, &models.CreateReviewRequest{ProductID: 1, UserName: "Ravi", Rating: 4})
	require.Nil(t, svcErr)

	list, svcErr := svc.List(ctx, 1, models.ReviewSortRecent)
	require.Nil(t, svcErr)
	assert.Len(t, list.Reviews, 2)
	assert.Equal(t, 2, list.Stats.Total)
	assert.Equal(t, 4.5, list.Stats.Average)
	assert.Equal(t, 2, metrics.count(awspkg.MetricReviewsCreated))
}

func TestReviewService_CreateValidatesProductAndRating(t *testing.T) {
	svc := services.NewReviewService(newFakeReviewRepo(), newFakeProductRepo(), nil, zap.NewNop())

	_, svcErr := svc.Create(context.Background(), &models.CreateReviewRequest{ProductID: 7, UserName: "A", Rating: 3})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)

	_, svcErr = svc.Create(context.Background(), &models.CreateReviewRequest{ProductID: 7, UserName: "A", Rating: 6})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
}

func TestReviewService_ModerateHelpfulDelete(t *testing.T) {
	reviews := newFakeReviewRepo()
	_ = reviews.Create(context.Background(), &models.Review{ProductID: 1, UserName: "A", Rating: 3, IsApproved: true})
	svc := services.NewReviewService(reviews, newFakeProductRepo(), nil, zap.NewNop())
	ctx := context.Background()

	require.Nil(t, svc.MarkHelpful(ctx, 1))
	require.Nil(t, svc.MarkHelpful(ctx, 1))
	assert.Equal(t, 2, reviews.reviews[1].HelpfulCount)

	require.Nil(t, svc.Moderate(ctx, 1, false))
	list, svcErr := svc.List(ctx, 1, models.ReviewSortHelpful)
	require.Nil(t, svcErr)
	assert.Empty(t, list.Reviews)
	assert.Equal(t, 0.0, list.Stats.Average)

	require.Nil(t, svc.Delete(ctx, 1))
	svcErr = svc.MarkHelpful(ctx, 1)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, "Review not found", svcErr.Message)
}

func TestCalculateStats(t *testing.T) {
	stats := services.CalculateStats(nil)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, stats.Distribution)

	stats = services.CalculateStats([]models.Review{{Rating: 5}, {Rating: 4}, {Rating: 4}})
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 4.3, stats.Average)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 2, 5: 1}, stats.Distribution)
}

// --- Contact ---

func TestContactService_Lifecycle(t *testing.T) {
	repo := newFakeContactRepo()
	svc := services.NewContactService(repo, zap.NewNop())
	ctx := context.Background()

	msg, svcErr := svc.Submit(ctx, &models.ContactRequest{Name: " Meera ", Email: "meera@example.com", Message: " Bulk order? "})
	require.Nil(t, svcErr)
	assert.Equal(t, "Meera", msg.Name)
	assert.Equal(t, "Bulk order?", msg.Message)

	msgs, total, svcErr := svc.List(ctx, 1, 20)
	require.Nil(t, svcErr)
	assert.Equal(t, int64(1), total)
	assert.Len(t, msgs, 1)

	require.Nil(t, svc.MarkRead(ctx, msg.ID))
	assert.True(t, repo.msgs[msg.ID].IsRead)

	require.Nil(t, svc.Delete(ctx, msg.ID))
	svcErr = svc.MarkRead(ctx, msg.ID)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}

// --- Shop info ---

type fakeShopRepo struct {
	info  *models.ShopInfo
	saves int
}

func (r *fakeShopRepo) Get(_ context.Context) (*models.ShopInfo, error) {
	if r.info == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r.info
	return &cp, nil
}

func (r *fakeShopRepo) Save(_ context.Context, info *models.ShopInfo) error {
	r.saves++
	if info.ID == 0 {
		info.ID = 1
	}
	cp := *info
	r.info = &cp
	return nil
}

func TestShopService_GetEmptyThenUpsert(t *testing.T) {
	repo := &fakeShopRepo{}
	svc := services.NewShopService(repo, zap.NewNop())
	ctx := context.Background()

	info, svcErr := svc.Get(ctx)
	require.Nil(t, svcErr)
	assert.Nil(t, info)

	info, svcErr = svc.Update(ctx, &models.ShopInfoRequest{ShopName: " Satty's ", Phone: "+91 82008 92368"})
	require.Nil(t, svcErr)
	assert.Equal(t, uint(1), info.ID)
	assert.Equal(t, "Satty's", info.ShopName)
	assert.Nil(t, info.OwnerName)

	info, svcErr = svc.Update(ctx, &models.ShopInfoRequest{ShopName: "Satty's Snacks", OwnerName: "Satish"})
	require.Nil(t, svcErr)
	assert.Equal(t, uint(1), info.ID)
	assert.Nil(t, info.Phone)
	assert.Equal(t, 2, repo.saves)
}
