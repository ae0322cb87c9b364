package services

import (
	"context"
	"strings"

	"github.com/Maharshi2203/Sattys-main/models"
	"github.com/Maharshi2203/Sattys-main/repository"
	"go.uber.org/zap"
)

// CategoryService defines category operations.
type CategoryService interface {
	List(ctx context.Context) ([]models.Category, *ServiceError)
	Create(ctx context.Context, req *models.CategoryRequest) (*models.Category, *ServiceError)
	Update(ctx context.Context, id uint, req *models.CategoryRequest) (*models.Category, *ServiceError)
	Delete(ctx context.Context, id uint) *ServiceError
}

type categoryServiceImpl struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	cache      ProductCache
	logger     *zap.Logger
}

func NewCategoryService(categories repository.CategoryRepository, products repository.ProductRepository, cache ProductCache, logger *zap.Logger) CategoryService {
	if cache == nil {
		cache = NoopCache{}
	}
	return &categoryServiceImpl{categories: categories, products: products, cache: cache, logger: logger}
}

func (s *categoryServiceImpl) List(ctx context.Context) ([]models.Category, *ServiceError) {
	cats, err := s.categories.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, internal("Failed to fetch categories")
	}
	if cats == nil {
		cats = []models.Category{}
	}
	return cats, nil
}

func (s *categoryServiceImpl) Create(ctx context.Context, req *models.CategoryRequest) (*models.Category, *ServiceError) {
	name := strings.TrimSpace(req.Name)
	if svcErr := s.checkNameFree(ctx, name, 0); svcErr != nil {
		return nil, svcErr
	}

	c := &models.Category{Name: name, Description: optionalString(req.Description)}
	if err := s.categories.Create(ctx, c); err != nil {
		if isUniqueViolation(err) {
			return nil, conflict("Category already exists")
		}
		s.logger.Error("Failed to create category", zap.String("name", name), zap.Error(err))
		return nil, internal("Failed to create category")
	}
	s.logger.Info("Category created", zap.Uint("category_id", c.ID), zap.String("name", name))
	return c, nil
}

func (s *categoryServiceImpl) Update(ctx context.Context, id uint, req *models.CategoryRequest) (*models.Category, *ServiceError) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Category not found")
		}
		s.logger.Error("Failed to load category", zap.Uint("category_id", id), zap.Error(err))
		return nil, internal("Failed to update category")
	}

	name := strings.TrimSpace(req.Name)
	if svcErr := s.checkNameFree(ctx, name, id); svcErr != nil {
		return nil, svcErr
	}
	c.Name = name
	c.Description = optionalString(req.Description)

	if err := s.categories.Update(ctx, c); err != nil {
		if isUniqueViolation(err) {
			return nil, conflict("Category already exists")
		}
		s.logger.Error("Failed to update category", zap.Uint("category_id", id), zap.Error(err))
		return nil, internal("Failed to update category")
	}
	// Product lists embed the category.
	_ = s.cache.Invalidate(ctx)
	return c, nil
}

// Delete refuses while any product still points at the category.
func (s *categoryServiceImpl) Delete(ctx context.Context, id uint) *ServiceError {
	n, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		s.logger.Error("Failed to count category products", zap.Uint("category_id", id), zap.Error(err))
		return internal("Failed to delete category")
	}
	if n > 0 {
		return conflict("Category has products; move or delete them first")
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		switch {
		case isNotFound(err):
			return notFound("Category not found")
		case isForeignKeyViolation(err):
			return conflict("Category has products; move or delete them first")
		}
		s.logger.Error("Failed to delete category", zap.Uint("category_id", id), zap.Error(err))
		return internal("Failed to delete category")
	}
	_ = s.cache.Invalidate(ctx)
	return nil
}

func (s *categoryServiceImpl) checkNameFree(ctx context.Context, name string, self uint) *ServiceError {
	existing, err := s.categories.FindByName(ctx, name)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		s.logger.Error("Failed to look up category", zap.String("name", name), zap.Error(err))
		return internal("Failed to save category")
	}
	if existing.ID != self {
		return conflict("Category already exists")
	}
	return nil
}
