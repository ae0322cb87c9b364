package controllers

import (
	"net/http"

	"github.com/Maharshi2203/Sattys-main/models"
	"github.com/Maharshi2203/Sattys-main/services"
	"github.com/gin-gonic/gin"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	categories services.CategoryService
	validator  *RequestValidator
}

func NewCategoryController(categories services.CategoryService, validator *RequestValidator) *CategoryController {
	return &CategoryController{categories: categories, validator: validator}
}

// ListCategories handles GET /api/categories.
func (cc *CategoryController) ListCategories(c *gin.Context) {
	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	cats, svcErr := cc.categories.List(ctx)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if err := cc.validator.BindJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	cat, svcErr := cc.categories.Create(ctx, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id", "category")
	if !ok {
		return
	}
	var req models.CategoryRequest
	if err := cc.validator.BindJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	cat, svcErr := cc.categories.Update(ctx, id, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id", "category")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	if svcErr := cc.categories.Delete(ctx, id); svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
