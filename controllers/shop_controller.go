package controllers

import (
	"net/http"

	"github.com/Maharshi2203/Sattys-main/models"
	"github.com/Maharshi2203/Sattys-main/services"
	"github.com/gin-gonic/gin"
)

// ShopController serves the storefront identity.
type ShopController struct {
	shop      services.ShopService
	validator *RequestValidator
}

func NewShopController(shop services.ShopService, validator *RequestValidator) *ShopController {
	return &ShopController{shop: shop, validator: validator}
}

// GetShopInfo handles GET /api/shop-info. An unset shop is an empty object.
func (sc *ShopController) GetShopInfo(c *gin.Context) {
	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	info, svcErr := sc.shop.Get(ctx)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	if info == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, info)
}

// UpdateShopInfo handles PUT /api/admin/shop-info.
func (sc *ShopController) UpdateShopInfo(c *gin.Context) {
	var req models.ShopInfoRequest
	if err := sc.validator.BindJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	info, svcErr := sc.shop.Update(ctx, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, info)
}
