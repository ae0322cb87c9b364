package routes

import (
	"github.com/Maharshi2203/Sattys-main/controllers"
	"github.com/Maharshi2203/Sattys-main/middleware"

	"github.com/gin-gonic/gin"
)

// ImportRoute is registered outside the global request timeout.
const ImportRoute = "/api/admin/products/import"

// Controllers bundles every handler the API exposes.
type Controllers struct {
	Products   *controllers.ProductController
	Categories *controllers.CategoryController
	Imports    *controllers.ImportController
	Reviews    *controllers.ReviewController
	Shop       *controllers.ShopController
	Contact    *controllers.ContactController
	Auth       *controllers.AuthController
	Uploads    *controllers.UploadController
	Checkout   *controllers.CheckoutController
}

// RegisterRoutes sets up the storefront API and the admin dashboard API.
// loginLimit throttles credential attempts.
func RegisterRoutes(r *gin.Engine, h Controllers, tokens middleware.TokenValidator, loginLimit gin.HandlerFunc) {
	api := r.Group("/api")

	// Storefront
	api.GET("/products", h.Products.ListProducts)
	api.GET("/products/:id", h.Products.GetProduct)
	api.GET("/categories", h.Categories.ListCategories)
	api.GET("/reviews", h.Reviews.ListReviews)
	api.POST("/reviews", h.Reviews.CreateReview)
	api.PATCH("/reviews/:id/helpful", h.Reviews.MarkHelpful)
	api.GET("/shop-info", h.Shop.GetShopInfo)
	api.POST("/contact", h.Contact.SubmitMessage)
	api.POST("/checkout/whatsapp", h.Checkout.WhatsAppCheckout)

	auth := api.Group("/auth")
	if loginLimit != nil {
		auth.POST("/login", loginLimit, h.Auth.Login)
	} else {
		auth.POST("/login", h.Auth.Login)
	}
	auth.POST("/logout", h.Auth.Logout)
	auth.GET("/me", middleware.AdminAuth(tokens), h.Auth.Me)

	// Admin dashboard
	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(tokens), middleware.AdminOnly())

	admin.GET("/stats", h.Products.DashboardStats)

	admin.POST("/products", h.Products.CreateProduct)
	admin.GET("/products/next-sku", h.Products.NextSKU)
	admin.PUT("/products/:id", h.Products.UpdateProduct)
	admin.DELETE("/products/:id", h.Products.DeleteProduct)
	admin.POST("/products/import", h.Imports.ImportProducts)
	admin.GET("/products/import/jobs/:id", h.Imports.GetImportJob)

	admin.POST("/categories", h.Categories.CreateCategory)
	admin.PUT("/categories/:id", h.Categories.UpdateCategory)
	admin.DELETE("/categories/:id", h.Categories.DeleteCategory)

	admin.PATCH("/reviews/:id", h.Reviews.ModerateReview)
	admin.DELETE("/reviews/:id", h.Reviews.DeleteReview)

	admin.PUT("/shop-info", h.Shop.UpdateShopInfo)

	admin.GET("/messages", h.Contact.ListMessages)
	admin.PATCH("/messages/:id/read", h.Contact.MarkRead)
	admin.DELETE("/messages/:id", h.Contact.DeleteMessage)

	admin.POST("/upload", h.Uploads.UploadImage)
	admin.GET("/upload/presign", h.Uploads.PresignUpload)
}
