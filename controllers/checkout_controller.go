package controllers

import (
	"net/http"

	"github.com/Maharshi2203/Sattys-main/models"
	"github.com/Maharshi2203/Sattys-main/services"
	"github.com/gin-gonic/gin"
)

// CheckoutController builds order links for the cart.
type CheckoutController struct {
	checkout  services.CheckoutService
	validator *RequestValidator
}

func NewCheckoutController(checkout services.CheckoutService, validator *RequestValidator) *CheckoutController {
	return &CheckoutController{checkout: checkout, validator: validator}
}

// WhatsAppCheckout handles POST /api/checkout/whatsapp.
func (cc *CheckoutController) WhatsAppCheckout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := cc.validator.BindJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	link, svcErr := cc.checkout.WhatsAppLink(ctx, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, link)
}
