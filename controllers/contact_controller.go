package controllers

import (
	"net/http"

	"github.com/Maharshi2203/Sattys-main/models"
	"github.com/Maharshi2203/Sattys-main/services"
	"github.com/gin-gonic/gin"
)

// ContactController handles the contact form and its admin inbox.
type ContactController struct {
	contacts  services.ContactService
	validator *RequestValidator
}

func NewContactController(contacts services.ContactService, validator *RequestValidator) *ContactController {
	return &ContactController{contacts: contacts, validator: validator}
}

// SubmitMessage handles POST /api/contact.
func (cc *ContactController) SubmitMessage(c *gin.Context) {
	var req models.ContactRequest
	if err := cc.validator.BindJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	if _, svcErr := cc.contacts.Submit(ctx, &req); svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Message sent successfully"})
}

// ListMessages handles GET /api/admin/messages.
func (cc *ContactController) ListMessages(c *gin.Context) {
	page, perPage, err := cc.validator.ParsePagination(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	msgs, total, svcErr := cc.contacts.List(ctx, page, perPage)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"messages": msgs,
		"meta":     models.NewPageMeta(page, perPage, total),
	})
}

// MarkRead handles PATCH /api/admin/messages/:id/read.
func (cc *ContactController) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id", "message")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	if svcErr := cc.contacts.MarkRead(ctx, id); svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteMessage handles DELETE /api/admin/messages/:id.
func (cc *ContactController) DeleteMessage(c *gin.Context) {
	id, ok := pathID(c, "id", "message")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	if svcErr := cc.contacts.Delete(ctx, id); svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
