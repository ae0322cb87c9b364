package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/Maharshi2203/Sattys-main/services"
	"github.com/gin-gonic/gin"
)

// Default configuration values
const (
	DefaultContextTimeout = 30 * time.Second
	ImportContextTimeout  = 5 * time.Minute
)

func respondError(c *gin.Context, svcErr *services.ServiceError) {
	c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
}

func requestContext(c *gin.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), d)
}

// pathID parses a numeric path parameter, answering 400 when it is not one.
func pathID(c *gin.Context, name, what string) (uint, bool) {
	id, err := parseID(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what + " ID"})
		return 0, false
	}
	return id, true
}
