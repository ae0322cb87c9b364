package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Maharshi2203/Sattys-main/importer"
	"github.com/Maharshi2203/Sattys-main/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ImportQueuer accepts imports for background processing.
type ImportQueuer interface {
	Enqueue(ctx context.Context, filename string, data []byte) (*services.ImportJob, error)
	Status(ctx context.Context, id string) (*services.ImportJob, error)
}

// ImportController handles bulk product import operations.
type ImportController struct {
	imports   services.ImportService
	queue     ImportQueuer
	validator *RequestValidator
	logger    *zap.Logger
}

// NewImportController creates an ImportController. A nil queue disables
// ?async=true.
func NewImportController(imports services.ImportService, queue ImportQueuer, validator *RequestValidator, logger *zap.Logger) *ImportController {
	return &ImportController{imports: imports, queue: queue, validator: validator, logger: logger}
}

// ImportProducts handles POST /api/admin/products/import.
func (ic *ImportController) ImportProducts(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	if !ic.validator.IsValidImportFile(file) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Import failed: " + importer.ErrUnsupportedFormat.Error()})
		return
	}
	if err := ic.validator.ValidateFileSize(file, MaxUploadSize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fh, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open file"})
		return
	}
	defer fh.Close()

	data, err := io.ReadAll(io.LimitReader(fh, MaxUploadSize+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	if strings.EqualFold(strings.TrimSpace(c.Query("async")), "true") {
		ic.enqueue(c, file.Filename, data)
		return
	}

	ctx, cancel := requestContext(c, ImportContextTimeout)
	defer cancel()

	result, svcErr := ic.imports.Import(ctx, file.Filename, data)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (ic *ImportController) enqueue(c *gin.Context, filename string, data []byte) {
	if ic.queue == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Background import is not available"})
		return
	}

	ctx, cancel := requestContext(c, 10*time.Second)
	defer cancel()

	job, err := ic.queue.Enqueue(ctx, filename, data)
	if err != nil {
		var batchErr *importer.BatchError
		if errors.As(err, &batchErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Import failed: " + err.Error()})
			return
		}
		ic.logger.Error("Failed to enqueue async bulk import", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue import job"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"job_id":  job.ID,
		"status":  job.Status,
		"message": "Import queued for processing",
	})
}

// GetImportJob handles GET /api/admin/products/import/jobs/:id.
func (ic *ImportController) GetImportJob(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Job ID required"})
		return
	}
	if ic.queue == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	ctx, cancel := requestContext(c, 5*time.Second)
	defer cancel()

	job, err := ic.queue.Status(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		ic.logger.Error("Failed to get job status", zap.String("job_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve job status"})
		return
	}
	job.FilePath = ""
	c.JSON(http.StatusOK, job)
}
