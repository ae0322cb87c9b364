package controllers

import (
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/Maharshi2203/Sattys-main/common/errors"
	"github.com/Maharshi2203/Sattys-main/services"
	"github.com/gin-gonic/gin"
)

// UploadController stores product images.
type UploadController struct {
	uploads   services.UploadService
	validator *RequestValidator
}

func NewUploadController(uploads services.UploadService, validator *RequestValidator) *UploadController {
	return &UploadController{uploads: uploads, validator: validator}
}

// UploadImage handles POST /api/admin/upload.
func (uc *UploadController) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		_ = c.Error(apperrors.New(http.StatusBadRequest, "No file uploaded", err))
		return
	}
	if !uc.validator.IsValidImageType(file) {
		_ = c.Error(apperrors.ErrUnsupportedFileType)
		return
	}
	if err := uc.validator.ValidateFileSize(file, MaxImageSize); err != nil {
		_ = c.Error(apperrors.New(http.StatusRequestEntityTooLarge, err.Error(), nil))
		return
	}

	fh, err := file.Open()
	if err != nil {
		_ = c.Error(apperrors.ErrInternalServer.Wrap(err))
		return
	}
	defer fh.Close()

	contentType := file.Header.Get("Content-Type")
	if !services.IsAllowedImageType(contentType) {
		contentType = contentTypeFromName(file.Filename)
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	url, svcErr := uc.uploads.Upload(ctx, file.Filename, contentType, fh)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// PresignUpload handles GET /api/admin/upload/presign.
func (uc *UploadController) PresignUpload(c *gin.Context) {
	filename := c.DefaultQuery("filename", "upload")
	contentType := c.DefaultQuery("content_type", "image/jpeg")

	expires, err := strconv.ParseInt(c.DefaultQuery("expires", "900"), 10, 64)
	if err != nil || expires <= 0 {
		expires = 900
	}
	if expires > 3600 {
		expires = 3600
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	up, svcErr := uc.uploads.Presign(ctx, filename, contentType, expires)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"upload_url": up.URL,
		"method":     http.MethodPut,
		"headers":    up.Headers,
		"key":        up.Key,
		"public_url": up.PublicURL,
		"expires_in": up.ExpiresIn,
	})
}

func contentTypeFromName(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".webp"):
		return "image/webp"
	case strings.HasSuffix(lower, ".gif"):
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
