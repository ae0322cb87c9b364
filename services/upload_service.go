package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"time"

	awspkg "github.com/Maharshi2203/Sattys-main/pkg/aws"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectUploader is the object storage surface used for product images.
type ObjectUploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (*awspkg.PresignedUpload, error)
}

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// AllowedImageTypes lists accepted upload content types.
func AllowedImageTypes() []string {
	types := make([]string, 0, len(allowedImageTypes))
	for t := range allowedImageTypes {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// IsAllowedImageType reports whether contentType is an accepted image type.
func IsAllowedImageType(contentType string) bool {
	_, ok := allowedImageTypes[normalizeContentType(contentType)]
	return ok
}

func normalizeContentType(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

// UploadService stores product images.
type UploadService interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, *ServiceError)
	Presign(ctx context.Context, filename, contentType string, expiresSeconds int64) (*awspkg.PresignedUpload, *ServiceError)
}

type uploadServiceImpl struct {
	store   ObjectUploader
	prefix  string
	now     func() time.Time
	metrics Metrics
	logger  *zap.Logger
}

// NewUploadService creates an UploadService writing keys under prefix.
func NewUploadService(store ObjectUploader, prefix string, metrics Metrics, logger *zap.Logger) UploadService {
	return &uploadServiceImpl{
		store:   store,
		prefix:  prefix,
		now:     time.Now,
		metrics: metricsOrNoop(metrics),
		logger:  logger,
	}
}

// ObjectKey builds "<prefix><unix-ms>-<8 hex chars>.<ext>". The extension
// comes from filename, falling back to one implied by contentType.
func ObjectKey(prefix, filename, contentType string, now time.Time) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		ext = allowedImageTypes[normalizeContentType(contentType)]
	}
	if ext == "" {
		ext = "bin"
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s%d-%s.%s", prefix, now.UnixMilli(), suffix, ext)
}

func (s *uploadServiceImpl) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, *ServiceError) {
	if s.store == nil {
		return "", &ServiceError{StatusCode: http.StatusServiceUnavailable, Message: "Image storage is not configured"}
	}
	if !IsAllowedImageType(contentType) {
		return "", badRequest(fmt.Sprintf("Invalid content type. Allowed: %v", AllowedImageTypes()))
	}

	key := ObjectKey(s.prefix, filename, contentType, s.now())
	url, err := s.store.Upload(ctx, key, normalizeContentType(contentType), body)
	if err != nil {
		s.logger.Error("Image upload failed", zap.String("key", key), zap.Error(err))
		return "", internal("Failed to upload image")
	}
	_ = s.metrics.RecordCount(ctx, awspkg.MetricImagesUploaded, nil)
	s.logger.Info("Image uploaded", zap.String("key", key))
	return url, nil
}

func (s *uploadServiceImpl) Presign(ctx context.Context, filename, contentType string, expiresSeconds int64) (*awspkg.PresignedUpload, *ServiceError) {
	if s.store == nil {
		return nil, &ServiceError{StatusCode: http.StatusServiceUnavailable, Message: "Image storage is not configured"}
	}
	if !IsAllowedImageType(contentType) {
		return nil, badRequest(fmt.Sprintf("Invalid content type. Allowed: %v", AllowedImageTypes()))
	}

	key := ObjectKey(s.prefix, filename, contentType, s.now())
	up, err := s.store.PresignPut(ctx, key, normalizeContentType(contentType), time.Duration(expiresSeconds)*time.Second)
	if err != nil {
		s.logger.Error("Failed to presign upload", zap.String("key", key), zap.Error(err))
		return nil, internal("Failed to generate presigned upload")
	}
	return up, nil
}
