package aws

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Presign expiry bounds.
const (
	DefaultPresignExpiry = 900 * time.Second
	MaxPresignExpiry     = 3600 * time.Second
)

// ObjectStore keeps product images in one S3 bucket.
type ObjectStore struct {
	uploader   *manager.Uploader
	presigner  *s3.PresignClient
	bucket     string
	publicBase string
}

// ObjectStoreOptions configures an ObjectStore.
type ObjectStoreOptions struct {
	Bucket string
	// PublicDomain, usually a CloudFront domain, is used in returned URLs.
	PublicDomain string
}

// PresignedUpload is a URL the browser can PUT an object to directly.
type PresignedUpload struct {
	URL       string            `json:"upload_url"`
	Headers   map[string]string `json:"headers"`
	Key       string            `json:"key"`
	PublicURL string            `json:"public_url"`
	ExpiresIn int64             `json:"expires_in"`
}

// NewObjectStore creates an ObjectStore. Path-style addressing is used when
// the config has a custom endpoint.
func NewObjectStore(cfg sdkaws.Config, opts ObjectStoreOptions) *ObjectStore {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != nil {
			o.UsePathStyle = true
		}
	})
	return &ObjectStore{
		uploader:   manager.NewUploader(client),
		presigner:  s3.NewPresignClient(client),
		bucket:     opts.Bucket,
		publicBase: publicBase(cfg, opts),
	}
}

// Upload streams body to key and returns its public URL.
func (s *ObjectStore) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      sdkaws.String(s.bucket),
		Key:         sdkaws.String(key),
		Body:        body,
		ContentType: sdkaws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return s.URL(key), nil
}

// PresignPut returns a presigned PUT for key. Expiry is clamped to
// (0, MaxPresignExpiry]; zero means DefaultPresignExpiry.
func (s *ObjectStore) PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (*PresignedUpload, error) {
	if expiry <= 0 {
		expiry = DefaultPresignExpiry
	}
	if expiry > MaxPresignExpiry {
		expiry = MaxPresignExpiry
	}

	input := &s3.PutObjectInput{
		Bucket: sdkaws.String(s.bucket),
		Key:    sdkaws.String(key),
	}
	if contentType != "" {
		input.ContentType = sdkaws.String(contentType)
	}

	presigned, err := s.presigner.PresignPutObject(ctx, input, func(o *s3.PresignOptions) {
		o.Expires = expiry
	})
	if err != nil {
		return nil, fmt.Errorf("failed to presign put object: %w", err)
	}

	headers := make(map[string]string)
	for k, v := range presigned.SignedHeader {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	return &PresignedUpload{
		URL:       presigned.URL,
		Headers:   headers,
		Key:       key,
		PublicURL: s.URL(key),
		ExpiresIn: int64(expiry / time.Second),
	}, nil
}

// URL is the public address of key.
func (s *ObjectStore) URL(key string) string {
	return s.publicBase + "/" + strings.TrimPrefix(key, "/")
}

func publicBase(cfg sdkaws.Config, opts ObjectStoreOptions) string {
	if d := strings.TrimSuffix(opts.PublicDomain, "/"); d != "" {
		if !strings.HasPrefix(d, "http://") && !strings.HasPrefix(d, "https://") {
			d = "https://" + d
		}
		return d
	}
	if cfg.BaseEndpoint != nil {
		return strings.TrimSuffix(*cfg.BaseEndpoint, "/") + "/" + opts.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, cfg.Region)
}
