package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/farsishop/storefront/app/helpers"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gocloud.dev/blob"
)

const MaxUploadSize = 5 << 20

const (
	msgUploadEmpty    = "فایلی برای بارگذاری انتخاب نشده است"
	msgUploadTooLarge = "حجم فایل نباید بیشتر از ۵ مگابایت باشد"
	msgUploadType     = "فقط تصاویر JPEG، PNG، WEBP و GIF مجاز هستند"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var uploadKinds = map[string]bool{
	"product":  true,
	"category": true,
	"article":  true,
	"slider":   true,
}

type UploadInput struct {
	Kind        string
	Filename    string
	ContentType string
	Data        []byte
}

type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type UploadService struct {
	bucket    *blob.Bucket
	publicURL string
	logger    zerolog.Logger
	now       func() time.Time
}

func NewUploadService(bucket *blob.Bucket, publicURL string, logger zerolog.Logger) *UploadService {
	return &UploadService{
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger.With().Str("service", "upload").Logger(),
		now:       time.Now,
	}
}

// Upload validates the file and writes it under a random key. Nothing is
// written when validation fails.
func (s *UploadService) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if len(in.Data) == 0 {
		return nil, helpers.NewBadRequest(msgUploadEmpty)
	}
	if len(in.Data) > MaxUploadSize {
		return nil, helpers.NewBadRequest(msgUploadTooLarge)
	}

	contentType := strings.ToLower(strings.TrimSpace(strings.SplitN(in.ContentType, ";", 2)[0]))
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(in.Data)
	}
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, helpers.NewBadRequest(msgUploadType)
	}

	key := s.objectKey(in.Kind, ext)
	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return nil, fmt.Errorf("failed to open blob writer for %s: %w", key, err)
	}
	if _, err := writer.Write(in.Data); err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to write blob %s: %w", key, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to commit blob %s: %w", key, err)
	}

	s.logger.Info().Str("key", key).Int("size", len(in.Data)).Str("content_type", contentType).Msg("file uploaded")
	return &UploadResult{URL: s.publicURL + "/" + key, Key: key}, nil
}

func (s *UploadService) objectKey(kind, ext string) string {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if !uploadKinds[kind] {
		kind = "misc"
	}
	return fmt.Sprintf("%s/%d-%s%s", kind, s.now().Unix(), uuid.NewString()[:8], ext)
}
