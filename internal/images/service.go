// Package images manages product image objects: upload-URL issuance for the
// shop operator and download-URL issuance for clients. Image bytes move
// directly between the client and object storage.
package images

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/internal/storage"
)

const (
	// MaxFilenameLength bounds user-supplied image filenames
	MaxFilenameLength = 255
	// UploadTTL is the lifetime of a presigned upload URL
	UploadTTL = 15 * time.Minute
	// DownloadTTL is the lifetime of a presigned download URL
	DownloadTTL = 1 * time.Hour
)

// ErrInvalidInput is returned when an upload request fails validation
var ErrInvalidInput = errors.New("invalid image request")

// allowedContentTypes whitelists image formats the catalog accepts.
var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Service handles product image operations
type Service struct {
	storage storage.Service
}

// NewService creates a new images service
func NewService(storage storage.Service) *Service {
	return &Service{storage: storage}
}

// ValidateFilename checks if an image filename is safe and valid
func ValidateFilename(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if len(filename) > MaxFilenameLength {
		return fmt.Errorf("filename too long (max %d characters)", MaxFilenameLength)
	}
	if strings.Contains(filename, "..") || strings.Contains(filename, "/") || strings.Contains(filename, "\\") {
		return fmt.Errorf("filename contains invalid characters")
	}
	if filepath.Ext(filename) == "" {
		return fmt.Errorf("filename must have an extension")
	}
	return nil
}

// ValidateContentType checks if a content type is an accepted image format
func ValidateContentType(contentType string) error {
	if contentType == "" {
		return fmt.Errorf("content type cannot be empty")
	}
	if !allowedContentTypes[contentType] {
		return fmt.Errorf("content type %s is not an accepted image format", contentType)
	}
	return nil
}

// CreateUploadURL validates the request and issues a presigned upload URL
// under a fresh object key.
func (s *Service) CreateUploadURL(ctx context.Context, filename, contentType string) (*UploadURLResponse, error) {
	if err := ValidateFilename(filename); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := ValidateContentType(contentType); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	key := fmt.Sprintf("products/%s-%s", uuid.New().String(), filename)

	url, err := s.storage.PresignUpload(ctx, key, contentType, UploadTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &UploadURLResponse{
		UploadURL: url,
		ImageKey:  key,
		ExpiresAt: time.Now().Add(UploadTTL).Unix(),
	}, nil
}

// CreateDownloadURL issues a presigned download URL for an existing image.
func (s *Service) CreateDownloadURL(ctx context.Context, key string) (*DownloadURLResponse, error) {
	if key == "" {
		return nil, fmt.Errorf("image key cannot be empty")
	}

	url, err := s.storage.PresignDownload(ctx, key, DownloadTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign download: %w", err)
	}

	return &DownloadURLResponse{
		DownloadURL: url,
		ExpiresAt:   time.Now().Add(DownloadTTL).Unix(),
	}, nil
}

// Delete removes an image object from storage.
func (s *Service) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("image key cannot be empty")
	}
	return s.storage.Delete(ctx, key)
}
