package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sunflowertrip/tour-booking-backend/internal/media"
	"github.com/sunflowertrip/tour-booking-backend/internal/repository/ports"
)

var ErrImageTooLarge = errors.New("image exceeds the maximum allowed size")

// UploadService pushes processed gallery images into object storage and
// returns the public URL to store on the tour or destination.
type UploadService struct {
	processor media.Processor
	storage   ports.ObjectStorage
	bucket    string
	maxBytes  int64
}

func NewUploadService(processor media.Processor, storage ports.ObjectStorage, bucket string, maxBytes int64) *UploadService {
	return &UploadService{processor: processor, storage: storage, bucket: bucket, maxBytes: maxBytes}
}

func (s *UploadService) UploadImage(ctx context.Context, upload media.Upload) (string, error) {
	if s.maxBytes > 0 && upload.Size > s.maxBytes {
		return "", ErrImageTooLarge
	}

	result, err := s.processor.Process(ctx, upload)
	if err != nil {
		return "", err
	}

	objectName := uuid.NewString() + extensionFor(result.ContentType)
	url, err := s.storage.Upload(ctx, s.bucket, objectName, result.ContentType,
		bytes.NewReader(result.Bytes), int64(len(result.Bytes)))
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
