package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/SoufianeJm/mooja/internal/constants"
	"github.com/SoufianeJm/mooja/internal/storage"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyFile           = errors.New("uploaded file is empty")
	ErrFileTooLarge        = fmt.Errorf("file exceeds the %dMB limit", constants.MaxUploadSizeBytes/(1024*1024))
	ErrUploadFailed        = errors.New("upload failed")
)

// UploadService validates images and relays them to object storage.
type UploadService struct {
	store storage.ObjectStorage
}

// NewUploadService creates a new UploadService.
func NewUploadService(store storage.ObjectStorage) *UploadService {
	return &UploadService{store: store}
}

// UploadResult describes a stored image.
type UploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimetype"`
}

// UploadImage validates type and size, stores the bytes under a
// collision-resistant key, and returns the public URL. Backend failures are
// logged and reported generically; storage error detail never reaches the
// client.
func (s *UploadService) UploadImage(ctx context.Context, originalName, contentType string, size int64, reader io.Reader) (*UploadResult, error) {
	if !slices.Contains(constants.AllowedImageTypes, contentType) {
		return nil, ErrUnsupportedFileType
	}
	if size <= 0 {
		return nil, ErrEmptyFile
	}
	if size > constants.MaxUploadSizeBytes {
		return nil, ErrFileTooLarge
	}

	key := fmt.Sprintf("image-%d-%s%s",
		time.Now().UnixMilli(),
		uuid.NewString(),
		filepath.Ext(originalName),
	)

	url, err := s.store.Upload(ctx, key, reader, size, contentType)
	if err != nil {
		log.Printf("storage upload failed for %s: %v", key, err)
		return nil, ErrUploadFailed
	}

	return &UploadResult{
		Filename: key,
		URL:      url,
		Size:     size,
		MimeType: contentType,
	}, nil
}
