package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageService uploads media to the third-party host and returns permanent URLs.
type StorageService interface {
	UploadImage(ctx context.Context, file io.Reader, destFolder string) (string, error)
	DeleteImage(ctx context.Context, publicID string) error
}

type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewStorageService creates a Cloudinary-backed StorageService.
func NewStorageService(cld *cloudinary.Cloudinary) StorageService {
	return &CloudinaryStorage{cld: cld}
}

// UploadImage uploads an image into the specified folder and returns its
// permanent secure URL, which is stored verbatim on the owning record.
func (s *CloudinaryStorage) UploadImage(ctx context.Context, file io.Reader, destFolder string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: destFolder})
	if err != nil {
		return "", fmt.Errorf("storage: failed to upload image: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("storage: no URL returned for upload")
	}
	return result.SecureURL, nil
}

// DeleteImage deletes an uploaded image given its public ID.
func (s *CloudinaryStorage) DeleteImage(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("storage: failed to delete image: %w", err)
	}
	return nil
}
