package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/unlockhq/unlock-backend/internal/core/ports/services"
	"github.com/unlockhq/unlock-backend/internal/platform/config"
)

// MinioStorage stores listing media in a MinIO (or any S3-compatible) bucket.
type MinioStorage struct {
	client *minio.Client
	bucket string
}

var _ services.FileStorage = (*MinioStorage)(nil)

// NewMinioStorage connects to the object store and ensures the bucket exists.
func NewMinioStorage(ctx context.Context, cfg *config.Config) (*MinioStorage, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	err = client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{})
	if err != nil {
		// MakeBucket races with other instances on startup; a bucket that
		// already exists is not an error.
		exists, errExists := client.BucketExists(ctx, cfg.MinioBucket)
		if errExists != nil || !exists {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.MinioBucket, err)
		}
	}

	return &MinioStorage{client: client, bucket: cfg.MinioBucket}, nil
}

// Upload stores the content under a collision-free object name and returns
// its public pointer.
func (s *MinioStorage) Upload(ctx context.Context, fileName string, contentType string, size int64, content io.Reader) (*services.StoredFile, error) {
	objectName := uuid.NewString() + sanitizedExt(fileName)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object %s: %w", objectName, err)
	}

	return &services.StoredFile{
		URL:          fmt.Sprintf("%s/%s/%s", s.client.EndpointURL(), s.bucket, objectName),
		PublicID:     objectName,
		ResourceType: contentType,
	}, nil
}

// Delete removes a stored object by its public ID.
func (s *MinioStorage) Delete(ctx context.Context, publicID string) error {
	err := s.client.RemoveObject(ctx, s.bucket, publicID, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", publicID, err)
	}
	return nil
}

// sanitizedExt keeps the original extension so browsers infer the right type
// from the URL, but nothing else of the client-supplied name.
func sanitizedExt(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return ext
}
