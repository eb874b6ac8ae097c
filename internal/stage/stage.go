// Package stage is the client for the backend's staged file area, where
// uploaded documents live until (and after) processing.
package stage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"docsrouter/constants"
	"docsrouter/internal/common"
)

// Stage provides access to the staged file area.
type Stage interface {
	// Upload stores raw bytes under a file name, overwriting any existing
	// object with the same name.
	Upload(ctx context.Context, fileName string, data []byte) error
	// Fetch retrieves the raw bytes of a staged file.
	Fetch(ctx context.Context, fileName string) ([]byte, error)
	// PresignedURL issues a time-limited public link for a staged file.
	PresignedURL(ctx context.Context, fileName string) (string, error)
}

// MinioStage implements Stage on MinIO/S3 compatible storage.
type MinioStage struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

// NewMinioStage connects to the object store and ensures the stage bucket
// exists.
func NewMinioStage(cfg common.StageConfig) (*MinioStage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init stage client: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check stage bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create stage bucket: %w", err)
		}
	}
	return &MinioStage{client: client, bucket: cfg.Bucket, expiry: cfg.PresignExpiry}, nil
}

func (s *MinioStage) Upload(ctx context.Context, fileName string, data []byte) error {
	contentType := mime.TypeByExtension(filepath.Ext(fileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucket, fileName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("stage upload %s: %w", fileName, err)
	}
	return nil
}

func (s *MinioStage) Fetch(ctx context.Context, fileName string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, fileName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("stage fetch %s: %w", fileName, err)
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("stage read %s: %w", fileName, err)
	}
	return data, nil
}

func (s *MinioStage) PresignedURL(ctx context.Context, fileName string) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.bucket, fileName, s.expiry, nil)
	if err != nil {
		return "", fmt.Errorf("stage presign %s: %w", fileName, err)
	}
	return url.String(), nil
}

// ValidateUploadName rejects file names the processing backend cannot handle.
func ValidateUploadName(fileName string) error {
	if fileName == "" {
		return common.NewAppError("UPLOAD_INVALID", "file name is required", common.ErrInvalidInput)
	}
	ext := filepath.Ext(fileName)
	if !constants.AllowedUploadExt(ext) {
		return common.NewAppError("UPLOAD_INVALID",
			fmt.Sprintf("unsupported file extension %q", ext), common.ErrInvalidInput)
	}
	return nil
}
