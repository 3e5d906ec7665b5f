package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ismail-dev-code/meal-giver-server/internal/logger"
)

const bucketName = "donation-images"

// ImageStore keeps donation images in a MinIO bucket.
type ImageStore struct {
	client   *minio.Client
	endpoint string
	useSSL   bool
}

// NewImageStore connects to MinIO and ensures the image bucket exists.
func NewImageStore(endpoint, accessKey, secretKey string, useSSL bool) (*ImageStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to MinIO: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to check bucket existence")
	} else if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			logger.Warn().Err(err).Str("bucket", bucketName).Msg("failed to create bucket")
		} else {
			logger.Info().Str("bucket", bucketName).Msg("created bucket")
		}
	}

	logger.Info().Str("endpoint", endpoint).Msg("connected to MinIO")
	return &ImageStore{client: client, endpoint: endpoint, useSSL: useSSL}, nil
}

// Put stores an image object and returns its public URL.
func (s *ImageStore) Put(ctx context.Context, objectName, contentType string, r io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, bucketName, objectName, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, bucketName, objectName), nil
}

// Remove deletes an image object. Missing objects are not an error.
func (s *ImageStore) Remove(ctx context.Context, objectName string) error {
	return s.client.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{})
}
