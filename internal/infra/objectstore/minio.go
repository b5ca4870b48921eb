package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/dietdash/internal/domain/dashboard"
)

// MinioStorage stores reports in an S3-compatible bucket (R2, MinIO, S3).
type MinioStorage struct {
	client *minio.Client
	bucket string
	region string
	logger *slog.Logger

	bucketReady atomic.Bool
}

// NewMinioStorage constructs the storage adapter. endpoint may include a scheme;
// https selects TLS.
func NewMinioStorage(endpoint, accessKey, secretKey, bucket, region string, logger *slog.Logger) (*MinioStorage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client, err := minio.New(sanitizeEndpoint(endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       useTLS(endpoint),
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init object storage client: %w", err)
	}
	return &MinioStorage{
		client: client,
		bucket: bucket,
		region: region,
		logger: logger.With("component", "objectstore.minio"),
	}, nil
}

func (s *MinioStorage) ensureBucket(ctx context.Context) error {
	if s.bucketReady.Load() {
		return nil
	}
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err == nil && exists {
		s.bucketReady.Store(true)
		return nil
	}
	err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region})
	if err != nil && minio.ToErrorResponse(err).Code != "BucketAlreadyOwnedByYou" {
		return err
	}
	s.bucketReady.Store(true)
	s.logger.Info("report bucket ready", "bucket", s.bucket)
	return nil
}

// Put uploads data as a single part.
func (s *MinioStorage) Put(ctx context.Context, key string, data []byte, mimeType string) (dashboard.StoredObject, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return dashboard.StoredObject{}, fmt.Errorf("ensure bucket %s: %w", s.bucket, err)
	}
	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:      mimeType,
		DisableMultipart: true,
	})
	if err != nil {
		return dashboard.StoredObject{}, fmt.Errorf("put object %s: %w", key, err)
	}
	return dashboard.StoredObject{
		Key:      key,
		Size:     info.Size,
		MimeType: mimeType,
		ETag:     info.ETag,
	}, nil
}

// Get opens an object for reading after confirming it exists.
func (s *MinioStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	if _, statErr := obj.Stat(); statErr != nil {
		_ = obj.Close()
		return nil, objectError(key, statErr)
	}
	return obj, nil
}

// objectError tags missing objects with dashboard.ErrReportNotFound; anything
// else is passed through as a storage failure.
func objectError(key string, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchObject":
		return fmt.Errorf("object %q: %w", key, dashboard.ErrReportNotFound)
	}
	return fmt.Errorf("get object %s: %w", key, err)
}

var _ dashboard.ObjectStorage = (*MinioStorage)(nil)

// sanitizeEndpoint strips scheme and path; minio.New wants host[:port].
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "https://"):
		raw = raw[len("https://"):]
	case strings.HasPrefix(lower, "http://"):
		raw = raw[len("http://"):]
	}
	if idx := strings.Index(raw, "/"); idx >= 0 {
		raw = raw[:idx]
	}
	return raw
}

func useTLS(endpoint string) bool {
	lower := strings.ToLower(strings.TrimSpace(endpoint))
	return !strings.HasPrefix(lower, "http://")
}
