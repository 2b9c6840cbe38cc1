package integration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/config"
)

var ErrObjectNotFound = errors.New("object not found")

// FileStorage stores uploaded documents and student photos.
type FileStorage interface {
	Upload(ctx context.Context, key string, content io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, int64, error)
	Stat(ctx context.Context, key string) (int64, error)
	Delete(ctx context.Context, key string) error
}

type minioStorage struct {
	client *minio.Client
	bucket string
	region string
	logger zerolog.Logger

	ensureMu      sync.Mutex
	bucketEnsured bool
}

// NewMinIOStorage creates the client and tries to create the bucket. A
// storage server that is not ready yet is logged; the bucket is ensured
// again on first use.
func NewMinIOStorage(cfg config.StorageConfig, logger zerolog.Logger) (FileStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	s := &minioStorage{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		logger: logger,
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.ensureBucket(ctx); err != nil {
		logger.Error().Err(err).
			Str("endpoint", cfg.Endpoint).
			Str("bucket", cfg.Bucket).
			Msg("MinIO not ready during startup, will retry on demand")
	} else {
		logger.Info().
			Str("endpoint", cfg.Endpoint).
			Str("bucket", cfg.Bucket).
			Bool("ssl", cfg.UseSSL).
			Msg("Connected to MinIO")
	}

	return s, nil
}

func (s *minioStorage) ensureBucket(ctx context.Context) error {
	s.ensureMu.Lock()
	defer s.ensureMu.Unlock()
	if s.bucketEnsured {
		return nil
	}

	backoff := 500 * time.Millisecond
	for {
		err := s.makeBucket(ctx)
		if err == nil {
			s.bucketEnsured = true
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("minio not ready: %w", err)
		case <-time.After(backoff):
		}
		if backoff < 4*time.Second {
			backoff *= 2
		}
	}
}

func (s *minioStorage) makeBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return err
	}
	s.logger.Info().Str("bucket", s.bucket).Msg("Created new bucket")
	return nil
}

func (s *minioStorage) Upload(ctx context.Context, key string, content io.Reader, size int64, contentType string) error {
	if err := s.ensureBucket(ctx); err != nil {
		return err
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	info, err := s.client.PutObject(ctx, s.bucket, key, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}

	s.logger.Debug().
		Str("key", key).
		Str("etag", info.ETag).
		Int64("size", info.Size).
		Msg("Object uploaded")

	return nil
}

func (s *minioStorage) Download(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	size, err := s.Stat(ctx, key)
	if err != nil {
		return nil, 0, err
	}

	object, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get object: %w", err)
	}

	return object, size, nil
}

func (s *minioStorage) Stat(ctx context.Context, key string) (int64, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return 0, err
	}

	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return 0, ErrObjectNotFound
		}
		return 0, fmt.Errorf("failed to stat object: %w", err)
	}

	return info.Size, nil
}

func (s *minioStorage) Delete(ctx context.Context, key string) error {
	if err := s.ensureBucket(ctx); err != nil {
		return err
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	s.logger.Debug().Str("key", key).Msg("Object deleted")
	return nil
}
