package labels

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/01moynul/binner-golang/internal/config"
	"github.com/01moynul/binner-golang/internal/models"
	"github.com/gosimple/slug"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Sink stores a rendered label and returns where it ended up.
type Sink interface {
	Put(ctx context.Context, key string, png []byte) (string, error)
}

// Key is the object key for a part's label.
func Key(partNumber string) string {
	s := slug.Make(partNumber)
	if s == "" {
		s = "part"
	}
	return "labels/" + s + ".png"
}

// DirSink writes labels below a local directory.
type DirSink struct {
	Dir string
}

func (s DirSink) Put(_ context.Context, key string, data []byte) (string, error) {
	path := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create label dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write label: %w", err)
	}
	return path, nil
}

// MinioSink uploads labels to an S3-compatible bucket.
type MinioSink struct {
	client *minio.Client
	bucket string
}

// NewMinioSink connects to MinIO and creates the bucket if it is missing.
func NewMinioSink(ctx context.Context, cfg config.MinIOConfig) (*MinioSink, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}
	return &MinioSink{client: client, bucket: cfg.Bucket}, nil
}

func (s *MinioSink) Put(ctx context.Context, key string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "image/png",
	})
	if err != nil {
		return "", fmt.Errorf("upload label: %w", err)
	}
	return s.bucket + "/" + key, nil
}

// NewSink picks MinIO when an endpoint is configured and the local directory otherwise.
func NewSink(ctx context.Context, cfg config.LabelsConfig, logger *zap.Logger) (Sink, error) {
	if cfg.MinIO.Enabled() {
		sink, err := NewMinioSink(ctx, cfg.MinIO)
		if err != nil {
			return nil, err
		}
		logger.Info("storing labels in minio", zap.String("endpoint", cfg.MinIO.Endpoint), zap.String("bucket", cfg.MinIO.Bucket))
		return sink, nil
	}
	logger.Info("storing labels on disk", zap.String("dir", cfg.Dir))
	return DirSink{Dir: cfg.Dir}, nil
}

// Printer renders labels and hands them to a sink.
type Printer struct {
	Sink    Sink
	Options Options
}

// Print renders the part's label and returns the stored location.
func (p *Printer) Print(ctx context.Context, part *models.Part) (string, error) {
	data, err := Render(part, p.Options)
	if err != nil {
		return "", err
	}
	return p.Sink.Put(ctx, Key(part.PartNumber), data)
}
