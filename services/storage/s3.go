package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"motion-dataset/utils"
)

// S3Sink uploads artifacts to an S3-compatible bucket. A single PutObject is
// atomic, so no staging is needed.
type S3Sink struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewS3Sink connects to cfg.Endpoint and checks that the bucket exists.
func NewS3Sink(ctx context.Context, cfg utils.S3Config) (*S3Sink, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 sink: endpoint and bucket are required")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	ok, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("s3 bucket check %s: %w", cfg.Bucket, err)
	}
	if !ok {
		return nil, fmt.Errorf("s3 bucket %s does not exist", cfg.Bucket)
	}

	return &S3Sink{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (s *S3Sink) Location() string {
	return "s3://" + path.Join(s.bucket, s.prefix)
}

func (s *S3Sink) Put(ctx context.Context, key string, data []byte) error {
	objectKey := path.Join(s.prefix, key)
	ct := mime.TypeByExtension(path.Ext(key))
	if ct == "" {
		ct = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: ct})
	if err != nil {
		return fmt.Errorf("s3 put object %s: %w", objectKey, err)
	}
	return nil
}
