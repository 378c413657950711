// Package storage persists encoded artifacts. Every Put is all-or-nothing:
// a reader never observes a partially written artifact.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"motion-dataset/utils"
)

// ErrUnknownBackend is returned for a storage backend name we do not support.
var ErrUnknownBackend = errors.New("storage: unknown backend")

// Sink stores artifacts under slash-separated relative keys.
type Sink interface {
	Put(ctx context.Context, key string, data []byte) error
	// Location describes where keys end up, for logs and reports.
	Location() string
}

// NewSink builds the sink selected by cfg. Local artifacts are rooted at dir.
func NewSink(ctx context.Context, cfg utils.StorageConfig, dir string) (Sink, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "local":
		return NewLocalSink(dir), nil
	case "s3", "minio":
		return NewS3Sink(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, cfg.Backend)
	}
}
