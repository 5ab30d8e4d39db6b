package ports

import (
	"context"
	"io"
	"time"
)

type ObjectStore interface {
	PutObject(ctx context.Context, key string, body io.Reader, contentType string) error
	ObjectExists(ctx context.Context, key string) (bool, error)
	// DeleteObject must be idempotent: deleting an absent key is not an error.
	DeleteObject(ctx context.Context, key string) error
	PresignUpload(ctx context.Context, key string, ttl time.Duration) (string, error)
	PresignDownload(ctx context.Context, key string, ttl time.Duration) (string, error)
	GetBucket() string
}
