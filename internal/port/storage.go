package port

import (
	"context"
	"time"
)

// ObjectStorage defines the contract for storing export artifacts.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, body []byte) error
	// PresignDownload returns a time-limited download URL for the object.
	PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error)
}
