package memory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/tendant/portfolio-content/pkg/portfolio"
)

// Backend is an in-memory implementation of the portfolio.BlobStore
// interface, serving one named bucket. Useful for tests and development.
type Backend struct {
	mu           sync.RWMutex
	bucket       string
	objects      map[string][]byte
	contentTypes map[string]string
	updatedAt    map[string]time.Time
}

// New creates a new in-memory storage backend for the named bucket
func New(bucket string) *Backend {
	return &Backend{
		bucket:       bucket,
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
		updatedAt:    make(map[string]time.Time),
	}
}

// Upload stores the object bytes under objectKey
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	b.objects[objectKey] = data
	b.contentTypes[objectKey] = contentType
	b.updatedAt[objectKey] = time.Now()
	return nil
}

// Download reads the object back
func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[objectKey]
	if !exists {
		return nil, errors.New("object not found")
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete deletes the object
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[objectKey]; !exists {
		return errors.New("object not found")
	}

	delete(b.objects, objectKey)
	delete(b.contentTypes, objectKey)
	delete(b.updatedAt, objectKey)
	return nil
}

// PublicURL returns a synthetic memory:// URL carrying the bucket name so
// keys can be derived back from it.
func (b *Backend) PublicURL(objectKey string) (string, error) {
	if objectKey == "" {
		return "", errors.New("object key is required")
	}
	return fmt.Sprintf("memory://store/%s/%s", b.bucket, objectKey), nil
}

// ObjectCount reports how many objects the backend currently holds
func (b *Backend) ObjectCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.objects)
}

// GetObjectMeta retrieves metadata for an object in memory
func (b *Backend) GetObjectMeta(ctx context.Context, objectKey string) (*portfolio.ObjectMeta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[objectKey]
	if !exists {
		return nil, errors.New("object not found")
	}

	return &portfolio.ObjectMeta{
		Key:         objectKey,
		Size:        int64(len(data)),
		ContentType: b.contentTypes[objectKey],
		UpdatedAt:   b.updatedAt[objectKey],
	}, nil
}
