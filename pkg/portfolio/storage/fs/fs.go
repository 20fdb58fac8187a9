package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/tendant/portfolio-content/pkg/portfolio"
)

// Backend is a filesystem implementation of the portfolio.BlobStore
// interface. Objects for the bucket live under <base_dir>/<bucket>.
type Backend struct {
	bucket    string
	baseDir   string
	urlPrefix string
}

// Config options for the filesystem backend
type Config struct {
	Bucket    string // Bucket name served by this backend
	BaseDir   string // Base directory; the bucket directory is created beneath it
	URLPrefix string // URL prefix for public URLs, e.g. "http://localhost:8080/images"
}

// New creates a new filesystem storage backend
func New(config Config) (*Backend, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	dir := filepath.Join(config.BaseDir, config.Bucket)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create bucket directory: %w", err)
	}

	return &Backend{
		bucket:    config.Bucket,
		baseDir:   config.BaseDir,
		urlPrefix: strings.TrimSuffix(config.URLPrefix, "/"),
	}, nil
}

func (b *Backend) objectPath(objectKey string) string {
	return filepath.Join(b.baseDir, b.bucket, filepath.FromSlash(objectKey))
}

// Upload writes the object to the filesystem
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader, contentType string) error {
	filePath := b.objectPath(objectKey)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Download reads the object back
func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	file, err := os.Open(b.objectPath(objectKey))
	if os.IsNotExist(err) {
		return nil, errors.New("object not found")
	} else if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Delete removes the object file
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	err := os.Remove(b.objectPath(objectKey))
	if os.IsNotExist(err) {
		return errors.New("object not found")
	} else if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// PublicURL resolves the public URL for an object key
func (b *Backend) PublicURL(objectKey string) (string, error) {
	if b.urlPrefix == "" {
		return "", errors.New("url prefix not configured for filesystem backend")
	}
	return fmt.Sprintf("%s/%s/%s", b.urlPrefix, b.bucket, objectKey), nil
}

// GetObjectMeta retrieves metadata for an object on the filesystem
func (b *Backend) GetObjectMeta(ctx context.Context, objectKey string) (*portfolio.ObjectMeta, error) {
	filePath := b.objectPath(objectKey)

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, errors.New("object not found")
	} else if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	// Detect content type from the leading bytes
	contentType := "application/octet-stream"
	if file, err := os.Open(filePath); err == nil {
		defer file.Close()
		buffer := make([]byte, 512)
		if n, err := file.Read(buffer); err == nil {
			contentType = http.DetectContentType(buffer[:n])
		}
	}

	return &portfolio.ObjectMeta{
		Key:         objectKey,
		Size:        info.Size(),
		ContentType: contentType,
		UpdatedAt:   info.ModTime(),
	}, nil
}
