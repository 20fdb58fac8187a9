package portfolio

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrArtworkNotFound indicates an artwork was not found
	ErrArtworkNotFound = errors.New("artwork not found")

	// ErrExhibitionNotFound indicates an exhibition was not found
	ErrExhibitionNotFound = errors.New("exhibition not found")

	// ErrAboutInfoNotFound indicates the about record has not been written yet
	ErrAboutInfoNotFound = errors.New("about info not found")

	// ErrBucketNotConfigured indicates no blob store is registered for a bucket
	ErrBucketNotConfigured = errors.New("bucket not configured")

	// ErrInvalidRequest indicates a request failed validation
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUploadFailed indicates an image upload failed
	ErrUploadFailed = errors.New("upload failed")
)

// RecordError represents an error from a record operation.
type RecordError struct {
	Kind string
	ID   uuid.UUID
	Op   string
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s operation %s failed for %s: %v", e.Kind, e.Op, e.ID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// StorageError represents an error from a blob store operation.
type StorageError struct {
	Bucket string
	Key    string
	Op     string
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s in bucket %s: %v", e.Op, e.Key, e.Bucket, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
