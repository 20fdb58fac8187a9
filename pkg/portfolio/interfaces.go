package portfolio

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// BlobStore defines the interface for binary image storage. One instance
// serves one named bucket.
type BlobStore interface {
	// Upload stores the object under objectKey with the declared content type.
	Upload(ctx context.Context, objectKey string, reader io.Reader, contentType string) error

	// Download reads the object back.
	Download(ctx context.Context, objectKey string) (io.ReadCloser, error)

	// Delete removes the object.
	Delete(ctx context.Context, objectKey string) error

	// PublicURL resolves the publicly reachable URL for an object key. The
	// URL contains the bucket name as a path segment so the key can be
	// derived back from it.
	PublicURL(objectKey string) (string, error)

	// GetObjectMeta retrieves metadata for a stored object.
	GetObjectMeta(ctx context.Context, objectKey string) (*ObjectMeta, error)
}

// Repository defines the interface for record persistence.
type Repository interface {
	// Artwork operations
	CreateArtwork(ctx context.Context, artwork *Artwork) error
	GetArtwork(ctx context.Context, id uuid.UUID) (*Artwork, error)
	ListArtworks(ctx context.Context) ([]*Artwork, error)
	DeleteArtwork(ctx context.Context, id uuid.UUID) error

	// Exhibition operations
	CreateExhibition(ctx context.Context, exhibition *Exhibition) error
	GetExhibition(ctx context.Context, id uuid.UUID) (*Exhibition, error)
	ListExhibitions(ctx context.Context) ([]*Exhibition, error)
	DeleteExhibition(ctx context.Context, id uuid.UUID) error

	// About operations. UpsertAboutInfo replaces the singleton row in place,
	// keyed by AboutInfoID.
	GetAboutInfo(ctx context.Context) (*AboutInfo, error)
	UpsertAboutInfo(ctx context.Context, info *AboutInfo) error
}

// EventSink defines the interface for mutation event handling. Sink failures
// are logged by the service and never fail the triggering operation.
type EventSink interface {
	ArtworkCreated(ctx context.Context, artwork *Artwork) error
	ArtworkDeleted(ctx context.Context, id uuid.UUID) error
	ExhibitionCreated(ctx context.Context, exhibition *Exhibition) error
	ExhibitionDeleted(ctx context.Context, id uuid.UUID) error
	AboutInfoUpdated(ctx context.Context, info *AboutInfo) error
}
