package portfolio

import (
	"context"

	"github.com/google/uuid"
)

// Service is the main interface for portfolio content operations. All
// methods are safe for concurrent use. Errors are terminal for the
// triggering call; there is no automatic retry.
type Service interface {
	// Artwork operations
	ListArtworks(ctx context.Context) ([]*Artwork, error)
	AddArtwork(ctx context.Context, req AddArtworkRequest) (*Artwork, error)
	DeleteArtwork(ctx context.Context, id uuid.UUID) error

	// Exhibition operations
	ListExhibitions(ctx context.Context) ([]*Exhibition, error)
	AddExhibition(ctx context.Context, req AddExhibitionRequest) (*Exhibition, error)
	DeleteExhibition(ctx context.Context, id uuid.UUID) error

	// About operations
	GetAboutInfo(ctx context.Context) (*AboutInfo, error)
	UpdateAboutInfo(ctx context.Context, req UpdateAboutInfoRequest) (*AboutInfo, error)
}
