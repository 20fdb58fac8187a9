package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/tendant/portfolio-content/pkg/portfolio"
)

// Repository implements portfolio.Repository using in-memory storage
type Repository struct {
	mu          sync.RWMutex
	artworks    map[uuid.UUID]*portfolio.Artwork
	exhibitions map[uuid.UUID]*portfolio.Exhibition
	about       *portfolio.AboutInfo
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		artworks:    make(map[uuid.UUID]*portfolio.Artwork),
		exhibitions: make(map[uuid.UUID]*portfolio.Exhibition),
	}
}

// Artwork operations

func (r *Repository) CreateArtwork(ctx context.Context, artwork *portfolio.Artwork) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Store a copy to avoid external modifications
	artworkCopy := *artwork
	r.artworks[artwork.ID] = &artworkCopy

	return nil
}

func (r *Repository) GetArtwork(ctx context.Context, id uuid.UUID) (*portfolio.Artwork, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	artwork, exists := r.artworks[id]
	if !exists {
		return nil, portfolio.ErrArtworkNotFound
	}

	artworkCopy := *artwork
	return &artworkCopy, nil
}

func (r *Repository) ListArtworks(ctx context.Context) ([]*portfolio.Artwork, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*portfolio.Artwork, 0, len(r.artworks))
	for _, artwork := range r.artworks {
		artworkCopy := *artwork
		result = append(result, &artworkCopy)
	}

	// Sort by created_at descending, newest first
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *Repository) DeleteArtwork(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.artworks[id]; !exists {
		return portfolio.ErrArtworkNotFound
	}

	delete(r.artworks, id)
	return nil
}

// Exhibition operations

func (r *Repository) CreateExhibition(ctx context.Context, exhibition *portfolio.Exhibition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	exhibitionCopy := *exhibition
	r.exhibitions[exhibition.ID] = &exhibitionCopy

	return nil
}

func (r *Repository) GetExhibition(ctx context.Context, id uuid.UUID) (*portfolio.Exhibition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exhibition, exists := r.exhibitions[id]
	if !exists {
		return nil, portfolio.ErrExhibitionNotFound
	}

	exhibitionCopy := *exhibition
	return &exhibitionCopy, nil
}

func (r *Repository) ListExhibitions(ctx context.Context) ([]*portfolio.Exhibition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*portfolio.Exhibition, 0, len(r.exhibitions))
	for _, exhibition := range r.exhibitions {
		exhibitionCopy := *exhibition
		result = append(result, &exhibitionCopy)
	}

	// Sort by start_date descending, most recent show first
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartDate.After(result[j].StartDate)
	})

	return result, nil
}

func (r *Repository) DeleteExhibition(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.exhibitions[id]; !exists {
		return portfolio.ErrExhibitionNotFound
	}

	delete(r.exhibitions, id)
	return nil
}

// About operations

func (r *Repository) GetAboutInfo(ctx context.Context) (*portfolio.AboutInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.about == nil {
		return nil, portfolio.ErrAboutInfoNotFound
	}

	aboutCopy := *r.about
	return &aboutCopy, nil
}

func (r *Repository) UpsertAboutInfo(ctx context.Context, info *portfolio.AboutInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Replace in place, keyed by the fixed singleton ID
	infoCopy := *info
	infoCopy.ID = portfolio.AboutInfoID
	r.about = &infoCopy

	return nil
}
