// Package contentstore holds the in-memory view of the portfolio content for
// a running session. It is a reflection of remote state, not the source of
// truth: listings are fetched on Load and mutations patch the held
// collections optimistically until the next full reload reconciles them.
package contentstore

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tendant/portfolio-content/pkg/portfolio"
)

// State is the lifecycle state of the store.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Store caches portfolio content in memory. All methods are safe for
// concurrent use.
type Store struct {
	svc    portfolio.Service
	logger *slog.Logger

	mu          sync.RWMutex
	state       State
	revision    uint64
	artworks    []*portfolio.Artwork
	exhibitions []*portfolio.Exhibition
	about       *portfolio.AboutInfo

	// IDs patched in optimistically since the last full reload, with the
	// revision they were patched at. Used for divergence reporting on reload.
	optimistic map[uuid.UUID]uint64
}

// New creates an uninitialized store. Call Load to populate it.
func New(svc portfolio.Service, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		svc:        svc,
		logger:     logger,
		state:      StateUninitialized,
		optimistic: make(map[uuid.UUID]uint64),
	}
}

// Load fetches all collections concurrently and transitions the store to
// ready. A failed fetch degrades that collection to its empty or default
// value and is logged; the store never stays in loading. Each Load bumps the
// revision counter and reconciles optimistic entries against the fresh
// snapshot.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()

	var (
		artworks    []*portfolio.Artwork
		exhibitions []*portfolio.Exhibition
		about       *portfolio.AboutInfo
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.svc.ListArtworks(gctx)
		if err != nil {
			s.logger.Error("failed to load artworks", "error", err)
			return nil
		}
		artworks = list
		return nil
	})
	g.Go(func() error {
		list, err := s.svc.ListExhibitions(gctx)
		if err != nil {
			s.logger.Error("failed to load exhibitions", "error", err)
			return nil
		}
		exhibitions = list
		return nil
	})
	g.Go(func() error {
		info, err := s.svc.GetAboutInfo(gctx)
		if err != nil {
			if !errors.Is(err, portfolio.ErrAboutInfoNotFound) {
				s.logger.Error("failed to load about info", "error", err)
			}
			return nil
		}
		about = info
		return nil
	})
	// Fetch errors are absorbed above; the group never returns one.
	_ = g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.reconcile(artworks, exhibitions)

	s.artworks = artworks
	s.exhibitions = exhibitions
	s.about = about
	s.revision++
	s.state = StateReady
	s.optimistic = make(map[uuid.UUID]uint64)
}

// reconcile reports optimistic entries that did not survive the reload. The
// reload snapshot always wins; this only surfaces the divergence.
func (s *Store) reconcile(artworks []*portfolio.Artwork, exhibitions []*portfolio.Exhibition) {
	if len(s.optimistic) == 0 {
		return
	}

	present := make(map[uuid.UUID]bool, len(artworks)+len(exhibitions))
	for _, a := range artworks {
		present[a.ID] = true
	}
	for _, e := range exhibitions {
		present[e.ID] = true
	}

	for id, rev := range s.optimistic {
		if !present[id] {
			s.logger.Warn("optimistic entry diverged from remote state", "id", id, "patched_at_revision", rev)
		}
	}
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Revision returns the monotonic reload counter.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Artworks returns the held artwork list.
func (s *Store) Artworks() []*portfolio.Artwork {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*portfolio.Artwork, len(s.artworks))
	copy(result, s.artworks)
	return result
}

// Exhibitions returns the held exhibition list.
func (s *Store) Exhibitions() []*portfolio.Exhibition {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*portfolio.Exhibition, len(s.exhibitions))
	copy(result, s.exhibitions)
	return result
}

// AboutInfo returns the held about record, or nil when none has been
// written yet.
func (s *Store) AboutInfo() *portfolio.AboutInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.about
}

// AddArtwork performs the remote add and splices the returned record at the
// front of the held list.
func (s *Store) AddArtwork(ctx context.Context, req portfolio.AddArtworkRequest) (*portfolio.Artwork, error) {
	artwork, err := s.svc.AddArtwork(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.artworks = append([]*portfolio.Artwork{artwork}, s.artworks...)
	s.optimistic[artwork.ID] = s.revision
	return artwork, nil
}

// DeleteArtwork performs the remote delete and removes the record from the
// held list.
func (s *Store) DeleteArtwork(ctx context.Context, id uuid.UUID) error {
	if err := s.svc.DeleteArtwork(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.artworks {
		if a.ID == id {
			s.artworks = append(s.artworks[:i], s.artworks[i+1:]...)
			break
		}
	}
	delete(s.optimistic, id)
	return nil
}

// AddExhibition performs the remote add and splices the returned record into
// the held list, keeping start-date-descending order.
func (s *Store) AddExhibition(ctx context.Context, req portfolio.AddExhibitionRequest) (*portfolio.Exhibition, error) {
	exhibition, err := s.svc.AddExhibition(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	inserted := false
	for i, e := range s.exhibitions {
		if exhibition.StartDate.After(e.StartDate) {
			s.exhibitions = append(s.exhibitions[:i], append([]*portfolio.Exhibition{exhibition}, s.exhibitions[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		s.exhibitions = append(s.exhibitions, exhibition)
	}
	s.optimistic[exhibition.ID] = s.revision
	return exhibition, nil
}

// DeleteExhibition performs the remote delete and removes the record from
// the held list.
func (s *Store) DeleteExhibition(ctx context.Context, id uuid.UUID) error {
	if err := s.svc.DeleteExhibition(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.exhibitions {
		if e.ID == id {
			s.exhibitions = append(s.exhibitions[:i], s.exhibitions[i+1:]...)
			break
		}
	}
	delete(s.optimistic, id)
	return nil
}

// UpdateAboutInfo performs the remote upsert and replaces the held record.
func (s *Store) UpdateAboutInfo(ctx context.Context, req portfolio.UpdateAboutInfoRequest) (*portfolio.AboutInfo, error) {
	info, err := s.svc.UpdateAboutInfo(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.about = info
	return info, nil
}
