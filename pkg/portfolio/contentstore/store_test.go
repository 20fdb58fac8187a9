package contentstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/portfolio-content/pkg/portfolio"
	"github.com/tendant/portfolio-content/pkg/portfolio/contentstore"
	repomemory "github.com/tendant/portfolio-content/pkg/portfolio/repo/memory"
)

func setupStore(t *testing.T) (*contentstore.Store, portfolio.Service) {
	t.Helper()

	svc, err := portfolio.New(portfolio.WithRepository(repomemory.New()))
	require.NoError(t, err)

	return contentstore.New(svc, nil), svc
}

func TestStoreStateTransitions(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	assert.Equal(t, contentstore.StateUninitialized, store.State())
	assert.Zero(t, store.Revision())

	store.Load(ctx)

	assert.Equal(t, contentstore.StateReady, store.State())
	assert.Equal(t, uint64(1), store.Revision())
	assert.Empty(t, store.Artworks())
	assert.Empty(t, store.Exhibitions())
	assert.Nil(t, store.AboutInfo())
}

func TestStoreLoadPopulates(t *testing.T) {
	store, svc := setupStore(t)
	ctx := context.Background()

	_, err := svc.AddArtwork(ctx, portfolio.AddArtworkRequest{Title: "One"})
	require.NoError(t, err)
	_, err = svc.AddExhibition(ctx, portfolio.AddExhibitionRequest{
		Title:     "Show",
		StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = svc.UpdateAboutInfo(ctx, portfolio.UpdateAboutInfoRequest{Description: "Bio"})
	require.NoError(t, err)

	store.Load(ctx)

	assert.Len(t, store.Artworks(), 1)
	assert.Len(t, store.Exhibitions(), 1)
	require.NotNil(t, store.AboutInfo())
	assert.Equal(t, "Bio", store.AboutInfo().Description)
}

// A failing fetch degrades to an empty ready view instead of staying stuck in
// the loading state.
type brokenService struct {
	portfolio.Service
}

var errBackend = errors.New("backend unavailable")

func (s *brokenService) ListArtworks(ctx context.Context) ([]*portfolio.Artwork, error) {
	return nil, errBackend
}

func (s *brokenService) ListExhibitions(ctx context.Context) ([]*portfolio.Exhibition, error) {
	return nil, errBackend
}

func TestStoreLoadDegradesOnFetchFailure(t *testing.T) {
	svc, err := portfolio.New(portfolio.WithRepository(repomemory.New()))
	require.NoError(t, err)

	store := contentstore.New(&brokenService{Service: svc}, nil)
	store.Load(context.Background())

	assert.Equal(t, contentstore.StateReady, store.State())
	assert.Empty(t, store.Artworks())
	assert.Empty(t, store.Exhibitions())
}

func TestStoreOptimisticAdd(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	store.Load(ctx)
	rev := store.Revision()

	first, err := store.AddArtwork(ctx, portfolio.AddArtworkRequest{Title: "First"})
	require.NoError(t, err)
	second, err := store.AddArtwork(ctx, portfolio.AddArtworkRequest{Title: "Second"})
	require.NoError(t, err)

	artworks := store.Artworks()
	require.Len(t, artworks, 2)
	// Most recent addition is spliced in at the front.
	assert.Equal(t, second.ID, artworks[0].ID)
	assert.Equal(t, first.ID, artworks[1].ID)
	// Only a reload bumps the revision; optimistic patches do not.
	assert.Equal(t, rev, store.Revision())
}

func TestStoreOptimisticDelete(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	store.Load(ctx)

	artwork, err := store.AddArtwork(ctx, portfolio.AddArtworkRequest{Title: "Gone Soon"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteArtwork(ctx, artwork.ID))
	assert.Empty(t, store.Artworks())
}

func TestStoreExhibitionOrderMaintained(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	store.Load(ctx)

	dates := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	titles := []string{"Old", "New", "Mid"}
	for i := range dates {
		_, err := store.AddExhibition(ctx, portfolio.AddExhibitionRequest{
			Title:     titles[i],
			StartDate: dates[i],
		})
		require.NoError(t, err)
	}

	exhibitions := store.Exhibitions()
	require.Len(t, exhibitions, 3)
	assert.Equal(t, "New", exhibitions[0].Title)
	assert.Equal(t, "Mid", exhibitions[1].Title)
	assert.Equal(t, "Old", exhibitions[2].Title)
}

func TestStoreReloadReconciles(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	store.Load(ctx)

	_, err := store.AddArtwork(ctx, portfolio.AddArtworkRequest{Title: "Persisted"})
	require.NoError(t, err)
	rev := store.Revision()

	// A reload replaces the optimistic view with the fetched one.
	store.Load(ctx)

	assert.Equal(t, contentstore.StateReady, store.State())
	assert.Greater(t, store.Revision(), rev)
	require.Len(t, store.Artworks(), 1)
	assert.Equal(t, "Persisted", store.Artworks()[0].Title)
}

func TestStoreUpdateAboutInfo(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	store.Load(ctx)

	info, err := store.UpdateAboutInfo(ctx, portfolio.UpdateAboutInfoRequest{Description: "Bio"})
	require.NoError(t, err)
	require.NotNil(t, store.AboutInfo())
	assert.Equal(t, info.Description, store.AboutInfo().Description)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "uninitialized", contentstore.StateUninitialized.String())
	assert.Equal(t, "loading", contentstore.StateLoading.String())
	assert.Equal(t, "ready", contentstore.StateReady.String())
}
