package config_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/portfolio-content/pkg/portfolio"
	"github.com/tendant/portfolio-content/pkg/portfolio/config"
)

func setGateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("EDIT_ID", "editor")
	t.Setenv("EDIT_SECRET", "s3cret")
	t.Setenv("SESSION_SECRET", "test-signing-key")
}

func TestLoadDefaults(t *testing.T) {
	setGateEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "memory", cfg.DatabaseURL)
	assert.Equal(t, "memory://", cfg.StorageURL)
}

func TestLoadRequiresGateSecrets(t *testing.T) {
	t.Setenv("EDIT_ID", "")
	t.Setenv("EDIT_SECRET", "")
	t.Setenv("SESSION_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidateRejectsUnknownURLs(t *testing.T) {
	setGateEnv(t)

	t.Run("bad database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "mysql://nope")
		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("bad storage url", func(t *testing.T) {
		t.Setenv("STORAGE_URL", "ftp://nope")
		_, err := config.Load()
		assert.Error(t, err)
	})
}

func TestBuildBlobStoresMemory(t *testing.T) {
	setGateEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	stores, err := cfg.BuildBlobStores()
	require.NoError(t, err)
	require.Len(t, stores, 3)
	for _, bucket := range []string{portfolio.BucketArtworks, portfolio.BucketExhibitions, portfolio.BucketAbout} {
		assert.Contains(t, stores, bucket)
	}
}

func TestBuildBlobStoresFilesystem(t *testing.T) {
	setGateEnv(t)
	t.Setenv("STORAGE_URL", "file://"+t.TempDir()+"?public_url=http://localhost:8080/files")

	cfg, err := config.Load()
	require.NoError(t, err)

	stores, err := cfg.BuildBlobStores()
	require.NoError(t, err)
	require.Len(t, stores, 3)

	url, err := stores[portfolio.BucketArtworks].PublicURL("img.jpg")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/artworks/img.jpg", url)
}

func TestBuildServiceWithMemoryBackends(t *testing.T) {
	setGateEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	svc, err := cfg.BuildService(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, svc)

	artwork, err := svc.AddArtwork(context.Background(), portfolio.AddArtworkRequest{
		Title: "Smoke Test",
		Image: []byte("jpeg-bytes"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, artwork.ImageURL)
}

func TestBuildGate(t *testing.T) {
	setGateEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	gate, err := cfg.BuildGate()
	require.NoError(t, err)

	_, err = gate.Login("editor", "s3cret")
	assert.NoError(t, err)
}
