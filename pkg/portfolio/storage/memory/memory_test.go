package memory_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/portfolio-content/pkg/portfolio/storage/memory"
)

func TestMemoryBackend_BasicOps(t *testing.T) {
	backend := memory.New("artworks")
	ctx := context.Background()
	key := "1722500000000_Sunset.jpg"
	data := []byte("fake jpeg bytes")

	require.NoError(t, backend.Upload(ctx, key, bytes.NewReader(data), "image/jpeg"))
	assert.Equal(t, 1, backend.ObjectCount())

	meta, err := backend.GetObjectMeta(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), meta.Size)
	assert.Equal(t, "image/jpeg", meta.ContentType)

	rc, err := backend.Download(ctx, key)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, data, got)

	require.NoError(t, backend.Delete(ctx, key))
	assert.Zero(t, backend.ObjectCount())
	assert.Error(t, backend.Delete(ctx, key))
}

func TestMemoryBackend_PublicURL(t *testing.T) {
	backend := memory.New("about")

	url, err := backend.PublicURL("artist_photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, "memory://store/about/artist_photo.jpg", url)

	_, err = backend.PublicURL("")
	assert.Error(t, err)
}
