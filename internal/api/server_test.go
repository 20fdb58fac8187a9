package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/portfolio-content/internal/api"
	"github.com/tendant/portfolio-content/pkg/portfolio"
	repomemory "github.com/tendant/portfolio-content/pkg/portfolio/repo/memory"
	"github.com/tendant/portfolio-content/pkg/portfolio/session"
	memorystorage "github.com/tendant/portfolio-content/pkg/portfolio/storage/memory"
)

func setupServer(t *testing.T) http.Handler {
	t.Helper()

	svc, err := portfolio.New(
		portfolio.WithRepository(repomemory.New()),
		portfolio.WithBlobStore(portfolio.BucketArtworks, memorystorage.New(portfolio.BucketArtworks)),
		portfolio.WithBlobStore(portfolio.BucketExhibitions, memorystorage.New(portfolio.BucketExhibitions)),
		portfolio.WithBlobStore(portfolio.BucketAbout, memorystorage.New(portfolio.BucketAbout)),
	)
	require.NoError(t, err)

	gate, err := session.NewGate(session.Config{
		EditorID:     "editor",
		EditorSecret: "s3cret",
		TokenSecret:  "test-signing-key",
	})
	require.NoError(t, err)

	return api.NewServer(svc, gate, "test").Routes()
}

func loginToken(t *testing.T, handler http.Handler) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"id": "editor", "secret": "s3cret"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/session", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func multipartBody(t *testing.T, fields map[string]string, imageName string, image []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		part, err := w.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader(image))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHealth(t *testing.T) {
	handler := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestSessionLoginRejectsBadCredentials(t *testing.T) {
	handler := setupServer(t)

	body, _ := json.Marshal(map[string]string{"id": "editor", "secret": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/session", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEditRoutesRequireSession(t *testing.T) {
	handler := setupServer(t)

	body, contentType := multipartBody(t, map[string]string{"title": "Nope"}, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/artworks", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestArtworkLifecycle(t *testing.T) {
	handler := setupServer(t)
	token := loginToken(t, handler)

	// Create with an image part.
	body, contentType := multipartBody(t, map[string]string{
		"title":       "Sunset",
		"description": "Oil on canvas",
	}, "sunset.jpg", []byte("fake jpeg bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/artworks", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created api.ArtworkResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "Sunset", created.Title)
	assert.Contains(t, created.ImageURL, "_Sunset.jpg")

	// Public list sees it without a token.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/artworks", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []api.ArtworkResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	// Delete.
	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/artworks/%s", created.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/artworks", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	assert.Empty(t, listed)
}

func TestCreateArtworkValidation(t *testing.T) {
	handler := setupServer(t)
	token := loginToken(t, handler)

	body, contentType := multipartBody(t, map[string]string{"title": "   "}, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/artworks", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteArtworkNotFound(t *testing.T) {
	handler := setupServer(t)
	token := loginToken(t, handler)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/artworks/0b7f3a52-6a1f-4a3e-9a65-2f2b6b0a9f01", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/artworks/not-a-uuid", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExhibitionLifecycle(t *testing.T) {
	handler := setupServer(t)
	token := loginToken(t, handler)

	body, contentType := multipartBody(t, map[string]string{
		"title":      "Summer Group Show",
		"location":   "Lyon",
		"start_date": "2025-06-01",
		"end_date":   "2025-06-30",
	}, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/exhibitions", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created api.ExhibitionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "2025-06-01", created.StartDate)
	assert.Equal(t, "2025-06-30", created.EndDate)

	// Bad start date.
	body, contentType = multipartBody(t, map[string]string{
		"title":      "Bad Date",
		"start_date": "June 2025",
	}, "", nil)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/exhibitions", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Public list.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/exhibitions", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []api.ExhibitionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	assert.Len(t, listed, 1)
}

func TestAboutLifecycle(t *testing.T) {
	handler := setupServer(t)
	token := loginToken(t, handler)

	// Missing before first write.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/about", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// First write with photo.
	body, contentType := multipartBody(t, map[string]string{
		"description":   "Painter based in Lyon",
		"instagram_url": "https://instagram.com/example",
	}, "photo.jpg", []byte("fake jpeg bytes"))
	req = httptest.NewRequest(http.MethodPut, "/api/v1/about", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var about api.AboutResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&about))
	assert.Contains(t, about.ArtistPhotoURL, "artist_photo.jpg")

	// Second write without a new photo keeps the supplied URL.
	body, contentType = multipartBody(t, map[string]string{
		"description":      "Painter and printmaker",
		"artist_photo_url": about.ArtistPhotoURL,
	}, "", nil)
	req = httptest.NewRequest(http.MethodPut, "/api/v1/about", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/about", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&about))
	assert.Equal(t, "Painter and printmaker", about.Description)
	assert.Contains(t, about.ArtistPhotoURL, "artist_photo.jpg")
	assert.Empty(t, about.InstagramURL)
}

func TestLogoutClosesSession(t *testing.T) {
	handler := setupServer(t)
	token := loginToken(t, handler)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/session", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// The revoked token no longer opens edit routes.
	body, contentType := multipartBody(t, map[string]string{"title": "After Logout"}, "", nil)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/artworks", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
