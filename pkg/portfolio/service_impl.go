package portfolio

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/portfolio-content/pkg/portfolio/imagekey"
)

// service implements the Service interface
type service struct {
	repository Repository
	blobStores map[string]BlobStore
	eventSink  EventSink
	logger     *slog.Logger
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore registers a blob store for the named bucket
func WithBlobStore(bucket string, store BlobStore) Option {
	return func(s *service) {
		if s.blobStores == nil {
			s.blobStores = make(map[string]BlobStore)
		}
		s.blobStores[bucket] = store
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// WithLogger sets the logger used for best-effort failure reporting
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		blobStores: make(map[string]BlobStore),
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s, nil
}

func (s *service) blobStore(bucket string) (BlobStore, error) {
	store, ok := s.blobStores[bucket]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBucketNotConfigured, bucket)
	}
	return store, nil
}

// uploadImage stores image bytes in the named bucket and resolves the public
// URL. On URL resolution failure the freshly uploaded object is deleted so no
// orphan is left behind.
func (s *service) uploadImage(ctx context.Context, bucket, title string, image []byte, contentType string) (key, publicURL string, err error) {
	store, err := s.blobStore(bucket)
	if err != nil {
		return "", "", err
	}

	if contentType == "" {
		contentType = "image/jpeg"
	}
	key = imagekey.Generate(title, time.Now())

	if err := store.Upload(ctx, key, bytes.NewReader(image), contentType); err != nil {
		return "", "", &StorageError{Bucket: bucket, Key: key, Op: "upload", Err: fmt.Errorf("%w: %w", ErrUploadFailed, err)}
	}

	publicURL, err = store.PublicURL(key)
	if err != nil {
		s.deleteImage(ctx, bucket, key)
		return "", "", &StorageError{Bucket: bucket, Key: key, Op: "resolve_url", Err: err}
	}
	return key, publicURL, nil
}

// deleteImage removes an object best-effort. Failures are logged, never
// surfaced.
func (s *service) deleteImage(ctx context.Context, bucket, key string) {
	store, err := s.blobStore(bucket)
	if err != nil {
		s.logger.Warn("cannot delete image", "bucket", bucket, "key", key, "error", err)
		return
	}
	if err := store.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete image", "bucket", bucket, "key", key, "error", err)
	}
}

// deleteImageByURL derives the object key from a public URL and removes the
// object best-effort. A URL that cannot be parsed is logged as a warning and
// otherwise ignored.
func (s *service) deleteImageByURL(ctx context.Context, bucket, imageURL string) {
	key, err := imagekey.ParsePublicURL(imageURL, bucket)
	if err != nil {
		s.logger.Warn("cannot derive storage path from image url", "bucket", bucket, "url", imageURL, "error", err)
		return
	}
	s.deleteImage(ctx, bucket, key)
}

// Artwork operations

func (s *service) ListArtworks(ctx context.Context) ([]*Artwork, error) {
	return s.repository.ListArtworks(ctx)
}

func (s *service) AddArtwork(ctx context.Context, req AddArtworkRequest) (*Artwork, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidRequest)
	}

	var uploadedKey, imageURL string
	if len(req.Image) > 0 {
		key, url, err := s.uploadImage(ctx, BucketArtworks, req.Title, req.Image, req.ImageContentType)
		if err != nil {
			return nil, err
		}
		uploadedKey, imageURL = key, url
	}

	now := time.Now().UTC()
	artwork := &Artwork{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    imageURL,
		CreatedAt:   now,
	}

	if err := s.repository.CreateArtwork(ctx, artwork); err != nil {
		// Compensate: the image and the record appear together or not at all.
		if uploadedKey != "" {
			s.deleteImage(ctx, BucketArtworks, uploadedKey)
		}
		return nil, &RecordError{Kind: "artwork", ID: artwork.ID, Op: "create", Err: err}
	}

	if s.eventSink != nil {
		if err := s.eventSink.ArtworkCreated(ctx, artwork); err != nil {
			s.logger.Warn("event sink failed", "event", "artwork_created", "id", artwork.ID, "error", err)
		}
	}

	return artwork, nil
}

func (s *service) DeleteArtwork(ctx context.Context, id uuid.UUID) error {
	artwork, err := s.repository.GetArtwork(ctx, id)
	if err != nil {
		return &RecordError{Kind: "artwork", ID: id, Op: "delete", Err: err}
	}

	if err := s.repository.DeleteArtwork(ctx, id); err != nil {
		return &RecordError{Kind: "artwork", ID: id, Op: "delete", Err: err}
	}

	// Image removal is best-effort and never rolls back the record delete.
	if artwork.ImageURL != "" {
		s.deleteImageByURL(ctx, BucketArtworks, artwork.ImageURL)
	}

	if s.eventSink != nil {
		if err := s.eventSink.ArtworkDeleted(ctx, id); err != nil {
			s.logger.Warn("event sink failed", "event", "artwork_deleted", "id", id, "error", err)
		}
	}

	return nil
}

// Exhibition operations

func (s *service) ListExhibitions(ctx context.Context) ([]*Exhibition, error) {
	return s.repository.ListExhibitions(ctx)
}

func (s *service) AddExhibition(ctx context.Context, req AddExhibitionRequest) (*Exhibition, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidRequest)
	}
	if req.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", ErrInvalidRequest)
	}

	var uploadedKey, imageURL string
	if len(req.Image) > 0 {
		key, url, err := s.uploadImage(ctx, BucketExhibitions, req.Title, req.Image, req.ImageContentType)
		if err != nil {
			return nil, err
		}
		uploadedKey, imageURL = key, url
	}

	now := time.Now().UTC()
	exhibition := &Exhibition{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		ImageURL:    imageURL,
		CreatedAt:   now,
	}

	if err := s.repository.CreateExhibition(ctx, exhibition); err != nil {
		if uploadedKey != "" {
			s.deleteImage(ctx, BucketExhibitions, uploadedKey)
		}
		return nil, &RecordError{Kind: "exhibition", ID: exhibition.ID, Op: "create", Err: err}
	}

	if s.eventSink != nil {
		if err := s.eventSink.ExhibitionCreated(ctx, exhibition); err != nil {
			s.logger.Warn("event sink failed", "event", "exhibition_created", "id", exhibition.ID, "error", err)
		}
	}

	return exhibition, nil
}

func (s *service) DeleteExhibition(ctx context.Context, id uuid.UUID) error {
	exhibition, err := s.repository.GetExhibition(ctx, id)
	if err != nil {
		return &RecordError{Kind: "exhibition", ID: id, Op: "delete", Err: err}
	}

	if err := s.repository.DeleteExhibition(ctx, id); err != nil {
		return &RecordError{Kind: "exhibition", ID: id, Op: "delete", Err: err}
	}

	if exhibition.ImageURL != "" {
		s.deleteImageByURL(ctx, BucketExhibitions, exhibition.ImageURL)
	}

	if s.eventSink != nil {
		if err := s.eventSink.ExhibitionDeleted(ctx, id); err != nil {
			s.logger.Warn("event sink failed", "event", "exhibition_deleted", "id", id, "error", err)
		}
	}

	return nil
}

// About operations

func (s *service) GetAboutInfo(ctx context.Context) (*AboutInfo, error) {
	return s.repository.GetAboutInfo(ctx)
}

func (s *service) UpdateAboutInfo(ctx context.Context, req UpdateAboutInfoRequest) (*AboutInfo, error) {
	photoURL := req.ArtistPhotoURL

	var uploadedKey string
	if len(req.Image) > 0 {
		key, url, err := s.uploadImage(ctx, BucketAbout, "artist_photo", req.Image, req.ImageContentType)
		if err != nil {
			return nil, err
		}
		uploadedKey, photoURL = key, url
	}

	info := &AboutInfo{
		ID:             AboutInfoID,
		Description:    req.Description,
		InstagramURL:   req.InstagramURL,
		EtsyURL:        req.EtsyURL,
		ArtistPhotoURL: photoURL,
		UpdatedAt:      time.Now().UTC(),
	}

	if err := s.repository.UpsertAboutInfo(ctx, info); err != nil {
		if uploadedKey != "" {
			s.deleteImage(ctx, BucketAbout, uploadedKey)
		}
		return nil, &RecordError{Kind: "about", ID: AboutInfoID, Op: "upsert", Err: err}
	}

	if s.eventSink != nil {
		if err := s.eventSink.AboutInfoUpdated(ctx, info); err != nil {
			s.logger.Warn("event sink failed", "event", "about_updated", "error", err)
		}
	}

	return info, nil
}
