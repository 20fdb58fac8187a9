package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/tendant/portfolio-content/pkg/portfolio"
)

// maxUploadSize bounds multipart image uploads.
const maxUploadSize = 32 << 20 // 32 MiB

const dateLayout = "2006-01-02"

// ArtworkResponse is the response body for an artwork
type ArtworkResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExhibitionResponse is the response body for an exhibition
type ExhibitionResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date,omitempty"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// AboutResponse is the response body for the about record
type AboutResponse struct {
	Description    string    `json:"description"`
	InstagramURL   string    `json:"instagram_url"`
	EtsyURL        string    `json:"etsy_url"`
	ArtistPhotoURL string    `json:"artist_photo_url"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PortfolioHandler handles HTTP requests for portfolio content
type PortfolioHandler struct {
	service portfolio.Service
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(service portfolio.Service) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

// ListArtworks lists all artworks, newest first
func (h *PortfolioHandler) ListArtworks(w http.ResponseWriter, r *http.Request) {
	artworks, err := h.service.ListArtworks(r.Context())
	if err != nil {
		slog.Error("Failed to list artworks", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]ArtworkResponse, 0, len(artworks))
	for _, a := range artworks {
		resp = append(resp, artworkResponse(*a))
	}
	render.JSON(w, r, resp)
}

// CreateArtwork creates an artwork from a multipart form with fields
// "title", "description" and an optional "image" file part.
func (h *PortfolioHandler) CreateArtwork(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Invalid multipart form", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	image, contentType, err := formImage(r)
	if err != nil {
		slog.Error("Failed to read image part", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	artwork, err := h.service.AddArtwork(r.Context(), portfolio.AddArtworkRequest{
		Title:            r.FormValue("title"),
		Description:      r.FormValue("description"),
		Image:            image,
		ImageContentType: contentType,
	})
	if err != nil {
		status := statusForError(err)
		slog.Error("Failed to create artwork", "error", err)
		http.Error(w, err.Error(), status)
		return
	}

	slog.Info("Artwork created", "artwork_id", artwork.ID.String())
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, artworkResponse(*artwork))
}

// DeleteArtwork deletes an artwork by ID
func (h *PortfolioHandler) DeleteArtwork(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		slog.Error("Invalid artwork ID", "artwork_id", idStr, "error", err)
		http.Error(w, "Invalid artwork ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteArtwork(r.Context(), id); err != nil {
		slog.Error("Failed to delete artwork", "artwork_id", idStr, "error", err)
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	slog.Info("Artwork deleted", "artwork_id", idStr)
	w.WriteHeader(http.StatusNoContent)
}

// ListExhibitions lists all exhibitions ordered by start date descending
func (h *PortfolioHandler) ListExhibitions(w http.ResponseWriter, r *http.Request) {
	exhibitions, err := h.service.ListExhibitions(r.Context())
	if err != nil {
		slog.Error("Failed to list exhibitions", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]ExhibitionResponse, 0, len(exhibitions))
	for _, e := range exhibitions {
		resp = append(resp, exhibitionResponse(*e))
	}
	render.JSON(w, r, resp)
}

// CreateExhibition creates an exhibition from a multipart form with fields
// "title", "description", "location", "start_date" (YYYY-MM-DD), optional
// "end_date" and an optional "image" file part.
func (h *PortfolioHandler) CreateExhibition(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Invalid multipart form", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	startDate, err := time.Parse(dateLayout, r.FormValue("start_date"))
	if err != nil {
		slog.Error("Invalid start date", "start_date", r.FormValue("start_date"), "error", err)
		http.Error(w, "Invalid start date", http.StatusBadRequest)
		return
	}

	var endDate *time.Time
	if v := r.FormValue("end_date"); v != "" {
		parsed, err := time.Parse(dateLayout, v)
		if err != nil {
			slog.Error("Invalid end date", "end_date", v, "error", err)
			http.Error(w, "Invalid end date", http.StatusBadRequest)
			return
		}
		endDate = &parsed
	}

	image, contentType, err := formImage(r)
	if err != nil {
		slog.Error("Failed to read image part", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	exhibition, err := h.service.AddExhibition(r.Context(), portfolio.AddExhibitionRequest{
		Title:            r.FormValue("title"),
		Description:      r.FormValue("description"),
		Location:         r.FormValue("location"),
		StartDate:        startDate,
		EndDate:          endDate,
		Image:            image,
		ImageContentType: contentType,
	})
	if err != nil {
		status := statusForError(err)
		slog.Error("Failed to create exhibition", "error", err)
		http.Error(w, err.Error(), status)
		return
	}

	slog.Info("Exhibition created", "exhibition_id", exhibition.ID.String())
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, exhibitionResponse(*exhibition))
}

// DeleteExhibition deletes an exhibition by ID
func (h *PortfolioHandler) DeleteExhibition(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		slog.Error("Invalid exhibition ID", "exhibition_id", idStr, "error", err)
		http.Error(w, "Invalid exhibition ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteExhibition(r.Context(), id); err != nil {
		slog.Error("Failed to delete exhibition", "exhibition_id", idStr, "error", err)
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	slog.Info("Exhibition deleted", "exhibition_id", idStr)
	w.WriteHeader(http.StatusNoContent)
}

// GetAbout retrieves the about record
func (h *PortfolioHandler) GetAbout(w http.ResponseWriter, r *http.Request) {
	about, err := h.service.GetAboutInfo(r.Context())
	if err != nil {
		if errors.Is(err, portfolio.ErrAboutInfoNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		slog.Error("Failed to get about info", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, aboutResponse(*about))
}

// UpdateAbout replaces the about record from a multipart form with fields
// "description", "instagram_url", "etsy_url", "artist_photo_url" (the URL to
// keep when no new photo is uploaded) and an optional "image" file part.
func (h *PortfolioHandler) UpdateAbout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Invalid multipart form", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	image, contentType, err := formImage(r)
	if err != nil {
		slog.Error("Failed to read image part", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	about, err := h.service.UpdateAboutInfo(r.Context(), portfolio.UpdateAboutInfoRequest{
		Description:      r.FormValue("description"),
		InstagramURL:     r.FormValue("instagram_url"),
		EtsyURL:          r.FormValue("etsy_url"),
		ArtistPhotoURL:   r.FormValue("artist_photo_url"),
		Image:            image,
		ImageContentType: contentType,
	})
	if err != nil {
		slog.Error("Failed to update about info", "error", err)
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	slog.Info("About info updated")
	render.JSON(w, r, aboutResponse(*about))
}

// formImage reads the optional "image" file part. A missing part is not an
// error; it yields nil bytes.
func formImage(r *http.Request) ([]byte, string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", nil
		}
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return data, header.Header.Get("Content-Type"), nil
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, portfolio.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, portfolio.ErrArtworkNotFound),
		errors.Is(err, portfolio.ErrExhibitionNotFound),
		errors.Is(err, portfolio.ErrAboutInfoNotFound):
		return http.StatusNotFound
	case errors.Is(err, portfolio.ErrUploadFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func artworkResponse(a portfolio.Artwork) ArtworkResponse {
	return ArtworkResponse{
		ID:          a.ID.String(),
		Title:       a.Title,
		Description: a.Description,
		ImageURL:    a.ImageURL,
		CreatedAt:   a.CreatedAt,
	}
}

func exhibitionResponse(e portfolio.Exhibition) ExhibitionResponse {
	resp := ExhibitionResponse{
		ID:          e.ID.String(),
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartDate:   e.StartDate.Format(dateLayout),
		ImageURL:    e.ImageURL,
		CreatedAt:   e.CreatedAt,
	}
	if e.EndDate != nil {
		resp.EndDate = e.EndDate.Format(dateLayout)
	}
	return resp
}

func aboutResponse(a portfolio.AboutInfo) AboutResponse {
	return AboutResponse{
		Description:    a.Description,
		InstagramURL:   a.InstagramURL,
		EtsyURL:        a.EtsyURL,
		ArtistPhotoURL: a.ArtistPhotoURL,
		UpdatedAt:      a.UpdatedAt,
	}
}
