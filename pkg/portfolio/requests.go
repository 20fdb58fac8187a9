package portfolio

import "time"

// AddArtworkRequest contains parameters for adding an artwork. Image is
// optional; when present it is uploaded to the artworks bucket before the
// record is written.
type AddArtworkRequest struct {
	Title            string
	Description      string
	Image            []byte
	ImageContentType string // defaults to image/jpeg
}

// AddExhibitionRequest contains parameters for adding an exhibition.
type AddExhibitionRequest struct {
	Title            string
	Description      string
	Location         string
	StartDate        time.Time
	EndDate          *time.Time
	Image            []byte
	ImageContentType string
}

// UpdateAboutInfoRequest contains the full replacement state for the
// singleton about record. Every call writes all fields; omitted fields are
// stored empty. ArtistPhotoURL carries the URL to keep when no new Image is
// supplied; a supplied Image takes precedence.
type UpdateAboutInfoRequest struct {
	Description      string
	InstagramURL     string
	EtsyURL          string
	ArtistPhotoURL   string
	Image            []byte
	ImageContentType string
}
