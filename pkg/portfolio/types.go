package portfolio

import (
	"time"

	"github.com/google/uuid"
)

// Bucket names for stored images. Each name maps to one configured BlobStore.
const (
	BucketArtworks    = "artworks"
	BucketExhibitions = "exhibitions"
	BucketAbout       = "about"
)

// AboutInfoID is the fixed identifier of the singleton about record. There is
// exactly one logical about row; updates upsert against this ID and never
// create a second one.
var AboutInfoID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// Artwork represents a single piece in the gallery. ID is assigned at
// creation and immutable afterwards. ImageURL is empty when no image was
// attached.
type Artwork struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Exhibition represents a show the artist participated in. Listings are
// ordered by StartDate descending.
type Exhibition struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AboutInfo is the singleton biography record.
type AboutInfo struct {
	ID             uuid.UUID `json:"id"`
	Description    string    `json:"description,omitempty"`
	InstagramURL   string    `json:"instagram_url,omitempty"`
	EtsyURL        string    `json:"etsy_url,omitempty"`
	ArtistPhotoURL string    `json:"artist_photo_url,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ObjectMeta contains metadata about an object in storage
type ObjectMeta struct {
	Key         string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
	ETag        string
}
