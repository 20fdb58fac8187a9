package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/portfolio-content/pkg/portfolio"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements portfolio.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("duplicate entry")
		case "23503": // foreign_key_violation
			return fmt.Errorf("referenced record not found")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Artwork operations

func (r *Repository) CreateArtwork(ctx context.Context, artwork *portfolio.Artwork) error {
	query := `
		INSERT INTO artworks (id, title, description, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		artwork.ID, artwork.Title, artwork.Description, nullableString(artwork.ImageURL), artwork.CreatedAt)
	if err != nil {
		return r.handlePostgresError("create artwork", err)
	}

	return nil
}

func (r *Repository) GetArtwork(ctx context.Context, id uuid.UUID) (*portfolio.Artwork, error) {
	query := `
		SELECT id, title, description, image_url, created_at
		FROM artworks WHERE id = $1`

	var artwork portfolio.Artwork
	var imageURL *string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&artwork.ID, &artwork.Title, &artwork.Description, &imageURL, &artwork.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, portfolio.ErrArtworkNotFound
		}
		return nil, r.handlePostgresError("get artwork", err)
	}

	if imageURL != nil {
		artwork.ImageURL = *imageURL
	}
	return &artwork, nil
}

func (r *Repository) ListArtworks(ctx context.Context) ([]*portfolio.Artwork, error) {
	query := `
		SELECT id, title, description, image_url, created_at
		FROM artworks ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list artworks", err)
	}
	defer rows.Close()

	var result []*portfolio.Artwork
	for rows.Next() {
		var artwork portfolio.Artwork
		var imageURL *string
		if err := rows.Scan(&artwork.ID, &artwork.Title, &artwork.Description, &imageURL, &artwork.CreatedAt); err != nil {
			return nil, r.handlePostgresError("list artworks", err)
		}
		if imageURL != nil {
			artwork.ImageURL = *imageURL
		}
		result = append(result, &artwork)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("list artworks", err)
	}

	return result, nil
}

func (r *Repository) DeleteArtwork(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM artworks WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete artwork", err)
	}
	if tag.RowsAffected() == 0 {
		return portfolio.ErrArtworkNotFound
	}
	return nil
}

// Exhibition operations

func (r *Repository) CreateExhibition(ctx context.Context, exhibition *portfolio.Exhibition) error {
	query := `
		INSERT INTO exhibitions (id, title, description, location, start_date, end_date, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		exhibition.ID, exhibition.Title, exhibition.Description,
		nullableString(exhibition.Location), exhibition.StartDate, exhibition.EndDate,
		nullableString(exhibition.ImageURL), exhibition.CreatedAt)
	if err != nil {
		return r.handlePostgresError("create exhibition", err)
	}

	return nil
}

func (r *Repository) GetExhibition(ctx context.Context, id uuid.UUID) (*portfolio.Exhibition, error) {
	query := `
		SELECT id, title, description, location, start_date, end_date, image_url, created_at
		FROM exhibitions WHERE id = $1`

	exhibition, err := scanExhibition(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, portfolio.ErrExhibitionNotFound
		}
		return nil, r.handlePostgresError("get exhibition", err)
	}

	return exhibition, nil
}

func (r *Repository) ListExhibitions(ctx context.Context) ([]*portfolio.Exhibition, error) {
	query := `
		SELECT id, title, description, location, start_date, end_date, image_url, created_at
		FROM exhibitions ORDER BY start_date DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list exhibitions", err)
	}
	defer rows.Close()

	var result []*portfolio.Exhibition
	for rows.Next() {
		exhibition, err := scanExhibition(rows)
		if err != nil {
			return nil, r.handlePostgresError("list exhibitions", err)
		}
		result = append(result, exhibition)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("list exhibitions", err)
	}

	return result, nil
}

func (r *Repository) DeleteExhibition(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM exhibitions WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete exhibition", err)
	}
	if tag.RowsAffected() == 0 {
		return portfolio.ErrExhibitionNotFound
	}
	return nil
}

// About operations

func (r *Repository) GetAboutInfo(ctx context.Context) (*portfolio.AboutInfo, error) {
	query := `
		SELECT id, description, instagram_url, etsy_url, artist_photo_url, updated_at
		FROM about WHERE id = $1`

	var info portfolio.AboutInfo
	var instagramURL, etsyURL, photoURL *string
	err := r.db.QueryRow(ctx, query, portfolio.AboutInfoID).Scan(
		&info.ID, &info.Description, &instagramURL, &etsyURL, &photoURL, &info.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, portfolio.ErrAboutInfoNotFound
		}
		return nil, r.handlePostgresError("get about info", err)
	}

	if instagramURL != nil {
		info.InstagramURL = *instagramURL
	}
	if etsyURL != nil {
		info.EtsyURL = *etsyURL
	}
	if photoURL != nil {
		info.ArtistPhotoURL = *photoURL
	}
	return &info, nil
}

func (r *Repository) UpsertAboutInfo(ctx context.Context, info *portfolio.AboutInfo) error {
	query := `
		INSERT INTO about (id, description, instagram_url, etsy_url, artist_photo_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			description = EXCLUDED.description,
			instagram_url = EXCLUDED.instagram_url,
			etsy_url = EXCLUDED.etsy_url,
			artist_photo_url = EXCLUDED.artist_photo_url,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		portfolio.AboutInfoID, info.Description,
		nullableString(info.InstagramURL), nullableString(info.EtsyURL),
		nullableString(info.ArtistPhotoURL), info.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("upsert about info", err)
	}

	return nil
}

// scanExhibition scans an exhibition row from either a pgx.Row or pgx.Rows.
func scanExhibition(row interface{ Scan(...interface{}) error }) (*portfolio.Exhibition, error) {
	var exhibition portfolio.Exhibition
	var location, imageURL *string
	err := row.Scan(
		&exhibition.ID, &exhibition.Title, &exhibition.Description,
		&location, &exhibition.StartDate, &exhibition.EndDate,
		&imageURL, &exhibition.CreatedAt)
	if err != nil {
		return nil, err
	}

	if location != nil {
		exhibition.Location = *location
	}
	if imageURL != nil {
		exhibition.ImageURL = *imageURL
	}
	return &exhibition, nil
}

// nullableString maps empty strings to NULL so optional columns stay NULL
// instead of storing empty text.
func nullableString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
