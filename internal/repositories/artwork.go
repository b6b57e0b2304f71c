package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Flammans/artanova/internal/models"
	"github.com/Flammans/artanova/internal/shared"
)

// ArtworkRepository persists cached artwork records in the artworks table.
type ArtworkRepository struct {
	db *sql.DB
}

// NewArtworkRepository creates an ArtworkRepository with the given database connection.
func NewArtworkRepository(db *sql.DB) *ArtworkRepository {
	return &ArtworkRepository{db: db}
}

// Upsert inserts or replaces an artwork by its server-assigned id.
func (r *ArtworkRepository) Upsert(artwork models.Artwork) error {
	if err := artwork.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	images, err := json.Marshal(artwork.Images)
	if err != nil {
		return fmt.Errorf("failed to serialize images: %w", err)
	}

	query := `
		INSERT INTO artworks (id, title, type, url, date, artist, origin, medium, preview, images, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			type = excluded.type,
			url = excluded.url,
			date = excluded.date,
			artist = excluded.artist,
			origin = excluded.origin,
			medium = excluded.medium,
			preview = excluded.preview,
			images = excluded.images,
			cached_at = excluded.cached_at
	`

	_, err = r.db.Exec(query,
		artwork.ID,
		artwork.Title,
		artwork.Type,
		artwork.URL,
		artwork.Date,
		artwork.Artist,
		artwork.Origin,
		artwork.Medium,
		artwork.Preview,
		string(images),
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert artwork %d: %w", artwork.ID, err)
	}

	return nil
}

// UpsertAll caches a batch of artworks in a single transaction.
func (r *ArtworkRepository) UpsertAll(artworks []models.Artwork) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO artworks (id, title, type, url, date, artist, origin, medium, preview, images, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			type = excluded.type,
			url = excluded.url,
			date = excluded.date,
			artist = excluded.artist,
			origin = excluded.origin,
			medium = excluded.medium,
			preview = excluded.preview,
			images = excluded.images,
			cached_at = excluded.cached_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, artwork := range artworks {
		if err := artwork.Validate(); err != nil {
			return fmt.Errorf("validation failed for artwork %d: %w", artwork.ID, err)
		}

		images, err := json.Marshal(artwork.Images)
		if err != nil {
			return fmt.Errorf("failed to serialize images: %w", err)
		}

		if _, err := stmt.Exec(
			artwork.ID,
			artwork.Title,
			artwork.Type,
			artwork.URL,
			artwork.Date,
			artwork.Artist,
			artwork.Origin,
			artwork.Medium,
			artwork.Preview,
			string(images),
			now,
		); err != nil {
			return fmt.Errorf("failed to upsert artwork %d: %w", artwork.ID, err)
		}
	}

	return tx.Commit()
}

// Get retrieves a cached artwork by id.
func (r *ArtworkRepository) Get(id int) (models.Artwork, error) {
	query := `
		SELECT id, title, type, url, date, artist, origin, medium, preview, images
		FROM artworks
		WHERE id = ?
	`

	artwork, err := scanArtwork(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return models.Artwork{}, fmt.Errorf("%w: artwork %d not cached", shared.ErrNotFound, id)
	}
	if err != nil {
		return models.Artwork{}, fmt.Errorf("failed to query artwork: %w", err)
	}

	return artwork, nil
}

// List returns all cached artworks ordered by id.
func (r *ArtworkRepository) List() ([]models.Artwork, error) {
	query := `
		SELECT id, title, type, url, date, artist, origin, medium, preview, images
		FROM artworks
		ORDER BY id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query artworks: %w", err)
	}
	defer rows.Close()

	var artworks []models.Artwork
	for rows.Next() {
		artwork, err := scanArtwork(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artwork: %w", err)
		}
		artworks = append(artworks, artwork)
	}

	return artworks, rows.Err()
}

// Count returns the number of cached artworks.
func (r *ArtworkRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM artworks").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count artworks: %w", err)
	}
	return count, nil
}

// Clear removes all cached artworks.
func (r *ArtworkRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM artworks"); err != nil {
		return fmt.Errorf("failed to clear artwork cache: %w", err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanArtwork(row scanner) (models.Artwork, error) {
	var (
		artwork models.Artwork
		images  sql.NullString
	)

	err := row.Scan(
		&artwork.ID,
		&artwork.Title,
		&artwork.Type,
		&artwork.URL,
		&artwork.Date,
		&artwork.Artist,
		&artwork.Origin,
		&artwork.Medium,
		&artwork.Preview,
		&images,
	)
	if err != nil {
		return models.Artwork{}, err
	}

	if images.Valid && images.String != "" {
		if err := json.Unmarshal([]byte(images.String), &artwork.Images); err != nil {
			return models.Artwork{}, fmt.Errorf("failed to parse images for artwork %d: %w", artwork.ID, err)
		}
	}

	return artwork, nil
}
