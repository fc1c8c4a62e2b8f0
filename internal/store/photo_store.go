package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/wijvancees/fotobestel/internal/domain"
)

type PhotoStore struct {
	db *sql.DB
}

func NewPhotoStore(db *sql.DB) *PhotoStore {
	return &PhotoStore{db: db}
}

// ListAvailable returns a page of publicly listable photos, newest first.
// Photos with available=0 never appear here.
func (s *PhotoStore) ListAvailable(ctx context.Context, limit, offset int) ([]*domain.Photo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, r2_key, thumbnail_key, available, created_at FROM photos
		WHERE available = 1 ORDER BY created_at DESC LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var photos []*domain.Photo
	for rows.Next() {
		photo := &domain.Photo{}
		if err := rows.Scan(&photo.ID, &photo.Name, &photo.Description, &photo.StorageKey,
			&photo.ThumbnailKey, &photo.Available, &photo.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, photo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photos: %w", err)
	}

	return photos, nil
}

func (s *PhotoStore) CountAvailable(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM photos WHERE available = 1`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count photos: %w", err)
	}
	return count, nil
}

// GetByID looks up a photo regardless of availability; the binary endpoints
// serve unlisted photos too, as long as the caller knows the id.
func (s *PhotoStore) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	photo := &domain.Photo{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, r2_key, thumbnail_key, available, created_at FROM photos WHERE id = ?
	`, id).Scan(&photo.ID, &photo.Name, &photo.Description, &photo.StorageKey,
		&photo.ThumbnailKey, &photo.Available, &photo.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}

	return photo, nil
}

// Create exists for the import tooling and tests; the serving paths never
// write photos.
func (s *PhotoStore) Create(ctx context.Context, photo *domain.Photo) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO photos (id, name, description, r2_key, thumbnail_key, available) VALUES (?, ?, ?, ?, ?, ?)
	`, photo.ID, photo.Name, photo.Description, photo.StorageKey, photo.ThumbnailKey, photo.Available)
	if err != nil {
		return fmt.Errorf("failed to create photo: %w", err)
	}
	return nil
}
