package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/wijvancees/fotobestel/internal/blobstore"
	"github.com/wijvancees/fotobestel/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Variant selects which rendition of a photo to serve.
type Variant int

const (
	VariantOriginal Variant = iota
	VariantThumbnail
)

// photoRepository is the subset of store.PhotoStore that CatalogService
// requires.
type photoRepository interface {
	ListAvailable(ctx context.Context, limit, offset int) ([]*domain.Photo, error)
	CountAvailable(ctx context.Context) (int, error)
	GetByID(ctx context.Context, id string) (*domain.Photo, error)
}

type CatalogService struct {
	photos photoRepository
	blobs  blobstore.Store
	logger *slog.Logger
}

func NewCatalogService(photos photoRepository, blobs blobstore.Store, logger *slog.Logger) *CatalogService {
	return &CatalogService{photos: photos, blobs: blobs, logger: logger}
}

// ListAvailable returns a page of listable photos and the total count. The
// two reads are independent and run concurrently.
func (s *CatalogService) ListAvailable(ctx context.Context, limit, offset int) ([]*domain.Photo, int, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	var (
		photos []*domain.Photo
		total  int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		photos, err = s.photos.ListAvailable(gctx, limit, offset)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.photos.CountAvailable(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return photos, total, nil
}

// PhotoContent fetches the bytes for a photo. The thumbnail variant resolves
// to the thumbnail key when one is recorded; if that object is missing from
// the blob store while the original exists, the original is served instead.
// The content type always matches the bytes actually returned.
func (s *CatalogService) PhotoContent(ctx context.Context, id string, variant Variant) ([]byte, string, error) {
	photo, err := s.photos.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if photo == nil {
		return nil, "", domain.ErrPhotoNotFound
	}

	key := photo.StorageKey
	if variant == VariantThumbnail && photo.ThumbnailKey != nil && *photo.ThumbnailKey != "" {
		key = *photo.ThumbnailKey
	}

	rc, err := s.blobs.Get(ctx, key)
	if errors.Is(err, blobstore.ErrNotFound) && key != photo.StorageKey {
		s.logger.Debug("thumbnail missing, falling back to original", "photo_id", id, "thumbnail_key", key)
		key = photo.StorageKey
		rc, err = s.blobs.Get(ctx, key)
	}
	if errors.Is(err, blobstore.ErrNotFound) {
		return nil, "", domain.ErrPhotoNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch photo %q: %w", id, err)
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			s.logger.Error("failed to close blob reader", "error", cerr)
		}
	}()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read photo %q: %w", id, err)
	}

	return data, mimeForKey(key), nil
}
